package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/cbglow/internal/pricing"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run writes the product catalog in an idempotent way: missing products are
// inserted, changed products are updated and unchanged ones are left alone.
// Slice order becomes the display position.
func Run(ctx context.Context, db *sql.DB, products []pricing.Product) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	for position, p := range products {
		if err := ensureProduct(ctx, tx, p, position, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

type storedProduct struct {
	designation string
	qty         int
	prices      pricing.Prices
	image       string
	position    int
}

func ensureProduct(ctx context.Context, tx *sql.Tx, p pricing.Product, position int, stats *Stats) error {
	var cur storedProduct
	err := tx.QueryRowContext(ctx, `
		SELECT designation, qty, distributor_price, wholesale_price, retail_price, consumer_price, image, position
		FROM products
		WHERE id = ?
	`, p.ID).Scan(
		&cur.designation,
		&cur.qty,
		&cur.prices.Distributor,
		&cur.prices.Wholesale,
		&cur.prices.Retail,
		&cur.prices.Consumer,
		&cur.image,
		&cur.position,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return insertProduct(ctx, tx, p, position, stats)
	}
	if err != nil {
		return fmt.Errorf("check product %d existence: %w", p.ID, err)
	}

	if sameProduct(cur, p, position) {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE products
		SET
			designation = ?,
			qty = ?,
			distributor_price = ?,
			wholesale_price = ?,
			retail_price = ?,
			consumer_price = ?,
			image = ?,
			position = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`,
		p.Designation,
		p.Qty,
		priceText(p.Prices.Distributor),
		priceText(p.Prices.Wholesale),
		priceText(p.Prices.Retail),
		priceText(p.Prices.Consumer),
		p.Image,
		position,
		p.ID,
	); err != nil {
		return fmt.Errorf("update product %d: %w", p.ID, err)
	}
	stats.Updates++
	return nil
}

func insertProduct(ctx context.Context, tx *sql.Tx, p pricing.Product, position int, stats *Stats) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO products (
			id,
			designation,
			qty,
			distributor_price,
			wholesale_price,
			retail_price,
			consumer_price,
			image,
			position
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID,
		p.Designation,
		p.Qty,
		priceText(p.Prices.Distributor),
		priceText(p.Prices.Wholesale),
		priceText(p.Prices.Retail),
		priceText(p.Prices.Consumer),
		p.Image,
		position,
	); err != nil {
		return fmt.Errorf("insert product %d: %w", p.ID, err)
	}
	stats.Inserts++
	return nil
}

func sameProduct(cur storedProduct, p pricing.Product, position int) bool {
	return cur.designation == p.Designation &&
		cur.qty == p.Qty &&
		cur.image == p.Image &&
		cur.position == position &&
		cur.prices.Distributor.Equal(p.Prices.Distributor) &&
		cur.prices.Wholesale.Equal(p.Prices.Wholesale) &&
		cur.prices.Retail.Equal(p.Prices.Retail) &&
		cur.prices.Consumer.Equal(p.Prices.Consumer)
}

// Prices are stored as TEXT decimals.
func priceText(d decimal.Decimal) string {
	return d.String()
}
