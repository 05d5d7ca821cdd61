// Package catalog reads the reference product catalog from the database.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Simplici0/cbglow/internal/pricing"
)

// ErrEmpty is returned when the products table holds no rows.
var ErrEmpty = errors.New("catalog is empty")

// Store loads products seeded into SQLite.
type Store struct {
	db *sql.DB
}

// NewStore returns a Store backed by db.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load returns every product in display order, each starting at pricing.DefaultCarton.
func (s *Store) Load(ctx context.Context) ([]pricing.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, designation, qty, distributor_price, wholesale_price, retail_price, consumer_price, image
		FROM products
		ORDER BY position ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := make([]pricing.Product, 0)
	for rows.Next() {
		p := pricing.Product{Carton: pricing.DefaultCarton}
		if err := rows.Scan(
			&p.ID,
			&p.Designation,
			&p.Qty,
			&p.Prices.Distributor,
			&p.Prices.Wholesale,
			&p.Prices.Retail,
			&p.Prices.Consumer,
			&p.Image,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	if len(products) == 0 {
		return nil, ErrEmpty
	}

	return products, nil
}
