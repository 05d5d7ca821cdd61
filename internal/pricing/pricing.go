package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// Prices holds the four volume-tiered unit prices of a product.
type Prices struct {
	Distributor decimal.Decimal
	Wholesale   decimal.Decimal
	Retail      decimal.Decimal
	Consumer    decimal.Decimal
}

// Product is one catalog entry. Carton is the only field that changes during a session.
type Product struct {
	ID          int
	Designation string
	Qty         int
	Carton      int
	Prices      Prices
	Image       string
}

// Category is the price category label shown next to a line.
type Category string

const (
	CategoryDistributor Category = "Distributeur"
	CategoryWholesale   Category = "Grossiste"
	CategoryRetail      Category = "Détaillant"
	CategoryConsumer    Category = "Consommateur"
)

// Tier describes one band of the price table.
type Tier struct {
	MinCartons int
	Category   Category
	Badge      string
	Legend     string
	price      func(Prices) decimal.Decimal
}

// Price returns the unit price this tier selects from p.
func (t Tier) Price(p Prices) decimal.Decimal {
	return t.price(p)
}

// tiers is ordered from the highest threshold to the lowest; the first match wins.
// Both the unit price and the category label are resolved from this table only.
var tiers = []Tier{
	{
		MinCartons: 50,
		Category:   CategoryDistributor,
		Badge:      "green",
		Legend:     "(≥50 cartons)",
		price:      func(p Prices) decimal.Decimal { return p.Distributor },
	},
	{
		MinCartons: 10,
		Category:   CategoryWholesale,
		Badge:      "blue",
		Legend:     "(≥10 cartons)",
		price:      func(p Prices) decimal.Decimal { return p.Wholesale },
	},
	{
		MinCartons: 1,
		Category:   CategoryRetail,
		Badge:      "orange",
		Legend:     "(≥1 carton)",
		price:      func(p Prices) decimal.Decimal { return p.Retail },
	},
	{
		MinCartons: math.MinInt,
		Category:   CategoryConsumer,
		Badge:      "red",
		Legend:     "(<1 carton)",
		price:      func(p Prices) decimal.Decimal { return p.Consumer },
	},
}

// Tiers returns the price table in display order, highest volume first.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// TierFor returns the tier a carton count falls into.
func TierFor(carton int) Tier {
	for _, t := range tiers {
		if carton >= t.MinCartons {
			return t
		}
	}
	// Unreachable: the last tier starts at math.MinInt.
	return tiers[len(tiers)-1]
}

// UnitPrice selects the product's unit price for its current carton count.
func UnitPrice(p Product) decimal.Decimal {
	return TierFor(p.Carton).Price(p.Prices)
}

// CategoryFor returns the price category label for a carton count.
func CategoryFor(carton int) Category {
	return TierFor(carton).Category
}

// LineAmount computes carton × qty × unit price. The result is not rounded.
func LineAmount(p Product) decimal.Decimal {
	return decimal.NewFromInt(int64(p.Carton)).
		Mul(decimal.NewFromInt(int64(p.Qty))).
		Mul(UnitPrice(p))
}

// OrderTotal sums the line amounts of every product, zero-carton lines included.
func OrderTotal(products []Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(LineAmount(p))
	}
	return total
}

// SetCarton returns a new catalog where the product with the given id carries carton.
// The input slice is left untouched. An unknown id yields an unchanged copy.
func SetCarton(products []Product, id, carton int) []Product {
	out := make([]Product, len(products))
	copy(out, products)
	for i := range out {
		if out[i].ID == id {
			out[i].Carton = carton
			break
		}
	}
	return out
}
