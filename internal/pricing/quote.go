package pricing

import "github.com/shopspring/decimal"

// Currency is the display unit appended to every amount.
const Currency = "DA"

// Line is the derived view of one product for the current carton count.
type Line struct {
	Product   Product
	Tier      Tier
	UnitPrice decimal.Decimal
	Amount    decimal.Decimal
}

// Quote groups every line of a catalog and the grand total.
type Quote struct {
	Lines []Line
	Total decimal.Decimal
}

// BuildQuote derives unit price, tier and amount for every product, in catalog order.
func BuildQuote(products []Product) Quote {
	lines := make([]Line, 0, len(products))
	for _, p := range products {
		lines = append(lines, Line{
			Product:   p,
			Tier:      TierFor(p.Carton),
			UnitPrice: UnitPrice(p),
			Amount:    LineAmount(p),
		})
	}
	return Quote{Lines: lines, Total: OrderTotal(products)}
}

// FormatAmount renders an amount with exactly two decimals, e.g. "7008.00".
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
