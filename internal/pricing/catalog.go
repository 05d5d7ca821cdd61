package pricing

import "github.com/shopspring/decimal"

// DefaultCarton is the carton count every product starts a session with.
const DefaultCarton = 1

// DefaultCatalog returns the C&B Glow product list in display order.
func DefaultCatalog() []Product {
	return []Product{
		{
			ID:          1,
			Designation: "Lave-Linge Fée-Fresh (Bidon 3L)",
			Qty:         4,
			Carton:      DefaultCarton,
			Image:       "/static/products/lave_linge.jpg",
			Prices:      prices("482.00", "531.00", "584.00", "650.00"),
		},
		{
			ID:          2,
			Designation: "Lave-Vaisselle Citron (flacon 650 mL)",
			Qty:         12,
			Carton:      DefaultCarton,
			Image:       "/static/products/liquide_vaisselle.jpg",
			Prices:      prices("122.50", "137.00", "153.50", "175.00"),
		},
		{
			ID:          3,
			Designation: "Lave-Sol Rose (flacon 1L)",
			Qty:         12,
			Carton:      DefaultCarton,
			Image:       "/static/products/lave_sol.jpg",
			Prices:      prices("112.50", "127.00", "144.00", "165.00"),
		},
		{
			ID:          4,
			Designation: "Désodorisant Brise de Fleurs (500 ml)",
			Qty:         12,
			Carton:      DefaultCarton,
			Image:       "/static/products/desodorisant.jpg",
			Prices:      prices("132.00", "148.00", "165.00", "190.00"),
		},
	}
}

func prices(distributor, wholesale, retail, consumer string) Prices {
	return Prices{
		Distributor: decimal.RequireFromString(distributor),
		Wholesale:   decimal.RequireFromString(wholesale),
		Retail:      decimal.RequireFromString(retail),
		Consumer:    decimal.RequireFromString(consumer),
	}
}
