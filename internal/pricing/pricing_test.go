package pricing

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func amountEqual(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s = %s, want %s", name, got.String(), want)
	}
}

func productByID(t *testing.T, products []Product, id int) Product {
	t.Helper()
	for _, p := range products {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("product %d not found", id)
	return Product{}
}

func TestUnitPriceAndCategory_Bands(t *testing.T) {
	base := productByID(t, DefaultCatalog(), 1)

	cases := []struct {
		carton   int
		price    string
		category Category
	}{
		{carton: 1000, price: "482.00", category: CategoryDistributor},
		{carton: 51, price: "482.00", category: CategoryDistributor},
		{carton: 50, price: "482.00", category: CategoryDistributor},
		{carton: 49, price: "531.00", category: CategoryWholesale},
		{carton: 10, price: "531.00", category: CategoryWholesale},
		{carton: 9, price: "584.00", category: CategoryRetail},
		{carton: 1, price: "584.00", category: CategoryRetail},
		{carton: 0, price: "650.00", category: CategoryConsumer},
		{carton: -5, price: "650.00", category: CategoryConsumer},
	}

	for _, tc := range cases {
		p := base
		p.Carton = tc.carton
		amountEqual(t, "unit price", UnitPrice(p), tc.price)
		if got := CategoryFor(tc.carton); got != tc.category {
			t.Fatalf("CategoryFor(%d) = %q, want %q", tc.carton, got, tc.category)
		}
	}
}

func TestLineAmountAgreesWithUnitPrice(t *testing.T) {
	for _, p := range DefaultCatalog() {
		for carton := -2; carton <= 60; carton++ {
			p.Carton = carton
			want := decimal.NewFromInt(int64(carton * p.Qty)).Mul(UnitPrice(p))
			if !LineAmount(p).Equal(want) {
				t.Fatalf("product %d carton %d: LineAmount = %s, want %s", p.ID, carton, LineAmount(p), want)
			}
			if !TierFor(carton).Price(p.Prices).Equal(UnitPrice(p)) {
				t.Fatalf("product %d carton %d: tier price disagrees with unit price", p.ID, carton)
			}
		}
	}
}

func TestTiersOrderedHighestFirst(t *testing.T) {
	table := Tiers()
	if len(table) != 4 {
		t.Fatalf("expected 4 tiers, got %d", len(table))
	}
	want := []Category{CategoryDistributor, CategoryWholesale, CategoryRetail, CategoryConsumer}
	for i, tier := range table {
		if tier.Category != want[i] {
			t.Fatalf("tier %d = %q, want %q", i, tier.Category, want[i])
		}
		if i > 0 && tier.MinCartons >= table[i-1].MinCartons {
			t.Fatalf("tier %d threshold %d is not below %d", i, tier.MinCartons, table[i-1].MinCartons)
		}
	}

	table[0].Category = "mutated"
	if Tiers()[0].Category != CategoryDistributor {
		t.Fatalf("Tiers must return a copy")
	}
}

func TestOrderTotal_MixedCartons(t *testing.T) {
	catalog := DefaultCatalog()
	for i, carton := range []int{2, 0, 15, 60} {
		catalog = SetCarton(catalog, catalog[i].ID, carton)
	}

	amountEqual(t, "line 1", LineAmount(catalog[0]), "4672.00")
	amountEqual(t, "line 2", LineAmount(catalog[1]), "0")
	amountEqual(t, "line 3", LineAmount(catalog[2]), "22860.00")
	amountEqual(t, "line 4", LineAmount(catalog[3]), "95040.00")

	sum := decimal.Zero
	for _, p := range catalog {
		sum = sum.Add(LineAmount(p))
	}
	amountEqual(t, "total", OrderTotal(catalog), sum.String())
	amountEqual(t, "total", OrderTotal(catalog), "122572.00")
}

func TestOrderTotal_DefaultCatalog(t *testing.T) {
	amountEqual(t, "total", OrderTotal(DefaultCatalog()), "7886.00")
	amountEqual(t, "empty total", OrderTotal(nil), "0")
}

func TestSetCarton_UpdatesOnlyMatchingProduct(t *testing.T) {
	catalog := DefaultCatalog()
	before := make([]Product, len(catalog))
	copy(before, catalog)

	updated := SetCarton(catalog, 3, 7)

	if !reflect.DeepEqual(catalog, before) {
		t.Fatalf("SetCarton mutated its input")
	}
	for i := range updated {
		want := before[i]
		if want.ID == 3 {
			want.Carton = 7
		}
		if !reflect.DeepEqual(updated[i], want) {
			t.Fatalf("product %d = %+v, want %+v", want.ID, updated[i], want)
		}
	}
}

func TestSetCarton_UnknownIDIsNoop(t *testing.T) {
	catalog := DefaultCatalog()

	updated := SetCarton(catalog, 9999, 7)

	if !reflect.DeepEqual(updated, catalog) {
		t.Fatalf("unknown id changed the catalog: %+v", updated)
	}
}

func TestScenario_LaveLingeRetail(t *testing.T) {
	catalog := SetCarton(DefaultCatalog(), 1, 3)
	p := productByID(t, catalog, 1)

	amountEqual(t, "unit price", UnitPrice(p), "584.00")
	amountEqual(t, "amount", LineAmount(p), "7008.00")
	if got := FormatAmount(LineAmount(p)); got != "7008.00" {
		t.Fatalf("formatted amount = %q, want %q", got, "7008.00")
	}
}

func TestScenario_LaveLingeZeroCartons(t *testing.T) {
	catalog := SetCarton(DefaultCatalog(), 1, 0)
	p := productByID(t, catalog, 1)

	amountEqual(t, "unit price", UnitPrice(p), "650.00")
	if got := FormatAmount(LineAmount(p)); got != "0.00" {
		t.Fatalf("formatted amount = %q, want %q", got, "0.00")
	}
	if got := CategoryFor(p.Carton); got != CategoryConsumer {
		t.Fatalf("category = %q, want %q", got, CategoryConsumer)
	}
}

func TestBuildQuote(t *testing.T) {
	catalog := SetCarton(DefaultCatalog(), 4, 50)

	quote := BuildQuote(catalog)

	if len(quote.Lines) != len(catalog) {
		t.Fatalf("expected %d lines, got %d", len(catalog), len(quote.Lines))
	}
	for i, line := range quote.Lines {
		if line.Product.ID != catalog[i].ID {
			t.Fatalf("line %d has product %d, want %d", i, line.Product.ID, catalog[i].ID)
		}
		if line.Tier.Category != CategoryFor(catalog[i].Carton) {
			t.Fatalf("line %d tier %q disagrees with CategoryFor", i, line.Tier.Category)
		}
	}
	amountEqual(t, "distributor line", quote.Lines[3].Amount, "79200.00")
	amountEqual(t, "total", quote.Total, OrderTotal(catalog).String())
}

func TestFormatAmount(t *testing.T) {
	cases := map[string]string{
		"0":        "0.00",
		"153.5":    "153.50",
		"1842":     "1842.00",
		"12.345":   "12.35",
		"122572.0": "122572.00",
	}
	for in, want := range cases {
		if got := FormatAmount(decimal.RequireFromString(in)); got != want {
			t.Fatalf("FormatAmount(%s) = %q, want %q", in, got, want)
		}
	}
}
