package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Simplici0/cbglow/internal/pricing"
)

const maxQuoteBody = 64 << 10

type pricesResponse struct {
	Distributor string `json:"distributor"`
	Wholesale   string `json:"wholesale"`
	Retail      string `json:"retail"`
	Consumer    string `json:"consumer"`
}

type productResponse struct {
	ID          int            `json:"id"`
	Designation string         `json:"designation"`
	Qty         int            `json:"qty"`
	Carton      int            `json:"carton"`
	Image       string         `json:"image"`
	Prices      pricesResponse `json:"prices"`
}

type productsResponse struct {
	Currency string            `json:"currency"`
	Products []productResponse `json:"products"`
}

type quoteLineResponse struct {
	ID          int    `json:"id"`
	Designation string `json:"designation"`
	Carton      int    `json:"carton"`
	Qty         int    `json:"qty"`
	UnitPrice   string `json:"unit_price"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
}

type quoteResponse struct {
	Currency string              `json:"currency"`
	Lines    []quoteLineResponse `json:"lines"`
	Total    string              `json:"total"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// cartonInput accepts a JSON number or string and normalizes it like the form input:
// "abc" and null become 0, 3.7 becomes 3, negatives clamp to 0.
type cartonInput int

func (c *cartonInput) UnmarshalJSON(b []byte) error {
	*c = cartonInput(pricing.ParseCarton(strings.Trim(string(b), `"`)))
	return nil
}

type quoteLineRequest struct {
	ID     int         `json:"id" validate:"gt=0"`
	Carton cartonInput `json:"carton"`
}

type quoteRequest struct {
	Lines []quoteLineRequest `json:"lines" validate:"required,max=100,dive"`
}

func (s *server) handleAPIProducts(w http.ResponseWriter, r *http.Request) {
	_, _, products := s.visitorCatalog(r)

	resp := productsResponse{
		Currency: pricing.Currency,
		Products: make([]productResponse, 0, len(products)),
	}
	for _, p := range products {
		resp.Products = append(resp.Products, productResponse{
			ID:          p.ID,
			Designation: p.Designation,
			Qty:         p.Qty,
			Carton:      p.Carton,
			Image:       p.Image,
			Prices: pricesResponse{
				Distributor: pricing.FormatAmount(p.Prices.Distributor),
				Wholesale:   pricing.FormatAmount(p.Prices.Wholesale),
				Retail:      pricing.FormatAmount(p.Prices.Retail),
				Consumer:    pricing.FormatAmount(p.Prices.Consumer),
			},
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleAPISessionQuote(w http.ResponseWriter, r *http.Request) {
	_, _, products := s.visitorCatalog(r)
	s.writeQuote(w, products)
}

// handleAPIQuote prices the posted lines over the default cartons without touching the session.
func (s *server) handleAPIQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxQuoteBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	if err := s.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationMessage(err)})
		return
	}

	products := s.products
	for _, line := range req.Lines {
		products = pricing.SetCarton(products, line.ID, int(line.Carton))
	}
	s.writeQuote(w, products)
}

func (s *server) writeQuote(w http.ResponseWriter, products []pricing.Product) {
	quote := pricing.BuildQuote(products)
	s.quotes.Observe(quote)

	resp := quoteResponse{
		Currency: pricing.Currency,
		Lines:    make([]quoteLineResponse, 0, len(quote.Lines)),
		Total:    pricing.FormatAmount(quote.Total),
	}
	for _, line := range quote.Lines {
		resp.Lines = append(resp.Lines, quoteLineResponse{
			ID:          line.Product.ID,
			Designation: line.Product.Designation,
			Carton:      line.Product.Carton,
			Qty:         line.Product.Qty,
			UnitPrice:   pricing.FormatAmount(line.UnitPrice),
			Category:    string(line.Tier.Category),
			Amount:      pricing.FormatAmount(line.Amount),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "validation failed"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return "lines is required"
	case "max":
		return "too many lines"
	case "gt":
		return "line id must be greater than 0"
	default:
		return fe.Error()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
