package main

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/cbglow/internal/obs"
	"github.com/Simplici0/cbglow/internal/pricing"
)

type homeViewData struct {
	Lines    []pricing.Line
	Total    decimal.Decimal
	Tiers    []pricing.Tier
	Currency string
}

// visitorCatalog loads the session and returns the catalog with its cartons applied.
func (s *server) visitorCatalog(r *http.Request) (session, bool, []pricing.Product) {
	sess, isNew := s.sessions.load(r)
	obs.SetSessionID(r.Context(), sess.ID)
	return sess, isNew, sess.apply(s.products)
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	sess, isNew, products := s.visitorCatalog(r)
	if isNew {
		if err := s.sessions.save(w, sess); err != nil {
			s.log.Error().Err(err).Msg("save session")
		}
	}

	quote := pricing.BuildQuote(products)
	s.quotes.Observe(quote)

	s.renderTemplate(w, "home.html", homeViewData{
		Lines:    quote.Lines,
		Total:    quote.Total,
		Tiers:    pricing.Tiers(),
		Currency: pricing.Currency,
	})
}

func (s *server) handleCartonsSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	sess, _, products := s.visitorCatalog(r)
	for _, p := range s.products {
		values, ok := r.PostForm["carton_"+strconv.Itoa(p.ID)]
		if !ok || len(values) == 0 {
			continue
		}
		products = pricing.SetCarton(products, p.ID, pricing.ParseCarton(values[0]))
	}

	s.saveAndRedirect(w, r, sess, products)
}

func (s *server) handleProductCarton(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	sess, _, products := s.visitorCatalog(r)
	products = pricing.SetCarton(products, id, pricing.ParseCarton(r.FormValue("carton")))

	s.saveAndRedirect(w, r, sess, products)
}

func (s *server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.sessions.clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) saveAndRedirect(w http.ResponseWriter, r *http.Request, sess session, products []pricing.Product) {
	sess.remember(products)
	if err := s.sessions.save(w, sess); err != nil {
		s.log.Error().Err(err).Str("session_id", sess.ID).Msg("save session")
		http.Error(w, "failed to save session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) renderTemplate(w http.ResponseWriter, page string, data any) {
	t, ok := s.pages[page]
	if !ok {
		s.log.Error().Str("page", page).Msg("unknown template")
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		s.log.Error().Err(err).Str("page", page).Msg("render template")
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
