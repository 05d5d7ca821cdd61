package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/cbglow/internal/catalog"
	"github.com/Simplici0/cbglow/internal/db"
	"github.com/Simplici0/cbglow/internal/migrations"
	"github.com/Simplici0/cbglow/internal/obs"
	"github.com/Simplici0/cbglow/internal/pricing"
	"github.com/Simplici0/cbglow/internal/seed"
)

type testApp struct {
	srv     *server
	handler http.Handler
	reg     *prometheus.Registry
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	pages, err := parsePages()
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	srv := &server{
		products: pricing.DefaultCatalog(),
		sessions: newSessionStore([]byte("test-secret")),
		pages:    pages,
		quotes:   obs.NewQuoteMetrics(reg),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      zerolog.New(io.Discard),
	}
	return &testApp{srv: srv, handler: srv.routes(reg, nil), reg: reg}
}

// newTestAppWithDB wires the server the way main does, on a temporary SQLite file.
func newTestAppWithDB(t *testing.T) *testApp {
	t.Helper()

	ctx := context.Background()
	database, err := db.Open(ctx, filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, migrations.Up(ctx, database))
	_, err = seed.Run(ctx, database, pricing.DefaultCatalog())
	require.NoError(t, err)

	products, err := catalog.NewStore(database).Load(ctx)
	require.NoError(t, err)

	app := newTestApp(t)
	app.srv.products = products
	app.srv.db = database
	return app
}

func (a *testApp) do(t *testing.T, req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(t, req, cookies...)
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatalf("response did not set %s", sessionCookieName)
	return nil
}
