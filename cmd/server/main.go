package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/cbglow/internal/catalog"
	"github.com/Simplici0/cbglow/internal/config"
	"github.com/Simplici0/cbglow/internal/db"
	"github.com/Simplici0/cbglow/internal/migrations"
	"github.com/Simplici0/cbglow/internal/obs"
	"github.com/Simplici0/cbglow/internal/pricing"
	"github.com/Simplici0/cbglow/internal/seed"
	"github.com/Simplici0/cbglow/web"
)

type server struct {
	// products is the reference catalog loaded at startup. It is never modified;
	// every request derives its own copy from the visitor's session.
	products     []pricing.Product
	sessions     *sessionStore
	pages        map[string]*template.Template
	quotes       *obs.QuoteMetrics
	validate     *validator.Validate
	log          zerolog.Logger
	db           *sql.DB
	readyTimeout time.Duration
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load config")
	}

	logger := obs.NewLogger(os.Stdout, cfg.LogFormat, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer database.Close()

	if err := migrations.Up(ctx, database); err != nil {
		logger.Fatal().Err(err).Msg("failed to run database migrations")
	}

	stats, err := seed.Run(ctx, database, pricing.DefaultCatalog())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to seed product catalog")
	}
	logger.Info().Int("inserts", stats.Inserts).Int("updates", stats.Updates).Msg("product catalog seeded")

	products, err := catalog.NewStore(database).Load(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load product catalog")
	}

	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		logger.Warn().Msg("SESSION_SECRET is not set; sessions will not survive a restart")
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			logger.Fatal().Err(err).Msg("failed to generate session secret")
		}
	}

	pages, err := parsePages()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse templates")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := &server{
		products:     products,
		sessions:     newSessionStore(secret),
		pages:        pages,
		quotes:       obs.NewQuoteMetrics(reg),
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		log:          logger,
		db:           database,
		readyTimeout: cfg.ReadyTimeout,
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.routes(reg, cfg.CORSAllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", httpServer.Addr).Int("products", len(products)).Msg("listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}

func (s *server) routes(reg *prometheus.Registry, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(obs.RequestLogger{Logger: s.log}.Middleware)
	r.Use(obs.HTTPObs{Metrics: obs.NewHTTPMetrics(reg)}.Middleware)
	r.Use(middleware.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))
	r.Get("/", s.handleHome)
	r.Post("/cartons", s.handleCartonsSubmit)
	r.Post("/products/{id}/carton", s.handleProductCarton)
	r.Post("/reset", s.handleReset)

	r.Route("/api", func(r chi.Router) {
		if len(allowedOrigins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins:   allowedOrigins,
				AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
				AllowedHeaders:   []string{"Content-Type"},
				AllowCredentials: true,
				MaxAge:           300,
			}))
		}
		r.Get("/products", s.handleAPIProducts)
		r.Get("/quote", s.handleAPISessionQuote)
		r.Post("/quote", s.handleAPIQuote)
	})

	r.Get("/healthz", s.handleLive)
	r.Get("/readyz", s.handleReady)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return r
}

func parsePages() (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"money": func(d decimal.Decimal) string { return pricing.FormatAmount(d) },
	}

	pages := make(map[string]*template.Template)
	for _, page := range []string{"home.html"} {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(web.Templates(), "layout.html", page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		pages[page] = t
	}
	return pages, nil
}
