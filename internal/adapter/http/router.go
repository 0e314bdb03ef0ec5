package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/contaec/contaledger/internal/adapter/http/handler"
	"github.com/contaec/contaledger/internal/adapter/http/middleware"
	"github.com/contaec/contaledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	PostingHandler   *handler.PostingHandler
	AccountHandler   *handler.AccountHandler
	LedgerHandler    *handler.LedgerHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Invoice postings
		r.Route("/invoices/{id}", func(r chi.Router) {
			r.Post("/posting", cfg.PostingHandler.Post)
			r.Post("/reversal", cfg.PostingHandler.Reverse)
		})

		r.Route("/postings", func(r chi.Router) {
			r.Post("/batch", cfg.PostingHandler.PostBatch)
			r.Get("/audit", cfg.PostingHandler.AuditTrail)
		})

		// Journal entries
		r.Route("/journal-entries", func(r chi.Router) {
			r.Get("/", cfg.PostingHandler.GetEntryByReference)
			r.Get("/{id}", cfg.PostingHandler.GetEntry)
		})

		// Chart of accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Get("/search", cfg.AccountHandler.Search)
			r.Get("/{id}", cfg.AccountHandler.Get)
		})

		// Ledger
		r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
	})

	return r
}
