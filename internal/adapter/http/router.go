package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/gofintrack/internal/adapter/http/handler"
	"github.com/iho/gofintrack/internal/adapter/http/middleware"
	"github.com/iho/gofintrack/internal/infrastructure/auth"
	"github.com/iho/gofintrack/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TransactionHandler *handler.TransactionHandler
	AnalyticsHandler   *handler.AnalyticsHandler
	StreamHandler      *handler.StreamHandler
	CategoryHandler    *handler.CategoryHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	IdempotencyTTL     time.Duration
	JWTManager         *auth.JWTManager
	RateLimiter        *middleware.RateLimiter
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewRecovery(cfg.Logger))
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.JWTManager))

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Get("/categories", cfg.CategoryHandler.List)

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Get("/", cfg.TransactionHandler.List)
			r.Get("/categories", cfg.TransactionHandler.Categories)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.Delete("/{id}", cfg.TransactionHandler.Delete)
		})

		// Analytics
		r.Route("/analytics", func(r chi.Router) {
			r.Get("/", cfg.AnalyticsHandler.Report)
			r.Get("/overview", cfg.AnalyticsHandler.Overview)
			r.Get("/categories", cfg.AnalyticsHandler.Categories)
			r.Get("/monthly", cfg.AnalyticsHandler.Monthly)
			r.Get("/cashflow", cfg.AnalyticsHandler.CashFlow)
			r.Get("/heatmap", cfg.AnalyticsHandler.Heatmap)
			r.Get("/insights", cfg.AnalyticsHandler.Insights)
			r.Get("/stream", cfg.StreamHandler.Stream)
		})
	})

	return r
}
