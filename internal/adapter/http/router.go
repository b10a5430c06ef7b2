package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rlopes/contas/internal/adapter/http/handler"
	"github.com/rlopes/contas/internal/adapter/http/middleware"
	"github.com/rlopes/contas/internal/domain"
	"github.com/rlopes/contas/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	EntryUC       handler.EntryService
	SettlementUC  handler.SettlementService
	ContactUC     handler.ContactService
	PaymentTermUC handler.PaymentTermService
	HealthHandler *handler.HealthHandler

	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router. Receivables and payables share the
// same handlers bound to different kinds, so the two route trees cannot
// reach each other's entries.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.Liveness)
		r.Get("/ready", cfg.HealthHandler.Readiness)
	}
	r.Handle("/metrics", promhttp.Handler())

	contactHandler := handler.NewContactHandler(cfg.ContactUC)
	termHandler := handler.NewPaymentTermHandler(cfg.PaymentTermUC)

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Route("/receivables", entryRoutes(cfg, domain.KindReceivable))
		r.Route("/payables", entryRoutes(cfg, domain.KindPayable))

		r.Route("/contacts", func(r chi.Router) {
			r.Post("/", contactHandler.Create)
			r.Get("/", contactHandler.List)
			r.Get("/{id}", contactHandler.Get)
			r.Put("/{id}", contactHandler.Update)
			r.Delete("/{id}", contactHandler.Delete)
		})

		r.Route("/payment-terms", func(r chi.Router) {
			r.Post("/", termHandler.Create)
			r.Get("/", termHandler.List)
			r.Get("/{id}", termHandler.Get)
			r.Put("/{id}", termHandler.Update)
			r.Delete("/{id}", termHandler.Delete)
		})
	})

	return r
}

func entryRoutes(cfg RouterConfig, kind domain.EntryKind) func(chi.Router) {
	entryHandler := handler.NewEntryHandler(cfg.EntryUC, kind)
	settlementHandler := handler.NewSettlementHandler(cfg.SettlementUC, cfg.EntryUC, kind)

	return func(r chi.Router) {
		r.Post("/", entryHandler.Create)
		r.Get("/", entryHandler.List)
		r.Get("/integrity", entryHandler.Integrity)
		r.Get("/{id}", entryHandler.Get)
		r.Put("/{id}", entryHandler.Update)
		r.Delete("/{id}", entryHandler.Delete)

		r.Route("/{id}/settlements", func(r chi.Router) {
			r.Post("/", settlementHandler.Record)
			r.Get("/", settlementHandler.List)
			r.Get("/{settlementID}", settlementHandler.Get)
			r.Put("/{settlementID}", settlementHandler.Update)
			r.Delete("/{settlementID}", settlementHandler.Reverse)
		})
	}
}
