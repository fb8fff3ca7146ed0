package http

import (
	"log/slog"
	"net/http"

	"url-shortener-console/internal/metrics"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RouterOptions toggles the optional parts of the console
type RouterOptions struct {
	EnableMetrics bool
	// Limiter, when set, throttles form posts
	Limiter RateLimiter
}

// NewRouter wires the console routes.
//
// Middleware order (outside-in): recovery, request ID, real IP, logging,
// metrics. The rate limiter wraps only the POST routes.
func NewRouter(h *Handler, log *slog.Logger, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RecoveryMiddleware(log),
		RequestIDMiddleware,
		chimiddleware.RealIP,
		LoggingMiddleware(log),
		MetricsMiddleware,
	)

	r.NotFound(h.NotFound)

	r.Get("/health/live", h.HealthCheck)
	if opts.EnableMetrics {
		r.Handle("/metrics", metrics.Handler())
	}
	r.Handle("/static/*", StaticHandler())

	r.Get("/", h.Index)
	r.Get("/analytics/{shortCode}", h.Analytics)
	r.Get("/urls/{shortCode}/delete", h.ConfirmDelete)

	r.Group(func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(RateLimitMiddleware(opts.Limiter, log))
		}
		r.Post("/shorten", h.Shorten)
		r.Post("/urls/{shortCode}/delete", h.Delete)
	})

	return r
}
