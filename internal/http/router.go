package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rogerio-castellano/store-analytics/internal/http/handlers"
	rl "github.com/rogerio-castellano/store-analytics/internal/http/rate_limiter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type routerOptions struct {
	trustProxy bool
}

type RouterOption func(*routerOptions)

// WithTrustedProxy makes the request's RemoteAddr come from X-Forwarded-For
// or X-Real-IP, so rate limiting keys on the original client.
func WithTrustedProxy(trust bool) RouterOption {
	return func(o *routerOptions) { o.trustProxy = trust }
}

// NewRouter wires the dashboard API. Load-triggering endpoints go through limiter,
// which keys on the peer address unless WithTrustedProxy is set.
func NewRouter(h *handlers.Handler, limiter *rl.Limiter, logger *zap.Logger, opts ...RouterOption) http.Handler {
	var o routerOptions
	for _, opt := range opts {
		opt(&o)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if o.trustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.HealthHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Get("/dashboard/state", h.GetDashboardStateHandler)
	r.Get("/dashboard/filters", h.GetFilterOptionsHandler)

	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Get("/dashboard", h.GetDashboardHandler)
		r.Post("/dashboard/reload", h.ReloadDashboardHandler)
	})
	return r
}
