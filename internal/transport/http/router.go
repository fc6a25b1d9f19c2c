// Package httptransport assembles the public router. Handlers register their
// own routes; this package only owns the middleware chain and the operational
// endpoints.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vofmun/internal/platform/metrics"
	"vofmun/internal/platform/middleware"
	"vofmun/internal/transport/http/shared"
)

// Registrar is anything that can mount routes on the router.
type Registrar interface {
	Register(r chi.Router)
}

// Deps carries everything the router composition needs. SubmitLimiter, when
// set, wraps only the public submission endpoints.
type Deps struct {
	Logger        *slog.Logger
	Metrics       *metrics.Metrics
	Submission    []Registrar
	Open          []Registrar
	SubmitLimiter func(http.Handler) http.Handler
}

// NewRouter wires the middleware chain and mounts all handlers.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientIP)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.ContentTypeJSON)
	r.Use(middleware.Latency(deps.Metrics))

	r.Group(func(g chi.Router) {
		if deps.SubmitLimiter != nil {
			g.Use(deps.SubmitLimiter)
		}
		for _, reg := range deps.Submission {
			reg.Register(g)
		}
	})
	for _, reg := range deps.Open {
		reg.Register(r)
	}

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
