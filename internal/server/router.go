package server

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates a router with all routes configured. Metrics are served
// from g at /metrics.
func NewRouter(h *Handler, g prometheus.Gatherer) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", h.Health)
	r.Get("/chart", h.Chart)
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/balances", h.Balances)
		r.Get("/postings.csv", h.Postings)
		r.Get("/accounts/{name}/series.csv", h.AccountSeries)
	})

	return r
}
