package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zbreeden/FourTwentyAnalytics/internal/httpserver/deps"
	"github.com/zbreeden/FourTwentyAnalytics/internal/httpserver/handlers"
)

func init() { Register(registerSystem) }

func registerSystem(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
	r.Get("/readyz", handlers.Readyz(d))
	r.Get("/debug", handlers.Debug(d))
	r.Method("GET", "/metrics", promhttp.Handler())
}
