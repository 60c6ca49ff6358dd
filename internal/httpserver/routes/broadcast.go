package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/zbreeden/FourTwentyAnalytics/internal/httpserver/deps"
	"github.com/zbreeden/FourTwentyAnalytics/internal/httpserver/handlers"
)

func init() { Register(registerBroadcast) }

func registerBroadcast(r chi.Router, d deps.Deps) {
	r.Post("/api/broadcast", handlers.SubmitBroadcast(d))
	r.Get("/api/broadcast/latest", handlers.LatestBroadcast(d))
}
