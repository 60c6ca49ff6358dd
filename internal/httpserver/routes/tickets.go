package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/zbreeden/FourTwentyAnalytics/internal/httpserver/deps"
	"github.com/zbreeden/FourTwentyAnalytics/internal/httpserver/handlers"
)

func init() { Register(registerTickets) }

func registerTickets(r chi.Router, d deps.Deps) {
	r.Post("/api/tickets/next", handlers.NextTicket(d))
}
