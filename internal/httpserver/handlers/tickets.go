package handlers

import (
	"net/http"

	"github.com/zbreeden/FourTwentyAnalytics/internal/httpserver/deps"
	"github.com/zbreeden/FourTwentyAnalytics/internal/logger"
)

// NextTicket allocates the next ticket id from the persistent counter.
func NextTicket(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := d.Sequence.Next()
		if err != nil {
			d.Logger.Error("ticket allocation failed", logger.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":   "internal server error",
				"details": err.Error(),
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"ticket_id": id})
	}
}
