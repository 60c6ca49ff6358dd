package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zbreeden/FourTwentyAnalytics/internal/httpserver/deps"
	"github.com/zbreeden/FourTwentyAnalytics/internal/ingest"
	"github.com/zbreeden/FourTwentyAnalytics/internal/logger"
	"github.com/zbreeden/FourTwentyAnalytics/internal/metrics"
)

// SubmitBroadcast accepts a broadcast payload, runs it through the ingest
// pipeline, and replies with the assigned broadcast id.
func SubmitBroadcast(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload ingest.Payload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			metrics.BroadcastsRejected.WithLabelValues("invalid_json").Inc()
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":   "invalid json",
				"details": err.Error(),
			})
			return
		}

		record, err := d.Ingest.Submit(r.Context(), payload)
		if err != nil {
			var verr *ingest.ValidationError
			if errors.As(err, &verr) {
				metrics.BroadcastsRejected.WithLabelValues("validation").Inc()
				body := map[string]any{"error": verr.Message}
				if verr.Details != "" {
					body["details"] = verr.Details
				}
				if len(verr.Allowed) > 0 {
					body["allowed"] = verr.Allowed
				}
				writeJSON(w, http.StatusBadRequest, body)
				return
			}

			metrics.BroadcastsRejected.WithLabelValues("persistence").Inc()
			d.Logger.Error("broadcast submission failed", logger.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":   "internal server error",
				"details": err.Error(),
			})
			return
		}

		metrics.BroadcastsAccepted.Inc()
		writeJSON(w, http.StatusOK, map[string]any{
			"status":       "ok",
			"broadcast_id": record.ID,
		})
	}
}

// LatestBroadcast returns the most recent snapshot, or 404 before the first
// accepted broadcast.
func LatestBroadcast(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := d.Snapshots.Latest()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"error": "no broadcast published yet",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(raw)
	}
}
