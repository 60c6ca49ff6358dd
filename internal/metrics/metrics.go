// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// BroadcastsAccepted counts submissions written to the ledger.
	BroadcastsAccepted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fourtwenty_broadcasts_accepted_total",
		Help: "Broadcast submissions accepted and appended to the ledger.",
	})

	// BroadcastsRejected counts rejected submissions by reason.
	BroadcastsRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fourtwenty_broadcasts_rejected_total",
		Help: "Broadcast submissions rejected, labeled by reason.",
	}, []string{"reason"})
)

// Register installs the collectors into the default registry. Call once at
// startup.
func Register() {
	prometheus.MustRegister(BroadcastsAccepted, BroadcastsRejected)
}
