package ingest

import (
	"fmt"

	"github.com/zbreeden/FourTwentyAnalytics/internal/seeds"
)

// Validate checks a normalized payload against the reference catalog.
// Each rule backed by a catalog table is skipped when that table is not
// enforceable (fail-open); the module-id presence check alone is
// unconditional. A nil return means the payload may proceed.
func Validate(payload Payload, catalog seeds.Catalog) *ValidationError {
	moduleID := payload.String("moduleId")
	if moduleID == "" {
		return &ValidationError{Message: "moduleId is required"}
	}

	if catalog.Modules.Enforceable() {
		if _, ok := catalog.Modules.Entries[moduleID]; !ok {
			return &ValidationError{
				Message: "unknown moduleId",
				Details: fmt.Sprintf("%s not found in modules.yml", moduleID),
			}
		}
	}

	if rating := payload.String("broadcastRating"); rating != "" {
		allowed := catalog.AllowedRatings()
		if !contains(allowed, rating) {
			return &ValidationError{
				Message: "invalid broadcastRating",
				Allowed: allowed,
			}
		}
	}

	if status := payload.String("statusId"); status != "" && catalog.Statuses.Enforceable() {
		if _, ok := catalog.Statuses.Entries[status]; !ok {
			return &ValidationError{
				Message: "invalid statusId",
				Details: fmt.Sprintf("%s not in statuses.yml", status),
			}
		}
	}

	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
