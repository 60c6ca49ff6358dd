package handlers

import (
	"net/http"

	"github.com/zbreeden/FourTwentyAnalytics/internal/httpserver/deps"
)

type debugResponse struct {
	ModulesAvailable  bool `json:"modules_available"`
	ModulesCount      int  `json:"modules_count"`
	StatusesAvailable bool `json:"statuses_available"`
	StatusesCount     int  `json:"statuses_count"`
	PaletteAvailable  bool `json:"palette_available"`
	ZoneinfoAvailable bool `json:"zoneinfo_available"`
	MirrorEnabled     bool `json:"mirror_enabled"`
}

// Debug reports seed availability and environment capabilities. Seeds are
// loaded fresh on every call so edits on disk show up immediately.
func Debug(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catalog := d.Seeds.Load()

		writeJSON(w, http.StatusOK, debugResponse{
			ModulesAvailable:  catalog.Modules.Available,
			ModulesCount:      len(catalog.Modules.Entries),
			StatusesAvailable: catalog.Statuses.Available,
			StatusesCount:     len(catalog.Statuses.Entries),
			PaletteAvailable:  catalog.Palette.Available,
			ZoneinfoAvailable: !d.Clock.UsingFallback(),
			MirrorEnabled:     d.MirrorEnabled,
		})
	}
}
