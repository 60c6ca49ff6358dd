package domain

import "strings"

// BroadcastRecord is the canonical unit of the ledger.
//
// It is constructed exactly once per accepted submission and never mutated
// afterwards. The JSON tags double as the ledger column names, so the same
// record serializes to a CSV row, the latest snapshot and an archive entry
// without any remapping.
type BroadcastRecord struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is unique across every record ever appended to the ledger.
	// Example: 20250901T142233Z-FourTwentyAnalytics-signals-core
	ID string `json:"broadcast.id"`

	// Timestamp is the server-authoritative submission time, formatted
	// with its zone offset. Client timestamps are never trusted.
	Timestamp string `json:"ts.utc5"`

	// Date is Timestamp truncated to its calendar date (YYYY-MM-DD).
	Date string `json:"date"`

	// ─────────────────────────────
	// Submitted content
	// ─────────────────────────────

	// ModuleID is the only unconditionally required field.
	ModuleID string `json:"module.id"`

	// Rating belongs to the active allowed set when present.
	Rating string `json:"broadcast.rating"`

	Name     string `json:"broadcast.name"`
	Summary  string `json:"broadcast.summary"`
	StatusID string `json:"status.id"`
	GitLink  string `json:"artifact.git.link"`

	// TagKeys preserves submission order.
	TagKeys []string `json:"tags.keys"`

	// ─────────────────────────────
	// Derived enrichment
	// ─────────────────────────────

	// GlyphIcons is a comma-joined icon string for the module.
	GlyphIcons string `json:"glyph_icons"`

	// StatusIcon reflects the severity/status, empty when nothing maps.
	StatusIcon string `json:"status_icons"`
}

// Header is the fixed ledger column schema, in write order. The schema is
// versionless: adding a column is a coordinated migration, not an edit here.
func Header() []string {
	return []string{
		"broadcast.id",
		"ts.utc5",
		"date",
		"module.id",
		"broadcast.rating",
		"broadcast.name",
		"broadcast.summary",
		"status.id",
		"artifact.git.link",
		"tags.keys",
		"glyph_icons",
		"status_icons",
	}
}

// CSVRow renders the record as one ledger row, columns aligned with Header.
// Tag keys collapse to a comma-joined cell.
func (r *BroadcastRecord) CSVRow() []string {
	return []string{
		r.ID,
		r.Timestamp,
		r.Date,
		r.ModuleID,
		r.Rating,
		r.Name,
		r.Summary,
		r.StatusID,
		r.GitLink,
		strings.Join(r.TagKeys, ","),
		r.GlyphIcons,
		r.StatusIcon,
	}
}
