// Package enrich derives the display icon fields of a broadcast record from
// the seed catalogs. Every lookup is a priority-ordered chain of resolvers
// evaluated until one yields a non-empty value; the chains are total (they
// always terminate, possibly with an empty string) and side-effect free.
package enrich

import (
	"strings"

	"github.com/zbreeden/FourTwentyAnalytics/internal/seeds"
)

type resolver func() string

func firstNonEmpty(chain ...resolver) string {
	for _, resolve := range chain {
		if v := resolve(); v != "" {
			return v
		}
	}
	return ""
}

// GlyphIcons resolves the comma-joined module icon string for moduleID.
//
// Order: palette-mapped glyph keys (empty mappings discarded), then the
// module's own emoji/icon/glyph hint, then the raw glyph keys joined
// verbatim so the field is never silently empty when any key data exists.
func GlyphIcons(moduleID string, catalog seeds.Catalog) string {
	var module seeds.ModuleDefinition
	if catalog.Modules.Available {
		module = catalog.Modules.Entries[moduleID]
	}

	return firstNonEmpty(
		func() string { return mappedGlyphs(module.Glyphs, catalog.Palette) },
		func() string { return ownHint(module) },
		func() string { return strings.Join(module.Glyphs, ",") },
	)
}

// StatusIcon resolves the severity/status icon for a record.
//
// Order: palette status_icons keyed by rating, the explicit ratings tables
// keyed by rating, then status_icons keyed by status id (legacy fallback).
// Absence of all three yields an empty string, not an error.
func StatusIcon(rating, statusID string, catalog seeds.Catalog) string {
	if !catalog.Palette.Available {
		return ""
	}
	palette := catalog.Palette.Palette

	return firstNonEmpty(
		func() string {
			if rating == "" {
				return ""
			}
			return palette.StatusIcons[rating]
		},
		func() string {
			if rating == "" {
				return ""
			}
			if icon := palette.Ratings[rating]; icon != "" {
				return icon
			}
			return palette.BroadcastRatings[rating]
		},
		func() string {
			if statusID == "" {
				return ""
			}
			return palette.StatusIcons[statusID]
		},
	)
}

func mappedGlyphs(glyphs []string, palette seeds.PaletteTable) string {
	if !palette.Available || len(glyphs) == 0 {
		return ""
	}
	mapped := make([]string, 0, len(glyphs))
	for _, key := range glyphs {
		if icon := palette.Palette.GlyphIcons[key]; icon != "" {
			mapped = append(mapped, icon)
		}
	}
	return strings.Join(mapped, ",")
}

// ownHint returns the module's own display hint: the first non-empty of the
// emoji, icon and glyph fields, list values joined.
func ownHint(module seeds.ModuleDefinition) string {
	for _, hint := range []seeds.StringList{module.Emoji, module.Icon, module.Glyph} {
		if len(hint) > 0 {
			return strings.Join(hint, ",")
		}
	}
	return ""
}
