package enrich

import (
	"testing"

	"github.com/zbreeden/FourTwentyAnalytics/internal/seeds"
)

func catalogWith(modules map[string]seeds.ModuleDefinition, palette *seeds.Palette) seeds.Catalog {
	cat := seeds.Catalog{}
	if modules != nil {
		cat.Modules = seeds.ModuleTable{Available: true, Entries: modules}
	}
	if palette != nil {
		cat.Palette = seeds.PaletteTable{Available: true, Palette: *palette}
	}
	return cat
}

func TestGlyphIcons(t *testing.T) {
	tests := []struct {
		name    string
		modules map[string]seeds.ModuleDefinition
		palette *seeds.Palette
		want    string
	}{
		{
			name: "palette mapping wins",
			modules: map[string]seeds.ModuleDefinition{
				"signals-core": {ID: "signals-core", Glyphs: []string{"pulse", "beacon"}},
			},
			palette: &seeds.Palette{GlyphIcons: map[string]string{"pulse": "📡", "beacon": "🔆"}},
			want:    "📡,🔆",
		},
		{
			name: "empty mappings discarded",
			modules: map[string]seeds.ModuleDefinition{
				"signals-core": {ID: "signals-core", Glyphs: []string{"pulse", "unmapped"}},
			},
			palette: &seeds.Palette{GlyphIcons: map[string]string{"pulse": "📡"}},
			want:    "📡",
		},
		{
			name: "module emoji fallback when nothing maps",
			modules: map[string]seeds.ModuleDefinition{
				"signals-core": {ID: "signals-core", Glyphs: []string{"pulse"}, Emoji: seeds.StringList{"🛰️"}},
			},
			palette: &seeds.Palette{GlyphIcons: map[string]string{}},
			want:    "🛰️",
		},
		{
			name: "icon field consulted after emoji",
			modules: map[string]seeds.ModuleDefinition{
				"signals-core": {ID: "signals-core", Icon: seeds.StringList{"🎯", "🧭"}},
			},
			want: "🎯,🧭",
		},
		{
			name: "raw glyph keys as final fallback",
			modules: map[string]seeds.ModuleDefinition{
				"signals-core": {ID: "signals-core", Glyphs: []string{"pulse", "beacon"}},
			},
			want: "pulse,beacon",
		},
		{
			name: "unknown module yields empty",
			modules: map[string]seeds.ModuleDefinition{
				"other": {ID: "other"},
			},
			want: "",
		},
		{
			name: "no catalog at all yields empty",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GlyphIcons("signals-core", catalogWith(tt.modules, tt.palette))
			if got != tt.want {
				t.Errorf("GlyphIcons() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatusIcon(t *testing.T) {
	tests := []struct {
		name    string
		rating  string
		status  string
		palette *seeds.Palette
		want    string
	}{
		{
			name:    "status_icons keyed by rating wins",
			rating:  "critical",
			status:  "active",
			palette: &seeds.Palette{StatusIcons: map[string]string{"critical": "🚨", "active": "🟢"}},
			want:    "🚨",
		},
		{
			name:    "ratings table second",
			rating:  "critical",
			palette: &seeds.Palette{Ratings: map[string]string{"critical": "🔴"}},
			want:    "🔴",
		},
		{
			name:    "broadcast_ratings consulted after ratings",
			rating:  "high",
			palette: &seeds.Palette{BroadcastRatings: map[string]string{"high": "🟠"}},
			want:    "🟠",
		},
		{
			name:    "status id legacy fallback",
			status:  "active",
			palette: &seeds.Palette{StatusIcons: map[string]string{"active": "🟢"}},
			want:    "🟢",
		},
		{
			name:   "no palette yields empty",
			rating: "critical",
			status: "active",
			want:   "",
		},
		{
			name:    "nothing maps yields empty",
			rating:  "mundane",
			status:  "dormant",
			palette: &seeds.Palette{StatusIcons: map[string]string{"other": "x"}},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatusIcon(tt.rating, tt.status, catalogWith(nil, tt.palette))
			if got != tt.want {
				t.Errorf("StatusIcon() = %q, want %q", got, tt.want)
			}
		})
	}
}
