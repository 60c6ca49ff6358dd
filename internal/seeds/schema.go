package seeds

import "gopkg.in/yaml.v3"

// StringList accepts either a YAML scalar or a YAML sequence of scalars.
// Seed files are hand-edited and use both forms for icon hints.
type StringList []string

func (s *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var v string
		if err := value.Decode(&v); err != nil {
			return err
		}
		if v != "" {
			*s = StringList{v}
		}
	case yaml.SequenceNode:
		var v []string
		if err := value.Decode(&v); err != nil {
			return err
		}
		*s = StringList(v)
	}
	return nil
}

// ModuleDefinition is one entry of modules.yml.
type ModuleDefinition struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`

	// Glyphs lists palette keys to resolve through the glyph_icons table.
	Glyphs []string `yaml:"glyphs"`

	// Emoji/Icon/Glyph are the module's own display hints, consulted when
	// the palette cannot map any glyph key.
	Emoji StringList `yaml:"emoji"`
	Icon  StringList `yaml:"icon"`
	Glyph StringList `yaml:"glyph"`
}

// StatusDefinition is one entry of statuses.yml.
type StatusDefinition struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Emoji string `yaml:"emoji"`
}

// Palette is the emoji_palette.yml content.
type Palette struct {
	GlyphIcons  map[string]string `yaml:"glyph_icons"`
	StatusIcons map[string]string `yaml:"status_icons"`

	// Ratings and BroadcastRatings are two historical names for the same
	// mapping; when present their keys replace the default allowed rating
	// set, and their values map a rating to an icon.
	Ratings          map[string]string `yaml:"ratings"`
	BroadcastRatings map[string]string `yaml:"broadcast_ratings"`
}

// ModuleTable is the loaded modules.yml. Available distinguishes a table
// that failed to load (validation must be skipped, fail-open) from one that
// loaded but is empty.
type ModuleTable struct {
	Available bool
	Entries   map[string]ModuleDefinition
}

// Enforceable reports whether validation may consult the table.
func (t ModuleTable) Enforceable() bool { return t.Available && len(t.Entries) > 0 }

// StatusTable is the loaded statuses.yml.
type StatusTable struct {
	Available bool
	Entries   map[string]StatusDefinition
}

func (t StatusTable) Enforceable() bool { return t.Available && len(t.Entries) > 0 }

// PaletteTable is the loaded emoji_palette.yml.
type PaletteTable struct {
	Available bool
	Palette   Palette
}

// Catalog bundles the three optional reference tables for one submission.
type Catalog struct {
	Modules  ModuleTable
	Statuses StatusTable
	Palette  PaletteTable
}

// AllowedRatings returns the active rating set: the keys of the palette's
// ratings table when one is available, otherwise the fixed default set.
func (c Catalog) AllowedRatings() []string {
	if c.Palette.Available {
		for _, table := range []map[string]string{c.Palette.Palette.Ratings, c.Palette.Palette.BroadcastRatings} {
			if len(table) > 0 {
				keys := make([]string, 0, len(table))
				for k := range table {
					keys = append(keys, k)
				}
				return keys
			}
		}
	}
	return []string{"critical", "high", "normal", "mundane"}
}
