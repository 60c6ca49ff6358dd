package seeds

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	modulesFile  = "modules.yml"
	statusesFile = "statuses.yml"
	paletteFile  = "emoji_palette.yml"
)

// Loader reads the three optional seed tables from a directory.
//
// Loading is tolerant by contract: a missing file, a permission error or
// malformed YAML yields an unavailable table, never an error. Load is called
// on every submission so that seed edits take effect immediately.
type Loader struct {
	dir string
}

// NewLoader creates a seed loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load reads all three tables fresh from disk.
func (l *Loader) Load() Catalog {
	return Catalog{
		Modules:  l.loadModules(),
		Statuses: l.loadStatuses(),
		Palette:  l.loadPalette(),
	}
}

func (l *Loader) loadModules() ModuleTable {
	data, err := os.ReadFile(filepath.Join(l.dir, modulesFile))
	if err != nil {
		return ModuleTable{}
	}

	entries := make(map[string]ModuleDefinition)

	// modules.yml is either a YAML list of entries carrying an `id` key,
	// or a mapping keyed by id.
	var list []ModuleDefinition
	if err := yaml.Unmarshal(data, &list); err == nil {
		for _, def := range list {
			if def.ID != "" {
				entries[def.ID] = def
			}
		}
		return ModuleTable{Available: true, Entries: entries}
	}

	var byID map[string]ModuleDefinition
	if err := yaml.Unmarshal(data, &byID); err != nil {
		return ModuleTable{}
	}
	for id, def := range byID {
		if def.ID == "" {
			def.ID = id
		}
		entries[id] = def
	}
	return ModuleTable{Available: true, Entries: entries}
}

func (l *Loader) loadStatuses() StatusTable {
	data, err := os.ReadFile(filepath.Join(l.dir, statusesFile))
	if err != nil {
		return StatusTable{}
	}

	entries := make(map[string]StatusDefinition)

	var list []StatusDefinition
	if err := yaml.Unmarshal(data, &list); err == nil {
		for _, def := range list {
			if def.ID != "" {
				entries[def.ID] = def
			}
		}
		return StatusTable{Available: true, Entries: entries}
	}

	var byID map[string]StatusDefinition
	if err := yaml.Unmarshal(data, &byID); err != nil {
		return StatusTable{}
	}
	for id, def := range byID {
		if def.ID == "" {
			def.ID = id
		}
		entries[id] = def
	}
	return StatusTable{Available: true, Entries: entries}
}

func (l *Loader) loadPalette() PaletteTable {
	data, err := os.ReadFile(filepath.Join(l.dir, paletteFile))
	if err != nil {
		return PaletteTable{}
	}

	var palette Palette
	if err := yaml.Unmarshal(data, &palette); err != nil {
		return PaletteTable{}
	}
	return PaletteTable{Available: true, Palette: palette}
}
