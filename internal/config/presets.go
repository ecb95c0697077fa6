package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/sortviz/internal/palette"
)

// Palette is a named background and gradient pair.
type Palette struct {
	Background palette.Color
	Gradient   palette.Gradient
}

var Presets = map[string]Palette{
	"classic": {
		Background: 0x1F1F1F,
		Gradient:   palette.Gradient{0x0000FF, 0x70AF00, 0xFF0000},
	},
	"mono": {
		Background: 0x000000,
		Gradient:   palette.Gradient{0x404040, 0xFFFFFF},
	},
	"heat": {
		Background: 0x100808,
		Gradient:   palette.Gradient{0x3B0F70, 0x8C2981, 0xDE4968, 0xFE9F6D, 0xFCFDBF},
	},
	"ocean": {
		Background: palette.MustParseColor("midnightblue"),
		Gradient: palette.Gradient{
			palette.MustParseColor("navy"),
			palette.MustParseColor("teal"),
			palette.MustParseColor("aquamarine"),
		},
	},
}

func GetPreset(name string) *Palette {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset replaces the config's colors with the named preset.
func (c *Config) ApplyPreset(name string) error {
	p := GetPreset(name)
	if p == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, ListPresets())
	}
	c.Render.Background = p.Background
	c.Render.Gradient = append(palette.Gradient(nil), p.Gradient...)
	return nil
}
