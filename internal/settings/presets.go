package settings

import (
	"slices"
	"sort"
)

// Preset is a named built-in palette.
type Preset struct {
	Name        string
	Description string
	Colors      []string
}

// Presets contains all built-in palettes.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"catppuccin-latte": CatppuccinLattePreset,
	"dracula":          DraculaPreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

// DefaultPreset is gold, orchid and sky blue, the classic three-level cycle.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Gold, orchid and sky blue; three levels before the cycle repeats",
	Colors:      []string{"#FFD700", "#DA70D6", "#179FFF"},
}

// CatppuccinMochaPreset uses the Catppuccin Mocha accents.
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Warm, cozy dark theme accents: red, peach, yellow, green, sapphire, mauve",
	Colors:      []string{"#F38BA8", "#FAB387", "#F9E2AF", "#A6E3A1", "#74C7EC", "#CBA6F7"},
}

// CatppuccinLattePreset uses the Catppuccin Latte accents.
var CatppuccinLattePreset = Preset{
	Name:        "catppuccin-latte",
	Description: "Warm, cozy light theme accents tuned for light terminal backgrounds",
	Colors:      []string{"#D20F39", "#FE640B", "#DF8E1D", "#40A02B", "#209FB5", "#8839EF"},
}

// DraculaPreset uses the Dracula accents.
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dark theme with vibrant pink, purple, cyan, green, yellow and orange",
	Colors:      []string{"#FF79C6", "#BD93F9", "#8BE9FD", "#50FA7B", "#F1FA8C", "#FFB86C"},
}

// NordPreset uses the Nord frost and aurora colors.
var NordPreset = Preset{
	Name:        "nord",
	Description: "Arctic, north-bluish palette: frost blues followed by the aurora",
	Colors:      []string{"#88C0D0", "#81A1C1", "#B48EAD", "#A3BE8C", "#EBCB8B", "#D08770"},
}

// HighContrastPreset is four saturated colors for accessibility.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "Four fully saturated colors that stay distinct on any background",
	Colors:      []string{"#FFFF00", "#FF00FF", "#00FFFF", "#00FF00"},
}

// PresetNames returns preset names with "default" first and the rest sorted.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		if name != DefaultPreset.Name {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return slices.Insert(names, 0, DefaultPreset.Name)
}
