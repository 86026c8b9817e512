// Package settings resolves configuration into the runtime palette and
// bracket pairs the scanner and renderer consume.
package settings

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/rainbow/internal/config"
)

// Pair is one bracket kind and its delimiters.
type Pair struct {
	Kind  string
	Open  string
	Close string
}

// Settings is the resolved palette plus the bracket kinds to match.
// It is read-only once built and safe to share between documents.
type Settings struct {
	Colors         []lipgloss.Color
	UnmatchedColor lipgloss.Color
	Pairs          []Pair
}

// New builds settings from an explicit palette and pair list.
func New(colors []lipgloss.Color, pairs []Pair) *Settings {
	return &Settings{
		Colors:         colors,
		UnmatchedColor: lipgloss.Color(config.Defaults().UnmatchedColor),
		Pairs:          pairs,
	}
}

// Default returns the default palette with the default pairs.
func Default() *Settings {
	s, err := FromConfig(config.Defaults())
	if err != nil {
		// Defaults are static and covered by tests.
		panic(err)
	}
	return s
}

// FromConfig applies, in order: the preset palette, the explicit color list,
// the unmatched color and the pair list.
func FromConfig(cfg config.Config) (*Settings, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	presetName := cfg.Preset
	if presetName == "" {
		presetName = DefaultPreset.Name
	}
	preset, ok := Presets[presetName]
	if !ok {
		return nil, fmt.Errorf("unknown palette preset: %s", cfg.Preset)
	}

	hexes := preset.Colors
	if len(cfg.Colors) > 0 {
		hexes = cfg.Colors
	}

	s := &Settings{
		Colors:         toColors(hexes),
		UnmatchedColor: lipgloss.Color(cfg.UnmatchedColor),
	}
	if s.UnmatchedColor == "" {
		s.UnmatchedColor = lipgloss.Color(config.Defaults().UnmatchedColor)
	}
	for _, p := range cfg.GetPairs() {
		s.Pairs = append(s.Pairs, Pair{Kind: p.Kind, Open: p.Open, Close: p.Close})
	}
	return s, nil
}

func toColors(hexes []string) []lipgloss.Color {
	colors := make([]lipgloss.Color, len(hexes))
	for i, h := range hexes {
		colors[i] = lipgloss.Color(h)
	}
	return colors
}

// Color returns the palette entry for index. Indices outside the palette
// resolve to the empty color, which renders as the terminal default.
func (s *Settings) Color(index int) lipgloss.Color {
	if index < 0 || index >= len(s.Colors) {
		return ""
	}
	return s.Colors[index]
}

// NextIndex cycles to the color after previous. NoIndex (-1) starts at 0.
func (s *Settings) NextIndex(previous int) int {
	if len(s.Colors) == 0 {
		return 0
	}
	return (previous + 1) % len(s.Colors)
}

// PairFor returns the pair of the given kind.
func (s *Settings) PairFor(kind string) (Pair, bool) {
	for _, p := range s.Pairs {
		if p.Kind == kind {
			return p, true
		}
	}
	return Pair{}, false
}
