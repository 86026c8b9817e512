// Package config provides configuration types, defaults, validation and
// persistence for rainbow.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/zjrosen/rainbow/internal/log"
)

// PairConfig defines one bracket kind by its delimiters.
type PairConfig struct {
	Kind  string `mapstructure:"kind"`  // e.g. "round"; shown in scope output
	Open  string `mapstructure:"open"`  // opening delimiter, may be several characters
	Close string `mapstructure:"close"` // closing delimiter
}

// Config holds all configuration options for rainbow.
type Config struct {
	// Preset names a built-in palette used as the base (optional).
	// Valid values: "default", "catppuccin-mocha", "catppuccin-latte",
	// "dracula", "nord", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Colors replaces the preset's palette when non-empty. Hex strings,
	// cycled in order from the outermost pair inwards.
	Colors []string `mapstructure:"colors"`

	// UnmatchedColor paints closers with no matching opener.
	UnmatchedColor string `mapstructure:"unmatched_color"`

	// Pairs lists the bracket kinds to match. Empty means DefaultPairs.
	Pairs []PairConfig `mapstructure:"pairs"`

	Cache CacheConfig `mapstructure:"cache"`
	Watch WatchConfig `mapstructure:"watch"`
}

// CacheConfig controls memoisation of lexed lines.
type CacheConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// WatchConfig controls the watch command.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// DefaultPairs returns the bracket kinds matched when none are configured.
func DefaultPairs() []PairConfig {
	return []PairConfig{
		{Kind: "round", Open: "(", Close: ")"},
		{Kind: "square", Open: "[", Close: "]"},
		{Kind: "curly", Open: "{", Close: "}"},
	}
}

// GetPairs returns the configured pairs, or DefaultPairs() if none configured.
func (c Config) GetPairs() []PairConfig {
	if len(c.Pairs) > 0 {
		return c.Pairs
	}
	return DefaultPairs()
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Preset:         "default",
		UnmatchedColor: "#FF0000",
		Pairs:          DefaultPairs(),
		Cache: CacheConfig{
			Enabled:    true,
			Expiration: 10 * time.Minute,
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
	}
}

// Validate checks the whole configuration.
// Preset names are checked by the settings package, which owns the presets.
func Validate(cfg Config) error {
	if err := ValidateColors(cfg.Colors); err != nil {
		return err
	}
	if cfg.UnmatchedColor != "" && !IsValidHexColor(cfg.UnmatchedColor) {
		return fmt.Errorf("unmatched_color: invalid hex color %q", cfg.UnmatchedColor)
	}
	if err := ValidatePairs(cfg.Pairs); err != nil {
		return err
	}
	if cfg.Cache.Expiration < 0 {
		return fmt.Errorf("cache.expiration must not be negative, got %s", cfg.Cache.Expiration)
	}
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", cfg.Watch.Debounce)
	}
	return nil
}

// ValidateColors checks every palette entry is a hex color.
// Returns nil for an empty list (the preset palette is used).
func ValidateColors(colors []string) error {
	for i, c := range colors {
		if !IsValidHexColor(c) {
			return fmt.Errorf("colors[%d]: invalid hex color %q", i, c)
		}
	}
	return nil
}

// ValidatePairs checks pair configuration for errors.
// Returns nil if pairs are valid or empty (will use defaults).
func ValidatePairs(pairs []PairConfig) error {
	seenKinds := make(map[string]bool)
	seenDelims := make(map[string]string)

	for i, p := range pairs {
		if p.Kind == "" {
			return fmt.Errorf("pair %d: kind is required", i)
		}
		if p.Open == "" || p.Close == "" {
			return fmt.Errorf("pair %d (%s): open and close are required", i, p.Kind)
		}
		if p.Open == p.Close {
			return fmt.Errorf("pair %d (%s): open and close must differ, both are %q", i, p.Kind, p.Open)
		}
		if strings.ContainsAny(p.Open+p.Close, " \t") {
			return fmt.Errorf("pair %d (%s): delimiters must not contain whitespace", i, p.Kind)
		}
		if seenKinds[p.Kind] {
			return fmt.Errorf("pair %d: duplicate kind %q", i, p.Kind)
		}
		seenKinds[p.Kind] = true

		for _, d := range []string{p.Open, p.Close} {
			if other, ok := seenDelims[d]; ok {
				return fmt.Errorf("pair %d (%s): delimiter %q already used by %q", i, p.Kind, d, other)
			}
			seenDelims[d] = p.Kind
		}
	}
	return nil
}

// IsValidHexColor reports whether s is #RGB or #RRGGBB.
func IsValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}

// DefaultConfigPath returns ~/.config/rainbow/config.yaml, or an empty string
// if the home directory is unavailable.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "rainbow", "config.yaml")
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Rainbow Configuration

# Palette preset used as the base (run 'rainbow palettes' to list them):
#   default, catppuccin-mocha, catppuccin-latte, dracula, nord, high-contrast
preset: default

# Explicit palette; replaces the preset's colors when set.
# Colors cycle outermost-first and are shared by every bracket kind.
# colors:
#   - "#FFD700"
#   - "#DA70D6"
#   - "#179FFF"

# Color for closing brackets that have no matching opener
unmatched_color: "#FF0000"

# Bracket kinds to match. Delimiters may be several characters long;
# the longest delimiter wins when two overlap.
pairs:
  - kind: round
    open: "("
    close: ")"
  - kind: square
    open: "["
    close: "]"
  - kind: curly
    open: "{"
    close: "}"

# Memoise lexed lines by their text
cache:
  enabled: true
  expiration: 10m

# 'rainbow watch' settings
watch:
  debounce: 200ms
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
