package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/zjrosen/rainbow/internal/config"
	"github.com/zjrosen/rainbow/internal/settings"
)

const paletteDescriptionWidth = 60

var paletteUse string

var palettesCmd = &cobra.Command{
	Use:   "palettes",
	Short: "List the built-in palettes",
	Long: `List the built-in palettes with a swatch of their colors.

With --use, the chosen preset is written to the config file and any explicit
color list is removed so the preset applies.

Example:
  rainbow palettes
  rainbow palettes --use dracula`,
	Args: cobra.NoArgs,
	RunE: runPalettes,
}

func init() {
	rootCmd.AddCommand(palettesCmd)

	palettesCmd.Flags().StringVar(&paletteUse, "use", "", "save this preset to the config file")
}

func runPalettes(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if paletteUse != "" {
		if _, ok := settings.Presets[paletteUse]; !ok {
			return fmt.Errorf("unknown palette preset: %s (available: %s)",
				paletteUse, strings.Join(settings.PresetNames(), ", "))
		}
		path := configPath()
		if err := config.SavePalette(path, paletteUse, nil); err != nil {
			return fmt.Errorf("saving palette: %w", err)
		}
		_, err := fmt.Fprintf(out, "Using palette %s (saved to %s)\n", paletteUse, path)
		return err
	}

	r, err := newRenderer(out)
	if err != nil {
		return err
	}

	current := cfg.Preset
	if current == "" {
		current = settings.DefaultPreset.Name
	}

	var b strings.Builder
	for _, name := range settings.PresetNames() {
		preset := settings.Presets[name]

		marker := " "
		if name == current {
			marker = "*"
		}
		colors := make([]lipgloss.Color, len(preset.Colors))
		for i, c := range preset.Colors {
			colors[i] = lipgloss.Color(c)
		}

		fmt.Fprintf(&b, "%s %-18s %s\n", marker, name, r.Swatch(colors))
		b.WriteString(indent.String(wordwrap.String(preset.Description, paletteDescriptionWidth), 4))
		b.WriteString("\n\n")
	}
	_, err = fmt.Fprint(out, b.String())
	return err
}
