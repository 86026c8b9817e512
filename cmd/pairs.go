package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/zjrosen/rainbow/internal/config"
)

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "List the bracket pairs that are matched",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			Headers("KIND", "OPEN", "CLOSE")
		for _, p := range cfg.GetPairs() {
			t.Row(p.Kind, p.Open, p.Close)
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		return err
	},
}

var pairsAddCmd = &cobra.Command{
	Use:   "add KIND OPEN CLOSE",
	Short: "Add a bracket pair to the config file",
	Long: `Add a bracket pair to the config file. Delimiters may be several
characters long.

Example:
  rainbow pairs add angle "<" ">"
  rainbow pairs add template "{{" "}}"`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs := append(cfg.GetPairs(), config.PairConfig{Kind: args[0], Open: args[1], Close: args[2]})
		path := configPath()
		if err := config.SavePairs(path, pairs); err != nil {
			return fmt.Errorf("adding pair: %w", err)
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s%s (saved to %s)\n", args[0], args[1], args[2], path)
		return err
	},
}

func init() {
	rootCmd.AddCommand(pairsCmd)
	pairsCmd.AddCommand(pairsAddCmd)
}
