package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/rainbow/internal/document"
	"github.com/zjrosen/rainbow/internal/log"
)

var colorizeLineNumbers bool

var colorizeCmd = &cobra.Command{
	Use:   "colorize FILE",
	Short: "Print a file with its brackets colored",
	Long: `Print a file with every bracket pair colored by nesting depth.

Use "-" to read from stdin.

Example:
  rainbow colorize main.go
  cat query.sql | rainbow colorize -
  rainbow colorize -n --color always main.go | less -R`,
	Args: cobra.ExactArgs(1),
	RunE: runColorize,
}

func init() {
	rootCmd.AddCommand(colorizeCmd)

	colorizeCmd.Flags().BoolVarP(&colorizeLineNumbers, "line-numbers", "n", false, "prefix lines with their number")
}

func runColorize(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	r, err := newRenderer(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	text, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	doc := document.New(s, newLexer(s), text)
	defer doc.Close()
	log.Debug(log.CatCLI, "colorize", "file", args[0], "lines", doc.LineCount())

	if !colorizeLineNumbers {
		out := r.Document(doc)
		if !strings.HasSuffix(text, "\n") {
			out += "\n"
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	}

	lines := doc.Lines()
	if strings.HasSuffix(text, "\n") {
		lines = lines[:len(lines)-1]
	}
	width := len(fmt.Sprint(len(lines)))
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(r.Faint(fmt.Sprintf("%*d │ ", width, line.Index+1)))
		b.WriteString(r.Line(line))
		b.WriteByte('\n')
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), b.String())
	return err
}
