package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/rainbow/internal/bracket"
	"github.com/zjrosen/rainbow/internal/document"
	"github.com/zjrosen/rainbow/internal/log"
	"github.com/zjrosen/rainbow/internal/render"
)

var scopeCmd = &cobra.Command{
	Use:   "scope FILE LINE:COL",
	Short: "Show the innermost bracket pair around a position",
	Long: `Show the innermost bracket pair whose contents include LINE:COL.

Lines and columns start at 1. Columns count characters as displayed, so an
emoji or an accented letter is one column. The delimiters themselves are
outside the pair's contents.

Example:
  rainbow scope main.go 12:8`,
	Args: cobra.ExactArgs(2),
	RunE: runScope,
}

func init() {
	rootCmd.AddCommand(scopeCmd)
}

func runScope(cmd *cobra.Command, args []string) error {
	pos, err := parsePosition(args[1])
	if err != nil {
		return err
	}

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

	line, ok := doc.Line(pos.Line)
	if !ok {
		return fmt.Errorf("line %d is past the end of %s (%d lines)", pos.Line+1, args[0], doc.LineCount())
	}

	out := cmd.OutOrStdout()
	pair, found := doc.ScopeAt(pos)
	log.Debug(log.CatCLI, "scope", "file", args[0], "pos", pos, "found", found)

	_, _ = fmt.Fprintln(out, r.Line(line))
	_, _ = fmt.Fprintln(out, render.Caret(line.Text, pos.Offset))

	if !found {
		_, err = fmt.Fprintf(out, "no enclosing pair at %s\n", pos)
		return err
	}

	open := pair.OpenBracket
	_, _ = fmt.Fprintf(out, "%s %s%s from %s to %s\n",
		open.Token.Type, open.Token.Character, pair.Token.Character,
		open.Token.Start(), pair.Token.Start())
	_, err = fmt.Fprintln(out, r.Scope(doc, pair))
	return err
}

// parsePosition parses a 1-based "LINE:COL" argument.
func parsePosition(s string) (bracket.Position, error) {
	lineStr, colStr, ok := strings.Cut(s, ":")
	if !ok {
		return bracket.Position{}, fmt.Errorf("invalid position %q: want LINE:COL", s)
	}
	line, err := strconv.Atoi(lineStr)
	if err != nil || line < 1 {
		return bracket.Position{}, fmt.Errorf("invalid line in %q: want a number starting at 1", s)
	}
	col, err := strconv.Atoi(colStr)
	if err != nil || col < 1 {
		return bracket.Position{}, fmt.Errorf("invalid column in %q: want a number starting at 1", s)
	}
	return bracket.Pos(line-1, col-1), nil
}
