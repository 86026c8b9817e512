// Package render paints scanned documents for the terminal.
package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/rainbow/internal/bracket"
	"github.com/zjrosen/rainbow/internal/document"
)

// Renderer turns lines into styled strings for one output.
type Renderer struct {
	r *lipgloss.Renderer
}

// New returns a renderer that detects the color support of w.
func New(w io.Writer) *Renderer {
	return &Renderer{r: lipgloss.NewRenderer(w)}
}

// NewWithProfile returns a renderer with a fixed color profile. termenv.Ascii
// disables styling entirely.
func NewWithProfile(w io.Writer, profile termenv.Profile) *Renderer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	return &Renderer{r: r}
}

func (r *Renderer) bracketStyle(color lipgloss.Color) lipgloss.Style {
	s := r.r.NewStyle()
	if color != "" {
		s = s.Foreground(color)
	}
	return s
}

// Line paints every bracket of line with its color. Stray closers carry the
// unmatched color already.
func (r *Renderer) Line(line *document.Line) string {
	return r.line(line, nil)
}

// Document paints every line of doc.
func (r *Renderer) Document(doc *document.Document) string {
	lines := doc.Lines()
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = r.Line(line)
	}
	return strings.Join(out, "\n")
}

// Scope paints the lines from the opener of pair to its closer, with the two
// delimiters bold and underlined.
func (r *Renderer) Scope(doc *document.Document, pair *bracket.ClosingBracket) string {
	emphasised := map[bracket.Token]bool{
		pair.OpenBracket.Token: true,
		pair.Token:             true,
	}

	var out []string
	for i := pair.OpenBracket.Token.Line; i <= pair.Token.Line; i++ {
		line, ok := doc.Line(i)
		if !ok {
			break
		}
		out = append(out, r.line(line, emphasised))
	}
	return strings.Join(out, "\n")
}

func (r *Renderer) line(line *document.Line, emphasised map[bracket.Token]bool) string {
	if len(line.Brackets) == 0 {
		return line.Text
	}

	var b strings.Builder
	last := 0
	for _, cb := range line.Brackets {
		if cb.Byte > last {
			b.WriteString(line.Text[last:cb.Byte])
		}
		style := r.bracketStyle(cb.Color)
		if emphasised[cb.Token] {
			style = style.Bold(true).Underline(true)
		}
		b.WriteString(style.Render(cb.Token.Character))
		last = cb.Byte + len(cb.Token.Character)
	}
	if last < len(line.Text) {
		b.WriteString(line.Text[last:])
	}
	return b.String()
}

// Swatch renders a block in each color, for palette listings.
func (r *Renderer) Swatch(colors []lipgloss.Color) string {
	var b strings.Builder
	for _, c := range colors {
		b.WriteString(r.r.NewStyle().Foreground(c).Render("██"))
	}
	return b.String()
}

// Faint renders s dimmed.
func (r *Renderer) Faint(s string) string {
	return r.r.NewStyle().Faint(true).Render(s)
}

// Caret returns a line holding "^" under grapheme column column of text.
// Wide characters take their display width and tabs are copied through, so
// the caret lines up when printed below text.
func Caret(text string, column int) string {
	var b strings.Builder
	state := -1
	rest := text
	for col := 0; col < column && len(rest) > 0; col++ {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		if cluster == "\t" {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.StringWidth(cluster)))
	}
	b.WriteByte('^')
	return b.String()
}
