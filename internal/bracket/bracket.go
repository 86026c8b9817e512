package bracket

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"
)

// Token is a single bracket occurrence as the lexer saw it.
type Token struct {
	Type       string // bracket kind, e.g. "round"
	Depth      int    // nesting depth of this kind at scan time
	Line       int    // zero-based line index
	BeginIndex int    // grapheme column of the first character
	Character  string // literal delimiter text
}

// Start returns the position of the token's first character.
func (t Token) Start() Position {
	return Position{Line: t.Line, Offset: t.BeginIndex}
}

// End returns the position just past the token's last character.
func (t Token) End() Position {
	return Position{Line: t.Line, Offset: t.BeginIndex + uniseg.GraphemeClusterCount(t.Character)}
}

// Bracket is an opener pushed onto a color index stack together with the
// color it was assigned.
type Bracket struct {
	Token      Token
	ColorIndex int
	Color      lipgloss.Color
}

// NewBracket builds an open bracket record.
func NewBracket(tok Token, colorIndex int, color lipgloss.Color) *Bracket {
	return &Bracket{Token: tok, ColorIndex: colorIndex, Color: color}
}

// ClosingBracket is a resolved pair: the closing token plus the opener it
// matched.
type ClosingBracket struct {
	Token       Token
	OpenBracket *Bracket
}

// NewClosingBracket builds a closed pair record.
func NewClosingBracket(tok Token, open *Bracket) *ClosingBracket {
	return &ClosingBracket{Token: tok, OpenBracket: open}
}

// Range returns the span strictly between the two delimiters: from just past
// the opener to the start of the closer.
func (c *ClosingBracket) Range() Range {
	return Range{
		Start: c.OpenBracket.Token.End(),
		End:   c.Token.Start(),
	}
}
