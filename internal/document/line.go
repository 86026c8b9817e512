package document

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/rainbow/internal/bracket"
	"github.com/zjrosen/rainbow/internal/colorindex"
	"github.com/zjrosen/rainbow/internal/lexer"
	"github.com/zjrosen/rainbow/internal/log"
	"github.com/zjrosen/rainbow/internal/settings"
)

// ColoredBracket is a delimiter on a line with the color it was given.
type ColoredBracket struct {
	Token      bracket.Token
	Open       bool
	Matched    bool // false only for stray closers
	ColorIndex int  // colorindex.NoIndex for stray closers
	Color      lipgloss.Color
	Byte       int // byte offset of the delimiter in the line text
}

// Line is one scanned line. Lines are immutable once built.
type Line struct {
	Index    int
	Text     string
	Brackets []ColoredBracket

	state *LineState
}

// State returns the cumulative state at the end of the line.
func (l *Line) State() *LineState {
	return l.state
}

// ClosedPairs returns the pairs whose closer is on this line, innermost first.
func (l *Line) ClosedPairs() []*bracket.ClosingBracket {
	return l.state.index.ClosedPairs()
}

// scanLine colors the delimiters of text, continuing from seed. seed is not
// modified.
func scanLine(s *settings.Settings, lx lexer.Lexer, index int, text string, seed *LineState) *Line {
	state := seed.CopyCumulativeState()
	line := &Line{Index: index, Text: text, state: state}

	for _, occ := range lx.Lex(text) {
		if occ.Open {
			tok := bracket.Token{
				Type:       occ.Kind,
				Depth:      state.openDepth(occ.Kind),
				Line:       index,
				BeginIndex: occ.Column,
				Character:  occ.Character,
			}
			colorIndex := s.NextIndex(state.index.PreviousIndex(occ.Kind))
			state.index.SetCurrent(tok, colorIndex)
			line.Brackets = append(line.Brackets, ColoredBracket{
				Token:      tok,
				Open:       true,
				Matched:    true,
				ColorIndex: colorIndex,
				Color:      s.Color(colorIndex),
				Byte:       occ.Byte,
			})
			continue
		}

		tok := bracket.Token{
			Type:       occ.Kind,
			Depth:      state.closeDepth(occ.Kind),
			Line:       index,
			BeginIndex: occ.Column,
			Character:  occ.Character,
		}
		cb := ColoredBracket{
			Token:      tok,
			ColorIndex: colorindex.NoIndex,
			Color:      s.UnmatchedColor,
			Byte:       occ.Byte,
		}
		if state.index.IsClosingPairForCurrentStack(tok.Type, tok.Depth) {
			if colorIndex, ok := state.index.Close(tok); ok {
				cb.Matched = true
				cb.ColorIndex = colorIndex
				cb.Color = s.Color(colorIndex)
			}
		} else {
			log.Debug(log.CatScan, "stray closer", "line", index, "col", occ.Column, "kind", occ.Kind, "depth", tok.Depth)
		}
		line.Brackets = append(line.Brackets, cb)
	}
	return line
}
