// Package colorindex assigns colors to bracket pairs while a document is
// scanned line by line.
//
// A ColorIndexes value holds the brackets that are still open, the color
// index of the last opener and the pairs closed during the current scan pass.
// The first two survive from one line to the next through
// CopyCumulativeState; closed pairs are per-pass output and are never carried
// over.
//
// The caller drives the index. For an opener it computes the next color from
// PreviousIndex and calls SetCurrent. For a closer it must first check
// IsClosingPairForCurrentStack and only call Close when that returns true;
// anything else is a stray closer and the index is left untouched.
//
// Instances are not safe for concurrent mutation. Once a pass is finished
// the closed pairs may be read from any number of goroutines.
package colorindex

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/rainbow/internal/bracket"
)

// NoIndex is returned by PreviousIndex before anything was pushed, and by
// Close when there was nothing to pop.
const NoIndex = -1

// Palette resolves a color index to a color. Implementations must not panic
// on indices outside the palette.
type Palette interface {
	Color(index int) lipgloss.Color
}

// ColorIndexes is the capability set of a color assignment strategy.
// The kind arguments exist so strategies that keep per-kind state can share
// the interface.
type ColorIndexes interface {
	// IsClosingPairForCurrentStack reports whether a closer of the given kind
	// and depth matches the innermost open bracket.
	IsClosingPairForCurrentStack(kind string, depth int) bool
	// SetCurrent opens a bracket with the given color index.
	SetCurrent(tok bracket.Token, colorIndex int)
	// PreviousIndex returns the color index of the last opened bracket.
	PreviousIndex(kind string) int
	// CurrentLength returns the number of open brackets.
	CurrentLength(kind string) int
	// Close pops the innermost open bracket, records the pair and returns
	// the opener's color index.
	Close(tok bracket.Token) (int, bool)
	// ClosingBracket returns the first recorded pair whose enclosed range
	// contains pos.
	ClosingBracket(pos bracket.Position) (*bracket.ClosingBracket, bool)
	// CopyCumulativeState returns a fresh index seeded with the open
	// brackets and previous color index, and no closed pairs.
	CopyCumulativeState() ColorIndexes
	// OpenBrackets returns the open brackets, outermost first.
	OpenBrackets() []*bracket.Bracket
	// ClosedPairs returns the pairs closed during this pass in close order.
	ClosedPairs() []*bracket.ClosingBracket
}
