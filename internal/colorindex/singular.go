package colorindex

import (
	"slices"

	"github.com/zjrosen/rainbow/internal/bracket"
)

// SingularIndex keeps one stack and one color counter for every bracket kind,
// so colors cycle across "(", "[" and "{" combined rather than per kind.
type SingularIndex struct {
	palette       Palette
	openStack     []*bracket.Bracket
	closedPairs   []*bracket.ClosingBracket
	previousIndex int
}

var _ ColorIndexes = (*SingularIndex)(nil)

// NewSingularIndex returns an empty index.
func NewSingularIndex(palette Palette) *SingularIndex {
	return &SingularIndex{
		palette:       palette,
		previousIndex: NoIndex,
	}
}

func (s *SingularIndex) IsClosingPairForCurrentStack(kind string, depth int) bool {
	if len(s.openStack) == 0 {
		return false
	}
	top := s.openStack[len(s.openStack)-1]
	return top.Token.Type == kind && top.Token.Depth == depth
}

// SetCurrent does not range-check colorIndex; wrapping at the palette size is
// the caller's job.
func (s *SingularIndex) SetCurrent(tok bracket.Token, colorIndex int) {
	s.openStack = append(s.openStack, bracket.NewBracket(tok, colorIndex, s.palette.Color(colorIndex)))
	s.previousIndex = colorIndex
}

// PreviousIndex ignores kind: the counter is shared by every kind.
func (s *SingularIndex) PreviousIndex(kind string) int {
	return s.previousIndex
}

// CurrentLength ignores kind and returns the full stack size.
func (s *SingularIndex) CurrentLength(kind string) int {
	return len(s.openStack)
}

// Close returns (NoIndex, false) and changes nothing when the stack is empty.
func (s *SingularIndex) Close(tok bracket.Token) (int, bool) {
	n := len(s.openStack)
	if n == 0 {
		return NoIndex, false
	}

	open := s.openStack[n-1]
	s.openStack[n-1] = nil
	s.openStack = s.openStack[:n-1]

	s.closedPairs = append(s.closedPairs, bracket.NewClosingBracket(tok, open))
	return open.ColorIndex, true
}

// ClosingBracket scans pairs in the order they were closed. Within one pass
// that order puts inner pairs before the pairs enclosing them.
func (s *SingularIndex) ClosingBracket(pos bracket.Position) (*bracket.ClosingBracket, bool) {
	for _, pair := range s.closedPairs {
		if pair.Range().Contains(pos) {
			return pair, true
		}
	}
	return nil, false
}

// CopyCumulativeState shares the Bracket records with the source but not the
// stack itself, so pushes and pops on either side stay invisible to the other.
func (s *SingularIndex) CopyCumulativeState() ColorIndexes {
	return &SingularIndex{
		palette:       s.palette,
		openStack:     slices.Clone(s.openStack),
		previousIndex: s.previousIndex,
	}
}

func (s *SingularIndex) OpenBrackets() []*bracket.Bracket {
	return slices.Clone(s.openStack)
}

func (s *SingularIndex) ClosedPairs() []*bracket.ClosingBracket {
	return slices.Clone(s.closedPairs)
}
