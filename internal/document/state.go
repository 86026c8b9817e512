package document

import (
	"github.com/zjrosen/rainbow/internal/bracket"
	"github.com/zjrosen/rainbow/internal/colorindex"
)

// LineState is the scan state at the end of a line: the color index plus the
// per-kind nesting depths the tokenizer tracks.
type LineState struct {
	index  colorindex.ColorIndexes
	depths map[string]int
}

func newLineState(palette colorindex.Palette) *LineState {
	return &LineState{
		index:  colorindex.NewSingularIndex(palette),
		depths: make(map[string]int),
	}
}

// CopyCumulativeState returns the seed for the next line. Closed pairs stay
// with the line that closed them.
func (s *LineState) CopyCumulativeState() *LineState {
	depths := make(map[string]int, len(s.depths))
	for kind, d := range s.depths {
		if d != 0 {
			depths[kind] = d
		}
	}
	return &LineState{
		index:  s.index.CopyCumulativeState(),
		depths: depths,
	}
}

// Index exposes the color index. Callers must treat it as read-only.
func (s *LineState) Index() colorindex.ColorIndexes {
	return s.index
}

// Depth returns the number of unclosed openers of kind seen by the tokenizer.
func (s *LineState) Depth(kind string) int {
	return s.depths[kind]
}

// openDepth returns the depth for an opener of kind and bumps the counter.
func (s *LineState) openDepth(kind string) int {
	d := s.depths[kind]
	s.depths[kind] = d + 1
	return d
}

// closeDepth returns the depth for a closer of kind, or -1 when nothing of
// that kind is open.
func (s *LineState) closeDepth(kind string) int {
	d := s.depths[kind]
	if d == 0 {
		return -1
	}
	d--
	s.depths[kind] = d
	return d
}

// Equivalent reports whether scanning the same text from s and other would
// produce the same brackets. Open records are compared by value.
func (s *LineState) Equivalent(other *LineState) bool {
	if s.index.PreviousIndex("") != other.index.PreviousIndex("") {
		return false
	}
	if !sameDepths(s.depths, other.depths) || !sameDepths(other.depths, s.depths) {
		return false
	}

	a, b := s.index.OpenBrackets(), other.index.OpenBrackets()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !sameOpen(a[i], b[i]) {
			return false
		}
	}
	return true
}

func sameDepths(a, b map[string]int) bool {
	for kind, d := range a {
		if b[kind] != d {
			return false
		}
	}
	return true
}

func sameOpen(a, b *bracket.Bracket) bool {
	return a.Token == b.Token && a.ColorIndex == b.ColorIndex
}
