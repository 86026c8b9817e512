package colorindex

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/rainbow/internal/bracket"
)

type testPalette []lipgloss.Color

func (p testPalette) Color(i int) lipgloss.Color {
	if i < 0 || i >= len(p) {
		return ""
	}
	return p[i]
}

var threeColors = testPalette{"#FFD700", "#DA70D6", "#179FFF"}

func tok(kind string, depth, line, col int, ch string) bracket.Token {
	return bracket.Token{Type: kind, Depth: depth, Line: line, BeginIndex: col, Character: ch}
}

func TestSingularIndex_EmptyState(t *testing.T) {
	idx := NewSingularIndex(threeColors)

	require.Equal(t, NoIndex, idx.PreviousIndex("round"))
	require.Equal(t, 0, idx.CurrentLength("round"))
	require.False(t, idx.IsClosingPairForCurrentStack("round", 0))

	_, found := idx.ClosingBracket(bracket.Pos(0, 0))
	require.False(t, found)
}

func TestSingularIndex_CloseOnEmptyStack(t *testing.T) {
	idx := NewSingularIndex(threeColors)

	colorIndex, ok := idx.Close(tok("round", 0, 0, 0, ")"))
	require.False(t, ok)
	require.Equal(t, NoIndex, colorIndex)
	require.Equal(t, 0, idx.CurrentLength("round"))
	require.Empty(t, idx.ClosedPairs(), "nothing is recorded for a failed close")
}

func TestSingularIndex_SetCurrentResolvesColor(t *testing.T) {
	idx := NewSingularIndex(threeColors)

	idx.SetCurrent(tok("round", 0, 0, 0, "("), 1)

	open := idx.OpenBrackets()
	require.Len(t, open, 1)
	require.Equal(t, 1, open[0].ColorIndex)
	require.Equal(t, lipgloss.Color("#DA70D6"), open[0].Color)
	require.Equal(t, 1, idx.PreviousIndex("round"))
}

func TestSingularIndex_OutOfRangeColorIndexIsNotValidated(t *testing.T) {
	idx := NewSingularIndex(threeColors)

	idx.SetCurrent(tok("round", 0, 0, 0, "("), 7)

	require.Equal(t, 7, idx.PreviousIndex("round"))
	require.Equal(t, lipgloss.Color(""), idx.OpenBrackets()[0].Color)

	colorIndex, ok := idx.Close(tok("round", 0, 0, 1, ")"))
	require.True(t, ok)
	require.Equal(t, 7, colorIndex)
}

func TestSingularIndex_IsClosingPairChecksKindAndDepth(t *testing.T) {
	idx := NewSingularIndex(threeColors)
	idx.SetCurrent(tok("round", 0, 0, 0, "("), 0)
	idx.SetCurrent(tok("square", 0, 0, 1, "["), 1)

	require.True(t, idx.IsClosingPairForCurrentStack("square", 0))
	require.False(t, idx.IsClosingPairForCurrentStack("round", 0), "only the top of the stack can close")
	require.False(t, idx.IsClosingPairForCurrentStack("square", 1), "depth must match too")
}

func TestSingularIndex_PairColorSymmetry(t *testing.T) {
	idx := NewSingularIndex(threeColors)

	// ( [ { } ] )
	idx.SetCurrent(tok("round", 0, 0, 0, "("), 0)
	idx.SetCurrent(tok("square", 0, 0, 1, "["), 1)
	idx.SetCurrent(tok("curly", 0, 0, 2, "{"), 2)

	for _, want := range []struct {
		kind  string
		color int
		col   int
		ch    string
	}{
		{"curly", 2, 3, "}"},
		{"square", 1, 4, "]"},
		{"round", 0, 5, ")"},
	} {
		require.True(t, idx.IsClosingPairForCurrentStack(want.kind, 0))
		got, ok := idx.Close(tok(want.kind, 0, 0, want.col, want.ch))
		require.True(t, ok)
		require.Equal(t, want.color, got)
	}

	require.Equal(t, 0, idx.CurrentLength("round"))
	require.Len(t, idx.ClosedPairs(), 3)
}

func TestSingularIndex_CrossTypeCycling(t *testing.T) {
	idx := NewSingularIndex(threeColors)

	idx.SetCurrent(tok("round", 0, 0, 0, "("), 0)
	idx.SetCurrent(tok("square", 0, 0, 1, "["), 1)

	require.Equal(t, 1, idx.PreviousIndex("round"))
	require.Equal(t, 1, idx.PreviousIndex("square"))
	require.Equal(t, 2, idx.CurrentLength("curly"), "length counts every kind")
}

func TestSingularIndex_PreviousIndexSurvivesPops(t *testing.T) {
	idx := NewSingularIndex(threeColors)

	idx.SetCurrent(tok("round", 0, 0, 0, "("), 0)
	idx.SetCurrent(tok("round", 1, 0, 1, "("), 1)
	_, _ = idx.Close(tok("round", 1, 0, 2, ")"))

	require.Equal(t, 1, idx.PreviousIndex("round"), "closing does not rewind the counter")
}

func TestSingularIndex_ClosingBracketRange(t *testing.T) {
	idx := NewSingularIndex(threeColors)
	idx.SetCurrent(tok("round", 0, 0, 0, "("), 0)
	_, ok := idx.Close(tok("round", 0, 0, 5, ")"))
	require.True(t, ok)

	for offset := 1; offset < 5; offset++ {
		pair, found := idx.ClosingBracket(bracket.Pos(0, offset))
		require.True(t, found, "offset %d", offset)
		require.Equal(t, 5, pair.Token.BeginIndex)
		require.Equal(t, 0, pair.OpenBracket.Token.BeginIndex)
	}

	_, found := idx.ClosingBracket(bracket.Pos(0, 0))
	require.False(t, found, "opener itself is outside the enclosed range")
	_, found = idx.ClosingBracket(bracket.Pos(0, 5))
	require.False(t, found, "closer itself is outside the enclosed range")
	_, found = idx.ClosingBracket(bracket.Pos(1, 2))
	require.False(t, found)
}

func TestSingularIndex_ClosingBracketMultiLine(t *testing.T) {
	idx := NewSingularIndex(threeColors)
	idx.SetCurrent(tok("curly", 0, 2, 10, "{"), 0)
	_, _ = idx.Close(tok("curly", 0, 4, 0, "}"))

	_, found := idx.ClosingBracket(bracket.Pos(2, 11))
	require.True(t, found)
	_, found = idx.ClosingBracket(bracket.Pos(3, 0))
	require.True(t, found)
	_, found = idx.ClosingBracket(bracket.Pos(3, 200))
	require.True(t, found)
	_, found = idx.ClosingBracket(bracket.Pos(4, 0))
	require.False(t, found)
}

func TestSingularIndex_ClosingBracketPrefersFirstRecorded(t *testing.T) {
	idx := NewSingularIndex(threeColors)

	// ( ( ) )  -> inner pair closes first, so it wins for positions inside it.
	idx.SetCurrent(tok("round", 0, 0, 0, "("), 0)
	idx.SetCurrent(tok("round", 1, 0, 2, "("), 1)
	_, _ = idx.Close(tok("round", 1, 0, 4, ")"))
	_, _ = idx.Close(tok("round", 0, 0, 6, ")"))

	pair, found := idx.ClosingBracket(bracket.Pos(0, 3))
	require.True(t, found)
	require.Equal(t, 1, pair.OpenBracket.ColorIndex)

	pair, found = idx.ClosingBracket(bracket.Pos(0, 5))
	require.True(t, found)
	require.Equal(t, 0, pair.OpenBracket.ColorIndex)
}

func TestSingularIndex_ClosedPairsShareOpenRecords(t *testing.T) {
	idx := NewSingularIndex(threeColors)
	idx.SetCurrent(tok("round", 0, 0, 0, "("), 0)
	opened := idx.OpenBrackets()[0]

	_, _ = idx.Close(tok("round", 0, 0, 1, ")"))

	pairs := idx.ClosedPairs()
	require.Len(t, pairs, 1)
	require.Same(t, opened, pairs[0].OpenBracket)
}

func TestSingularIndex_CopyCumulativeState(t *testing.T) {
	idx := NewSingularIndex(threeColors)
	idx.SetCurrent(tok("round", 0, 0, 0, "("), 0)
	idx.SetCurrent(tok("square", 0, 0, 1, "["), 1)
	_, _ = idx.Close(tok("square", 0, 0, 2, "]"))

	snapshot := idx.CopyCumulativeState()

	require.Equal(t, 1, snapshot.CurrentLength("round"))
	require.Equal(t, 1, snapshot.PreviousIndex("round"))
	require.Empty(t, snapshot.ClosedPairs(), "closed pairs are not carried over")
	require.Same(t, idx.OpenBrackets()[0], snapshot.OpenBrackets()[0], "records are shared, not cloned")
	require.Len(t, idx.ClosedPairs(), 1, "copying leaves the source untouched")
}

func TestSingularIndex_SnapshotIsolation(t *testing.T) {
	idx := NewSingularIndex(threeColors)
	idx.SetCurrent(tok("round", 0, 0, 0, "("), 0)

	snapshot := idx.CopyCumulativeState()

	idx.SetCurrent(tok("round", 1, 0, 1, "("), 1)
	require.Equal(t, 1, snapshot.CurrentLength("round"))
	require.Equal(t, 0, snapshot.PreviousIndex("round"))

	_, ok := snapshot.Close(tok("round", 0, 1, 0, ")"))
	require.True(t, ok)
	require.Equal(t, 2, idx.CurrentLength("round"))
	require.Empty(t, idx.ClosedPairs())
}

func TestSingularIndex_CumulativeContinuity(t *testing.T) {
	// "(a)b" in one pass.
	whole := NewSingularIndex(threeColors)
	whole.SetCurrent(tok("round", 0, 0, 0, "("), 0)
	require.True(t, whole.IsClosingPairForCurrentStack("round", 0))
	wantColor, ok := whole.Close(tok("round", 0, 0, 2, ")"))
	require.True(t, ok)

	// "(a" then a snapshot fed ")b" on the next line.
	first := NewSingularIndex(threeColors)
	first.SetCurrent(tok("round", 0, 0, 0, "("), 0)
	second := first.CopyCumulativeState()
	require.True(t, second.IsClosingPairForCurrentStack("round", 0))
	gotColor, ok := second.Close(tok("round", 0, 1, 0, ")"))
	require.True(t, ok)

	require.Equal(t, wantColor, gotColor)
	require.Len(t, second.ClosedPairs(), 1)
	require.Equal(t, whole.ClosedPairs()[0].OpenBracket.Token, second.ClosedPairs()[0].OpenBracket.Token)
	require.Empty(t, first.ClosedPairs())
}
