package document

import (
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/rainbow/internal/bracket"
	"github.com/zjrosen/rainbow/internal/colorindex"
	"github.com/zjrosen/rainbow/internal/lexer"
	"github.com/zjrosen/rainbow/internal/pubsub"
	"github.com/zjrosen/rainbow/internal/settings"
)

func newTestDocument(t *testing.T, text string) *Document {
	t.Helper()
	s := settings.Default()
	d := New(s, lexer.New(s.Pairs), text)
	t.Cleanup(d.Close)
	return d
}

// colorsOf returns the color index of every bracket on every line, in order.
func colorsOf(d *Document) [][]int {
	var out [][]int
	for _, line := range d.Lines() {
		var row []int
		for _, b := range line.Brackets {
			row = append(row, b.ColorIndex)
		}
		out = append(out, row)
	}
	return out
}

func TestNew_NestedPairsShareColors(t *testing.T) {
	d := newTestDocument(t, "(a[b]c)")

	line, ok := d.Line(0)
	require.True(t, ok)
	require.Len(t, line.Brackets, 4)
	require.Equal(t, [][]int{{0, 1, 1, 0}}, colorsOf(d))

	for _, b := range line.Brackets {
		require.True(t, b.Matched)
	}
	require.Equal(t, lipgloss.Color("#FFD700"), line.Brackets[0].Color)
	require.Equal(t, lipgloss.Color("#DA70D6"), line.Brackets[1].Color)
}

func TestNew_PairSpanningLines(t *testing.T) {
	d := newTestDocument(t, "{\n  (x)\n}")

	require.Equal(t, [][]int{{0}, {1, 1}, {0}}, colorsOf(d))
	require.Equal(t, 1, d.Lines()[0].State().Depth("curly"))
	require.Equal(t, 0, d.Lines()[2].State().Depth("curly"))
	require.Len(t, d.Lines()[2].ClosedPairs(), 1)
	require.Equal(t, 0, d.Lines()[2].ClosedPairs()[0].OpenBracket.Token.Line)
}

func TestNew_ColorsKeepCyclingAfterPairsClose(t *testing.T) {
	d := newTestDocument(t, "()()()()")

	require.Equal(t, [][]int{{0, 0, 1, 1, 2, 2, 0, 0}}, colorsOf(d))
}

func TestNew_StrayCloser(t *testing.T) {
	d := newTestDocument(t, "a)b")

	b := d.Lines()[0].Brackets[0]
	require.False(t, b.Matched)
	require.Equal(t, colorindex.NoIndex, b.ColorIndex)
	require.Equal(t, d.Settings().UnmatchedColor, b.Color)
	require.Equal(t, -1, b.Token.Depth)
}

func TestNew_MismatchedKindIsStray(t *testing.T) {
	d := newTestDocument(t, "(]")

	brackets := d.Lines()[0].Brackets
	require.True(t, brackets[0].Matched)
	require.False(t, brackets[1].Matched)
	require.Equal(t, 1, d.Lines()[0].State().Index().CurrentLength("round"), "the opener stays open")
}

func TestNew_TokenDepthsPerKind(t *testing.T) {
	d := newTestDocument(t, "(([x]))")

	var depths []int
	for _, b := range d.Lines()[0].Brackets {
		depths = append(depths, b.Token.Depth)
	}
	require.Equal(t, []int{0, 1, 0, 0, 1, 0}, depths)
}

func TestNew_ByteOffsetsFollowText(t *testing.T) {
	d := newTestDocument(t, "é(x)")

	brackets := d.Lines()[0].Brackets
	require.Equal(t, 1, brackets[0].Token.BeginIndex)
	require.Equal(t, 2, brackets[0].Byte)
}

func TestDocument_ID(t *testing.T) {
	a := newTestDocument(t, "")
	b := newTestDocument(t, "")

	require.NotEqual(t, uuid.Nil, a.ID())
	require.NotEqual(t, a.ID(), b.ID())
}

func TestScopeAt(t *testing.T) {
	d := newTestDocument(t, "fn(a, {\n  b\n})")

	tests := []struct {
		name     string
		pos      bracket.Position
		wantKind string
		found    bool
	}{
		{name: "inside both picks innermost", pos: bracket.Pos(1, 2), wantKind: "curly", found: true},
		{name: "before curly opener", pos: bracket.Pos(0, 4), wantKind: "round", found: true},
		{name: "on curly closer", pos: bracket.Pos(2, 0), wantKind: "round", found: true},
		{name: "on round opener", pos: bracket.Pos(0, 2), found: false},
		{name: "outside everything", pos: bracket.Pos(0, 0), found: false},
		{name: "past the end", pos: bracket.Pos(9, 0), found: false},
		{name: "negative line", pos: bracket.Pos(-1, 0), found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, ok := d.ScopeAt(tt.pos)
			require.Equal(t, tt.found, ok)
			if tt.found {
				require.Equal(t, tt.wantKind, pair.Token.Type)
				require.Equal(t, tt.wantKind, pair.OpenBracket.Token.Type)
			}
		})
	}
}

func TestUpdate_NoChanges(t *testing.T) {
	d := newTestDocument(t, "a(\nb)")

	change := d.Update("a(\nb)")

	require.Equal(t, -1, change.FirstLine)
	require.Equal(t, 0, change.Rescanned())
	require.Equal(t, 2, change.Reused)
}

func TestUpdate_StopsWhenStateConverges(t *testing.T) {
	d := newTestDocument(t, "a(\nb\nc\nd\n)")
	before := d.Lines()

	change := d.Update("a(\nb\ncc\nd\n)")

	require.Equal(t, 2, change.FirstLine)
	require.Equal(t, 2, change.LastLine)
	require.Equal(t, 1, change.Rescanned())
	require.Equal(t, 4, change.Reused)

	after := d.Lines()
	require.Same(t, before[0], after[0])
	require.Same(t, before[4], after[4])
	require.NotSame(t, before[2], after[2])
	require.Equal(t, "cc", after[2].Text)
	require.Equal(t, "a(\nb\ncc\nd\n)", d.Text())
}

func TestUpdate_RescansUntilEndWhenNestingChanges(t *testing.T) {
	d := newTestDocument(t, "a(\nb\nc\nd\n)")

	change := d.Update("a(\nb(\nc\nd\n)")

	require.Equal(t, 1, change.FirstLine)
	require.Equal(t, 4, change.LastLine)
	require.Equal(t, [][]int{{0}, {1}, nil, nil, {1}}, colorsOf(d))
}

func TestUpdate_InsertedLineShiftsRest(t *testing.T) {
	d := newTestDocument(t, "(\n)\n[\n]")

	change := d.Update("(\nx\n)\n[\n]")

	require.Equal(t, 1, change.FirstLine)
	require.Equal(t, 4, change.LastLine)
	require.Equal(t, 5, change.LineCount)

	for i, line := range d.Lines() {
		require.Equal(t, i, line.Index)
		for _, b := range line.Brackets {
			require.Equal(t, i, b.Token.Line)
		}
	}
}

func TestUpdate_DeletedLines(t *testing.T) {
	d := newTestDocument(t, "(\na\nb\n)")

	change := d.Update("(\n)")

	require.Equal(t, 1, change.FirstLine)
	require.Equal(t, 2, d.LineCount())
	require.Equal(t, [][]int{{0}, {0}}, colorsOf(d))
}

func TestUpdate_PublishesChange(t *testing.T) {
	d := newTestDocument(t, "(\n)")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := d.Subscribe(ctx)

	d.Update("(\n)") // unchanged, nothing published
	change := d.Update("[\n)")

	select {
	case ev := <-events:
		require.Equal(t, pubsub.RescannedEvent, ev.Type)
		require.Equal(t, change, ev.Payload)
		require.Equal(t, d.ID(), ev.Payload.DocumentID)
	case <-time.After(time.Second):
		t.Fatal("expected a change event")
	}

	select {
	case ev := <-events:
		t.Fatalf("unexpected extra event %+v", ev)
	default:
	}
}

func TestFirstChangedLine(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		want     int
	}{
		{name: "equal", old: "a\nb", new: "a\nb", want: -1},
		{name: "first line", old: "a\nb", new: "x\nb", want: 0},
		{name: "last line", old: "a\nb\nc", new: "a\nb\nd", want: 2},
		{name: "appended line", old: "a\nb\n", new: "a\nb\nc", want: 2},
		{name: "appended newline", old: "a\nb", new: "a\nb\n", want: 1},
		{name: "from empty", old: "", new: "a", want: 0},
		{name: "non ascii", old: "é\n👍🏽\nx", new: "é\n👍🏽\ny", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, firstChangedLine(tt.old, tt.new))
		})
	}
}
