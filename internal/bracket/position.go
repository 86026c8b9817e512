// Package bracket defines the value types shared by the colorizer: document
// positions and ranges, bracket tokens, and the open/closed pair records the
// color index produces.
package bracket

import "fmt"

// Position is a zero-based line and grapheme column within a document.
type Position struct {
	Line   int
	Offset int
}

// Pos is shorthand for building a Position.
func Pos(line, offset int) Position {
	return Position{Line: line, Offset: offset}
}

// Before reports whether p sorts strictly before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Offset < other.Offset
}

// String returns the 1-based "line:col" form used in CLI output.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Offset+1)
}

// Range is a half-open span [Start, End).
type Range struct {
	Start Position
	End   Position
}

// Contains reports whether p lies in the range. Start is inclusive, End is
// exclusive, so an empty range contains nothing.
func (r Range) Contains(p Position) bool {
	return !p.Before(r.Start) && p.Before(r.End)
}

// IsEmpty reports whether the range covers no positions.
func (r Range) IsEmpty() bool {
	return !r.Start.Before(r.End)
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}
