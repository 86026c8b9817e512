// Package lexer finds bracket delimiters in a line of text.
//
// Columns are grapheme clusters, matching how an editor counts cursor
// positions; byte offsets are reported alongside for renderers that slice the
// original string. A delimiter that starts inside a cluster (after a prepended
// mark such as U+0600) is found too and takes that cluster's column.
package lexer

import (
	"sort"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/zjrosen/rainbow/internal/settings"
)

// Occurrence is one delimiter found in a line.
type Occurrence struct {
	Kind      string
	Open      bool
	Character string
	Column    int // grapheme index of the first character
	Byte      int // byte offset of the first character
}

// Lexer turns a line into bracket occurrences.
type Lexer interface {
	Lex(line string) []Occurrence
}

type delimiter struct {
	text string
	kind string
	open bool
}

// PairLexer matches the delimiters of a fixed set of pairs.
type PairLexer struct {
	delims []delimiter // longest first
}

var _ Lexer = (*PairLexer)(nil)

// New builds a lexer for pairs. When delimiters overlap ("{" and "{{") the
// longest one wins. Empty delimiters are ignored.
func New(pairs []settings.Pair) *PairLexer {
	l := &PairLexer{}
	for _, p := range pairs {
		if p.Open != "" {
			l.delims = append(l.delims, delimiter{text: p.Open, kind: p.Kind, open: true})
		}
		if p.Close != "" {
			l.delims = append(l.delims, delimiter{text: p.Close, kind: p.Kind, open: false})
		}
	}
	sort.SliceStable(l.delims, func(i, j int) bool {
		return len(l.delims[i].text) > len(l.delims[j].text)
	})
	return l
}

// Lex returns the occurrences in line, left to right.
func (l *PairLexer) Lex(line string) []Occurrence {
	var out []Occurrence

	col, offset := 0, 0
	state := -1
	rest := line
	for len(rest) > 0 {
		cluster, next, _, nextState := uniseg.StepString(rest, state)

		d, at, ok := l.matchIn(rest, len(cluster))
		if !ok {
			rest, state = next, nextState
			offset += len(cluster)
			col++
			continue
		}

		out = append(out, Occurrence{
			Kind:      d.kind,
			Open:      d.open,
			Character: d.text,
			Column:    col,
			Byte:      offset + at,
		})
		// Consume whole graphemes covering the delimiter, at least one.
		end := offset + at + len(d.text)
		for offset < end && len(rest) > 0 {
			cluster, rest, _, state = uniseg.StepString(rest, state)
			offset += len(cluster)
			col++
		}
	}
	return out
}

// matchIn tries every rune start within the first n bytes of s.
func (l *PairLexer) matchIn(s string, n int) (delimiter, int, bool) {
	for at := range s[:n] {
		if d, ok := l.match(s[at:]); ok {
			return d, at, true
		}
	}
	return delimiter{}, 0, false
}

func (l *PairLexer) match(s string) (delimiter, bool) {
	for _, d := range l.delims {
		if strings.HasPrefix(s, d.text) {
			return d, true
		}
	}
	return delimiter{}, false
}
