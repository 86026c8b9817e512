// Package document keeps a text split into scanned lines and re-scans only
// what an edit can affect.
//
// Every line stores the color index state at its end. An update keeps the
// lines above the first changed line, re-scans from there with the previous
// line's cumulative state as the seed, and stops as soon as the remaining
// lines are unchanged and would be scanned from an equivalent seed.
package document

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/zjrosen/rainbow/internal/bracket"
	"github.com/zjrosen/rainbow/internal/lexer"
	"github.com/zjrosen/rainbow/internal/log"
	"github.com/zjrosen/rainbow/internal/pubsub"
	"github.com/zjrosen/rainbow/internal/settings"
)

// Change describes what an Update re-scanned.
type Change struct {
	DocumentID uuid.UUID
	FirstLine  int // first re-scanned line, -1 when nothing changed
	LastLine   int // last re-scanned line, -1 when nothing changed
	Reused     int // lines kept from the previous scan
	LineCount  int
}

// Rescanned returns the number of lines scanned again.
func (c Change) Rescanned() int {
	if c.FirstLine < 0 {
		return 0
	}
	return c.LastLine - c.FirstLine + 1
}

// Document is safe for concurrent use.
type Document struct {
	id       uuid.UUID
	settings *settings.Settings
	lexer    lexer.Lexer

	mu    sync.RWMutex
	text  string
	lines []*Line

	broker *pubsub.Broker[Change]
}

// New scans text in full.
func New(s *settings.Settings, lx lexer.Lexer, text string) *Document {
	d := &Document{
		id:       uuid.New(),
		settings: s,
		lexer:    lx,
		text:     text,
		broker:   pubsub.NewBroker[Change](),
	}
	d.lines = d.scan(splitLines(text), newLineState(s))

	log.Debug(log.CatDoc, "document created", "id", d.id, "lines", len(d.lines))
	return d
}

// ID returns the document's unique id.
func (d *Document) ID() uuid.UUID {
	return d.id
}

// Settings returns the settings the document was scanned with.
func (d *Document) Settings() *settings.Settings {
	return d.settings
}

// Text returns the current text.
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text
}

// Lines returns the scanned lines. The slice is a copy; the lines are shared.
func (d *Document) Lines() []*Line {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*Line, len(d.lines))
	copy(out, d.lines)
	return out
}

// Line returns line i.
func (d *Document) Line(i int) (*Line, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if i < 0 || i >= len(d.lines) {
		return nil, false
	}
	return d.lines[i], true
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.lines)
}

// Update replaces the text and re-scans the lines the edit can affect.
func (d *Document) Update(text string) Change {
	d.mu.Lock()

	oldText, old := d.text, d.lines
	newTexts := splitLines(text)
	change := Change{DocumentID: d.id, FirstLine: -1, LastLine: -1, LineCount: len(newTexts)}

	first := firstChangedLine(oldText, text)
	if first < 0 {
		d.text = text
		d.mu.Unlock()
		change.Reused = len(old)
		log.Debug(log.CatDoc, "update without changes", "id", d.id)
		return change
	}

	seed := newLineState(d.settings)
	if first > 0 {
		seed = old[first-1].state
	}

	// Lines from tail on are textually identical in both versions and sit at
	// the same index, so their scans can be reused once the seeds line up.
	tail := len(newTexts)
	if len(old) == len(newTexts) {
		tail = sharedTail(old, newTexts)
	}

	lines := make([]*Line, first, len(newTexts))
	copy(lines, old[:first])

	i := first
	for ; i < len(newTexts); i++ {
		if i >= tail && i > first && seed.Equivalent(old[i-1].state) {
			// tail < len(newTexts) implies both versions have the same length.
			lines = append(lines, old[i:]...)
			break
		}
		line := scanLine(d.settings, d.lexer, i, newTexts[i], seed)
		lines = append(lines, line)
		seed = line.state
	}

	change.FirstLine = first
	change.LastLine = i - 1
	change.Reused = len(newTexts) - change.Rescanned()

	d.text = text
	d.lines = lines
	d.mu.Unlock()

	log.Debug(log.CatDoc, "document updated",
		"id", d.id, "first", change.FirstLine, "last", change.LastLine,
		"rescanned", change.Rescanned(), "reused", change.Reused)
	d.broker.Publish(pubsub.RescannedEvent, change)
	return change
}

// ScopeAt returns the innermost pair whose enclosed range contains pos.
//
// A pair is recorded on the line of its closer, so only lines at or below
// pos.Line can hold it; the first hit walking down is the innermost pair.
func (d *Document) ScopeAt(pos bracket.Position) (*bracket.ClosingBracket, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if pos.Line < 0 {
		return nil, false
	}
	for i := pos.Line; i < len(d.lines); i++ {
		if pair, ok := d.lines[i].state.index.ClosingBracket(pos); ok {
			return pair, true
		}
	}
	return nil, false
}

// Subscribe returns change events until ctx is cancelled or the document is
// closed.
func (d *Document) Subscribe(ctx context.Context) <-chan pubsub.Event[Change] {
	return d.broker.Subscribe(ctx)
}

// Close ends all subscriptions.
func (d *Document) Close() {
	d.broker.Close()
}

func (d *Document) scan(texts []string, seed *LineState) []*Line {
	lines := make([]*Line, 0, len(texts))
	for i := range texts {
		line := scanLine(d.settings, d.lexer, i, texts[i], seed)
		lines = append(lines, line)
		seed = line.state
	}
	return lines
}

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

// firstChangedLine returns the index of the first line that differs between
// the two texts, or -1 when they are equal.
func firstChangedLine(oldText, newText string) int {
	if oldText == newText {
		return -1
	}

	dmp := diffmatchpatch.New()
	a, b, _ := dmp.DiffLinesToRunes(oldText, newText)
	diffs := dmp.DiffMainRunes(a, b, false)

	if len(diffs) > 0 && diffs[0].Type == diffmatchpatch.DiffEqual {
		// One rune per line in line mode.
		return len([]rune(diffs[0].Text))
	}
	return 0
}

// sharedTail returns the smallest index from which old and texts hold the
// same lines.
func sharedTail(old []*Line, texts []string) int {
	i := len(texts)
	for i > 0 && old[i-1].Text == texts[i-1] {
		i--
	}
	return i
}
