package document

import (
	"errors"
	"fmt"

	"github.com/dshills/tablestorm/internal/syntax"
)

// Errors returned by document operations.
var (
	ErrRangeInvalid = errors.New("invalid range")
)

// Listener observes applied changes. Listeners run synchronously on
// the mutating call, in registration order: position holders must
// subscribe before anything that re-derives state from current
// ranges.
type Listener func(Change)

// Document is the authoritative plain text. All components read it;
// mutation happens only through Replace, the single patch-application
// entry point.
//
// Document is not safe for concurrent use. The subsystem is
// single-threaded and event-driven; the host serializes all access.
type Document struct {
	text      string
	revision  RevisionID
	listeners []Listener
}

// New creates a document with the given initial text.
func New(text string) *Document {
	return &Document{text: text}
}

// Text returns the full document text.
func (d *Document) Text() string {
	return d.text
}

// Len returns the document length in bytes.
func (d *Document) Len() int {
	return len(d.text)
}

// Revision returns the current revision.
func (d *Document) Revision() RevisionID {
	return d.revision
}

// Slice returns the text in [from, to).
func (d *Document) Slice(from, to syntax.Offset) (string, error) {
	if from < 0 || to > len(d.text) || from > to {
		return "", fmt.Errorf("slice [%d:%d) of %d bytes: %w", from, to, len(d.text), ErrRangeInvalid)
	}
	return d.text[from:to], nil
}

// Subscribe registers a change listener. Notification order is
// registration order.
func (d *Document) Subscribe(l Listener) {
	d.listeners = append(d.listeners, l)
}

// Replace substitutes the text in [from, to) with newText, bumps the
// revision, and notifies listeners synchronously before returning.
func (d *Document) Replace(from, to syntax.Offset, newText string) (Change, error) {
	if from < 0 || to > len(d.text) || from > to {
		return Change{}, fmt.Errorf("replace [%d:%d) of %d bytes: %w", from, to, len(d.text), ErrRangeInvalid)
	}

	oldText := d.text[from:to]
	d.text = d.text[:from] + newText + d.text[to:]
	d.revision++

	change := Change{
		OldRange: syntax.Span{From: from, To: to},
		NewRange: syntax.Span{From: from, To: from + len(newText)},
		OldText:  oldText,
		NewText:  newText,
		Revision: d.revision,
	}
	for _, l := range d.listeners {
		l(change)
	}
	return change, nil
}
