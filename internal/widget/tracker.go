package widget

import (
	"sync/atomic"

	"github.com/dshills/tablestorm/internal/document"
	"github.com/dshills/tablestorm/internal/syntax"
)

// WidgetID identifies one live widget instance. IDs are opaque,
// monotonically increasing, and never reused within a session.
type WidgetID int64

// widgetCounter generates unique widget IDs.
var widgetCounter int64

// NextWidgetID allocates a fresh widget ID.
func NextWidgetID() WidgetID {
	return WidgetID(atomic.AddInt64(&widgetCounter, 1))
}

// PositionRecord is the last known document span of one widget.
// It is valid only while 0 <= From < To <= document length.
type PositionRecord struct {
	From syntax.Offset
	To   syntax.Offset
}

// Span returns the record as a span.
func (r PositionRecord) Span() syntax.Span {
	return syntax.Span{From: r.From, To: r.To}
}

// Tracker maps widget IDs to position records and re-derives every
// record through each document change's offset mapping, no matter
// which widget triggered the change. The tracker never deletes
// records on its own; teardown belongs to the lifecycle manager.
type Tracker struct {
	records map[WidgetID]PositionRecord
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{records: make(map[WidgetID]PositionRecord)}
}

// Upsert stores the span for a widget. Called on widget creation and
// after every successful save.
func (t *Tracker) Upsert(id WidgetID, from, to syntax.Offset) {
	t.records[id] = PositionRecord{From: from, To: to}
}

// Lookup returns the record for a widget.
func (t *Tracker) Lookup(id WidgetID) (PositionRecord, bool) {
	r, ok := t.records[id]
	return r, ok
}

// Remove deletes a widget's record. Only the lifecycle manager calls
// this, when the widget's syntax node has disappeared.
func (t *Tracker) Remove(id WidgetID) {
	delete(t.records, id)
}

// Len returns the number of tracked widgets.
func (t *Tracker) Len() int {
	return len(t.records)
}

// Apply remaps all records through one document change. Offsets
// before the edit are unaffected, offsets inside a deleted range
// collapse to the deletion start, offsets after shift by the net
// length delta.
func (t *Tracker) Apply(c document.Change) {
	for id, r := range t.records {
		mapped := c.MapSpan(r.Span())
		t.records[id] = PositionRecord{From: mapped.From, To: mapped.To}
	}
}
