package document

import (
	"fmt"

	"github.com/dshills/tablestorm/internal/syntax"
)

// RevisionID uniquely identifies a document revision.
// Each applied patch creates a new revision.
type RevisionID uint64

// Change describes one applied patch: the replaced range in the old
// text, the resulting range in the new text, and both texts. It
// carries the offset-mapping function that every position holder must
// run its offsets through.
type Change struct {
	// OldRange is the replaced range in the text before the patch.
	OldRange syntax.Span

	// NewRange is the inserted range in the text after the patch.
	NewRange syntax.Span

	// OldText is the text that was removed.
	OldText string

	// NewText is the text that was inserted.
	NewText string

	// Revision is the document revision after this change.
	Revision RevisionID
}

// Delta returns the net length change in bytes.
func (c Change) Delta() int {
	return len(c.NewText) - len(c.OldText)
}

// MapOffset translates a pre-change offset to its post-change
// equivalent: offsets at or before the edit start are unaffected,
// offsets inside the replaced range collapse to its start, and offsets
// at or past its end shift by the net length delta.
func (c Change) MapOffset(off syntax.Offset) syntax.Offset {
	switch {
	case off <= c.OldRange.From:
		return off
	case off >= c.OldRange.To:
		return off + c.Delta()
	default:
		return c.OldRange.From
	}
}

// MapSpan maps both ends of a span through the change.
// The result may be empty when the span fell inside a deletion.
func (c Change) MapSpan(s syntax.Span) syntax.Span {
	return syntax.Span{From: c.MapOffset(s.From), To: c.MapOffset(s.To)}
}

// String returns a human-readable representation of the change.
func (c Change) String() string {
	removed := c.OldText
	if len(removed) > 20 {
		removed = removed[:17] + "..."
	}
	inserted := c.NewText
	if len(inserted) > 20 {
		inserted = inserted[:17] + "..."
	}
	return fmt.Sprintf("Replace %q with %q at %s (rev %d)", removed, inserted, c.OldRange, c.Revision)
}
