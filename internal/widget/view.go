package widget

import (
	"github.com/dshills/tablestorm/internal/table"
)

// CellAddress identifies one cell in a widget's grid.
type CellAddress struct {
	Row int
	Col int
}

// View is the host-side rendering surface for one table widget: the
// mounted element tree that replaces the table's text span. The
// editor drives it; the host routes the user's focus, blur, and click
// notifications back into the editor's Handle methods.
type View interface {
	// Rebuild tears down the widget's cell elements and rebuilds them
	// from the grid. The editor holds its event guard for the whole
	// call, so teardown-driven focus and blur events are suppressed.
	Rebuild(cells [][]string, aligns []table.Alignment)

	// ShowPreview swaps the cell's element to rendered preview.
	ShowPreview(addr CellAddress, markdown string)

	// ShowSource swaps the cell's element to the raw markdown source
	// for editing.
	ShowSource(addr CellAddress, markdown string)

	// CellText returns the cell element's current edited raw text.
	CellText(addr CellAddress) string

	// Focus moves input focus to the cell's element.
	Focus(addr CellAddress)

	// SetColumnAlignment updates the visual alignment of one column's
	// existing cell elements without a rebuild.
	SetColumnAlignment(col int, a table.Alignment)
}

// Rect is an on-screen bounding box in host coordinates.
type Rect struct {
	X, Y, W, H int
}

// Center returns the box's center point.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Geometry exposes the host's screen layout for the position
// fallback: where a widget is drawn and where a document span would
// be drawn.
type Geometry interface {
	// WidgetRect returns the widget's current bounding box.
	WidgetRect(id WidgetID) (Rect, bool)

	// SpanRect returns the bounding box of a document span.
	SpanRect(from, to int) (Rect, bool)
}

// Callbacks are the lifecycle notifications a host wires to its own
// persistence layer.
type Callbacks struct {
	// OnChange fires when the widget's grid or alignments mutate.
	OnChange func(id WidgetID)

	// OnCellChange fires when one cell's content changes.
	OnCellChange func(id WidgetID, addr CellAddress)

	// OnBlur fires when focus has left the widget entirely, after the
	// coalescing window.
	OnBlur func(id WidgetID)

	// SaveIntent fires alongside OnBlur for a dirty widget; hosts
	// typically respond by calling Save.
	SaveIntent func(id WidgetID)
}
