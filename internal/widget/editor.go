package widget

import (
	"fmt"
	"time"

	"github.com/dshills/tablestorm/internal/document"
	"github.com/dshills/tablestorm/internal/syntax"
	"github.com/dshills/tablestorm/internal/table"
)

// State is the editor's synchronization state with the document.
type State uint8

const (
	// StateClean means the grid matches the last-saved document text.
	StateClean State = iota

	// StateDirty means the grid has mutated since the last save.
	StateDirty
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateDirty:
		return "dirty"
	default:
		return "unknown"
	}
}

// DefaultBlurWindow is the default blur-coalescing window.
const DefaultBlurWindow = 150 * time.Millisecond

// EditorConfig wires one editor to its collaborators.
type EditorConfig struct {
	ID        WidgetID
	Grid      *table.Grid
	View      View
	Doc       *document.Document
	Tracker   *Tracker
	Resolvers []Resolver
	Callbacks Callbacks
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithAutoGrow controls whether advancing past the last cell appends
// a new row. Enabled by default.
func WithAutoGrow(enabled bool) EditorOption {
	return func(e *Editor) { e.autoGrow = enabled }
}

// WithBlurWindow sets the blur-coalescing window.
func WithBlurWindow(d time.Duration) EditorOption {
	return func(e *Editor) { e.blurWindow = d }
}

// WithScheduler substitutes the debounce scheduler, mainly for tests.
func WithScheduler(s ScheduleFunc) EditorOption {
	return func(e *Editor) { e.schedule = s }
}

// WithEditorLogger sets the editor's logger.
func WithEditorLogger(l Logger) EditorOption {
	return func(e *Editor) { e.log = l }
}

// Editor is the grid controller for one live table widget. It owns
// the working grid, alignments, and cursor exclusively for the
// widget's life, mediates the focus/blur protocol between view and
// grid, applies structural commands, and runs the save protocol that
// resolves the widget's true document span and writes back.
//
// Editor is single-threaded like the rest of the subsystem. The only
// deferred work is the blur debouncer; its callback must be delivered
// on the host's event loop.
type Editor struct {
	id        WidgetID
	grid      *table.Grid
	view      View
	doc       *document.Document
	tracker   *Tracker
	resolvers []Resolver
	callbacks Callbacks
	log       Logger

	cursor   CellAddress
	state    State
	autoGrow bool

	guard      Guard
	saving     bool
	blurWindow time.Duration
	schedule   ScheduleFunc
	blur       *Debouncer
}

// NewEditor creates an editor over its grid. The grid must not be
// shared; the editor owns it until teardown.
func NewEditor(cfg EditorConfig, opts ...EditorOption) *Editor {
	e := &Editor{
		id:         cfg.ID,
		grid:       cfg.Grid,
		view:       cfg.View,
		doc:        cfg.Doc,
		tracker:    cfg.Tracker,
		resolvers:  cfg.Resolvers,
		callbacks:  cfg.Callbacks,
		log:        nopLogger{},
		autoGrow:   true,
		blurWindow: DefaultBlurWindow,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.blur = NewDebouncer(e.blurWindow, e.schedule)
	return e
}

// ID returns the widget identity.
func (e *Editor) ID() WidgetID {
	return e.id
}

// State returns Clean or Dirty.
func (e *Editor) State() State {
	return e.state
}

// Dirty reports whether the grid has unsaved mutations.
func (e *Editor) Dirty() bool {
	return e.state == StateDirty
}

// Cursor returns the focused cell address.
func (e *Editor) Cursor() CellAddress {
	return e.cursor
}

// Cells returns a copy of the working grid's cell strings.
func (e *Editor) Cells() [][]string {
	return e.grid.Cells()
}

// Alignments returns a copy of the working column alignments.
func (e *Editor) Alignments() []table.Alignment {
	return e.grid.Alignments()
}

// Rows returns the grid's row count.
func (e *Editor) Rows() int {
	return e.grid.Rows()
}

// Cols returns the grid's column count.
func (e *Editor) Cols() int {
	return e.grid.Cols()
}

// Refresh rebuilds the whole view from the grid under the event
// guard, so teardown of the old elements cannot fire handlers back
// into the editor.
func (e *Editor) Refresh() {
	e.guard.Do(func() {
		e.view.Rebuild(e.grid.Cells(), e.grid.Alignments())
	})
}

// HandleFocus processes a cell gaining focus: the cell's element
// swaps from preview to raw markdown source. A focus arriving inside
// the blur window cancels the pending widget-level blur.
func (e *Editor) HandleFocus(addr CellAddress) {
	if e.guard.Held() {
		return
	}
	raw, err := e.grid.Cell(addr.Row, addr.Col)
	if err != nil {
		return
	}
	e.blur.Cancel()
	e.cursor = addr
	e.view.ShowSource(addr, raw)
}

// HandleBlur processes a cell losing focus: the element's raw text is
// written into the grid and the element reverts to preview. The
// widget-level blur is debounced; only a blur whose focus does not
// return inside this widget within the window is reported upward.
func (e *Editor) HandleBlur(addr CellAddress) {
	if e.guard.Held() {
		return
	}
	prev, err := e.grid.Cell(addr.Row, addr.Col)
	if err != nil {
		return
	}
	text := e.view.CellText(addr)
	if text != prev {
		if err := e.grid.SetCell(addr.Row, addr.Col, text); err != nil {
			return
		}
		e.markDirty()
		if e.callbacks.OnCellChange != nil {
			e.callbacks.OnCellChange(e.id, addr)
		}
	}
	e.view.ShowPreview(addr, text)

	e.blur.Trigger(func() {
		if e.callbacks.OnBlur != nil {
			e.callbacks.OnBlur(e.id)
		}
		if e.state == StateDirty && e.callbacks.SaveIntent != nil {
			e.callbacks.SaveIntent(e.id)
		}
	})
}

// FocusCell moves input focus to the given cell.
func (e *Editor) FocusCell(addr CellAddress) {
	if addr.Row < 0 || addr.Row >= e.grid.Rows() || addr.Col < 0 || addr.Col >= e.grid.Cols() {
		return
	}
	e.cursor = addr
	e.view.Focus(addr)
}

// NextCell advances the cursor one cell: next column, wrapping to the
// next row's first column. Advancing past the last cell appends a new
// row and moves into it, unless auto-growth is disabled, in which
// case the cursor stays put.
func (e *Editor) NextCell() CellAddress {
	next := e.cursor
	next.Col++
	if next.Col >= e.grid.Cols() {
		next.Col = 0
		next.Row++
	}
	if next.Row >= e.grid.Rows() {
		if !e.autoGrow {
			return e.cursor
		}
		if err := e.grid.InsertRow(e.grid.Rows()); err != nil {
			return e.cursor
		}
		e.markDirty()
		e.rebuild()
	}
	e.FocusCell(next)
	return next
}

// PrevCell moves the cursor one cell back, wrapping to the previous
// row's last column. It never grows the grid; at the first cell the
// cursor stays put.
func (e *Editor) PrevCell() CellAddress {
	prev := e.cursor
	prev.Col--
	if prev.Col < 0 {
		prev.Col = e.grid.Cols() - 1
		prev.Row--
	}
	if prev.Row < 0 {
		return e.cursor
	}
	e.FocusCell(prev)
	return prev
}

// InsertRowAbove inserts an empty row above the focused cell.
func (e *Editor) InsertRowAbove() {
	if err := e.grid.InsertRow(e.cursor.Row); err != nil {
		return
	}
	e.cursor.Row++
	e.markDirty()
	e.rebuild()
}

// InsertRowBelow inserts an empty row below the focused cell.
func (e *Editor) InsertRowBelow() {
	if err := e.grid.InsertRow(e.cursor.Row + 1); err != nil {
		return
	}
	e.markDirty()
	e.rebuild()
}

// InsertColumnLeft inserts an empty column left of the focused cell,
// copying the reference column's alignment.
func (e *Editor) InsertColumnLeft() {
	e.insertColumn(e.cursor.Col, 1)
}

// InsertColumnRight inserts an empty column right of the focused
// cell, copying the reference column's alignment.
func (e *Editor) InsertColumnRight() {
	e.insertColumn(e.cursor.Col+1, 0)
}

func (e *Editor) insertColumn(at, cursorShift int) {
	align, err := e.grid.Alignment(e.cursor.Col)
	if err != nil {
		return
	}
	if err := e.grid.InsertColumn(at, align); err != nil {
		return
	}
	e.cursor.Col += cursorShift
	e.markDirty()
	e.rebuild()
}

// DeleteRow removes the focused cell's row. Removing the last
// remaining row is a no-op.
func (e *Editor) DeleteRow() {
	if !e.grid.DeleteRow(e.cursor.Row) {
		return
	}
	if e.cursor.Row >= e.grid.Rows() {
		e.cursor.Row = e.grid.Rows() - 1
	}
	e.markDirty()
	e.rebuild()
}

// DeleteColumn removes the focused cell's column. Removing the last
// remaining column is a no-op.
func (e *Editor) DeleteColumn() {
	if !e.grid.DeleteColumn(e.cursor.Col) {
		return
	}
	if e.cursor.Col >= e.grid.Cols() {
		e.cursor.Col = e.grid.Cols() - 1
	}
	e.markDirty()
	e.rebuild()
}

// SetColumnAlignment updates one column's alignment. This is the fast
// path: it cannot change row or column counts, so the existing cell
// elements are restyled in place without a rebuild.
func (e *Editor) SetColumnAlignment(col int, a table.Alignment) error {
	if err := e.grid.SetAlignment(col, a); err != nil {
		return err
	}
	e.markDirty()
	e.view.SetColumnAlignment(col, a)
	return nil
}

// Save serializes the grid and writes it back over the widget's span
// in the document. The span comes from the resolver chain; if no
// resolver yields a unique valid span the save aborts, the widget
// stays dirty, and the document is untouched. Re-entrant calls while
// a save is pending are discarded.
func (e *Editor) Save() error {
	if e.saving {
		return ErrSaveInProgress
	}
	e.saving = true
	defer func() { e.saving = false }()

	text, err := e.grid.Render()
	if err != nil {
		return fmt.Errorf("serialize widget %d: %w", e.id, err)
	}

	span, ok := e.resolveSpan()
	if !ok {
		e.log.Warn("save aborted, position unresolved", "widget", e.id)
		return fmt.Errorf("widget %d: %w", e.id, ErrPositionUnresolved)
	}

	if _, err := e.doc.Replace(span.From, span.To, text); err != nil {
		return fmt.Errorf("patch widget %d at %s: %w", e.id, span, err)
	}
	e.tracker.Upsert(e.id, span.From, span.From+len(text))
	e.state = StateClean
	e.log.Debug("widget saved", "widget", e.id, "span", span)
	return nil
}

// resolveSpan tries each resolver in priority order and validates the
// winner against the current document bounds.
func (e *Editor) resolveSpan() (syntax.Span, bool) {
	for _, r := range e.resolvers {
		span, hit := r.Resolve()
		if !hit {
			continue
		}
		if span.From < 0 || span.From >= span.To || span.To > e.doc.Len() {
			continue
		}
		return span, true
	}
	return syntax.Span{}, false
}

// rebuild refreshes the view and restores focus to the cursor.
func (e *Editor) rebuild() {
	e.Refresh()
	e.FocusCell(e.cursor)
}

// markDirty transitions to Dirty and notifies the host.
func (e *Editor) markDirty() {
	e.state = StateDirty
	if e.callbacks.OnChange != nil {
		e.callbacks.OnChange(e.id)
	}
}

// CancelPending drops any pending debounced blur, used at teardown.
func (e *Editor) CancelPending() {
	e.blur.Cancel()
}
