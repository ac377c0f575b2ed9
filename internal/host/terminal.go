package host

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/dshills/tablestorm/internal/document"
	"github.com/dshills/tablestorm/internal/syntax"
	"github.com/dshills/tablestorm/internal/table"
	"github.com/dshills/tablestorm/internal/widget"
)

// Terminal is the widget host for a tcell screen: it mounts table
// widgets over their document spans, provides the screen geometry the
// save fallback compares against, and routes key events into the
// focused editor.
type Terminal struct {
	screen    tcell.Screen
	doc       *document.Document
	styles    *StyleSet
	log       *Logger
	lifecycle *widget.Lifecycle

	views   map[widget.WidgetID]*termView
	focused widget.WidgetID
}

// NewTerminal creates the host over an initialized screen.
func NewTerminal(screen tcell.Screen, doc *document.Document, log *Logger) *Terminal {
	return &Terminal{
		screen: screen,
		doc:    doc,
		styles: RegisterStyles(nil),
		log:    log.WithComponent("terminal"),
		views:  make(map[widget.WidgetID]*termView),
	}
}

// SetLifecycle wires the lifecycle manager after construction; the
// host needs it for editor lookup and decoration spans, while the
// lifecycle needs the host to mount views.
func (t *Terminal) SetLifecycle(l *widget.Lifecycle) {
	t.lifecycle = l
}

// Mount implements widget.Host.
func (t *Terminal) Mount(id widget.WidgetID, span syntax.Span) widget.View {
	v := &termView{
		id:       id,
		instance: uuid.New().String(),
		term:     t,
	}
	t.views[id] = v
	t.log.Debug("widget mounted", "widget", id, "instance", v.instance, "span", span)
	return v
}

// Unmount implements widget.Host.
func (t *Terminal) Unmount(id widget.WidgetID) {
	if v, ok := t.views[id]; ok {
		t.log.Debug("widget unmounted", "widget", id, "instance", v.instance)
		delete(t.views, id)
	}
	if t.focused == id {
		t.focused = 0
	}
}

// WidgetRect implements widget.Geometry using the widget's tracked
// span projected onto screen lines.
func (t *Terminal) WidgetRect(id widget.WidgetID) (widget.Rect, bool) {
	if t.lifecycle == nil {
		return widget.Rect{}, false
	}
	for _, d := range t.lifecycle.Decorations() {
		if d.ID == id {
			return t.SpanRect(d.Span.From, d.Span.To)
		}
	}
	return widget.Rect{}, false
}

// SpanRect implements widget.Geometry: the box a document span
// occupies on screen, in line/column units.
func (t *Terminal) SpanRect(from, to int) (widget.Rect, bool) {
	text := t.doc.Text()
	if from < 0 || to > len(text) || from >= to {
		return widget.Rect{}, false
	}
	startLine := strings.Count(text[:from], "\n")
	lines := strings.Count(text[from:to], "\n") + 1
	width := 0
	for _, line := range strings.Split(text[from:to], "\n") {
		if w := runewidth.StringWidth(line); w > width {
			width = w
		}
	}
	return widget.Rect{X: 0, Y: startLine, W: width, H: lines}, true
}

// FocusWidget gives a widget input focus, focusing its first cell.
func (t *Terminal) FocusWidget(id widget.WidgetID) {
	ed, ok := t.editor(id)
	if !ok {
		return
	}
	t.focused = id
	ed.FocusCell(widget.CellAddress{})
}

// FocusedEditor returns the editor owning input focus.
func (t *Terminal) FocusedEditor() (*widget.Editor, bool) {
	return t.editor(t.focused)
}

// HandleKey routes a key event into the focused widget's editor.
// It returns false when the event was not consumed.
func (t *Terminal) HandleKey(ev *tcell.EventKey) bool {
	ed, ok := t.editor(t.focused)
	if !ok {
		return false
	}
	v := t.views[t.focused]
	if v == nil {
		return false
	}

	switch ev.Key() {
	case tcell.KeyTab:
		t.blurEditing(ed, v)
		ed.NextCell()
	case tcell.KeyBacktab:
		t.blurEditing(ed, v)
		ed.PrevCell()
	case tcell.KeyEnter, tcell.KeyEscape:
		t.blurEditing(ed, v)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if v.editing {
			if n := len(v.editBuf); n > 0 {
				v.editBuf = v.editBuf[:n-1]
			}
		}
	case tcell.KeyRune:
		if !v.editing {
			ed.HandleFocus(ed.Cursor())
		}
		v.editBuf += string(ev.Rune())
	default:
		return false
	}
	return true
}

// blurEditing commits the in-progress cell edit back through the
// editor's blur handler.
func (t *Terminal) blurEditing(ed *widget.Editor, v *termView) {
	if !v.editing {
		return
	}
	addr := v.editCell
	ed.HandleBlur(addr)
}

// Draw renders the document with widget decorations replacing their
// table spans.
func (t *Terminal) Draw() {
	t.screen.Clear()
	text := t.doc.Text()

	type region struct {
		span syntax.Span
		id   widget.WidgetID
	}
	var regions []region
	if t.lifecycle != nil {
		for _, d := range t.lifecycle.Decorations() {
			regions = append(regions, region{span: d.Span, id: d.ID})
		}
	}

	y := 0
	pos := 0
	for pos <= len(text) {
		replaced := false
		for _, r := range regions {
			if r.span.From == pos {
				y = t.drawWidget(r.id, y)
				pos = r.span.To
				if pos < len(text) && text[pos] == '\n' {
					pos++
				}
				replaced = true
				break
			}
		}
		if replaced {
			continue
		}
		end := strings.IndexByte(text[pos:], '\n')
		var line string
		if end < 0 {
			line = text[pos:]
			pos = len(text) + 1
		} else {
			line = text[pos : pos+end]
			pos += end + 1
		}
		t.drawText(0, y, line, t.styles.Text)
		y++
	}
	t.screen.Show()
}

// drawWidget renders one table widget's grid box starting at screen
// line y and returns the next free line.
func (t *Terminal) drawWidget(id widget.WidgetID, y int) int {
	v, ok := t.views[id]
	if !ok || len(v.cells) == 0 {
		return y
	}
	ed, _ := t.editor(id)

	widths := table.ComputeWidths(v.cells)
	for row, cells := range v.cells {
		x := 0
		t.drawText(x, y, "|", t.styles.Border)
		x++
		for col, cell := range cells {
			addr := widget.CellAddress{Row: row, Col: col}
			style := t.cellStyle(v, ed, addr, row)
			content := cell
			if v.editing && v.editCell == addr {
				content = v.editBuf
			}
			padded := " " + runewidth.FillRight(runewidth.Truncate(content, widths[col], "…"), widths[col]) + " "
			t.drawText(x, y, padded, style)
			x += runewidth.StringWidth(padded)
			t.drawText(x, y, "|", t.styles.Border)
			x++
		}
		if ed != nil && ed.Dirty() && row == 0 {
			t.drawText(x+1, y, "*", t.styles.DirtyMark)
		}
		y++
		if row == 0 {
			t.drawDelimiter(y, widths, v.aligns)
			y++
		}
	}
	return y
}

// drawDelimiter draws the alignment delimiter line under the header.
func (t *Terminal) drawDelimiter(y int, widths []int, aligns []table.Alignment) {
	var b strings.Builder
	b.WriteByte('|')
	for i, w := range widths {
		a := table.AlignLeft
		if i < len(aligns) {
			a = aligns[i]
		}
		b.WriteString(table.DelimiterRun(w+2, a))
		b.WriteByte('|')
	}
	t.drawText(0, y, b.String(), t.styles.Border)
}

func (t *Terminal) cellStyle(v *termView, ed *widget.Editor, addr widget.CellAddress, row int) tcell.Style {
	if v.editing && v.editCell == addr {
		return t.styles.Editing
	}
	if ed != nil && t.focused == v.id && ed.Cursor() == addr {
		return t.styles.Focused
	}
	if row == 0 {
		return t.styles.HeaderRow
	}
	return t.styles.Cell
}

func (t *Terminal) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func (t *Terminal) editor(id widget.WidgetID) (*widget.Editor, bool) {
	if t.lifecycle == nil || id == 0 {
		return nil, false
	}
	return t.lifecycle.Editor(id)
}

// termView is the mounted element tree for one widget: the cell
// contents last rebuilt from the grid plus the transient editing
// state of the focused cell.
type termView struct {
	id       widget.WidgetID
	instance string
	term     *Terminal

	cells  [][]string
	aligns []table.Alignment

	editing  bool
	editCell widget.CellAddress
	editBuf  string
}

// Rebuild implements widget.View.
func (v *termView) Rebuild(cells [][]string, aligns []table.Alignment) {
	v.cells = cells
	v.aligns = aligns
	v.editing = false
	v.editBuf = ""
}

// ShowPreview implements widget.View: the cell element reverts to
// rendered preview with the given markdown content.
func (v *termView) ShowPreview(addr widget.CellAddress, markdown string) {
	if v.editing && v.editCell == addr {
		v.editing = false
		v.editBuf = ""
	}
	v.set(addr, markdown)
}

// ShowSource implements widget.View: the cell element swaps to raw
// markdown source for editing.
func (v *termView) ShowSource(addr widget.CellAddress, markdown string) {
	v.editing = true
	v.editCell = addr
	v.editBuf = markdown
}

// CellText implements widget.View.
func (v *termView) CellText(addr widget.CellAddress) string {
	if v.editing && v.editCell == addr {
		return v.editBuf
	}
	if addr.Row < len(v.cells) && addr.Col < len(v.cells[addr.Row]) {
		return v.cells[addr.Row][addr.Col]
	}
	return ""
}

// Focus implements widget.View: input focus lands on the cell, which
// swaps it to source editing through the editor's focus handler.
func (v *termView) Focus(addr widget.CellAddress) {
	v.term.focused = v.id
	if ed, ok := v.term.editor(v.id); ok {
		ed.HandleFocus(addr)
	}
}

// SetColumnAlignment implements widget.View: restyles one column in
// place without a rebuild.
func (v *termView) SetColumnAlignment(col int, a table.Alignment) {
	if col >= 0 && col < len(v.aligns) {
		v.aligns[col] = a
	}
}

func (v *termView) set(addr widget.CellAddress, content string) {
	if addr.Row < len(v.cells) && addr.Col < len(v.cells[addr.Row]) {
		v.cells[addr.Row][addr.Col] = content
	}
}
