package widget

import (
	"strings"
	"testing"

	"github.com/dshills/tablestorm/internal/document"
	"github.com/dshills/tablestorm/internal/syntax"
)

// fakeHost mounts fake views and records unmounts.
type fakeHost struct {
	mounted   map[WidgetID]*fakeView
	unmounted []WidgetID
}

func newFakeHost() *fakeHost {
	return &fakeHost{mounted: make(map[WidgetID]*fakeView)}
}

func (h *fakeHost) Mount(id WidgetID, _ syntax.Span) View {
	v := newFakeView()
	h.mounted[id] = v
	return v
}

func (h *fakeHost) Unmount(id WidgetID) {
	h.unmounted = append(h.unmounted, id)
	delete(h.mounted, id)
}

func newLifecycle(t *testing.T, source string, opts ...LifecycleOption) (*Lifecycle, *document.Document, *fakeHost, *manualClock) {
	t.Helper()
	doc := document.New(source)
	host := newFakeHost()
	clock := &manualClock{}
	opts = append([]LifecycleOption{
		WithEditorOptions(WithScheduler(clock.schedule)),
	}, opts...)
	m := NewLifecycle(LifecycleConfig{
		Doc:     doc,
		Builder: syntax.NewBuilder(),
		Tracker: NewTracker(),
		Host:    host,
	}, opts...)
	m.Attach()
	return m, doc, host, clock
}

func TestLifecycleAttach(t *testing.T) {
	m, _, host, _ := newLifecycle(t, twoTableSource)

	decos := m.Decorations()
	if len(decos) != 2 {
		t.Fatalf("%d decorations, want 2", len(decos))
	}
	if decos[0].Span.From >= decos[1].Span.From {
		t.Error("decorations out of document order")
	}
	if len(host.mounted) != 2 {
		t.Errorf("%d mounted views, want 2", len(host.mounted))
	}
	for _, d := range decos {
		ed, ok := m.Editor(d.ID)
		if !ok {
			t.Fatalf("no editor for widget %d", d.ID)
		}
		if ed.State() != StateClean {
			t.Errorf("fresh widget %d is %v", d.ID, ed.State())
		}
		view := host.mounted[d.ID]
		if view.rebuilds == 0 {
			t.Errorf("widget %d never rebuilt its view", d.ID)
		}
	}
}

func TestLifecycleNoTables(t *testing.T) {
	m, _, host, _ := newLifecycle(t, "just prose\n\nno tables here\n")
	if len(m.Decorations()) != 0 {
		t.Errorf("%d decorations in plain prose", len(m.Decorations()))
	}
	if len(host.mounted) != 0 {
		t.Errorf("%d views mounted in plain prose", len(host.mounted))
	}
}

func TestLifecycleEditElsewhereKeepsWidgets(t *testing.T) {
	m, doc, host, _ := newLifecycle(t, twoTableSource)

	before := make(map[WidgetID]syntax.Span)
	for _, d := range m.Decorations() {
		before[d.ID] = d.Span
	}

	// Grow the prose between the tables by five bytes.
	idx := strings.Index(doc.Text(), "text")
	if _, err := doc.Replace(idx, idx+4, "text more"); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	if len(host.unmounted) != 0 {
		t.Errorf("edit outside the tables unmounted %v", host.unmounted)
	}
	decos := m.Decorations()
	if len(decos) != 2 {
		t.Fatalf("%d decorations after edit", len(decos))
	}
	for _, d := range decos {
		old, ok := before[d.ID]
		if !ok {
			t.Errorf("widget %d appeared from nowhere", d.ID)
			continue
		}
		if d.Span.From < old.From {
			t.Errorf("widget %d moved backwards: %s -> %s", d.ID, old, d.Span)
		}
	}
}

func TestLifecycleTableRemoved(t *testing.T) {
	m, doc, host, _ := newLifecycle(t, twoTableSource)

	decos := m.Decorations()
	victim := decos[1]
	if _, err := doc.Replace(victim.Span.From, victim.Span.To, "gone"); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	if len(host.unmounted) != 1 || host.unmounted[0] != victim.ID {
		t.Errorf("unmounted = %v, want [%d]", host.unmounted, victim.ID)
	}
	if _, ok := m.Editor(victim.ID); ok {
		t.Error("editor survived its table's removal")
	}
	if len(m.Decorations()) != 1 {
		t.Errorf("%d decorations left, want 1", len(m.Decorations()))
	}
	survivor := m.Decorations()[0]
	if survivor.ID == victim.ID {
		t.Error("survivor carries the removed widget's id")
	}
}

func TestLifecycleParseFailureFallsBack(t *testing.T) {
	// The third line has an extra cell, so the occurrence parses
	// ragged and must render as plain text.
	source := "| a | b |\n|---|---|\n| 1 | 2 | 3 |\n"
	m, _, host, _ := newLifecycle(t, source)

	if len(m.Decorations()) != 0 {
		t.Errorf("%d decorations over an unparseable table", len(m.Decorations()))
	}
	if len(host.mounted) != 0 {
		t.Errorf("%d views mounted over an unparseable table", len(host.mounted))
	}
}

func TestLifecycleSaveKeepsWidget(t *testing.T) {
	m, doc, host, _ := newLifecycle(t, twoTableSource)

	first := m.Decorations()[0]
	ed, ok := m.Editor(first.ID)
	if !ok {
		t.Fatal("no editor for first table")
	}
	view := host.mounted[first.ID]

	addr := CellAddress{Row: 1, Col: 0}
	view.edited[addr] = "one"
	ed.HandleFocus(addr)
	ed.HandleBlur(addr)
	if !ed.Dirty() {
		t.Fatal("edit left the editor clean")
	}

	if err := ed.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// The rescan triggered by the save must keep the widget alive.
	if len(host.unmounted) != 0 {
		t.Errorf("save unmounted %v", host.unmounted)
	}
	if _, ok := m.Editor(first.ID); !ok {
		t.Error("editor gone after save")
	}
	if !strings.Contains(doc.Text(), "| one | 2 |") {
		t.Errorf("save not applied: %q", doc.Text())
	}
	if ed.State() != StateClean {
		t.Errorf("state = %v after save", ed.State())
	}
}

func TestLifecycleNewTableGetsWidget(t *testing.T) {
	m, doc, host, _ := newLifecycle(t, "intro\n\n| a |\n|---|\n| 1 |\n")
	if len(m.Decorations()) != 1 {
		t.Fatalf("%d decorations, want 1", len(m.Decorations()))
	}
	existing := m.Decorations()[0].ID

	appended := "\n| x | y |\n|---|---|\n| 3 | 4 |\n"
	if _, err := doc.Replace(doc.Len(), doc.Len(), appended); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	decos := m.Decorations()
	if len(decos) != 2 {
		t.Fatalf("%d decorations after append, want 2", len(decos))
	}
	if decos[0].ID != existing {
		t.Errorf("first widget id changed: %d -> %d", existing, decos[0].ID)
	}
	if decos[1].ID == existing {
		t.Error("appended table reused the existing widget id")
	}
	if len(host.mounted) != 2 {
		t.Errorf("%d mounted views, want 2", len(host.mounted))
	}
}

func TestLifecycleClose(t *testing.T) {
	m, _, host, _ := newLifecycle(t, twoTableSource)
	m.Close()

	if len(host.mounted) != 0 {
		t.Errorf("%d views still mounted after Close", len(host.mounted))
	}
	if len(host.unmounted) != 2 {
		t.Errorf("%d unmounts, want 2", len(host.unmounted))
	}
	if len(m.Decorations()) != 0 {
		t.Errorf("%d decorations after Close", len(m.Decorations()))
	}
}

func TestLifecycleCloseDropsPendingBlur(t *testing.T) {
	fired := 0
	doc := document.New(oneTableSource)
	host := newFakeHost()
	clock := &manualClock{}
	m := NewLifecycle(LifecycleConfig{
		Doc:     doc,
		Builder: syntax.NewBuilder(),
		Tracker: NewTracker(),
		Host:    host,
		Callbacks: Callbacks{
			OnBlur: func(WidgetID) { fired++ },
		},
	}, WithEditorOptions(WithScheduler(clock.schedule)))
	m.Attach()

	d := m.Decorations()[0]
	ed, _ := m.Editor(d.ID)
	ed.HandleBlur(CellAddress{})

	m.Close()
	clock.fire()
	if fired != 0 {
		t.Errorf("pending blur fired %d times after Close", fired)
	}
}
