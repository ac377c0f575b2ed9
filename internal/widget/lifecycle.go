package widget

import (
	"sort"

	"github.com/dshills/tablestorm/internal/document"
	"github.com/dshills/tablestorm/internal/syntax"
	"github.com/dshills/tablestorm/internal/table"
)

// Host is the decoration/widget collaborator: it accepts
// non-overlapping replace regions and mounts or unmounts the element
// trees behind them.
type Host interface {
	// Mount creates the view replacing the text span for a new widget.
	Mount(id WidgetID, span syntax.Span) View

	// Unmount destroys a widget's view.
	Unmount(id WidgetID)
}

// Decoration is one replace region emitted by a scan: the exact span
// of a Table node and the widget mounted over it.
type Decoration struct {
	Span syntax.Span
	ID   WidgetID
}

// LifecycleConfig wires the lifecycle manager to its collaborators.
type LifecycleConfig struct {
	Doc       *document.Document
	Builder   *syntax.Builder
	Tracker   *Tracker
	Host      Host
	Geometry  Geometry
	Callbacks Callbacks
}

// LifecycleOption configures a Lifecycle.
type LifecycleOption func(*Lifecycle)

// WithLifecycleLogger sets the lifecycle logger.
func WithLifecycleLogger(l Logger) LifecycleOption {
	return func(m *Lifecycle) { m.log = l }
}

// WithEditorOptions forwards options to every editor the lifecycle
// creates.
func WithEditorOptions(opts ...EditorOption) LifecycleOption {
	return func(m *Lifecycle) { m.editorOpts = opts }
}

// WithGeometryTolerance sets the maximum on-screen distance the
// geometry fallback accepts when matching a widget to a candidate
// table.
func WithGeometryTolerance(dist int) LifecycleOption {
	return func(m *Lifecycle) { m.tolerance = dist }
}

// DefaultGeometryTolerance is the default matching distance for the
// geometry fallback, in host coordinate units.
const DefaultGeometryTolerance = 5

// Lifecycle discovers table syntax nodes per document state and
// creates, keeps, or destroys the widgets over them. Decorations are
// recomputed wholesale on every document change rather than patched
// incrementally; tables are rare relative to document size and the
// wholesale scan keeps staleness bugs structurally impossible.
type Lifecycle struct {
	doc        *document.Document
	builder    *syntax.Builder
	tracker    *Tracker
	host       Host
	geometry   Geometry
	callbacks  Callbacks
	log        Logger
	editorOpts []EditorOption
	tolerance  int

	tree        *syntax.Tree
	editors     map[WidgetID]*Editor
	decorations []Decoration
}

// NewLifecycle creates a lifecycle manager. Call Attach to subscribe
// it to the document and run the first scan.
func NewLifecycle(cfg LifecycleConfig, opts ...LifecycleOption) *Lifecycle {
	m := &Lifecycle{
		doc:       cfg.Doc,
		builder:   cfg.Builder,
		tracker:   cfg.Tracker,
		host:      cfg.Host,
		geometry:  cfg.Geometry,
		callbacks: cfg.Callbacks,
		log:       nopLogger{},
		tolerance: DefaultGeometryTolerance,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Attach subscribes to document changes and performs the initial
// scan. The tracker remaps inside the same listener, before the
// rescan, so staleness checks always see current ranges.
func (m *Lifecycle) Attach() {
	m.doc.Subscribe(func(c document.Change) {
		m.tracker.Apply(c)
		m.Rescan()
	})
	m.Rescan()
}

// Tree returns the syntax tree of the most recent scan.
func (m *Lifecycle) Tree() *syntax.Tree {
	return m.tree
}

// Editor returns the live editor for a widget.
func (m *Lifecycle) Editor(id WidgetID) (*Editor, bool) {
	if m.editors == nil {
		return nil, false
	}
	e, ok := m.editors[id]
	return e, ok
}

// Decorations returns the current non-overlapping replace regions in
// document order.
func (m *Lifecycle) Decorations() []Decoration {
	return m.decorations
}

// Rescan walks the current document state and recomputes the full
// decoration set. Widgets whose Table node survived at their tracked
// span are kept; widgets whose node disappeared are torn down along
// with their tracker records; new Table nodes get fresh widgets. A
// parse failure skips that node only — the occurrence falls back to
// the host's plain-text rendering and the pass continues.
func (m *Lifecycle) Rescan() {
	if m.editors == nil {
		m.editors = make(map[WidgetID]*Editor)
	}
	source := m.doc.Text()
	m.tree = m.builder.Build(source)
	tables := m.tree.NodesByName(syntax.NameTable)

	claimed := make(map[*syntax.Node]WidgetID)
	for id := range m.editors {
		rec, ok := m.tracker.Lookup(id)
		if ok {
			if node := m.tree.NodeAt(syntax.NameTable, rec.Span()); node != nil {
				if _, taken := claimed[node]; !taken {
					claimed[node] = id
					continue
				}
			}
		}
		m.teardown(id)
	}

	m.decorations = m.decorations[:0]
	for _, node := range tables {
		if id, ok := claimed[node]; ok {
			m.decorations = append(m.decorations, Decoration{Span: node.Span(), ID: id})
			continue
		}

		grid, err := table.ParseGrid(node, source)
		if err != nil {
			m.log.Warn("table parse failed, rendering as plain text", "span", node.Span(), "error", err)
			continue
		}

		id := NextWidgetID()
		m.tracker.Upsert(id, node.From(), node.To())
		view := m.host.Mount(id, node.Span())
		ed := NewEditor(EditorConfig{
			ID:      id,
			Grid:    grid,
			View:    view,
			Doc:     m.doc,
			Tracker: m.tracker,
			Resolvers: []Resolver{
				&TrackedResolver{ID: id, Tracker: m.tracker, Tree: m.Tree, DocLen: m.doc.Len},
				&GeometryResolver{ID: id, Tree: m.Tree, Geom: m.geometry, MaxDist: m.tolerance},
			},
			Callbacks: m.callbacks,
		}, m.editorOpts...)
		m.editors[id] = ed
		ed.Refresh()
		m.decorations = append(m.decorations, Decoration{Span: node.Span(), ID: id})
	}

	sort.Slice(m.decorations, func(i, j int) bool {
		return m.decorations[i].Span.From < m.decorations[j].Span.From
	})
}

// Close tears down every live widget.
func (m *Lifecycle) Close() {
	for id := range m.editors {
		m.teardown(id)
	}
	m.decorations = nil
}

// teardown destroys one widget and, as the lifecycle's prerogative,
// its tracker record.
func (m *Lifecycle) teardown(id WidgetID) {
	if ed, ok := m.editors[id]; ok {
		ed.CancelPending()
	}
	m.host.Unmount(id)
	m.tracker.Remove(id)
	delete(m.editors, id)
	m.log.Debug("widget torn down", "widget", id)
}
