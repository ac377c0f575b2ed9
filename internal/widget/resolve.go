package widget

import (
	"github.com/dshills/tablestorm/internal/syntax"
)

// Resolver locates a widget's true table span in the current document.
// Resolvers are tried in priority order; the first hit wins, and the
// chain failing entirely aborts the save. Keeping the fallback behind
// the same interface as the primary lookup makes each independently
// testable and replaceable.
type Resolver interface {
	Resolve() (syntax.Span, bool)
}

// TreeSource returns the syntax tree for the current document state.
type TreeSource func() *syntax.Tree

// TrackedResolver resolves through the position tracker's record,
// validated by confirming a Table node still exists at exactly that
// range. A stale or out-of-bounds record is a miss, not an error.
type TrackedResolver struct {
	ID      WidgetID
	Tracker *Tracker
	Tree    TreeSource
	DocLen  func() int
}

// Resolve implements Resolver.
func (r *TrackedResolver) Resolve() (syntax.Span, bool) {
	rec, ok := r.Tracker.Lookup(r.ID)
	if !ok {
		return syntax.Span{}, false
	}
	if rec.From < 0 || rec.From >= rec.To || rec.To > r.DocLen() {
		return syntax.Span{}, false
	}
	tree := r.Tree()
	if tree == nil {
		return syntax.Span{}, false
	}
	span := rec.Span()
	if tree.NodeAt(syntax.NameTable, span) == nil {
		return syntax.Span{}, false
	}
	return span, true
}

// GeometryResolver is the documented screen-geometry heuristic: when
// exactly one Table node exists document-wide it wins outright;
// otherwise each candidate's on-screen box is compared to the
// widget's and the closest within tolerance is chosen. Anything
// ambiguous is a miss — the caller aborts rather than guesses.
type GeometryResolver struct {
	ID      WidgetID
	Tree    TreeSource
	Geom    Geometry
	MaxDist int
}

// Resolve implements Resolver.
func (r *GeometryResolver) Resolve() (syntax.Span, bool) {
	tree := r.Tree()
	if tree == nil {
		return syntax.Span{}, false
	}
	tables := tree.NodesByName(syntax.NameTable)
	switch len(tables) {
	case 0:
		return syntax.Span{}, false
	case 1:
		return tables[0].Span(), true
	}

	if r.Geom == nil {
		return syntax.Span{}, false
	}
	wrect, ok := r.Geom.WidgetRect(r.ID)
	if !ok {
		return syntax.Span{}, false
	}
	wx, wy := wrect.Center()

	best := -1
	bestDist := 0
	ambiguous := false
	for i, t := range tables {
		crect, ok := r.Geom.SpanRect(t.From(), t.To())
		if !ok {
			continue
		}
		cx, cy := crect.Center()
		dist := abs(cx-wx) + abs(cy-wy)
		if dist > r.MaxDist {
			continue
		}
		switch {
		case best < 0 || dist < bestDist:
			best, bestDist, ambiguous = i, dist, false
		case dist == bestDist:
			ambiguous = true
		}
	}
	if best < 0 || ambiguous {
		return syntax.Span{}, false
	}
	return tables[best].Span(), true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
