package syntax

// Tree is the parsed syntax tree for one document state.
// It is immutable once built; a new tree is built per document revision.
type Tree struct {
	root   *Node
	source string
}

// Root returns the document root node.
func (t *Tree) Root() *Node {
	return t.root
}

// Source returns the text the tree was built from.
func (t *Tree) Source() string {
	return t.source
}

// NodesByName returns all nodes with the given name, in document order.
func (t *Tree) NodesByName(name string) []*Node {
	var result []*Node
	t.root.Walk(func(n *Node) bool {
		if n.name == name {
			result = append(result, n)
		}
		return true
	})
	return result
}

// NodesByNameIn returns all nodes with the given name whose spans
// overlap the given range, in document order. An empty node at the
// range boundary is excluded.
func (t *Tree) NodesByNameIn(name string, within Span) []*Node {
	var result []*Node
	t.root.Walk(func(n *Node) bool {
		if !n.span.Overlaps(within) && !n.span.IsEmpty() {
			// Children may still overlap when a parent span is
			// partially materialized, so keep descending.
			return true
		}
		if n.name == name && n.span.Overlaps(within) {
			result = append(result, n)
		}
		return true
	})
	return result
}

// NodeAt returns the first node with the given name whose span is
// exactly [from, to), or nil.
func (t *Tree) NodeAt(name string, span Span) *Node {
	var found *Node
	t.root.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.name == name && n.span == span {
			found = n
			return false
		}
		return true
	})
	return found
}
