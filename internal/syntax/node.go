package syntax

import "fmt"

// Offset represents a byte position in the document text.
type Offset = int

// Span represents a byte range in the document text.
// From is inclusive, To is exclusive: [From, To).
type Span struct {
	From Offset // Inclusive start position
	To   Offset // Exclusive end position
}

// NewSpan creates a new Span from start and end offsets.
func NewSpan(from, to Offset) Span {
	return Span{From: from, To: to}
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("[%d:%d)", s.From, s.To)
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.To - s.From
}

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool {
	return s.From == s.To
}

// IsValid returns true if the span is valid (From <= To).
func (s Span) IsValid() bool {
	return s.From <= s.To
}

// Contains returns true if the given offset is within the span.
func (s Span) Contains(offset Offset) bool {
	return offset >= s.From && offset < s.To
}

// Overlaps returns true if this span overlaps with another span.
func (s Span) Overlaps(other Span) bool {
	return s.From < other.To && other.From < s.To
}

// Shift returns a new span shifted by the given delta.
func (s Span) Shift(delta int) Span {
	return Span{From: s.From + delta, To: s.To + delta}
}

// Well-known node names produced by the tree builder. Anything else
// passes through with the underlying parser's kind name.
const (
	NameDocument       = "Document"
	NameTable          = "Table"
	NameTableHeader    = "TableHeader"
	NameTableRow       = "TableRow"
	NameTableCell      = "TableCell"
	NameTableDelimiter = "TableDelimiter"
	NameText           = "Text"
)

// Node is a named, offset-bearing node in the document syntax tree.
// Nodes form a tree with parent, child, and sibling links.
type Node struct {
	name     string
	span     Span
	parent   *Node
	children []*Node
}

// NewNode creates a detached node with the given name and span.
func NewNode(name string, span Span) *Node {
	return &Node{name: name, span: span}
}

// Name returns the node's tag, e.g. "Table" or "TableCell".
func (n *Node) Name() string {
	return n.name
}

// Span returns the node's byte range in the source text.
func (n *Node) Span() Span {
	return n.span
}

// From returns the inclusive start offset.
func (n *Node) From() Offset {
	return n.span.From
}

// To returns the exclusive end offset.
func (n *Node) To() Offset {
	return n.span.To
}

// Parent returns the node's parent, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's ordered children.
// The returned slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// LastChild returns the last child, or nil.
func (n *Node) LastChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// NextSibling returns the node following this one under the same parent, or nil.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	for i, c := range n.parent.children {
		if c == n {
			if i+1 < len(n.parent.children) {
				return n.parent.children[i+1]
			}
			return nil
		}
	}
	return nil
}

// PrevSibling returns the node preceding this one under the same parent, or nil.
func (n *Node) PrevSibling() *Node {
	if n.parent == nil {
		return nil
	}
	for i, c := range n.parent.children {
		if c == n {
			if i > 0 {
				return n.parent.children[i-1]
			}
			return nil
		}
	}
	return nil
}

// AppendChild attaches child as the last child of n.
func (n *Node) AppendChild(child *Node) {
	child.parent = n
	n.children = append(n.children, child)
}

// Text slices the node's span out of the given source text.
func (n *Node) Text(source string) string {
	from, to := n.span.From, n.span.To
	if from < 0 {
		from = 0
	}
	if to > len(source) {
		to = len(source)
	}
	if from >= to {
		return ""
	}
	return source[from:to]
}

// Walk visits n and all descendants in document order.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// String returns a human-readable representation of the node.
func (n *Node) String() string {
	return fmt.Sprintf("%s%s", n.name, n.span)
}
