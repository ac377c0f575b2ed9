package table

import "github.com/dshills/tablestorm/internal/syntax"

// InlineNode is one inline child of a table cell: a terminal text span
// or a simple formatting node wrapping further children. Every node
// carries its exact source span plus the count of leading whitespace
// bytes preceding it inside its parent, so the original text can be
// reconstructed byte for byte.
type InlineNode struct {
	// Kind is the node tag, e.g. "Text", "Emphasis", "CodeSpan".
	// Unrecognized and leaf kinds are terminal "Text" nodes.
	Kind string

	// Span is the node's byte range in the document source.
	Span syntax.Span

	// Leading is the number of whitespace bytes immediately before
	// Span.From that belong to this node within its parent.
	Leading int

	// Children are nested inline nodes; empty for terminal text.
	Children []*InlineNode
}

// IsText reports whether the node is a terminal text span.
func (n *InlineNode) IsText() bool {
	return len(n.Children) == 0
}

// TableCell is one cell of a parsed table row.
type TableCell struct {
	// Span covers the cell's trimmed content; empty synthesized cells
	// have a zero-length span at their insertion point.
	Span syntax.Span

	// Leading is the whitespace byte count between the opening
	// delimiter and the content.
	Leading int

	// Children are the cell's inline nodes, in source order.
	Children []*InlineNode
}

// Text returns the cell's raw markdown content.
func (c *TableCell) Text(source string) string {
	if c.Span.From < 0 || c.Span.To > len(source) || c.Span.From >= c.Span.To {
		return ""
	}
	return source[c.Span.From:c.Span.To]
}

// TableRow is one row of a parsed table.
type TableRow struct {
	Span  syntax.Span
	Cells []*TableCell

	// IsHeaderOrFooter marks rows rendered above or below the
	// delimiter decoration (the header in pipe tables).
	IsHeaderOrFooter bool
}

// TableAST is the structured form of one table occurrence in the
// document. It is decoupled from the Grid: the AST preserves spans and
// structure, the Grid holds the mutable raw cell strings derived from
// it.
type TableAST struct {
	// Span is the table's exact range in the document.
	Span syntax.Span

	// Rows in document order, header first.
	Rows []*TableRow

	// Alignments per column, or nil when no delimiter row was found;
	// consumers default to left.
	Alignments []Alignment
}

// CellStrings extracts the raw markdown cell strings row by row.
func (t *TableAST) CellStrings(source string) [][]string {
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.Text(source)
		}
		rows[i] = cells
	}
	return rows
}
