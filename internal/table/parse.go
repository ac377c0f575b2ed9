package table

import (
	"fmt"
	"strings"

	"github.com/dshills/tablestorm/internal/syntax"
)

// Parse converts a "Table" syntax node and the document source into a
// TableAST. Rows come from the node's TableHeader/TableRow children;
// runs of delimiter tokens with no content token between them become
// empty cells, and a row that yields no cell at all gets one synthetic
// empty cell so the grid never loses its last column. Alignments are
// inferred from the first delimiter-pattern line spanned by the table;
// absence leaves them nil.
//
// The result is rectangular or Parse fails with ErrNotRectangular;
// a table without rows fails with ErrEmptyTable.
func Parse(node *syntax.Node, source string) (*TableAST, error) {
	if node == nil || node.Name() != syntax.NameTable {
		return nil, ErrNotTable
	}

	ast := &TableAST{Span: node.Span()}
	for _, child := range node.Children() {
		switch child.Name() {
		case syntax.NameTableHeader:
			ast.Rows = append(ast.Rows, parseRow(child, source, true))
		case syntax.NameTableRow:
			ast.Rows = append(ast.Rows, parseRow(child, source, false))
		}
	}
	if len(ast.Rows) == 0 {
		return nil, fmt.Errorf("table %s: %w", node.Span(), ErrEmptyTable)
	}

	cols := len(ast.Rows[0].Cells)
	for i, row := range ast.Rows {
		if len(row.Cells) != cols {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", i, len(row.Cells), cols, ErrNotRectangular)
		}
	}

	ast.Alignments = InferAlignments(strings.Split(node.Text(source), "\n"))
	if ast.Alignments != nil && len(ast.Alignments) != cols {
		// A delimiter row that disagrees with the cell structure is
		// still usable content; clamp rather than fail.
		aligns := make([]Alignment, cols)
		copy(aligns, ast.Alignments)
		ast.Alignments = aligns
	}
	return ast, nil
}

// ParseGrid parses the node and returns the editable Grid with the
// inferred alignments folded in (nil alignments default to left).
// It is the inverse of Render modulo padding.
func ParseGrid(node *syntax.Node, source string) (*Grid, error) {
	ast, err := Parse(node, source)
	if err != nil {
		return nil, err
	}
	return New(ast.CellStrings(source), ast.Alignments)
}

// parseRow walks one row's tokens. Cell content tokens become cells
// with parsed inline children; a delimiter directly following another
// delimiter synthesizes an empty cell between them.
func parseRow(row *syntax.Node, source string, header bool) *TableRow {
	out := &TableRow{Span: row.Span(), IsHeaderOrFooter: header}

	prevDelim := false
	var prevEnd syntax.Offset = row.From()
	for _, tok := range row.Children() {
		switch tok.Name() {
		case syntax.NameTableDelimiter:
			if prevDelim {
				at := tok.From()
				out.Cells = append(out.Cells, &TableCell{
					Span: syntax.Span{From: at, To: at},
				})
			}
			prevDelim = true
		case syntax.NameTableCell:
			out.Cells = append(out.Cells, parseCell(tok, source, prevEnd))
			prevDelim = false
		default:
			prevDelim = false
		}
		prevEnd = tok.To()
	}

	// A row of bare delimiters still spans one empty cell.
	if len(out.Cells) == 0 {
		out.Cells = append(out.Cells, &TableCell{
			Span: syntax.Span{From: row.To(), To: row.To()},
		})
	}
	return out
}

// parseCell builds a TableCell with its inline children. prevEnd is
// the end of the preceding token, used to count the cell's leading
// whitespace.
func parseCell(cell *syntax.Node, source string, prevEnd syntax.Offset) *TableCell {
	return &TableCell{
		Span:     cell.Span(),
		Leading:  whitespaceRun(source, prevEnd, cell.From()),
		Children: parseChildren(cell, source),
	}
}

// parseChildren is the generic inline parser: it converts a node's
// children in order, turns any leaf or unrecognized node into a
// terminal text node, and re-inserts every skipped source gap as
// additional text so no character of the cell is dropped.
func parseChildren(parent *syntax.Node, source string) []*InlineNode {
	var out []*InlineNode
	pos := parent.From()
	for _, child := range parent.Children() {
		if child.From() > pos {
			out = append(out, gapText(source, pos, child.From()))
		}
		out = append(out, parseInline(child, source, pos))
		if child.To() > pos {
			pos = child.To()
		}
	}
	if pos < parent.To() {
		out = append(out, gapText(source, pos, parent.To()))
	}
	return out
}

// parseInline converts one inline node. Nodes with children recurse;
// everything else is a terminal text span.
func parseInline(n *syntax.Node, source string, prevEnd syntax.Offset) *InlineNode {
	leading := whitespaceRun(source, prevEnd, n.From())
	if n.ChildCount() == 0 {
		return &InlineNode{
			Kind:    syntax.NameText,
			Span:    n.Span(),
			Leading: leading,
		}
	}
	return &InlineNode{
		Kind:     n.Name(),
		Span:     n.Span(),
		Leading:  leading,
		Children: parseChildren(n, source),
	}
}

// gapText wraps an uncovered source range in a terminal text node.
func gapText(source string, from, to syntax.Offset) *InlineNode {
	return &InlineNode{
		Kind: syntax.NameText,
		Span: syntax.Span{From: from, To: to},
	}
}

// whitespaceRun counts the whitespace bytes at the end of
// source[from:to], i.e. directly before to.
func whitespaceRun(source string, from, to syntax.Offset) int {
	if from < 0 || to > len(source) || from > to {
		return 0
	}
	n := 0
	for i := to - 1; i >= from; i-- {
		if source[i] != ' ' && source[i] != '\t' {
			break
		}
		n++
	}
	return n
}
