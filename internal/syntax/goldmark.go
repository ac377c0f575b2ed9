package syntax

import (
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Builder parses markdown source into a syntax Tree.
// It wraps goldmark with GFM extensions enabled so pipe tables
// produce Table/TableHeader/TableRow/TableCell nodes.
type Builder struct {
	md goldmark.Markdown
}

// NewBuilder creates a tree builder with GFM tables enabled.
func NewBuilder() *Builder {
	return &Builder{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// Build parses source and returns the syntax tree for it.
func (b *Builder) Build(source string) *Tree {
	raw := []byte(source)
	doc := b.md.Parser().Parse(text.NewReader(raw))

	root := NewNode(NameDocument, Span{From: 0, To: len(source)})
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		b.convertBlock(c, source, root)
	}
	return &Tree{root: root, source: source}
}

// convertBlock converts one goldmark block node (and its subtree) into
// syntax nodes attached to parent. Tables are rebuilt line by line so
// that rows expose their pipe delimiters as explicit tokens.
func (b *Builder) convertBlock(n gast.Node, source string, parent *Node) {
	if tbl, ok := n.(*east.Table); ok {
		if node := b.buildTable(tbl, source); node != nil {
			parent.AppendChild(node)
		}
		return
	}

	span, ok := nodeSpan(n)
	if !ok {
		return
	}
	node := NewNode(kindName(n), span)
	parent.AppendChild(node)
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		b.convertBlock(c, source, node)
	}
}

// buildTable reconstructs a Table node covering the table's full source
// lines. The first line becomes a TableHeader, the second a
// TableDelimiter, and the rest TableRows. Each row holds interleaved
// TableDelimiter tokens (the pipes) and TableCell nodes with the inline
// children goldmark parsed for the matching cell.
func (b *Builder) buildTable(tbl *east.Table, source string) *Node {
	span, ok := nodeSpan(tbl)
	if !ok {
		return nil
	}

	// Cell segments never include the pipes or the delimiter row, so
	// widen to whole lines to get the table's true extent.
	from := lineStart(source, span.From)
	to := lineEnd(source, span.To-1)
	table := NewNode(NameTable, Span{From: from, To: to})

	// Inline content per goldmark cell, matched to rebuilt cells by span
	// overlap below.
	var gmCells []*Node
	for r := tbl.FirstChild(); r != nil; r = r.NextSibling() {
		for c := r.FirstChild(); c != nil; c = c.NextSibling() {
			if cs, ok := nodeSpan(c); ok {
				cell := NewNode(NameTableCell, cs)
				for ic := c.FirstChild(); ic != nil; ic = ic.NextSibling() {
					b.convertBlock(ic, source, cell)
				}
				gmCells = append(gmCells, cell)
			}
		}
	}

	lineNo := 0
	for pos := from; pos < to; lineNo++ {
		end := strings.IndexByte(source[pos:to], '\n')
		var lineTo int
		if end < 0 {
			lineTo = to
		} else {
			lineTo = pos + end
		}
		line := Span{From: pos, To: lineTo}

		switch lineNo {
		case 0:
			header := NewNode(NameTableHeader, line)
			scanRowLine(source, line, header, gmCells)
			table.AppendChild(header)
		case 1:
			table.AppendChild(NewNode(NameTableDelimiter, line))
		default:
			row := NewNode(NameTableRow, line)
			scanRowLine(source, line, row, gmCells)
			table.AppendChild(row)
		}

		pos = lineTo + 1
	}
	return table
}

// scanRowLine splits one table line into TableDelimiter tokens for each
// unescaped pipe and TableCell nodes for the non-blank content between
// them. Empty cells produce no TableCell node, only adjacent
// delimiters; the table parser synthesizes the empty cells.
func scanRowLine(source string, line Span, row *Node, gmCells []*Node) {
	segStart := line.From
	flush := func(segEnd int) {
		cellFrom, cellTo := trimSpan(source, segStart, segEnd)
		if cellFrom >= cellTo {
			return
		}
		cell := adoptCell(gmCells, Span{From: cellFrom, To: cellTo})
		row.AppendChild(cell)
	}

	for i := line.From; i < line.To; i++ {
		if source[i] != '|' {
			continue
		}
		if i > line.From && source[i-1] == '\\' {
			continue
		}
		flush(i)
		row.AppendChild(NewNode(NameTableDelimiter, Span{From: i, To: i + 1}))
		segStart = i + 1
	}
	flush(line.To)
}

// adoptCell returns a TableCell for the given span, carrying the inline
// children goldmark parsed for the best-overlapping original cell.
func adoptCell(gmCells []*Node, span Span) *Node {
	var best *Node
	bestOverlap := 0
	for _, c := range gmCells {
		if !c.span.Overlaps(span) {
			continue
		}
		lo, hi := c.span.From, c.span.To
		if span.From > lo {
			lo = span.From
		}
		if span.To < hi {
			hi = span.To
		}
		if hi-lo > bestOverlap {
			bestOverlap = hi - lo
			best = c
		}
	}
	cell := NewNode(NameTableCell, span)
	if best != nil {
		for _, c := range best.children {
			cell.AppendChild(c)
		}
	}
	return cell
}

// nodeSpan computes the byte span of a goldmark node from its text
// segment, its block lines, or its children, whichever is available.
func nodeSpan(n gast.Node) (Span, bool) {
	if t, ok := n.(*gast.Text); ok {
		return Span{From: t.Segment.Start, To: t.Segment.Stop}, true
	}
	lo, hi := -1, -1
	extend := func(from, to int) {
		if lo < 0 || from < lo {
			lo = from
		}
		if to > hi {
			hi = to
		}
	}
	if n.Type() == gast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			extend(seg.Start, seg.Stop)
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if cs, ok := nodeSpan(c); ok {
			extend(cs.From, cs.To)
		}
	}
	if lo < 0 {
		return Span{}, false
	}
	return Span{From: lo, To: hi}, true
}

// kindName maps a goldmark node to its tag name.
func kindName(n gast.Node) string {
	return n.Kind().String()
}

// trimSpan narrows [from, to) to exclude leading and trailing spaces
// and tabs.
func trimSpan(source string, from, to int) (int, int) {
	for from < to && (source[from] == ' ' || source[from] == '\t') {
		from++
	}
	for to > from && (source[to-1] == ' ' || source[to-1] == '\t') {
		to--
	}
	return from, to
}

// lineStart returns the offset of the first byte of the line containing pos.
func lineStart(source string, pos int) int {
	if pos > len(source) {
		pos = len(source)
	}
	for pos > 0 && source[pos-1] != '\n' {
		pos--
	}
	return pos
}

// lineEnd returns the offset just past the last byte of the line
// containing pos, excluding the newline itself.
func lineEnd(source string, pos int) int {
	if pos < 0 {
		pos = 0
	}
	for pos < len(source) && source[pos] != '\n' {
		pos++
	}
	return pos
}
