package table

import (
	"fmt"
	"strings"
)

// Render serializes cells and alignments to canonical padded
// pipe-table markdown. It is pure and deterministic: identical inputs
// produce byte-identical output.
//
// Each cell is padded to its column's width. Left alignment pads on
// the right, right alignment pads on the left, and center alignment
// is left-padded only: true centering is encoded solely in the
// delimiter row. Changing that would reformat every already-saved
// document, so it stays as-is.
//
// The delimiter row is spliced immediately after the header row, one
// run of width+2 characters per column with colon decoration matching
// the alignment: '---' for left, '---:' for right, ':--:' for center.
//
// At least two rows are required; callers must not invoke Render on a
// grid the structural-edit guards would reject.
func Render(cells [][]string, aligns []Alignment) (string, error) {
	if len(cells) < 2 {
		return "", fmt.Errorf("%d rows: %w", len(cells), ErrTooFewRows)
	}
	cols := len(cells[0])
	if cols == 0 {
		return "", ErrEmptyTable
	}
	for i, row := range cells {
		if len(row) != cols {
			return "", fmt.Errorf("row %d has %d cells, want %d: %w", i, len(row), cols, ErrNotRectangular)
		}
	}
	if aligns == nil {
		aligns = make([]Alignment, cols)
	} else if len(aligns) != cols {
		return "", fmt.Errorf("%d alignments for %d columns: %w", len(aligns), cols, ErrAlignmentCount)
	}

	widths := ComputeWidths(cells)

	var b strings.Builder
	lines := make([]string, 0, len(cells)+1)
	for _, row := range cells {
		b.Reset()
		b.WriteByte('|')
		for i, cell := range row {
			b.WriteByte(' ')
			b.WriteString(padCell(cell, widths[i], aligns[i]))
			b.WriteString(" |")
		}
		lines = append(lines, b.String())
	}

	b.Reset()
	b.WriteByte('|')
	for i, a := range aligns {
		b.WriteString(DelimiterRun(widths[i]+2, a))
		b.WriteByte('|')
	}
	delimiter := b.String()

	// Delimiter row sits immediately after the header row.
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[0], delimiter)
	out = append(out, lines[1:]...)
	return strings.Join(out, "\n"), nil
}

// padCell pads cell content to width according to alignment.
func padCell(cell string, width int, a Alignment) string {
	pad := width - CellWidth(cell)
	if pad <= 0 {
		return cell
	}
	if a == AlignLeft {
		return cell + strings.Repeat(" ", pad)
	}
	return strings.Repeat(" ", pad) + cell
}

// DelimiterRun builds one delimiter-row segment of exactly size
// characters with the colon decoration for the alignment. It is the
// single source for delimiter text; renderers drawing their own
// delimiter row use it so the on-screen form cannot drift from the
// serialized one.
func DelimiterRun(size int, a Alignment) string {
	switch a {
	case AlignCenter:
		if size < 2 {
			size = 2
		}
		return ":" + strings.Repeat("-", size-2) + ":"
	case AlignRight:
		if size < 1 {
			size = 1
		}
		return strings.Repeat("-", size-1) + ":"
	default:
		return strings.Repeat("-", size)
	}
}
