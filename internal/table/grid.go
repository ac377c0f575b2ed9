package table

import "fmt"

// Grid is a rectangular 2D array of raw markdown cell strings plus the
// per-column alignments. Rectangularity and the alignment/column-count
// lockstep are enforced at construction and preserved by every
// structural operation. A Grid always has at least one row and one
// column.
type Grid struct {
	cells  [][]string
	aligns []Alignment
}

// New creates a Grid from cells and alignments. The cells must be
// rectangular with at least one row and one column. A nil alignment
// slice defaults every column to left; otherwise its length must match
// the column count.
func New(cells [][]string, aligns []Alignment) (*Grid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, ErrEmptyTable
	}
	cols := len(cells[0])
	owned := make([][]string, len(cells))
	for i, row := range cells {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", i, len(row), cols, ErrNotRectangular)
		}
		owned[i] = append([]string(nil), row...)
	}
	if aligns == nil {
		aligns = make([]Alignment, cols)
	} else if len(aligns) != cols {
		return nil, fmt.Errorf("%d alignments for %d columns: %w", len(aligns), cols, ErrAlignmentCount)
	} else {
		aligns = append([]Alignment(nil), aligns...)
	}
	return &Grid{cells: owned, aligns: aligns}, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return len(g.cells)
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return len(g.cells[0])
}

// Cell returns the raw cell string at (row, col).
func (g *Grid) Cell(row, col int) (string, error) {
	if err := g.check(row, col); err != nil {
		return "", err
	}
	return g.cells[row][col], nil
}

// SetCell replaces the raw cell string at (row, col).
func (g *Grid) SetCell(row, col int, text string) error {
	if err := g.check(row, col); err != nil {
		return err
	}
	g.cells[row][col] = text
	return nil
}

// Cells returns a copy of the cell matrix.
func (g *Grid) Cells() [][]string {
	out := make([][]string, len(g.cells))
	for i, row := range g.cells {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// Alignments returns a copy of the per-column alignments.
func (g *Grid) Alignments() []Alignment {
	return append([]Alignment(nil), g.aligns...)
}

// Alignment returns the alignment of the given column.
func (g *Grid) Alignment(col int) (Alignment, error) {
	if col < 0 || col >= g.Cols() {
		return AlignLeft, fmt.Errorf("column %d of %d: %w", col, g.Cols(), ErrCellOutOfRange)
	}
	return g.aligns[col], nil
}

// SetAlignment changes the alignment of the given column.
func (g *Grid) SetAlignment(col int, a Alignment) error {
	if col < 0 || col >= g.Cols() {
		return fmt.Errorf("column %d of %d: %w", col, g.Cols(), ErrCellOutOfRange)
	}
	g.aligns[col] = a
	return nil
}

// InsertRow inserts a row of empty cells at the given index.
// at may equal Rows() to append.
func (g *Grid) InsertRow(at int) error {
	if at < 0 || at > len(g.cells) {
		return fmt.Errorf("row index %d of %d: %w", at, len(g.cells), ErrCellOutOfRange)
	}
	row := make([]string, g.Cols())
	g.cells = append(g.cells, nil)
	copy(g.cells[at+1:], g.cells[at:])
	g.cells[at] = row
	return nil
}

// DeleteRow removes the row at the given index. Deleting the last
// remaining row is a no-op; the return value reports whether a row was
// removed.
func (g *Grid) DeleteRow(at int) bool {
	if at < 0 || at >= len(g.cells) || len(g.cells) == 1 {
		return false
	}
	g.cells = append(g.cells[:at], g.cells[at+1:]...)
	return true
}

// InsertColumn inserts a column of empty cells with the given
// alignment at the given index. at may equal Cols() to append.
func (g *Grid) InsertColumn(at int, a Alignment) error {
	if at < 0 || at > g.Cols() {
		return fmt.Errorf("column index %d of %d: %w", at, g.Cols(), ErrCellOutOfRange)
	}
	for i, row := range g.cells {
		row = append(row, "")
		copy(row[at+1:], row[at:])
		row[at] = ""
		g.cells[i] = row
	}
	g.aligns = append(g.aligns, AlignLeft)
	copy(g.aligns[at+1:], g.aligns[at:])
	g.aligns[at] = a
	return nil
}

// DeleteColumn removes the column at the given index, keeping the
// alignment slice in lockstep. Deleting the last remaining column is a
// no-op; the return value reports whether a column was removed.
func (g *Grid) DeleteColumn(at int) bool {
	if at < 0 || at >= g.Cols() || g.Cols() == 1 {
		return false
	}
	for i, row := range g.cells {
		g.cells[i] = append(row[:at], row[at+1:]...)
	}
	g.aligns = append(g.aligns[:at], g.aligns[at+1:]...)
	return true
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	clone, _ := New(g.cells, g.aligns)
	return clone
}

// Render serializes the grid to canonical padded pipe-table markdown.
func (g *Grid) Render() (string, error) {
	return Render(g.cells, g.aligns)
}

func (g *Grid) check(row, col int) error {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= len(g.cells[0]) {
		return fmt.Errorf("cell (%d,%d) of %dx%d: %w", row, col, g.Rows(), g.Cols(), ErrCellOutOfRange)
	}
	return nil
}
