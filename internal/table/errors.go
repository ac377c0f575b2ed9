package table

import "errors"

// Errors returned by table operations.
var (
	// ErrEmptyTable indicates a parse produced no rows.
	ErrEmptyTable = errors.New("table has no rows")

	// ErrNotRectangular indicates rows with differing cell counts.
	ErrNotRectangular = errors.New("table rows are not rectangular")

	// ErrTooFewRows indicates a render attempt on fewer than two rows.
	ErrTooFewRows = errors.New("table needs at least two rows to render")

	// ErrAlignmentCount indicates an alignment slice whose length does
	// not match the column count.
	ErrAlignmentCount = errors.New("alignment count does not match column count")

	// ErrCellOutOfRange indicates a cell reference outside the grid.
	ErrCellOutOfRange = errors.New("cell reference out of range")

	// ErrNotTable indicates a parse was attempted on a non-table node.
	ErrNotTable = errors.New("syntax node is not a table")
)
