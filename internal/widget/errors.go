package widget

import "errors"

// Errors returned by widget operations.
var (
	// ErrPositionUnresolved indicates neither the tracked position nor
	// the geometry heuristic produced a unique valid span. The save is
	// aborted, the document untouched, and the widget stays dirty.
	ErrPositionUnresolved = errors.New("widget position could not be resolved")

	// ErrSaveInProgress indicates a re-entrant save call. Callers
	// discard it silently; it is exposed for tests.
	ErrSaveInProgress = errors.New("save already in progress")
)
