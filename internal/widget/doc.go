// Package widget is the runtime for interactive table widgets: the
// position tracker that re-derives every widget's document span
// across edits, the lifecycle manager that discovers Table nodes per
// document state and mounts or tears down widgets over them, and the
// interactive editor that owns a widget's working grid, cursor, and
// save protocol.
//
// The whole package is single-threaded and event-driven. The only
// deferred behavior is the blur-coalescing debouncer; mutual
// exclusion is the event guard around view rebuilds plus the
// save-in-progress flag, not locks. Document mutation happens solely
// through the document package's Replace entry point, and the tracker
// finishes remapping before the lifecycle re-derives decorations from
// the same change.
package widget
