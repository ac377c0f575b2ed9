package widget

// Guard is a scoped reentrancy guard. Wrapping a view rebuild in Do
// suppresses handler dispatch for the duration: focus and blur events
// fired by tearing down old cell elements check Held and return
// early, so destruction cannot corrupt the grid.
//
// The subsystem is single-threaded; a plain boolean suffices.
type Guard struct {
	held bool
}

// Held reports whether a guarded section is active.
func (g *Guard) Held() bool {
	return g.held
}

// Do runs fn with the guard held, restoring it on exit. Nested calls
// run fn without re-acquiring.
func (g *Guard) Do(fn func()) {
	if g.held {
		fn()
		return
	}
	g.held = true
	defer func() { g.held = false }()
	fn()
}
