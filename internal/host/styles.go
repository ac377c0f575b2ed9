package host

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// StyleSet holds the terminal styles table widgets draw with.
type StyleSet struct {
	Text      tcell.Style
	HeaderRow tcell.Style
	Cell      tcell.Style
	Focused   tcell.Style
	Editing   tcell.Style
	Border    tcell.Style
	DirtyMark tcell.Style
}

// DefaultStyles returns the default style set.
func DefaultStyles() StyleSet {
	base := tcell.StyleDefault
	return StyleSet{
		Text:      base,
		HeaderRow: base.Bold(true),
		Cell:      base,
		Focused:   base.Reverse(true),
		Editing:   base.Underline(true),
		Border:    base.Foreground(tcell.ColorGray),
		DirtyMark: base.Foreground(tcell.ColorYellow).Bold(true),
	}
}

var styleRegistry struct {
	mu     sync.Mutex
	styles *StyleSet
}

// RegisterStyles installs the process-wide widget style set. The call
// is explicit and idempotent: the first registration wins and later
// calls return the already-registered set. Passing nil registers the
// defaults.
func RegisterStyles(custom *StyleSet) *StyleSet {
	styleRegistry.mu.Lock()
	defer styleRegistry.mu.Unlock()
	if styleRegistry.styles != nil {
		return styleRegistry.styles
	}
	if custom == nil {
		s := DefaultStyles()
		custom = &s
	}
	styleRegistry.styles = custom
	return custom
}
