package host

import (
	"testing"
	"time"

	"github.com/dshills/tablestorm/internal/table"
	"github.com/dshills/tablestorm/internal/widget"
)

func TestLoopSchedulerDefersToLoop(t *testing.T) {
	woke := make(chan struct{}, 1)
	s := NewLoopScheduler(func() {
		select {
		case woke <- struct{}{}:
		default:
		}
	})

	ran := false
	s.Schedule(time.Millisecond, func() { ran = true })

	<-woke
	if ran {
		t.Fatal("callback ran on the timer goroutine")
	}
	s.RunPending()
	if !ran {
		t.Error("RunPending did not execute the queued callback")
	}
}

func TestLoopSchedulerCancelBeforeFire(t *testing.T) {
	s := NewLoopScheduler(nil)
	ran := false
	cancel := s.Schedule(time.Hour, func() { ran = true })
	cancel()
	s.RunPending()
	if ran {
		t.Error("canceled callback ran")
	}
}

func TestLoopSchedulerCancelAfterFire(t *testing.T) {
	woke := make(chan struct{}, 1)
	s := NewLoopScheduler(func() {
		select {
		case woke <- struct{}{}:
		default:
		}
	})

	ran := false
	cancel := s.Schedule(time.Millisecond, func() { ran = true })
	<-woke
	// Fired and queued, but canceled before the loop drains it.
	cancel()
	s.RunPending()
	if ran {
		t.Error("callback ran after cancel")
	}
}

// stubView is the minimal widget.View for driving an editor in tests.
type stubView struct {
	cells [][]string
}

func (v *stubView) Rebuild(cells [][]string, _ []table.Alignment) { v.cells = cells }
func (v *stubView) ShowPreview(widget.CellAddress, string)        {}
func (v *stubView) ShowSource(widget.CellAddress, string)         {}
func (v *stubView) Focus(widget.CellAddress)                      {}
func (v *stubView) SetColumnAlignment(int, table.Alignment)       {}

func (v *stubView) CellText(addr widget.CellAddress) string {
	if addr.Row < len(v.cells) && addr.Col < len(v.cells[addr.Row]) {
		return v.cells[addr.Row][addr.Col]
	}
	return ""
}

// A debounced widget blur must reach its callbacks only on the loop
// goroutine, never on the timer's.
func TestLoopSchedulerSerializesBlur(t *testing.T) {
	woke := make(chan struct{}, 1)
	s := NewLoopScheduler(func() {
		select {
		case woke <- struct{}{}:
		default:
		}
	})

	g, err := table.New([][]string{{"a", "b"}, {"1", "2"}}, nil)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	blurs := 0
	ed := widget.NewEditor(widget.EditorConfig{
		ID:   widget.NextWidgetID(),
		Grid: g,
		View: &stubView{},
		Callbacks: widget.Callbacks{
			OnBlur: func(widget.WidgetID) { blurs++ },
		},
	},
		widget.WithScheduler(s.Schedule),
		widget.WithBlurWindow(time.Millisecond),
	)
	ed.Refresh()

	ed.HandleBlur(widget.CellAddress{})
	<-woke
	if blurs != 0 {
		t.Fatal("blur delivered off the event loop")
	}
	s.RunPending()
	if blurs != 1 {
		t.Errorf("blurs = %d, want 1", blurs)
	}
}
