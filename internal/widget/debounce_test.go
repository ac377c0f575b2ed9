package widget

import (
	"testing"
	"time"
)

// manualClock is a ScheduleFunc that holds callbacks until fire.
type manualClock struct {
	fns []func()
}

func (m *manualClock) schedule(_ time.Duration, fn func()) func() {
	i := len(m.fns)
	m.fns = append(m.fns, fn)
	return func() { m.fns[i] = nil }
}

// fire runs all pending callbacks, skipping canceled ones.
func (m *manualClock) fire() {
	fns := m.fns
	m.fns = nil
	for _, fn := range fns {
		if fn != nil {
			fn()
		}
	}
}

func TestDebouncerCoalesces(t *testing.T) {
	clock := &manualClock{}
	d := NewDebouncer(time.Millisecond, clock.schedule)

	fired := 0
	d.Trigger(func() { fired++ })
	d.Trigger(func() { fired++ })
	d.Trigger(func() { fired++ })

	if !d.Pending() {
		t.Fatal("no pending callback after Trigger")
	}
	clock.fire()
	if fired != 1 {
		t.Errorf("fired %d times, want 1", fired)
	}
	if d.Pending() {
		t.Error("still pending after firing")
	}
}

func TestDebouncerCancel(t *testing.T) {
	clock := &manualClock{}
	d := NewDebouncer(time.Millisecond, clock.schedule)

	fired := false
	d.Trigger(func() { fired = true })
	d.Cancel()
	if d.Pending() {
		t.Error("pending after Cancel")
	}
	clock.fire()
	if fired {
		t.Error("canceled callback fired")
	}
}

func TestDebouncerRetrigger(t *testing.T) {
	clock := &manualClock{}
	d := NewDebouncer(time.Millisecond, clock.schedule)

	var got string
	d.Trigger(func() { got = "first" })
	clock.fire()
	d.Trigger(func() { got = "second" })
	clock.fire()
	if got != "second" {
		t.Errorf("got %q", got)
	}
}

func TestGuard(t *testing.T) {
	var g Guard
	if g.Held() {
		t.Fatal("fresh guard held")
	}
	g.Do(func() {
		if !g.Held() {
			t.Error("guard not held inside Do")
		}
		// Nested calls run without re-acquiring.
		g.Do(func() {
			if !g.Held() {
				t.Error("guard dropped in nested Do")
			}
		})
		if !g.Held() {
			t.Error("nested Do released the guard")
		}
	})
	if g.Held() {
		t.Error("guard held after Do returned")
	}
}
