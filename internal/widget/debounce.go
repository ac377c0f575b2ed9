package widget

import "time"

// ScheduleFunc schedules fn to run once after d and returns a cancel
// function. The production implementation is timer-based; tests
// substitute a manual scheduler.
type ScheduleFunc func(d time.Duration, fn func()) (cancel func())

// timerSchedule is the default ScheduleFunc backed by time.AfterFunc.
// The host must serialize the fired callback onto its event loop.
func timerSchedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Debouncer coalesces bursts of triggers into one deferred callback.
// Scheduling a new callback cancels any pending one; there is at most
// one in flight per debouncer. These are cancelable plain callbacks,
// not concurrent tasks.
type Debouncer struct {
	window   time.Duration
	schedule ScheduleFunc
	cancel   func()
}

// NewDebouncer creates a debouncer with the given coalescing window.
func NewDebouncer(window time.Duration, schedule ScheduleFunc) *Debouncer {
	if schedule == nil {
		schedule = timerSchedule
	}
	return &Debouncer{window: window, schedule: schedule}
}

// Trigger schedules fn after the window, replacing any pending
// callback.
func (d *Debouncer) Trigger(fn func()) {
	d.Cancel()
	d.cancel = d.schedule(d.window, func() {
		d.cancel = nil
		fn()
	})
}

// Cancel drops any pending callback.
func (d *Debouncer) Cancel() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

// Pending reports whether a callback is scheduled.
func (d *Debouncer) Pending() bool {
	return d.cancel != nil
}
