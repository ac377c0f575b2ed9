package host

import "time"

// LoopScheduler defers widget timer callbacks onto the host's event
// loop. The widget runtime is single-threaded: a debounced blur or
// save-intent callback must not run on the timer goroutine while the
// event loop is inside the same editor. Timers here only enqueue the
// fired callback and wake the loop; RunPending executes the queue on
// the loop goroutine.
type LoopScheduler struct {
	wake func()
	fns  chan func()
}

// NewLoopScheduler creates a scheduler that calls wake after queueing
// a fired callback. wake must be safe to call from any goroutine;
// with tcell that is posting an EventInterrupt to the screen.
func NewLoopScheduler(wake func()) *LoopScheduler {
	return &LoopScheduler{
		wake: wake,
		fns:  make(chan func(), 32),
	}
}

// Schedule implements widget.ScheduleFunc. The returned cancel stops
// the timer and, like every widget call, runs on the loop goroutine:
// a callback that already fired but was canceled before RunPending is
// dropped at delivery.
func (s *LoopScheduler) Schedule(d time.Duration, fn func()) func() {
	canceled := false
	t := time.AfterFunc(d, func() {
		s.fns <- func() {
			if !canceled {
				fn()
			}
		}
		if s.wake != nil {
			s.wake()
		}
	})
	return func() {
		canceled = true
		t.Stop()
	}
}

// RunPending executes all queued callbacks. It must be called from
// the event loop goroutine.
func (s *LoopScheduler) RunPending() {
	for {
		select {
		case fn := <-s.fns:
			fn()
		default:
			return
		}
	}
}
