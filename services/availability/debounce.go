package availability

import (
	"sync"
	"time"
)

// TimerHandle is a cancellable pending invocation.
type TimerHandle interface {
	Cancel()
}

// Scheduler schedules a function to run after a delay. The indirection exists
// so tests can drive the debouncer with a fake clock instead of real timers.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) TimerHandle
}

type realTimerHandle struct {
	timer *time.Timer
}

func (h realTimerHandle) Cancel() {
	h.timer.Stop()
}

type realScheduler struct{}

func (realScheduler) Schedule(delay time.Duration, fn func()) TimerHandle {
	return realTimerHandle{timer: time.AfterFunc(delay, fn)}
}

// NewRealScheduler returns a Scheduler backed by time.AfterFunc.
func NewRealScheduler() Scheduler {
	return realScheduler{}
}

// Debouncer collapses bursts of triggers into one delayed invocation of fn.
// Each Trigger cancels any pending invocation and schedules a new one; Stop
// cancels permanently. fn never runs after Stop.
type Debouncer struct {
	mu        sync.Mutex
	delay     time.Duration
	fn        func()
	scheduler Scheduler
	pending   TimerHandle
	gen       uint64
	stopped   bool
}

// NewDebouncer builds a debouncer around fn. A nil scheduler falls back to
// real timers.
func NewDebouncer(delay time.Duration, fn func(), scheduler Scheduler) *Debouncer {
	if scheduler == nil {
		scheduler = realScheduler{}
	}
	return &Debouncer{
		delay:     delay,
		fn:        fn,
		scheduler: scheduler,
	}
}

// Trigger schedules fn to run after the delay, superseding any pending run.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.pending != nil {
		d.pending.Cancel()
	}
	d.gen++
	gen := d.gen
	d.pending = d.scheduler.Schedule(d.delay, func() {
		d.fire(gen)
	})
}

// Flush runs fn immediately if a trigger is pending, cancelling the timer.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.stopped || d.pending == nil {
		d.mu.Unlock()
		return
	}
	d.pending.Cancel()
	d.pending = nil
	d.gen++
	fn := d.fn
	d.mu.Unlock()
	fn()
}

// Stop cancels any pending invocation and disables the debouncer.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.pending != nil {
		d.pending.Cancel()
		d.pending = nil
	}
}

// fire runs fn unless this generation was superseded or the debouncer stopped.
// Timer callbacks can race Trigger/Stop; the generation check makes stale
// callbacks no-ops.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.pending = nil
	fn := d.fn
	d.mu.Unlock()
	fn()
}
