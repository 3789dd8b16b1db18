package availability

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScheduler captures scheduled callbacks so tests control time.
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	fn        func()
	cancelled bool
}

func (t *fakeTimer) Cancel() { t.cancelled = true }

func (s *fakeScheduler) Schedule(_ time.Duration, fn func()) TimerHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	timer := &fakeTimer{fn: fn}
	s.timers = append(s.timers, timer)
	return timer
}

// firePending runs every scheduled, uncancelled callback.
func (s *fakeScheduler) firePending() {
	s.mu.Lock()
	timers := s.timers
	s.timers = nil
	s.mu.Unlock()
	for _, timer := range timers {
		if !timer.cancelled {
			timer.fn()
		}
	}
}

func (s *fakeScheduler) pendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, timer := range s.timers {
		if !timer.cancelled {
			n++
		}
	}
	return n
}

func TestDebouncerCoalescesBursts(t *testing.T) {
	fs := &fakeScheduler{}
	runs := 0
	d := NewDebouncer(300*time.Millisecond, func() { runs++ }, fs)

	for i := 0; i < 5; i++ {
		d.Trigger()
	}
	require.Equal(t, 1, fs.pendingCount(), "superseded timers must be cancelled")

	fs.firePending()
	assert.Equal(t, 1, runs)
}

func TestDebouncerStopPreventsFire(t *testing.T) {
	fs := &fakeScheduler{}
	runs := 0
	d := NewDebouncer(300*time.Millisecond, func() { runs++ }, fs)

	d.Trigger()
	d.Stop()
	fs.firePending()
	assert.Zero(t, runs, "no callback may fire after teardown")

	d.Trigger()
	fs.firePending()
	assert.Zero(t, runs, "a stopped debouncer stays stopped")
}

func TestDebouncerStaleTimerIsNoOp(t *testing.T) {
	fs := &fakeScheduler{}
	runs := 0
	d := NewDebouncer(300*time.Millisecond, func() { runs++ }, fs)

	d.Trigger()
	fs.mu.Lock()
	stale := fs.timers[0]
	fs.mu.Unlock()

	d.Trigger()
	// Simulate the cancelled timer's callback racing the cancellation.
	stale.fn()
	assert.Zero(t, runs, "superseded generation must not run")

	fs.firePending()
	assert.Equal(t, 1, runs)
}

func TestDebouncerFlushRunsPendingImmediately(t *testing.T) {
	fs := &fakeScheduler{}
	runs := 0
	d := NewDebouncer(300*time.Millisecond, func() { runs++ }, fs)

	d.Flush()
	assert.Zero(t, runs, "flush without a pending trigger is a no-op")

	d.Trigger()
	d.Flush()
	assert.Equal(t, 1, runs)

	fs.firePending()
	assert.Equal(t, 1, runs, "flushed timer must not fire again")
}

func TestDebouncerRealSchedulerFires(t *testing.T) {
	done := make(chan struct{})
	d := NewDebouncer(5*time.Millisecond, func() { close(done) }, nil)
	d.Trigger()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced callback never fired")
	}
}
