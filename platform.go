package layout

import (
	"context"
	"runtime"
	"sync/atomic"
)

// EventSource is the platform run loop primitive the dispatcher rides on.
// Exactly one loop thread services a source; Signal may be called from any
// goroutine.
type EventSource interface {
	// Signal requests that the loop wake and invoke the signal handler.
	// Multiple signals before the loop wakes may coalesce into one.
	Signal()

	// RunLoop blocks, servicing signals on the calling goroutine until ctx
	// is cancelled. The calling goroutine becomes the loop thread.
	RunLoop(ctx context.Context) error

	// OnLoopThread reports whether the caller is the loop thread.
	OnLoopThread() bool

	// SetSignalHandler registers the callback invoked once per observed
	// signal. Must be called before RunLoop.
	SetSignalHandler(fn func())
}

// HeadlessSource is a channel-driven EventSource for tests and hosts that
// have no native run loop.
type HeadlessSource struct {
	signals chan struct{}
	handler func()
	loopID  atomic.Uint64
}

// NewHeadlessSource creates a HeadlessSource ready to run.
func NewHeadlessSource() *HeadlessSource {
	return &HeadlessSource{
		signals: make(chan struct{}, 1),
	}
}

// Signal wakes the loop. Signals coalesce: at most one is pending at a time.
func (s *HeadlessSource) Signal() {
	select {
	case s.signals <- struct{}{}:
	default:
	}
}

// SetSignalHandler registers the drain callback. Must be called before
// RunLoop or Pin.
func (s *HeadlessSource) SetSignalHandler(fn func()) {
	s.handler = fn
}

// RunLoop services signals on the calling goroutine until ctx is cancelled.
func (s *HeadlessSource) RunLoop(ctx context.Context) error {
	s.loopID.Store(goroutineID())
	defer s.loopID.Store(0)

	for {
		select {
		case <-s.signals:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if s.handler != nil {
				s.handler()
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// OnLoopThread reports whether the caller is the goroutine running the loop
// (or the goroutine pinned via Pin).
func (s *HeadlessSource) OnLoopThread() bool {
	id := s.loopID.Load()
	return id != 0 && id == goroutineID()
}

// Pin marks the calling goroutine as the loop thread without running a
// loop. Tests use this to drive the dispatcher synchronously via RunJobs.
func (s *HeadlessSource) Pin() {
	s.loopID.Store(goroutineID())
}

// goroutineID returns the current goroutine's ID by parsing the stack
// header. Used only for thread-affinity checks, never for scheduling.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	// The trace starts with "goroutine NNN [".
	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] < '0' || buf[i] > '9' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}
