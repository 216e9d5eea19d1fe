package layout

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestHeadlessSource_SignalsCoalesce(t *testing.T) {
	source := NewHeadlessSource()
	source.Signal()
	source.Signal()
	source.Signal()

	handled := 0
	source.SetSignalHandler(func() { handled++ })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- source.RunLoop(ctx) }()

	// Give the loop a chance to observe the pending signal, then stop it.
	time.Sleep(20 * time.Millisecond)
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("RunLoop = %v, want context.Canceled", err)
	}
	if handled != 1 {
		t.Errorf("handler ran %d times for 3 coalesced signals, want 1", handled)
	}
}

func TestHeadlessSource_OnLoopThread(t *testing.T) {
	source := NewHeadlessSource()
	if source.OnLoopThread() {
		t.Error("OnLoopThread should be false before the loop runs")
	}

	source.Pin()
	if !source.OnLoopThread() {
		t.Error("OnLoopThread should be true on the pinned goroutine")
	}

	other := make(chan bool, 1)
	go func() { other <- source.OnLoopThread() }()
	if <-other {
		t.Error("OnLoopThread should be false on other goroutines")
	}
}

func TestHeadlessSource_RunLoopServicesSignals(t *testing.T) {
	source := NewHeadlessSource()
	handled := make(chan struct{}, 8)
	source.SetSignalHandler(func() { handled <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go source.RunLoop(ctx)

	source.Signal()
	select {
	case <-handled:
	case <-time.After(time.Second):
		t.Fatal("signal was not serviced")
	}
}

func TestGoroutineID(t *testing.T) {
	if goroutineID() == 0 {
		t.Error("goroutineID() should be nonzero")
	}
	if goroutineID() != goroutineID() {
		t.Error("goroutineID() should be stable within a goroutine")
	}

	other := make(chan uint64, 1)
	go func() { other <- goroutineID() }()
	if <-other == goroutineID() {
		t.Error("distinct goroutines should have distinct IDs")
	}
}
