package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrNilNode is the panic value when a manager entry point is given a
	// nil node.
	ErrNilNode = errors.New("layout: nil node")

	// ErrWrongThread is the panic value when a thread-confined entry point
	// is called from outside the loop thread.
	ErrWrongThread = errors.New("layout: called from outside the loop thread")

	// ErrNoEventSource is returned by Dispatcher.RunLoop when no platform
	// event source is configured.
	ErrNoEventSource = errors.New("layout: dispatcher has no event source")

	// ErrNoDispatcher is returned by NewManager when given a nil dispatcher.
	ErrNoDispatcher = errors.New("layout: manager requires a dispatcher")
)

// JobError wraps a panic recovered from a dispatched job. It is forwarded
// to the dispatcher's fault handler and, for InvokeAsync jobs, resolves the
// returned Pending.
type JobError struct {
	Recovered any
}

func (e *JobError) Error() string {
	return fmt.Sprintf("layout: job panicked: %v", e.Recovered)
}
