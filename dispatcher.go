package layout

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

// Dispatcher is the thread-affinity gatekeeper and posting API for the loop
// thread. It wraps every posted callback for fault isolation and owns the
// job runner that maps priorities to execution order.
//
// There is no process-wide current dispatcher: construct one per logical
// loop thread and hand it to the components that post work or check
// affinity.
type Dispatcher struct {
	source  EventSource
	jobs    *jobRunner
	logger  *log.Logger
	onFault func(error)
}

// NewDispatcher creates a dispatcher bound to the given event source and
// registers itself as the source's signal handler. A nil source puts the
// dispatcher in headless mode: CheckAccess always passes and jobs run only
// when RunJobs is called directly.
func NewDispatcher(source EventSource, opts ...DispatcherOption) (*Dispatcher, error) {
	d := &Dispatcher{
		source: source,
		logger: log.Default(),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	d.jobs = newJobRunner(source)
	if source != nil {
		source.SetSignalHandler(d.RunJobs)
	}
	return d, nil
}

// CheckAccess returns true iff the caller is on the loop thread. Headless
// dispatchers report true for every caller.
func (d *Dispatcher) CheckAccess() bool {
	if d.source == nil {
		return true
	}
	return d.source.OnLoopThread()
}

// VerifyAccess panics with ErrWrongThread if the caller is not on the loop
// thread. Every thread-confined entry point routes through this.
func (d *Dispatcher) VerifyAccess() {
	if !d.CheckAccess() {
		panic(ErrWrongThread)
	}
}

// Post enqueues fn at the given priority and returns immediately. Safe to
// call from any goroutine; this is the cross-thread entry into the loop.
// Ordering is guaranteed only relative to other queued jobs, never relative
// to work already executing.
func (d *Dispatcher) Post(fn func(), p Priority) {
	if fn == nil {
		panic("layout: nil job posted")
	}
	if !p.Valid() {
		panic(fmt.Sprintf("layout: invalid priority %d", p))
	}
	d.jobs.post(d.wrap(fn), p)
}

// InvokeAsync enqueues fn and returns a Pending that resolves once it has
// run, carrying fn's error. A panic inside fn resolves the Pending with a
// JobError and is also forwarded to the fault handler.
func (d *Dispatcher) InvokeAsync(fn func() error, p Priority) *Pending {
	if fn == nil {
		panic("layout: nil job posted")
	}
	if !p.Valid() {
		panic(fmt.Sprintf("layout: invalid priority %d", p))
	}

	pend := newPending()
	d.jobs.post(func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				jerr := &JobError{Recovered: r}
				d.reportFault(jerr)
				pend.complete(jerr)
				return
			}
			pend.complete(err)
		}()
		err = fn()
	}, p)
	return pend
}

// RunJobs drains the job queue now. Bound as the event source's signal
// handler; headless hosts call it directly between frames.
func (d *Dispatcher) RunJobs() {
	d.VerifyAccess()
	d.jobs.drain()
}

// RunLoop delegates to the event source's blocking loop. Cancelling ctx
// also signals the source so the loop observes the cancellation promptly.
func (d *Dispatcher) RunLoop(ctx context.Context) error {
	if d.source == nil {
		return ErrNoEventSource
	}
	stop := context.AfterFunc(ctx, d.source.Signal)
	defer stop()
	return d.source.RunLoop(ctx)
}

// wrap isolates faults: a panic inside a posted job is recovered, forwarded
// to the fault handler, and never unwinds into the run loop. Subsequent
// queued jobs still run.
func (d *Dispatcher) wrap(fn func()) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				d.reportFault(&JobError{Recovered: r})
			}
		}()
		fn()
	}
}

func (d *Dispatcher) reportFault(err error) {
	if d.onFault != nil {
		d.onFault(err)
		return
	}
	d.logger.Error("unhandled fault in dispatched job", "err", err)
}
