package layout

import "context"

// Pending is the completion handle returned by Dispatcher.InvokeAsync. It
// resolves after the posted action has run on the loop thread, carrying the
// action's error (or a JobError if the action panicked).
type Pending struct {
	done chan struct{}
	err  error // written once before done closes
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

func (p *Pending) complete(err error) {
	p.err = err
	close(p.done)
}

// Done returns a channel closed when the action has run.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Err returns the action's error. Valid only after Done is closed; before
// that it returns nil.
func (p *Pending) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

// Wait blocks until the action has run or ctx is cancelled, returning the
// action's error or the context's.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
