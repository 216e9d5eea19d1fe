package layout

import "sync"

// maxDrainSweeps bounds one RunJobs invocation: the snapshot of work
// present at drain start, plus one additional sweep for jobs posted
// mid-drain. Anything later waits for the next signal, so a self-reposting
// job cannot monopolize the loop.
const maxDrainSweeps = 2

// jobRunner is a priority-bucketed FIFO queue of deferred callbacks. The
// dispatcher owns one and drains it on the loop thread; posting is safe
// from any goroutine.
type jobRunner struct {
	source EventSource // nil for headless dispatchers

	mu      sync.Mutex
	buckets [numPriorities][]func()
}

func newJobRunner(source EventSource) *jobRunner {
	return &jobRunner{source: source}
}

// post appends fn to the tail of the bucket for p and signals the source.
func (r *jobRunner) post(fn func(), p Priority) {
	r.mu.Lock()
	r.buckets[p] = append(r.buckets[p], fn)
	r.mu.Unlock()

	if r.source != nil {
		r.source.Signal()
	}
}

// take removes and returns everything queued as of now.
func (r *jobRunner) take() (batch [numPriorities][]func(), n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for p := range r.buckets {
		batch[p] = r.buckets[p]
		r.buckets[p] = nil
		n += len(batch[p])
	}
	return batch, n
}

// pending returns the number of queued jobs.
func (r *jobRunner) pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for p := range r.buckets {
		n += len(r.buckets[p])
	}
	return n
}

// drain runs queued jobs strictly by priority: every higher bucket empties
// before the next lower bucket starts, FIFO within a bucket. Returns the
// number of jobs run. Work left over after maxDrainSweeps re-signals the
// source instead of extending this drain.
func (r *jobRunner) drain() int {
	ran := 0
	for sweep := 0; sweep < maxDrainSweeps; sweep++ {
		batch, n := r.take()
		if n == 0 {
			return ran
		}
		for p := 0; p < numPriorities; p++ {
			for _, fn := range batch[p] {
				fn()
				ran++
			}
		}
	}

	if r.pending() > 0 && r.source != nil {
		r.source.Signal()
	}
	return ran
}
