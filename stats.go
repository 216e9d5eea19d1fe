package layout

import "time"

// DrainReason reports how a measure or arrange drain ended. Capped drains
// are expected, recoverable outcomes, not errors: remaining work is picked
// up by a follow-up pass.
type DrainReason int

const (
	// DrainConverged means the dirty set was emptied.
	DrainConverged DrainReason = iota
	// DrainCapped means the per-pass node cap was hit with work remaining.
	DrainCapped
)

func (r DrainReason) String() string {
	switch r {
	case DrainConverged:
		return "converged"
	case DrainCapped:
		return "capped"
	default:
		return "unknown"
	}
}

// DrainResult describes one drain within a pass-cycle.
type DrainResult struct {
	Reason    DrainReason
	Processed int
}

// PassStats holds the counters for the most recently completed layout pass.
type PassStats struct {
	Measured int
	Arranged int
	Cycles   int
	Elapsed  time.Duration
}

// Phase identifies which drain an event came from.
type Phase int

const (
	PhaseMeasure Phase = iota
	PhaseArrange
)

func (p Phase) String() string {
	switch p {
	case PhaseMeasure:
		return "measure"
	case PhaseArrange:
		return "arrange"
	default:
		return "unknown"
	}
}

// CycleEvent describes an invalidation dropped by the cycle breaker: the
// node hit its revisit cap within a single pass. Delivered to the manager's
// cycle handler so hosts can diagnose layout feedback loops instead of the
// drop being observable only as a log line.
type CycleEvent struct {
	Node   Layoutable
	Handle Handle
	Phase  Phase
	Visits int
}
