package layout

// Priority orders deferred jobs on the loop thread. Lower values run first.
// Layout passes always run at PriorityRender, so input work preempts a
// pending pass while background work never runs ahead of one.
type Priority int

const (
	// PrioritySend runs before any other queued work.
	PrioritySend Priority = iota
	// PriorityInput is for interactive input handling.
	PriorityInput
	// PriorityNormal is the default for posted callbacks.
	PriorityNormal
	// PriorityRender is where layout passes run.
	PriorityRender
	// PriorityBackground is idle work, run only when nothing else is queued.
	PriorityBackground

	numPriorities = int(PriorityBackground) + 1
)

// Valid reports whether p is one of the defined priority levels.
func (p Priority) Valid() bool {
	return p >= PrioritySend && p <= PriorityBackground
}

func (p Priority) String() string {
	switch p {
	case PrioritySend:
		return "send"
	case PriorityInput:
		return "input"
	case PriorityNormal:
		return "normal"
	case PriorityRender:
		return "render"
	case PriorityBackground:
		return "background"
	default:
		return "unknown"
	}
}
