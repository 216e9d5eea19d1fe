package layout

import (
	"time"

	"github.com/charmbracelet/log"
)

// Default safety caps. Layout is a fixed-point computation over a graph
// that can contain feedback; the caps trade full convergence in one pass
// for bounded latency, leaving unconverged nodes dirty for a later pass.
const (
	// DefaultCycleLimit is the number of measure+arrange cycles one pass
	// runs before deferring remaining work.
	DefaultCycleLimit = 3
	// DefaultNodeCap is the number of nodes a single drain processes
	// before deferring.
	DefaultNodeCap = 100
	// DefaultRevisitCap is how many times one node may be remeasured (or
	// rearranged) within a single pass before its invalidations are
	// dropped as a cycle.
	DefaultRevisitCap = 10
)

// Manager tracks dirty nodes and runs bounded measure/arrange passes to a
// fixed point, re-arming itself through the dispatcher when new
// invalidations arrive. One Manager exists per loop thread; all of its
// state is thread-confined and guarded by the dispatcher's affinity checks
// rather than locks.
type Manager struct {
	dispatcher *Dispatcher
	logger     *log.Logger
	onCycle    func(CycleEvent)

	cycleLimit int
	nodeCap    int
	revisitCap int

	nodes          *arena
	pendingMeasure *dirtySet
	pendingArrange *dirtySet

	// Per-pass revisit counters, reset at the start of every top-level
	// pass. Used only for cycle detection within that pass.
	measureVisits map[Handle]int
	arrangeVisits map[Handle]int

	// passRequested is true between requesting a deferred pass and that
	// pass starting: at most one pass job is ever outstanding.
	passRequested bool
	passRunning   bool

	stats PassStats
}

// NewManager creates a layout manager riding on the given dispatcher.
func NewManager(d *Dispatcher, opts ...ManagerOption) (*Manager, error) {
	if d == nil {
		return nil, ErrNoDispatcher
	}
	m := &Manager{
		dispatcher:     d,
		logger:         log.Default(),
		cycleLimit:     DefaultCycleLimit,
		nodeCap:        DefaultNodeCap,
		revisitCap:     DefaultRevisitCap,
		nodes:          newArena(),
		pendingMeasure: newDirtySet(),
		pendingArrange: newDirtySet(),
		measureVisits:  make(map[Handle]int),
		arrangeVisits:  make(map[Handle]int),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// InvalidateMeasure marks a node's measure result stale. Invalidating
// measure implies the arrange result is stale too, so the node joins both
// dirty sets, and a deferred pass is requested.
//
// If the node already hit its measure revisit cap within the current pass
// the invalidation is dropped (cycle breaker): a warning is logged and the
// cycle handler, if any, is notified.
func (m *Manager) InvalidateMeasure(node Layoutable) {
	m.dispatcher.VerifyAccess()
	if node == nil {
		panic(ErrNilNode)
	}

	h := m.nodes.handleFor(node)
	if visits := m.measureVisits[h]; visits >= m.revisitCap {
		m.breakCycle(node, h, PhaseMeasure, visits)
		return
	}

	m.pendingMeasure.add(h)
	m.pendingArrange.add(h)
	m.requestPass()
}

// InvalidateArrange marks a node's arrange result stale and requests a
// deferred pass. Subject to the arrange revisit cap like InvalidateMeasure.
func (m *Manager) InvalidateArrange(node Layoutable) {
	m.dispatcher.VerifyAccess()
	if node == nil {
		panic(ErrNilNode)
	}

	h := m.nodes.handleFor(node)
	if visits := m.arrangeVisits[h]; visits >= m.revisitCap {
		m.breakCycle(node, h, PhaseArrange, visits)
		return
	}

	m.pendingArrange.add(h)
	m.requestPass()
}

// ExecuteLayoutPass drains the dirty sets, remeasuring and rearranging
// nodes and their stale ancestors, until a fixed point or a safety cap.
//
// Calling it from inside a running pass (a node invalidating during its own
// Measure) only clears the request flag and returns: the active pass's loop
// picks up the new dirty entries itself.
func (m *Manager) ExecuteLayoutPass() {
	m.dispatcher.VerifyAccess()

	m.passRequested = false
	if m.passRunning {
		return
	}
	m.passRunning = true
	defer func() { m.passRunning = false }()

	start := time.Now()
	clear(m.measureVisits)
	clear(m.arrangeVisits)
	m.stats = PassStats{}

	m.logger.Debug("layout pass started",
		"pending_measure", m.pendingMeasure.len(),
		"pending_arrange", m.pendingArrange.len())

	for cycle := 0; cycle < m.cycleLimit; cycle++ {
		m.stats.Cycles++

		mr := m.drainMeasure()
		ar := m.drainArrange()

		if mr.Reason == DrainCapped || ar.Reason == DrainCapped {
			break
		}
		if m.pendingMeasure.empty() {
			break
		}
	}

	m.stats.Elapsed = time.Since(start)
	m.logger.Info("layout pass finished",
		"measured", m.stats.Measured,
		"arranged", m.stats.Arranged,
		"cycles", m.stats.Cycles,
		"duration", m.stats.Elapsed)

	clear(m.measureVisits)
	clear(m.arrangeVisits)

	// The pass must be over before the re-request below: requestPass treats
	// a running pass as already covering new work.
	m.passRunning = false

	// Caps hit or cycle limit reached with dirty nodes left: defer, never
	// force convergence synchronously.
	if !m.pendingMeasure.empty() || !m.pendingArrange.empty() {
		m.requestPass()
	}
}

// ExecuteInitialLayoutPass synchronously measures and arranges a root end
// to end for first paint, bypassing the dirty-set machinery, then runs a
// normal pass: the initial measurement commonly invalidates descendants
// (scrollbar visibility can only be decided after the first measure).
func (m *Manager) ExecuteInitialLayoutPass(root LayoutRoot) {
	m.dispatcher.VerifyAccess()
	if root == nil {
		panic(ErrNilNode)
	}

	root.Measure(root.MaxClientSize())
	root.Arrange(RectFromSize(root.DesiredSize()))

	m.ExecuteLayoutPass()
}

// Stats returns the counters of the most recently completed pass. They
// stay readable until the next pass starts, which zeroes them.
func (m *Manager) Stats() PassStats {
	return m.stats
}

// PendingMeasureCount returns the size of the pending-measure set.
func (m *Manager) PendingMeasureCount() int {
	return m.pendingMeasure.len()
}

// PendingArrangeCount returns the size of the pending-arrange set.
func (m *Manager) PendingArrangeCount() int {
	return m.pendingArrange.len()
}

// requestPass posts a deferred pass at render priority. Idempotent: if a
// pass is already requested or running, the existing pass (or its end-of-
// pass re-request) covers the new work.
func (m *Manager) requestPass() {
	if m.passRequested || m.passRunning {
		return
	}
	m.passRequested = true
	m.dispatcher.Post(m.ExecuteLayoutPass, PriorityRender)
}

// drainMeasure pops nodes from pending-measure and brings their measure up
// to date, stale ancestors first. Stops early at the per-pass node cap.
func (m *Manager) drainMeasure() DrainResult {
	res := DrainResult{Reason: DrainConverged}
	for !m.pendingMeasure.empty() {
		if res.Processed >= m.nodeCap {
			res.Reason = DrainCapped
			return res
		}
		h, _ := m.pendingMeasure.pop()
		m.measureNode(m.nodes.node(h), h)
		res.Processed++
	}
	return res
}

// measureNode remeasures a node if its measure is still invalid. Roots
// measure against their external max client size; other nodes remeasure
// stale ancestors first, since a parent's size change can alter the
// constraint offered to its children, then reuse their previous constraint
// (or an unconstrained fallback if none was recorded).
func (m *Manager) measureNode(node Layoutable, h Handle) {
	if root, ok := node.(LayoutRoot); ok {
		if !root.MeasureValid() {
			// Count the visit before measuring so an invalidation raised
			// from inside Measure sees it.
			m.measureVisits[h]++
			m.stats.Measured++
			root.Measure(root.MaxClientSize())
		}
		return
	}

	if parent := node.LayoutParent(); parent != nil && !parent.MeasureValid() {
		m.measureNode(parent, m.nodes.handleFor(parent))
	}

	// Measuring the parent may have measured this node as a side effect.
	if node.MeasureValid() {
		return
	}

	constraint, ok := node.PreviousMeasureConstraint()
	if !ok {
		constraint = Infinite()
	}
	m.measureVisits[h]++
	m.stats.Measured++
	node.Measure(constraint)
}

// drainArrange mirrors drainMeasure but only proceeds while the measure set
// is empty: arranging against a stale measurement is meaningless, so
// arrange always trails a converged measure state within the cycle.
func (m *Manager) drainArrange() DrainResult {
	res := DrainResult{Reason: DrainConverged}
	for m.pendingMeasure.empty() && !m.pendingArrange.empty() {
		if res.Processed >= m.nodeCap {
			res.Reason = DrainCapped
			return res
		}
		h, _ := m.pendingArrange.pop()
		m.arrangeNode(m.nodes.node(h), h)
		res.Processed++
	}
	return res
}

// arrangeNode rearranges a node if its arrange is still invalid, stale
// ancestors first. A node with no recorded arrange rect has no layout slot
// yet (its parent's arrange hasn't run) and is skipped unarranged.
func (m *Manager) arrangeNode(node Layoutable, h Handle) {
	if root, ok := node.(LayoutRoot); ok {
		if !root.ArrangeValid() {
			m.arrangeVisits[h]++
			m.stats.Arranged++
			root.Arrange(RectFromSize(root.DesiredSize()))
		}
		return
	}

	if parent := node.LayoutParent(); parent != nil && !parent.ArrangeValid() {
		m.arrangeNode(parent, m.nodes.handleFor(parent))
	}

	if node.ArrangeValid() {
		return
	}

	rect, ok := node.PreviousArrangeRect()
	if !ok {
		return
	}
	m.arrangeVisits[h]++
	m.stats.Arranged++
	node.Arrange(rect)
}

// breakCycle drops an over-cap invalidation and reports it.
func (m *Manager) breakCycle(node Layoutable, h Handle, phase Phase, visits int) {
	m.logger.Warn("layout cycle detected, dropping invalidation",
		"handle", int(h),
		"phase", phase,
		"visits", visits)
	if m.onCycle != nil {
		m.onCycle(CycleEvent{Node: node, Handle: h, Phase: phase, Visits: visits})
	}
}
