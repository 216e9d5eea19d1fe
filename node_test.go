package layout

import (
	"fmt"
	"testing"
)

// callLog records measure/arrange invocations in order so tests can assert
// on scheduling decisions rather than geometry.
type callLog struct {
	entries []string
}

func (l *callLog) record(format string, args ...any) {
	l.entries = append(l.entries, fmt.Sprintf(format, args...))
}

func (l *callLog) count(entry string) int {
	n := 0
	for _, e := range l.entries {
		if e == entry {
			n++
		}
	}
	return n
}

// testNode is a minimal Layoutable for exercising the manager. Hooks run
// inside Measure/Arrange after the validity flag is set, so a hook that
// re-invalidates the node models layout feedback.
type testNode struct {
	name   string
	parent Layoutable

	measureValid bool
	arrangeValid bool

	prevConstraint *Size
	prevRect       *Rect

	desired Size

	onMeasure func(constraint Size)
	onArrange func(rect Rect)

	calls *callLog
}

func newTestNode(name string, calls *callLog) *testNode {
	return &testNode{name: name, calls: calls, desired: NewSize(100, 50)}
}

func (n *testNode) Measure(constraint Size) Size {
	if n.calls != nil {
		n.calls.record("measure:%s", n.name)
	}
	c := constraint
	n.prevConstraint = &c
	n.measureValid = true
	if n.onMeasure != nil {
		n.onMeasure(constraint)
	}
	return n.desired.Constrain(constraint)
}

func (n *testNode) Arrange(rect Rect) {
	if n.calls != nil {
		n.calls.record("arrange:%s", n.name)
	}
	r := rect
	n.prevRect = &r
	n.arrangeValid = true
	if n.onArrange != nil {
		n.onArrange(rect)
	}
}

func (n *testNode) MeasureValid() bool { return n.measureValid }
func (n *testNode) ArrangeValid() bool { return n.arrangeValid }

func (n *testNode) PreviousMeasureConstraint() (Size, bool) {
	if n.prevConstraint == nil {
		return Size{}, false
	}
	return *n.prevConstraint, true
}

func (n *testNode) PreviousArrangeRect() (Rect, bool) {
	if n.prevRect == nil {
		return Rect{}, false
	}
	return *n.prevRect, true
}

func (n *testNode) LayoutParent() Layoutable {
	return n.parent
}

// invalidateSelf models a node invalidating its own measure from inside
// user code: the node's cached result goes stale and the manager is told.
func (n *testNode) invalidateSelf(m *Manager) {
	n.measureValid = false
	m.InvalidateMeasure(n)
}

// testRoot anchors a tree for initial-pass tests.
type testRoot struct {
	testNode
	maxClient Size
}

func newTestRoot(name string, maxClient Size, calls *callLog) *testRoot {
	r := &testRoot{maxClient: maxClient}
	r.name = name
	r.calls = calls
	r.desired = maxClient
	return r
}

func (r *testRoot) MaxClientSize() Size { return r.maxClient }
func (r *testRoot) DesiredSize() Size   { return r.desired }

// newHeadlessManager builds a manager on a headless dispatcher (no event
// source, so every goroutine passes the affinity check) for direct-drive
// tests.
func newHeadlessManager(t *testing.T, opts ...ManagerOption) (*Manager, *Dispatcher) {
	t.Helper()
	d, err := NewDispatcher(nil)
	if err != nil {
		t.Fatalf("NewDispatcher: %v", err)
	}
	m, err := NewManager(d, opts...)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m, d
}
