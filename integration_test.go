package layout

import (
	"testing"
)

// TestInitialLayoutPass_EndToEnd covers the first-paint scenario: a root
// measured against its max client size, one child measured during the
// root's measure, the root arranged to its desired size, and the child left
// unarranged because the root never assigned it a slot. An invalidation
// raised during the initial pass must converge in the follow-up pass.
func TestInitialLayoutPass_EndToEnd(t *testing.T) {
	m, _ := newHeadlessManager(t)
	calls := &callLog{}

	root := newTestRoot("R", NewSize(800, 600), calls)
	child := newTestNode("A", calls)
	child.parent = root

	root.onMeasure = func(constraint Size) {
		// A container measures its children; deciding scroll chrome after
		// that first measurement invalidates the child's arrange.
		child.Measure(constraint)
		m.InvalidateArrange(child)
	}

	m.ExecuteInitialLayoutPass(root)

	if got := calls.count("measure:R"); got != 1 {
		t.Errorf("root measured %d times, want 1", got)
	}
	if got := calls.count("measure:A"); got != 1 {
		t.Errorf("child measured %d times, want 1", got)
	}
	if root.prevRect == nil || *root.prevRect != NewRect(0, 0, 800, 600) {
		t.Errorf("root arranged to %+v, want (0,0,800,600)", root.prevRect)
	}
	if child.prevRect != nil {
		t.Errorf("child arranged to %+v, want unarranged (no slot assigned)", *child.prevRect)
	}
	if m.PendingMeasureCount() != 0 || m.PendingArrangeCount() != 0 {
		t.Errorf("dirty sets after follow-up pass: measure=%d arrange=%d, want both 0",
			m.PendingMeasureCount(), m.PendingArrangeCount())
	}
}

// TestLayoutPass_FeedbackWithinPass verifies that nodes invalidated from
// inside a running pass are picked up by the same pass's drain loop.
func TestLayoutPass_FeedbackWithinPass(t *testing.T) {
	m, d := newHeadlessManager(t)
	calls := &callLog{}

	content := newTestNode("content", calls)
	scrollbar := newTestNode("scrollbar", calls)

	fired := false
	content.onMeasure = func(Size) {
		if fired {
			return
		}
		fired = true
		scrollbar.measureValid = false
		m.InvalidateMeasure(scrollbar)
	}

	content.measureValid = false
	m.InvalidateMeasure(content)
	d.RunJobs()

	if got := calls.count("measure:scrollbar"); got != 1 {
		t.Errorf("scrollbar measured %d times, want 1 (picked up mid-pass)", got)
	}
	if m.PendingMeasureCount() != 0 || m.PendingArrangeCount() != 0 {
		t.Errorf("dirty sets not drained: measure=%d arrange=%d",
			m.PendingMeasureCount(), m.PendingArrangeCount())
	}
}

// TestLayoutPass_RunsAtRenderPriority proves a pending layout pass yields
// to input work but runs ahead of background work.
func TestLayoutPass_RunsAtRenderPriority(t *testing.T) {
	m, d := newHeadlessManager(t)

	var order []string
	d.Post(func() { order = append(order, "background") }, PriorityBackground)

	node := newTestNode("a", nil)
	node.measureValid = false
	m.InvalidateMeasure(node) // queues the pass at render priority

	d.Post(func() { order = append(order, "input") }, PriorityInput)
	d.Post(func() { order = append(order, "probe") }, PriorityRender)

	probeSeen := func() int {
		for i, e := range order {
			if e == "probe" {
				return i
			}
		}
		return -1
	}

	d.RunJobs()

	if len(order) != 3 {
		t.Fatalf("ran %d marker jobs, want 3", len(order))
	}
	if order[0] != "input" {
		t.Errorf("order = %v, want input first (layout must not starve input)", order)
	}
	if order[2] != "background" {
		t.Errorf("order = %v, want background last (layout runs before idle work)", order)
	}
	if probeSeen() != 1 {
		t.Errorf("order = %v, want render-priority probe between input and background", order)
	}
}
