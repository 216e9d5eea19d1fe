package layout

// Layoutable is the capability contract the layout manager requires from a
// visual-tree node. The manager works entirely with this interface; the
// tree/control layer owns the concrete node types and the parent/child
// edges.
//
// Measure and Arrange may, as a side effect, invalidate other nodes (their
// own children, or unrelated nodes such as a scrollbar owner). The manager
// picks those up in the same pass or a follow-up pass.
type Layoutable interface {
	// Measure computes the node's desired size under the given constraint.
	// After Measure returns, MeasureValid must report true unless the node
	// re-invalidated itself during measurement (feedback).
	Measure(constraint Size) Size

	// Arrange assigns the node its final rectangle within the space its
	// parent allotted.
	Arrange(rect Rect)

	// MeasureValid reports whether the current measure result is up to date.
	MeasureValid() bool

	// ArrangeValid reports whether the current arrange result is up to date.
	ArrangeValid() bool

	// PreviousMeasureConstraint returns the constraint used for the last
	// measure, or ok=false if the node has never been measured.
	PreviousMeasureConstraint() (constraint Size, ok bool)

	// PreviousArrangeRect returns the rectangle used for the last arrange,
	// or ok=false if the node has never been arranged. A node without a
	// recorded rect has no layout slot yet and is skipped by arrange drains.
	PreviousArrangeRect() (rect Rect, ok bool)

	// LayoutParent returns the node's parent in the visual tree, or nil for
	// detached nodes and roots. The edge is non-owning: the manager only
	// navigates it, it never mutates tree topology.
	LayoutParent() Layoutable
}

// LayoutRoot anchors a visual tree. Roots measure against an external
// maximum client size instead of a parent-provided constraint.
type LayoutRoot interface {
	Layoutable

	// MaxClientSize returns the maximum size available to the root,
	// typically the window client area.
	MaxClientSize() Size

	// DesiredSize returns the size the root asked for in its last measure.
	DesiredSize() Size
}
