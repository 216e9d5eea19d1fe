package geom

import "math"

// Size represents a (W, H) pair in device-independent units.
type Size struct {
	W, H float64
}

// NewSize creates a Size with the given width and height.
func NewSize(w, h float64) Size {
	return Size{W: w, H: h}
}

// Infinite returns the unconstrained size, used as the measure constraint
// when no previous constraint has been recorded for a node.
func Infinite() Size {
	return Size{W: math.Inf(1), H: math.Inf(1)}
}

// IsInfinite returns true if either dimension is unbounded.
func (s Size) IsInfinite() bool {
	return math.IsInf(s.W, 1) || math.IsInf(s.H, 1)
}

// Constrain clamps s so that neither dimension exceeds c.
func (s Size) Constrain(c Size) Size {
	return Size{
		W: math.Min(s.W, c.W),
		H: math.Min(s.H, c.H),
	}
}

// Union returns the element-wise maximum of s and other.
func (s Size) Union(other Size) Size {
	return Size{
		W: math.Max(s.W, other.W),
		H: math.Max(s.H, other.H),
	}
}

// IsZero returns true if both dimensions are zero.
func (s Size) IsZero() bool {
	return s.W == 0 && s.H == 0
}
