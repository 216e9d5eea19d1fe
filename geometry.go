// geometry.go re-exports geometry types from internal/geom.
// Any changes to internal/geom types must be mirrored here.
package layout

import "github.com/grindlemire/go-layout/internal/geom"

// Size represents a width/height pair in device-independent units.
type Size = geom.Size

// Point represents an x/y coordinate.
type Point = geom.Point

// Rect represents a rectangle with position and dimensions.
type Rect = geom.Rect

// NewSize creates a Size with the given width and height.
func NewSize(w, h float64) Size {
	return geom.NewSize(w, h)
}

// NewRect creates a Rect with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return geom.NewRect(x, y, w, h)
}

// RectFromSize creates a Rect at the origin with the given size.
func RectFromSize(s Size) Rect {
	return geom.RectFromSize(s)
}

// Infinite returns the unconstrained measure size.
func Infinite() Size {
	return geom.Infinite()
}
