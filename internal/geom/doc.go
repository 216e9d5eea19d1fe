// Package geom provides the geometry value types used by measure and
// arrange: sizes, points, and rectangles in device-independent units.
//
// All types are plain float64 value types with no behavior beyond
// construction and clamping. They are re-exported through the root layout
// package for public consumption.
package geom
