// Package crossings implements the fill.Predicate contract with an
// even-odd crossing-parity test over flattened contour polygons. It is
// the reference backend: dependency-free, easy to reason about, and
// used to cross-check the sdfx backend.
package crossings

import (
	"github.com/roberto-arista/cam-simulator/pkg/fill"
	"github.com/roberto-arista/cam-simulator/pkg/geometry"
	"github.com/roberto-arista/cam-simulator/pkg/outline"
)

// Compile-time interface check.
var _ fill.Predicate = (*Glyph)(nil)

// Glyph holds the flattened polygons of one glyph outline.
type Glyph struct {
	polygons [][]geometry.Point
}

// New flattens the outline at the given cadence and returns a
// containment predicate over it. Spacing should be small relative to
// the glyph's features; coarser flattening coarsens the fill boundary.
func New(o *outline.Outline, spacing float64) *Glyph {
	return &Glyph{polygons: fill.Polygons(o, spacing)}
}

// PointInside reports whether pt is inside the filled area, by the
// even-odd rule across all contours: a point inside an odd number of
// contours is filled, so holes cut out of outer contours stay empty.
func (g *Glyph) PointInside(pt geometry.Point) bool {
	inside := false
	for _, poly := range g.polygons {
		if fill.InsidePolygon(poly, pt) {
			inside = !inside
		}
	}
	return inside
}
