// Package fill defines the point-containment contract the simulation
// probes against. Implementations answer whether a point lies within
// the filled (black) area of the whole glyph, all contours combined.
// Backend implementations live in sub-packages (sdfx, crossings); a
// host with its own fill engine can satisfy Predicate directly.
package fill

import (
	"github.com/roberto-arista/cam-simulator/pkg/geometry"
	"github.com/roberto-arista/cam-simulator/pkg/outline"
)

// Predicate reports whether a point is inside the filled area of the
// glyph. Implementations must be read-only during a simulation call;
// any panic they raise propagates to the caller unchanged.
type Predicate interface {
	PointInside(pt geometry.Point) bool
}

// Func adapts a plain function to Predicate.
type Func func(pt geometry.Point) bool

// PointInside implements Predicate.
func (f Func) PointInside(pt geometry.Point) bool {
	return f(pt)
}

// Polygons flattens every contour of the outline into a closed polygon
// sampled at the given cadence. Contours that flatten to fewer than
// three points are dropped: they enclose no area.
func Polygons(o *outline.Outline, spacing float64) [][]geometry.Point {
	trains := o.Trains(spacing)
	polys := make([][]geometry.Point, 0, len(trains))
	for _, tr := range trains {
		if len(tr.Points) < 3 {
			continue
		}
		polys = append(polys, tr.Points)
	}
	return polys
}

// InsidePolygon reports whether pt lies inside the closed polygon, by
// the even-odd rule (edge-crossing parity on a horizontal ray).
func InsidePolygon(polygon []geometry.Point, pt geometry.Point) bool {
	inside := false
	for i, a := range polygon {
		b := polygon[(i+1)%len(polygon)]
		if (a.Y > pt.Y) == (b.Y > pt.Y) {
			continue
		}
		x := a.X + (pt.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
		if pt.X < x {
			inside = !inside
		}
	}
	return inside
}
