// Package sdfx implements the fill.Predicate contract using the
// github.com/deadsy/sdfx signed-distance CAD library. Each contour is
// flattened to a polygon SDF; outer polygons are unioned and nested
// (hole) polygons subtracted, so a point is filled iff its signed
// distance to the combined shape is negative.
package sdfx

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/roberto-arista/cam-simulator/pkg/fill"
	"github.com/roberto-arista/cam-simulator/pkg/geometry"
	"github.com/roberto-arista/cam-simulator/pkg/outline"
)

// Compile-time interface check.
var _ fill.Predicate = (*Glyph)(nil)

// Glyph wraps the combined sdf.SDF2 of one glyph outline.
type Glyph struct {
	shape sdf.SDF2
}

// New flattens the outline at the given cadence and builds the signed
// distance field. An outline whose contours all flatten to nothing
// yields a predicate that is false everywhere.
func New(o *outline.Outline, spacing float64) (*Glyph, error) {
	polygons := fill.Polygons(o, spacing)

	var solids, holes []sdf.SDF2
	for i, poly := range polygons {
		s, err := sdf.Polygon2D(vecs(poly))
		if err != nil {
			return nil, fmt.Errorf("sdfx: contour %d: %w", i, err)
		}
		// Nesting depth decides solid vs hole: a contour whose
		// vertex sits inside an odd number of other contours cuts
		// a hole (even-odd rule).
		if nestingDepth(polygons, i)%2 == 0 {
			solids = append(solids, s)
		} else {
			holes = append(holes, s)
		}
	}

	if len(solids) == 0 {
		return &Glyph{}, nil
	}
	shape := sdf.Union2D(solids...)
	if len(holes) > 0 {
		shape = sdf.Difference2D(shape, sdf.Union2D(holes...))
	}
	return &Glyph{shape: shape}, nil
}

// PointInside reports whether pt is inside the filled area: strictly
// negative signed distance.
func (g *Glyph) PointInside(pt geometry.Point) bool {
	if g.shape == nil {
		return false
	}
	return g.shape.Evaluate(v2.Vec{X: pt.X, Y: pt.Y}) < 0
}

// nestingDepth counts how many other polygons contain the first vertex
// of polygon i.
func nestingDepth(polygons [][]geometry.Point, i int) int {
	depth := 0
	for j, other := range polygons {
		if j == i {
			continue
		}
		if fill.InsidePolygon(other, polygons[i][0]) {
			depth++
		}
	}
	return depth
}

// vecs converts points to sdfx vectors, dropping a duplicated closing
// vertex; sdf.Polygon2D closes the polygon itself.
func vecs(poly []geometry.Point) []v2.Vec {
	if len(poly) > 1 && poly[0] == poly[len(poly)-1] {
		poly = poly[:len(poly)-1]
	}
	out := make([]v2.Vec, len(poly))
	for i, pt := range poly {
		out[i] = v2.Vec{X: pt.X, Y: pt.Y}
	}
	return out
}
