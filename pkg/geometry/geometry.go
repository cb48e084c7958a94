// Package geometry provides the 2D primitives used by the CAM
// simulation: cubic bezier evaluation, fixed-cadence resampling of
// lines and curves, and angle/projection helpers. All coordinates are
// font design units.
package geometry

import "math"

// flattenSteps is the fixed parameter resolution used to flatten a
// cubic before distance-based resampling. It is a constant, not
// derived from curve length.
const flattenSteps = 1000

// Point is a 2D point in font design units. Points compare with ==;
// exact equality is how degenerate/duplicate samples are detected.
type Point struct {
	X, Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// TPoint is a point tagged with the bezier parameter it was sampled at.
type TPoint struct {
	Point Point
	T     float64
}

// Distance returns the euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Interpolate linearly interpolates between v0 and v1.
func Interpolate(v0, v1, t float64) float64 {
	return v0 + t*(v1-v0)
}

// Angle returns the heading of the vector from a to b, in radians.
func Angle(a, b Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// Project returns the point at the given distance from p along the
// given angle.
func Project(p Point, angle, distance float64) Point {
	return Point{
		X: p.X + math.Cos(angle)*distance,
		Y: p.Y + math.Sin(angle)*distance,
	}
}

// cubicParameters converts the control points of a cubic bezier into
// polynomial coefficients, so the curve is a·t³ + b·t² + c·t + d.
func cubicParameters(p0, p1, p2, p3 Point) (a, b, c, d Point) {
	d = p0
	c = Point{X: (p1.X - p0.X) * 3, Y: (p1.Y - p0.Y) * 3}
	b = Point{X: (p2.X-p1.X)*3 - c.X, Y: (p2.Y-p1.Y)*3 - c.Y}
	a = Point{X: p3.X - p0.X - c.X - b.X, Y: p3.Y - p0.Y - c.Y - b.Y}
	return a, b, c, d
}

// PointOnCubic evaluates the cubic bezier with control points
// p0, p1, p2, p3 at parameter t in [0, 1], using the polynomial basis.
func PointOnCubic(p0, p1, p2, p3 Point, t float64) Point {
	a, b, c, d := cubicParameters(p0, p1, p2, p3)
	return Point{
		X: a.X*t*t*t + b.X*t*t + c.X*t + d.X,
		Y: a.Y*t*t*t + b.Y*t*t + c.Y*t + d.Y,
	}
}

// ResampleLine walks from p0 toward p1 in steps of spacing design
// units and returns the visited points. The first point is p0 itself;
// p1 is never included (contours stitch segment junctions via the next
// segment's own start). A span shorter than spacing yields no points.
func ResampleLine(p0, p1 Point, spacing float64) []Point {
	length := Distance(p0, p1)
	if length < spacing || length < 1 {
		return nil
	}
	whole := math.Floor(length)
	n := int(length / spacing)
	points := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		t := float64(i) * spacing / whole
		// Fractional spacing can push the position onto p1 itself;
		// the walk stops short of it.
		if t >= 1 {
			break
		}
		points = append(points, Point{
			X: Interpolate(p0.X, p1.X, t),
			Y: Interpolate(p0.Y, p1.Y, t),
		})
	}
	return points
}

// FlattenCubic samples the cubic at steps-2 uniform parameter
// increments, prepends (p0, 0) and appends (p3, 1), for a total of
// exactly steps samples. Sampling is parameter-uniform, not
// length-uniform: regions of high curvature get sparse length
// coverage, which downstream consumers tolerate.
func FlattenCubic(p0, p1, p2, p3 Point, steps int) []TPoint {
	a, b, c, d := cubicParameters(p0, p1, p2, p3)

	samples := make([]TPoint, 0, steps)
	samples = append(samples, TPoint{Point: p0, T: 0})
	for i := 1; i <= steps-2; i++ {
		t := float64(i) / float64(steps)
		pt := Point{
			X: a.X*t*t*t + b.X*t*t + c.X*t + d.X,
			Y: a.Y*t*t*t + b.Y*t*t + c.Y*t + d.Y,
		}
		samples = append(samples, TPoint{Point: pt, T: t})
	}
	samples = append(samples, TPoint{Point: p3, T: 1})
	return samples
}

// ResampleCubic returns points along the cubic spaced roughly spacing
// units apart by straight-line distance. The curve is first flattened
// at a fixed fine resolution, then walked greedily, keeping a raw
// sample only once the accumulated distance from the last kept point
// reaches spacing. The final raw point is always kept so segment ends
// close cleanly; a curve too short to ever reach spacing yields only
// its two endpoints.
func ResampleCubic(p0, p1, p2, p3 Point, spacing float64) []Point {
	raw := FlattenCubic(p0, p1, p2, p3, flattenSteps)

	var clean []Point
	i := 0
	for i < len(raw) {
		pt := raw[i].Point
		clean = append(clean, pt)
		advanced := false
		for j := i + 1; j < len(raw); j++ {
			if Distance(pt, raw[j].Point) >= spacing {
				i = j
				advanced = true
				break
			}
		}
		if !advanced {
			break
		}
	}

	last := raw[len(raw)-1].Point
	if clean[len(clean)-1] != last {
		clean = append(clean, last)
	}
	return clean
}
