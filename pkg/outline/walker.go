package outline

import "github.com/roberto-arista/cam-simulator/pkg/geometry"

// Train is the resampled point train of one contour. Points follow the
// contour's drawing order at a roughly fixed arc-length cadence.
// Clockwise records the contour's winding, taken from the sign of the
// shoelace sum over the train: a positive sum is counter-clockwise.
// Winding only drives the preview fill rule, never collision logic.
type Train struct {
	Points    []geometry.Point
	Clockwise bool
}

// trainPen resamples pen callbacks into per-contour point trains. All
// accumulation state lives here, scoped to one walk; nothing survives
// across walks.
type trainPen struct {
	spacing float64
	trains  []Train

	points []geometry.Point
	first  geometry.Point
	prev   geometry.Point
	open   bool
}

var _ Pen = (*trainPen)(nil)

func (p *trainPen) MoveTo(pt geometry.Point) {
	p.points = nil
	p.first = pt
	p.prev = pt
	p.open = true
}

func (p *trainPen) LineTo(pt geometry.Point) {
	if !p.open {
		return
	}
	p.points = append(p.points, geometry.ResampleLine(p.prev, pt, p.spacing)...)
	p.prev = pt
}

func (p *trainPen) CurveTo(c1, c2, end geometry.Point) {
	if !p.open {
		return
	}
	p.points = append(p.points, geometry.ResampleCubic(p.prev, c1, c2, end, p.spacing)...)
	p.prev = end
}

func (p *trainPen) ClosePath() {
	if !p.open {
		return
	}
	// The closing edge back to the contour start is implicit in the
	// pen protocol; resample it like any other line.
	p.points = append(p.points, geometry.ResampleLine(p.prev, p.first, p.spacing)...)
	p.trains = append(p.trains, Train{
		Points:    p.points,
		Clockwise: signedArea(p.points) <= 0,
	})
	p.points = nil
	p.open = false
}

// signedArea is twice the shoelace area of the closed polygon through
// the points. Positive means counter-clockwise.
func signedArea(points []geometry.Point) float64 {
	var sum float64
	for i, pt := range points {
		next := points[(i+1)%len(points)]
		sum += pt.X*next.Y - next.X*pt.Y
	}
	return sum
}

// Trains walks the outline and returns one resampled point train per
// contour, in contour order. Spacing is the sampling cadence in design
// units. Degenerate contours still yield a (possibly empty) train;
// consumers skip trains with fewer than two distinct points.
func (o *Outline) Trains(spacing float64) []Train {
	pen := &trainPen{spacing: spacing}
	o.Draw(pen)
	return pen.trains
}
