// Package outline defines the glyph outline data model and the
// drawing-pen protocol used to exchange outlines with a host, plus the
// contour walker that resamples an outline into fixed-cadence point
// trains.
package outline

import "github.com/roberto-arista/cam-simulator/pkg/geometry"

// Pen is the drawing callback protocol. An outline source invokes the
// four methods in path order, with absolute coordinates in font design
// units: MoveTo opens a contour, LineTo/CurveTo extend it, ClosePath
// ends it. Every contour boundary is closed exactly once.
type Pen interface {
	MoveTo(pt geometry.Point)
	LineTo(pt geometry.Point)
	CurveTo(c1, c2, end geometry.Point)
	ClosePath()
}

// Segment is one step of a contour: a straight line to End, or, when
// IsCurve is set, a cubic bezier through Control1 and Control2 to End.
// The segment's start point is implicit (the previous segment's end,
// or the contour start).
type Segment struct {
	Control1 geometry.Point
	Control2 geometry.Point
	End      geometry.Point
	IsCurve  bool
}

// Contour is a closed sequence of segments beginning at Start. The
// closing edge from the last segment's end back to Start is implicit.
type Contour struct {
	Start    geometry.Point
	Segments []Segment
}

// Outline is an ordered sequence of contours describing one glyph.
type Outline struct {
	Contours []Contour
}

// Draw replays the outline through the pen, one MoveTo/.../ClosePath
// round per contour.
func (o *Outline) Draw(pen Pen) {
	for _, c := range o.Contours {
		pen.MoveTo(c.Start)
		for _, s := range c.Segments {
			if s.IsCurve {
				pen.CurveTo(s.Control1, s.Control2, s.End)
			} else {
				pen.LineTo(s.End)
			}
		}
		pen.ClosePath()
	}
}

// Builder records pen callbacks into an Outline. It satisfies Pen, so
// a host can draw straight into it.
type Builder struct {
	outline Outline
	current *Contour
}

var _ Pen = (*Builder)(nil)

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// MoveTo opens a new contour at pt. An unclosed previous contour is
// dropped; hosts are expected to close every contour.
func (b *Builder) MoveTo(pt geometry.Point) {
	b.current = &Contour{Start: pt}
}

// LineTo appends a line segment to the open contour.
func (b *Builder) LineTo(pt geometry.Point) {
	if b.current == nil {
		return
	}
	b.current.Segments = append(b.current.Segments, Segment{End: pt})
}

// CurveTo appends a cubic segment to the open contour.
func (b *Builder) CurveTo(c1, c2, end geometry.Point) {
	if b.current == nil {
		return
	}
	b.current.Segments = append(b.current.Segments, Segment{
		Control1: c1,
		Control2: c2,
		End:      end,
		IsCurve:  true,
	})
}

// ClosePath finalizes the open contour and adds it to the outline.
func (b *Builder) ClosePath() {
	if b.current == nil {
		return
	}
	b.outline.Contours = append(b.outline.Contours, *b.current)
	b.current = nil
}

// Outline returns the contours recorded so far.
func (b *Builder) Outline() *Outline {
	o := b.outline
	return &o
}
