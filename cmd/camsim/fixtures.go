package main

import (
	"fmt"

	"github.com/roberto-arista/cam-simulator/pkg/geometry"
	"github.com/roberto-arista/cam-simulator/pkg/outline"
)

// circleKappa is the control-point offset factor approximating a
// quarter circle with one cubic bezier.
const circleKappa = 0.5519150244935105

// fixture builds one of the built-in demo glyphs. Coordinates are font
// design units, y-up, counter-clockwise outer contours, clockwise
// holes.
func fixture(name string) (*outline.Outline, error) {
	b := outline.NewBuilder()
	switch name {
	case "square":
		squareCCW(b, 100, 100, 500)
	case "notch":
		// A square with a deep rectangular notch cut into its top
		// edge: two concave corners a wide bit cannot reach.
		b.MoveTo(geometry.Pt(100, 100))
		b.LineTo(geometry.Pt(600, 100))
		b.LineTo(geometry.Pt(600, 600))
		b.LineTo(geometry.Pt(420, 600))
		b.LineTo(geometry.Pt(420, 300))
		b.LineTo(geometry.Pt(280, 300))
		b.LineTo(geometry.Pt(280, 600))
		b.LineTo(geometry.Pt(100, 600))
		b.ClosePath()
	case "ring":
		// Letter-O shape: outer circle counter-clockwise, inner
		// circle clockwise.
		circle(b, 350, 350, 300, false)
		circle(b, 350, 350, 150, true)
	default:
		return nil, fmt.Errorf("unknown glyph fixture %q", name)
	}
	return b.Outline(), nil
}

func squareCCW(pen outline.Pen, x, y, side float64) {
	pen.MoveTo(geometry.Pt(x, y))
	pen.LineTo(geometry.Pt(x+side, y))
	pen.LineTo(geometry.Pt(x+side, y+side))
	pen.LineTo(geometry.Pt(x, y+side))
	pen.ClosePath()
}

// circle draws a circle approximated by four cubic arcs, starting at
// the rightmost point, counter-clockwise unless reversed.
func circle(pen outline.Pen, cx, cy, r float64, clockwise bool) {
	k := circleKappa * r
	pen.MoveTo(geometry.Pt(cx+r, cy))
	if clockwise {
		pen.CurveTo(geometry.Pt(cx+r, cy-k), geometry.Pt(cx+k, cy-r), geometry.Pt(cx, cy-r))
		pen.CurveTo(geometry.Pt(cx-k, cy-r), geometry.Pt(cx-r, cy-k), geometry.Pt(cx-r, cy))
		pen.CurveTo(geometry.Pt(cx-r, cy+k), geometry.Pt(cx-k, cy+r), geometry.Pt(cx, cy+r))
		pen.CurveTo(geometry.Pt(cx+k, cy+r), geometry.Pt(cx+r, cy+k), geometry.Pt(cx+r, cy))
	} else {
		pen.CurveTo(geometry.Pt(cx+r, cy+k), geometry.Pt(cx+k, cy+r), geometry.Pt(cx, cy+r))
		pen.CurveTo(geometry.Pt(cx-k, cy+r), geometry.Pt(cx-r, cy+k), geometry.Pt(cx-r, cy))
		pen.CurveTo(geometry.Pt(cx-r, cy-k), geometry.Pt(cx-k, cy-r), geometry.Pt(cx, cy-r))
		pen.CurveTo(geometry.Pt(cx+k, cy-r), geometry.Pt(cx+r, cy-k), geometry.Pt(cx+r, cy))
	}
	pen.ClosePath()
}
