// Command camsim runs the CAM border simulation on a built-in glyph
// fixture and writes the result as an SVG: the glyph silhouette, the
// clear bit circles in green, the colliding ones in red, and the
// sharp-offset preview outline.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jbeda/geom"

	"github.com/roberto-arista/cam-simulator/pkg/fill"
	"github.com/roberto-arista/cam-simulator/pkg/fill/crossings"
	sdffill "github.com/roberto-arista/cam-simulator/pkg/fill/sdfx"
	"github.com/roberto-arista/cam-simulator/pkg/geometry"
	"github.com/roberto-arista/cam-simulator/pkg/outline"
	"github.com/roberto-arista/cam-simulator/pkg/simulate"
)

// fillSpacing is the flattening cadence used when building containment
// predicates, finer than the probe cadence so the fill boundary stays
// close to the true outline.
const fillSpacing = 2

const (
	glyphStyle     = "fill: #d9d9d9"
	previewStyle   = "fill: none; stroke: #333333; stroke-width: 2"
	clearStyle     = "fill: rgb(0,255,0); fill-opacity: 0.4"
	collidingStyle = "fill: rgb(255,0,0); fill-opacity: 0.4"
)

func main() {
	var (
		bodySize = flag.Float64("body", 90, "stamp body size in points")
		bitSize  = flag.Float64("bit", 1, "cutting bit diameter in millimeters")
		upm      = flag.Float64("upm", 1000, "font units per em")
		glyph    = flag.String("glyph", "notch", "glyph fixture: square, notch or ring")
		backend  = flag.String("backend", "sdfx", "containment backend: sdfx or crossings")
		output   = flag.String("o", "camsim.svg", "output SVG path")
		verbose  = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	simulate.SetLogger(log)

	if err := run(log, *glyph, *backend, *upm, *bodySize, *bitSize, *output); err != nil {
		log.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, glyphName, backend string, upm, bodySize, bitSize float64, output string) error {
	o, err := fixture(glyphName)
	if err != nil {
		return err
	}

	var inside fill.Predicate
	switch backend {
	case "sdfx":
		inside, err = sdffill.New(o, fillSpacing)
		if err != nil {
			return err
		}
	case "crossings":
		inside = crossings.New(o, fillSpacing)
	default:
		return fmt.Errorf("unknown containment backend %q", backend)
	}

	result, err := simulate.Simulate(o, inside, upm, bodySize, bitSize)
	if err != nil {
		return err
	}
	log.Info("simulated",
		"glyph", glyphName,
		"bitDiameter", result.BitDiameter,
		"clear", len(result.Clear),
		"colliding", len(result.Colliding))

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()
	render(NewSVG(f), o, result)
	log.Info("wrote SVG", "path", output)
	return nil
}

// coord maps a font-space point (y-up) into SVG space (y-down).
func coord(pt geometry.Point) geom.Coord {
	return geom.Coord{X: pt.X, Y: -pt.Y}
}

func render(svg *SVG, o *outline.Outline, result *simulate.Result) {
	svg.Start(viewBox(o, result), "fill: none")

	// Glyph silhouette.
	for _, c := range o.Contours {
		svg.StartPath(coord(c.Start), glyphStyle)
		for _, s := range c.Segments {
			if s.IsCurve {
				svg.PathCubicBezierTo(coord(s.Control1), coord(s.Control2), coord(s.End))
			} else {
				svg.PathLineTo(coord(s.End))
			}
		}
		svg.PathClose()
		svg.EndPath()
	}

	// Bit circles, clear then colliding so errors draw on top.
	radius := result.BitDiameter / 2
	for _, probe := range result.Clear {
		svg.Circle(coord(probe.Position), radius, clearStyle)
	}
	for _, probe := range result.Colliding {
		svg.Circle(coord(probe.Position), radius, collidingStyle)
	}

	// Sharp-offset preview silhouette.
	for _, pc := range result.Preview {
		svg.StartPath(coord(pc.Points[0]), previewStyle)
		for _, pt := range pc.Points[1:] {
			svg.PathLineTo(coord(pt))
		}
		svg.EndPath()
	}

	svg.End()
}

// viewBox bounds the glyph and every probe circle, with a margin.
func viewBox(o *outline.Outline, result *simulate.Result) geom.Rect {
	var r geom.Rect
	if len(o.Contours) > 0 {
		start := coord(o.Contours[0].Start)
		r = geom.Rect{Min: start, Max: start}
	}
	for _, c := range o.Contours {
		r.ExpandToContainCoord(coord(c.Start))
		for _, s := range c.Segments {
			r.ExpandToContainCoord(coord(s.End))
		}
	}
	radius := result.BitDiameter / 2
	expand := func(probes []simulate.Probe) {
		for _, p := range probes {
			c := coord(p.Position)
			r.ExpandToContainCoord(geom.Coord{X: c.X - radius, Y: c.Y - radius})
			r.ExpandToContainCoord(geom.Coord{X: c.X + radius, Y: c.Y + radius})
		}
	}
	expand(result.Clear)
	expand(result.Colliding)
	const margin = 20
	r.ExpandToContainCoord(geom.Coord{X: r.Min.X - margin, Y: r.Min.Y - margin})
	r.ExpandToContainCoord(geom.Coord{X: r.Max.X + margin, Y: r.Max.Y + margin})
	return r
}
