// Package simulate runs the CAM border simulation: it resamples a
// glyph outline into point trains, offsets each train point outward by
// the cutting-bit radius, and classifies every offset position as
// clear or colliding by probing a containment predicate. The result is
// pure geometry; rendering is the caller's concern.
package simulate

import (
	"errors"
	"fmt"
	"math"

	"github.com/roberto-arista/cam-simulator/pkg/fill"
	"github.com/roberto-arista/cam-simulator/pkg/geometry"
	"github.com/roberto-arista/cam-simulator/pkg/outline"
)

// MMToPoint converts millimeters to typographic points.
const MMToPoint = 2.834627813

// ErrInvalidParameter reports a non-positive or non-finite simulation
// parameter. The call fails as a whole; no partial result is returned.
var ErrInvalidParameter = errors.New("invalid parameter")

// Default sampling parameters, in font design units unless noted.
const (
	DefaultTolerance       = 0.1 // added to the bit radius when probing
	DefaultMinSpacing      = 4   // absolute floor for the sampling cadence
	DefaultSpacingFraction = 0.1 // nominal cadence as a fraction of bit radius
	DefaultAngleStep       = 10  // degrees between ring samples
)

// Params tunes the sampling cadence and the collision probe.
type Params struct {
	// Tolerance widens the offset at which probes are placed, in
	// design units.
	Tolerance float64
	// MinSpacing is the absolute floor for the resampling cadence.
	MinSpacing float64
	// SpacingFraction scales the bit radius into the nominal
	// cadence. The effective cadence is
	// max(MinSpacing, SpacingFraction*bitRadius).
	SpacingFraction float64
	// AngleStep is the angular distance in degrees between samples
	// on the collision ring.
	AngleStep float64
}

// DefaultParams returns the standard sampling parameters.
func DefaultParams() Params {
	return Params{
		Tolerance:       DefaultTolerance,
		MinSpacing:      DefaultMinSpacing,
		SpacingFraction: DefaultSpacingFraction,
		AngleStep:       DefaultAngleStep,
	}
}

// validate checks the Params invariants: a positive cadence floor,
// fraction and ring step, and a non-negative tolerance.
func (p Params) validate() error {
	if err := checkNonNegative("tolerance", p.Tolerance); err != nil {
		return err
	}
	if err := checkPositive("minSpacing", p.MinSpacing); err != nil {
		return err
	}
	if err := checkPositive("spacingFraction", p.SpacingFraction); err != nil {
		return err
	}
	return checkPositive("angleStep", p.AngleStep)
}

// spacing is the effective resampling cadence for a given bit radius.
func (p Params) spacing(bitRadius float64) float64 {
	return math.Max(p.MinSpacing, p.SpacingFraction*bitRadius)
}

// Probe is one classified offset position. Position is the center of
// the bit circle, offset from the outline by the bit radius plus the
// probing tolerance.
type Probe struct {
	Position    geometry.Point
	BitDiameter float64
	Colliding   bool
}

// PreviewContour is the sharp-radius offset silhouette of one contour:
// the bit-radius offset points of every clear probe, in train order.
// Clockwise carries the source contour's winding for the fill rule.
type PreviewContour struct {
	Clockwise bool
	Points    []geometry.Point
}

// Result is the complete outcome of one simulation. It is built fresh
// per call, never mutated afterwards, and owned by the caller.
type Result struct {
	BitDiameter float64
	Clear       []Probe
	Colliding   []Probe
	Preview     []PreviewContour
}

// BitDiameterUnits scales a physical bit diameter into font design
// units: unitsPerEm * bitSizeMM * MMToPoint / bodySize. BodySize is
// the stamp body dimension the glyph is scaled to, in points; bitSize
// is the physical bit diameter in millimeters.
func BitDiameterUnits(unitsPerEm, bodySize, bitSizeMM float64) (float64, error) {
	if err := checkPositive("unitsPerEm", unitsPerEm); err != nil {
		return 0, err
	}
	if err := checkPositive("bodySize", bodySize); err != nil {
		return 0, err
	}
	if err := checkPositive("bitSize", bitSizeMM); err != nil {
		return 0, err
	}
	return unitsPerEm * bitSizeMM * MMToPoint / bodySize, nil
}

func checkPositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidParameter, name, v)
	}
	if v <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidParameter, name, v)
	}
	return nil
}

func checkNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidParameter, name, v)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidParameter, name, v)
	}
	return nil
}

// Simulate runs the border simulation with default parameters.
func Simulate(o *outline.Outline, inside fill.Predicate, unitsPerEm, bodySize, bitSizeMM float64) (*Result, error) {
	return SimulateWithParams(o, inside, unitsPerEm, bodySize, bitSizeMM, DefaultParams())
}

// SimulateWithParams runs the border simulation. The predicate must
// answer for the whole glyph, all contours combined: offsets from one
// contour can collide with a neighboring contour. The computation is
// deterministic and stateless; identical inputs produce identical
// results.
func SimulateWithParams(o *outline.Outline, inside fill.Predicate, unitsPerEm, bodySize, bitSizeMM float64, params Params) (*Result, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	bitDiameter, err := BitDiameterUnits(unitsPerEm, bodySize, bitSizeMM)
	if err != nil {
		return nil, err
	}
	bitRadius := bitDiameter / 2

	result := &Result{BitDiameter: bitDiameter}
	trains := o.Trains(params.spacing(bitRadius))
	for _, train := range trains {
		preview := classify(train, inside, bitRadius, params, result)
		if len(preview.Points) > 0 {
			result.Preview = append(result.Preview, preview)
		}
	}

	logger().Debug("simulation complete",
		"contours", len(trains),
		"bitDiameter", bitDiameter,
		"clear", len(result.Clear),
		"colliding", len(result.Colliding))
	return result, nil
}

// classify walks one point train with a one-element lookback and
// appends clear/colliding probes to the result. It returns the
// contour's preview silhouette, fed by clear probes only.
func classify(train outline.Train, inside fill.Predicate, bitRadius float64, params Params, result *Result) PreviewContour {
	preview := PreviewContour{Clockwise: train.Clockwise}

	var prev geometry.Point
	for i, pt := range train.Points {
		if i == 0 || pt == prev {
			// No heading at the train start; duplicate points
			// have an undefined heading. Skip, keep walking.
			prev = pt
			continue
		}
		heading := geometry.Angle(prev, pt)
		// Outward normal: heading rotated -90°. With material on
		// the left of the travel direction this points off the
		// filled shape, for both windings.
		normal := heading - math.Pi/2

		tolProbe := geometry.Project(pt, normal, bitRadius+params.Tolerance)
		if isTouching(inside, tolProbe, bitRadius, params.AngleStep) {
			result.Colliding = append(result.Colliding, Probe{
				Position:    tolProbe,
				BitDiameter: bitRadius * 2,
				Colliding:   true,
			})
		} else {
			result.Clear = append(result.Clear, Probe{
				Position:    tolProbe,
				BitDiameter: bitRadius * 2,
			})
			preview.Points = append(preview.Points, geometry.Project(pt, normal, bitRadius))
		}
		prev = pt
	}
	return preview
}

// isTouching probes the containment predicate on a ring of radius
// bitRadius around center, one sample every angleStep degrees. Any
// sample inside the filled shape means the bit would cut into
// material. The ring stands in for a true disc-intersection test; it
// can misjudge features smaller than its angular resolution.
func isTouching(inside fill.Predicate, center geometry.Point, bitRadius, angleStep float64) bool {
	for angle := 0.0; angle < 360; angle += angleStep {
		rad := angle * math.Pi / 180
		pt := geometry.Point{
			X: center.X + math.Cos(rad)*bitRadius,
			Y: center.Y + math.Sin(rad)*bitRadius,
		}
		if inside.PointInside(pt) {
			return true
		}
	}
	return false
}
