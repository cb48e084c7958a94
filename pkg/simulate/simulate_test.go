package simulate

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/roberto-arista/cam-simulator/pkg/fill"
	"github.com/roberto-arista/cam-simulator/pkg/fill/crossings"
	"github.com/roberto-arista/cam-simulator/pkg/geometry"
	"github.com/roberto-arista/cam-simulator/pkg/outline"
)

// fillSpacing is the flattening cadence for containment predicates in
// these tests, fine relative to every fixture's features.
const fillSpacing = 2

func squareOutline(x, y, side float64) *outline.Outline {
	b := outline.NewBuilder()
	b.MoveTo(geometry.Pt(x, y))
	b.LineTo(geometry.Pt(x+side, y))
	b.LineTo(geometry.Pt(x+side, y+side))
	b.LineTo(geometry.Pt(x, y+side))
	b.ClosePath()
	return b.Outline()
}

func squareOutlineClockwise(x, y, side float64) *outline.Outline {
	b := outline.NewBuilder()
	b.MoveTo(geometry.Pt(x, y))
	b.LineTo(geometry.Pt(x, y+side))
	b.LineTo(geometry.Pt(x+side, y+side))
	b.LineTo(geometry.Pt(x+side, y))
	b.ClosePath()
	return b.Outline()
}

// circleContour draws a four-arc circle: counter-clockwise unless
// clockwise is set (the hole convention).
func circleContour(pen outline.Pen, cx, cy, r float64, clockwise bool) {
	k := 0.5519150244935105 * r
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

func TestBitDiameterUnits(t *testing.T) {
	t.Run("known value", func(t *testing.T) {
		got, err := BitDiameterUnits(1000, 90, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := 1000 * 1 * MMToPoint / 90 // ≈ 31.496
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("scales linearly with bitSize, inversely with bodySize", func(t *testing.T) {
		base, err := BitDiameterUnits(1000, 90, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		doubledBit, _ := BitDiameterUnits(1000, 90, 2)
		if math.Abs(doubledBit-2*base) > 1e-9 {
			t.Errorf("doubling bitSize: got %v, want %v", doubledBit, 2*base)
		}
		doubledBody, _ := BitDiameterUnits(1000, 180, 1)
		if math.Abs(doubledBody-base/2) > 1e-9 {
			t.Errorf("doubling bodySize: got %v, want %v", doubledBody, base/2)
		}
	})

	t.Run("invalid parameters", func(t *testing.T) {
		tests := []struct {
			name                          string
			unitsPerEm, bodySize, bitSize float64
		}{
			{"zero bodySize", 1000, 0, 1},
			{"negative bodySize", 1000, -5, 1},
			{"NaN bitSize", 1000, 90, math.NaN()},
			{"infinite bodySize", 1000, math.Inf(1), 1},
			{"zero unitsPerEm", 0, 90, 1},
			{"negative bitSize", 1000, 90, -0.5},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := BitDiameterUnits(tt.unitsPerEm, tt.bodySize, tt.bitSize)
				if !errors.Is(err, ErrInvalidParameter) {
					t.Errorf("got %v, want ErrInvalidParameter", err)
				}
			})
		}
	})
}

func TestSimulateInvalidParameter(t *testing.T) {
	o := squareOutline(100, 100, 500)
	inside := crossings.New(o, fillSpacing)
	result, err := Simulate(o, inside, 1000, 0, 1)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got %v, want ErrInvalidParameter", err)
	}
	if result != nil {
		t.Errorf("got partial result %+v, want nil", result)
	}
}

func TestSimulateWithParamsInvalid(t *testing.T) {
	o := squareOutline(100, 100, 500)
	inside := crossings.New(o, fillSpacing)

	tests := []struct {
		name   string
		params Params
	}{
		{"zero value", Params{}},
		{"zero min spacing", Params{Tolerance: 0.1, SpacingFraction: 0.1, AngleStep: 10}},
		{"negative tolerance", Params{Tolerance: -0.1, MinSpacing: 4, SpacingFraction: 0.1, AngleStep: 10}},
		{"NaN spacing fraction", Params{Tolerance: 0.1, MinSpacing: 4, SpacingFraction: math.NaN(), AngleStep: 10}},
		{"zero angle step", Params{Tolerance: 0.1, MinSpacing: 4, SpacingFraction: 0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := SimulateWithParams(o, inside, 1000, 90, 1, tt.params)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("got %v, want ErrInvalidParameter", err)
			}
			if result != nil {
				t.Errorf("got partial result %+v, want nil", result)
			}
		})
	}

	t.Run("zero tolerance is allowed", func(t *testing.T) {
		p := DefaultParams()
		p.Tolerance = 0
		if _, err := SimulateWithParams(o, inside, 1000, 90, 1, p); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestSimulateSquareAllClear(t *testing.T) {
	o := squareOutline(100, 100, 500)
	inside := crossings.New(o, fillSpacing)

	result, err := Simulate(o, inside, 1000, 90, 1)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if len(result.Colliding) != 0 {
		t.Errorf("got %d colliding probes on a plain square, want 0", len(result.Colliding))
	}
	if len(result.Clear) == 0 {
		t.Fatal("no clear probes produced")
	}
	// Every probe center must sit outside the filled square.
	for _, probe := range result.Clear {
		if inside.PointInside(probe.Position) {
			t.Errorf("clear probe %v is inside the glyph", probe.Position)
		}
		if probe.BitDiameter != result.BitDiameter {
			t.Errorf("probe bit diameter %v != result %v", probe.BitDiameter, result.BitDiameter)
		}
	}
	if len(result.Preview) != 1 {
		t.Fatalf("got %d preview contours, want 1", len(result.Preview))
	}
	if result.Preview[0].Clockwise {
		t.Error("preview winding: got clockwise for a counter-clockwise square")
	}
	if got, want := len(result.Preview[0].Points), len(result.Clear); got != want {
		t.Errorf("preview has %d points, want one per clear probe (%d)", got, want)
	}
}

// A clockwise outer square puts the fixed -90° offset on the material
// side: every probe must collide. This pins down the normal convention
// for the reversed winding.
func TestSimulateClockwiseSquareCollides(t *testing.T) {
	o := squareOutlineClockwise(100, 100, 500)
	inside := crossings.New(o, fillSpacing)

	result, err := Simulate(o, inside, 1000, 90, 1)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if len(result.Clear) != 0 {
		t.Errorf("got %d clear probes with inward offsets, want 0", len(result.Clear))
	}
	if len(result.Colliding) == 0 {
		t.Error("no colliding probes produced")
	}
	if len(result.Preview) != 0 {
		t.Errorf("got %d preview contours with no clear probes, want 0", len(result.Preview))
	}
}

func TestSimulateNotchCollision(t *testing.T) {
	// Square with a 20-unit-wide notch in the top edge; the ~31.5-unit
	// bit cannot enter it.
	b := outline.NewBuilder()
	b.MoveTo(geometry.Pt(0, 0))
	b.LineTo(geometry.Pt(500, 0))
	b.LineTo(geometry.Pt(500, 500))
	b.LineTo(geometry.Pt(260, 500))
	b.LineTo(geometry.Pt(260, 400))
	b.LineTo(geometry.Pt(240, 400))
	b.LineTo(geometry.Pt(240, 500))
	b.LineTo(geometry.Pt(0, 500))
	b.ClosePath()
	o := b.Outline()
	inside := crossings.New(o, fillSpacing)

	result, err := Simulate(o, inside, 1000, 90, 1)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if len(result.Colliding) == 0 {
		t.Fatal("no colliding probes in a notch narrower than the bit")
	}
	if len(result.Clear) == 0 {
		t.Fatal("no clear probes along the straight edges")
	}
	for _, probe := range result.Colliding {
		if probe.Position.X < 220 || probe.Position.X > 280 || probe.Position.Y < 380 {
			t.Errorf("colliding probe %v outside the notch area", probe.Position)
		}
	}
}

func TestSimulateCircleClear(t *testing.T) {
	// Radius 300 circle, bit radius ~15.75 plus 0.1 tolerance: every
	// outward probe ring stays clear of the interior.
	b := outline.NewBuilder()
	circleContour(b, 400, 400, 300, false)
	o := b.Outline()
	inside := crossings.New(o, fillSpacing)

	result, err := Simulate(o, inside, 1000, 90, 1)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if len(result.Colliding) != 0 {
		t.Errorf("got %d colliding probes around a large circle, want 0", len(result.Colliding))
	}
	if len(result.Clear) == 0 {
		t.Error("no clear probes produced")
	}
}

func TestSimulateTightHoleCollides(t *testing.T) {
	// Annulus with a 10-unit-radius hole: the offset probe ring from
	// the hole contour overlaps the interior on the far side.
	b := outline.NewBuilder()
	circleContour(b, 400, 400, 300, false)
	circleContour(b, 400, 400, 10, true)
	o := b.Outline()
	inside := crossings.New(o, fillSpacing)

	result, err := Simulate(o, inside, 1000, 90, 1)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if len(result.Colliding) == 0 {
		t.Fatal("no colliding probes in a hole smaller than the bit")
	}
	for _, probe := range result.Colliding {
		d := geometry.Distance(probe.Position, geometry.Pt(400, 400))
		if d > 50 {
			t.Errorf("colliding probe %v is %v from center, expected inside the hole region", probe.Position, d)
		}
	}
	if len(result.Clear) == 0 {
		t.Error("outer circle produced no clear probes")
	}
}

func TestSimulatePreviewWindingPerContour(t *testing.T) {
	// Annulus with a roomy hole: both contours yield clear probes, so
	// both contribute preview silhouettes carrying their winding.
	b := outline.NewBuilder()
	circleContour(b, 400, 400, 300, false)
	circleContour(b, 400, 400, 150, true)
	o := b.Outline()
	inside := crossings.New(o, fillSpacing)

	result, err := Simulate(o, inside, 1000, 90, 1)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if len(result.Colliding) != 0 {
		t.Errorf("got %d colliding probes, want 0", len(result.Colliding))
	}
	if len(result.Preview) != 2 {
		t.Fatalf("got %d preview contours, want 2", len(result.Preview))
	}
	if result.Preview[0].Clockwise {
		t.Error("outer preview contour: got clockwise, want counter-clockwise")
	}
	if !result.Preview[1].Clockwise {
		t.Error("hole preview contour: got counter-clockwise, want clockwise")
	}
}

func TestSimulateIdempotent(t *testing.T) {
	b := outline.NewBuilder()
	circleContour(b, 400, 400, 300, false)
	circleContour(b, 400, 400, 150, true)
	o := b.Outline()
	inside := crossings.New(o, fillSpacing)

	first, err := Simulate(o, inside, 1000, 90, 1)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	second, err := Simulate(o, inside, 1000, 90, 1)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated simulation differs (-first +second):\n%s", diff)
	}
}

func TestSimulateDegenerateOutline(t *testing.T) {
	b := outline.NewBuilder()
	b.MoveTo(geometry.Pt(5, 5))
	b.ClosePath()
	o := b.Outline()

	result, err := Simulate(o, fill.Func(func(geometry.Point) bool { return false }), 1000, 90, 1)
	if err != nil {
		t.Fatalf("degenerate contour must not error: %v", err)
	}
	if len(result.Clear) != 0 || len(result.Colliding) != 0 || len(result.Preview) != 0 {
		t.Errorf("degenerate contour produced output: %+v", result)
	}
}

func TestSimulatePredicatePanicPropagates(t *testing.T) {
	o := squareOutline(100, 100, 500)
	boom := fill.Func(func(geometry.Point) bool { panic("host predicate failure") })

	defer func() {
		if recover() == nil {
			t.Error("predicate panic did not propagate")
		}
	}()
	_, _ = Simulate(o, boom, 1000, 90, 1)
}

func TestIsTouching(t *testing.T) {
	// Half-plane x < 0 is filled.
	halfPlane := fill.Func(func(pt geometry.Point) bool { return pt.X < 0 })

	tests := []struct {
		name   string
		center geometry.Point
		radius float64
		want   bool
	}{
		{"ring fully in empty half", geometry.Pt(10, 0), 5, false},
		{"ring tangent outside", geometry.Pt(5.1, 0), 5, false},
		{"ring crosses boundary", geometry.Pt(3, 0), 5, true},
		{"center inside fill", geometry.Pt(-10, 0), 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isTouching(halfPlane, tt.center, tt.radius, DefaultAngleStep)
			if got != tt.want {
				t.Errorf("isTouching(%v, r=%v) = %v, want %v", tt.center, tt.radius, got, tt.want)
			}
		})
	}
}

func TestParamsSpacing(t *testing.T) {
	p := DefaultParams()
	tests := []struct {
		name      string
		bitRadius float64
		want      float64
	}{
		{"small bit floors at MinSpacing", 10, 4},
		{"large bit scales with radius", 100, 10},
		{"threshold", 40, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.spacing(tt.bitRadius); got != tt.want {
				t.Errorf("spacing(%v) = %v, want %v", tt.bitRadius, got, tt.want)
			}
		})
	}
}
