package traceframe

import (
	"math"
	"testing"

	"github.com/lixenwraith/terrain-tracer/geom"
)

func TestAdvanceStraightLine(t *testing.T) {
	f := New(geom.Vec2{X: 0, Z: 0}, 0)
	next, _, pivotOffset := Advance(f, 10, 0, 0, 0, false, AdvanceParams{})

	if pivotOffset != 0 {
		t.Errorf("expected zero pivot offset for straight advance, got %v", pivotOffset)
	}
	want := geom.Vec2{X: 10, Z: 0}
	if math.Abs(next.Pos.X-want.X) > 1e-9 || math.Abs(next.Pos.Z-want.Z) > 1e-9 {
		t.Errorf("expected pos %v, got %v", want, next.Pos)
	}
	if next.Dist != 10 {
		t.Errorf("expected dist 10, got %v", next.Dist)
	}
}

func TestAdvanceDecaysWidthSpeedDensity(t *testing.T) {
	f := New(geom.Vec2{}, 0)
	f.Width, f.Speed, f.Density = 4, 2, 1
	next, _, _ := Advance(f, 1, 0, 0, 0, false, AdvanceParams{WidthLoss: 1, SpeedLoss: 0.5, DensityLoss: 0.25})

	if next.Width != 3 {
		t.Errorf("expected width 3 after loss, got %v", next.Width)
	}
	if next.Speed != 1.5 {
		t.Errorf("expected speed 1.5 after loss, got %v", next.Speed)
	}
	if next.Density != 0.75 {
		t.Errorf("expected density 0.75 after loss, got %v", next.Density)
	}
}

func TestAdvanceDoesNotGoNegative(t *testing.T) {
	f := New(geom.Vec2{}, 0)
	f.Width = 1
	next, _, _ := Advance(f, 10, 0, 0, 0, false, AdvanceParams{WidthLoss: 1})
	if next.Width != 0 {
		t.Errorf("expected width clamped to 0, got %v", next.Width)
	}
}

func TestAdvanceRadialTracesCircle(t *testing.T) {
	f := New(geom.Vec2{}, 0)
	// 36 steps of 10 degrees each, radius implied by dist/angle relationship,
	// should bring the heading back to 0 after a full revolution.
	cur := f
	const steps = 36
	distPerStep := 1.0
	anglePerStep := 10.0
	for i := 0; i < steps; i++ {
		cur, _, _ = Advance(cur, distPerStep, anglePerStep, 0, 0, true, AdvanceParams{})
	}
	if math.Abs(geom.NormalizeDeg(cur.Angle)-0) > 1e-6 {
		t.Errorf("expected angle to return to 0 after full revolution, got %v", cur.Angle)
	}
}

func TestPossiblyInBounds(t *testing.T) {
	f := New(geom.Vec2{X: 5, Z: 5}, 0)
	if !f.PossiblyInBounds(geom.Vec2{X: 0, Z: 0}, geom.Vec2{X: 10, Z: 10}, 1) {
		t.Errorf("expected frame within rectangle to be possibly in bounds")
	}
	far := New(geom.Vec2{X: 100, Z: 100}, 0)
	if far.PossiblyInBounds(geom.Vec2{X: 0, Z: 0}, geom.Vec2{X: 10, Z: 10}, 1) {
		t.Errorf("expected far frame to not be possibly in bounds")
	}
}
