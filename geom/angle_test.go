package geom

import (
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestDirectionAngleOfRoundTrip(t *testing.T) {
	cases := []float64{0, 45, 90, -90, 135, 179, -179}
	for _, deg := range cases {
		v := Direction(deg)
		got := AngleOf(v)
		if !almostEqual(got, deg, 1e-9) {
			t.Errorf("AngleOf(Direction(%v)) = %v, want %v", deg, got, deg)
		}
	}
}

func TestAngleOfZeroVector(t *testing.T) {
	if got := AngleOf(Vec2{X: 0, Z: 0}); got != 0 {
		t.Errorf("AngleOf(zero) = %v, want 0", got)
	}
}

func TestNormalizeDegRange(t *testing.T) {
	cases := map[float64]float64{
		0:    0,
		180:  180,
		181:  -179,
		-180: 180,
		360:  0,
		540:  180,
	}
	for in, want := range cases {
		if got := NormalizeDeg(in); !almostEqual(got, want, 1e-9) {
			t.Errorf("NormalizeDeg(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestSignedAngle(t *testing.T) {
	a := Direction(0)
	b := Direction(90)
	if got := SignedAngle(a, b); !almostEqual(got, 90, 1e-9) {
		t.Errorf("SignedAngle(0deg, 90deg) = %v, want 90", got)
	}
}
