package geom

import "math"

// Direction returns the unit normal for a signed-degree, CW-positive angle:
// direction(angle) = (cos(-angle), sin(-angle)).
func Direction(angleDeg float64) Vec2 {
	rad := -angleDeg * math.Pi / 180
	return Vec2{math.Cos(rad), math.Sin(rad)}
}

// AngleOf returns the signed-degree angle whose Direction is v (the inverse
// of Direction), normalized to (-180, 180]. Zero vectors map to 0.
func AngleOf(v Vec2) float64 {
	if v.X == 0 && v.Z == 0 {
		return 0
	}
	return NormalizeDeg(-math.Atan2(v.Z, v.X) * 180 / math.Pi)
}

// NormalizeDeg maps an angle in degrees to (-180, 180].
func NormalizeDeg(angleDeg float64) float64 {
	a := math.Mod(angleDeg, 360)
	if a <= -180 {
		a += 360
	} else if a > 180 {
		a -= 360
	}
	return a
}

// SignedAngle returns the signed angle in degrees from a to b, CW-positive,
// in (-180, 180].
func SignedAngle(a, b Vec2) float64 {
	return NormalizeDeg(-math.Atan2(a.PerpDot(b), a.Dot(b)) * 180 / math.Pi)
}

// AngleDiff returns the shortest signed difference to-from in (-180, 180].
func AngleDiff(from, to float64) float64 {
	return NormalizeDeg(to - from)
}
