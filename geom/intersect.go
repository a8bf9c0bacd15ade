package geom

import "math"

// ParallelTolerance is the determinant magnitude below which two lines are
// treated as parallel by TryIntersect.
const ParallelTolerance = 1e-9

// Orientation returns the signed area of the triangle (a, b, c): positive
// when a->b->c turns CCW, negative when CW, zero when collinear.
func Orientation(a, b, c Vec2) float64 {
	return b.Sub(a).PerpDot(c.Sub(a))
}

// TryIntersect computes the intersection of the line through p1 in
// direction d1 and the line through p2 in direction d2. It returns the
// intersection point and the scalar t such that point = p1 + d1*t, and ok
// = false if the lines are parallel within ParallelTolerance.
func TryIntersect(p1, d1, p2, d2 Vec2) (point Vec2, t float64, ok bool) {
	denom := d1.PerpDot(d2)
	if math.Abs(denom) < ParallelTolerance {
		return Vec2{}, 0, false
	}
	diff := p2.Sub(p1)
	t = diff.PerpDot(d2) / denom
	point = p1.Add(d1.Scale(t))
	return point, t, true
}
