package traceframe

import (
	"math"

	"github.com/lixenwraith/terrain-tracer/geom"
)

// AdvanceParams carries the per-unit-distance attenuations and extent
// resamplers advance needs without traceframe importing pathgraph (spec
// §3.1 TraceParams fields width_loss/speed_loss/density_loss, and the
// extent_left/right resample step of §4.E).
type AdvanceParams struct {
	WidthLoss   float64
	SpeedLoss   float64
	DensityLoss float64
	SpeedMul    float64 // evaluated params.speed(...) at the new pose

	// ExtentLeft/ExtentRight resample the local extent multiplier at the
	// new pose; nil leaves EMLeft/EMRight unchanged.
	ExtentLeft  func(pos geom.Vec2, dist float64) float64
	ExtentRight func(pos geom.Vec2, dist float64) float64
}

// Advance steps frame forward by distDelta world units and angleDelta
// degrees, optionally along a circular arc (radial), accumulating
// extraValue/extraOffset (spec §4.E). It returns the new frame plus the
// arc's pivot point and signed pivot offset (radius), both zero-valued for
// a straight advance.
func Advance(f Frame, distDelta, angleDelta, extraValue, extraOffset float64, radial bool, p AdvanceParams) (next Frame, pivotPoint geom.Vec2, pivotOffset float64) {
	newAngle := geom.NormalizeDeg(f.Angle + angleDelta)
	newNormal := geom.Direction(newAngle)

	var newPos geom.Vec2
	if radial && angleDelta != 0 {
		pivotOffset = 180 * distDelta / (math.Pi * -angleDelta)
		pivotPoint = f.Pos.Add(f.PerpCCW().Scale(pivotOffset))
		newPos = pivotPoint.Sub(newNormal.PerpCCW().Scale(pivotOffset))
	} else {
		newPos = f.Pos.Add(f.Normal.Scale(distDelta))
	}

	newDist := f.Dist + distDelta
	width := decay(f.Width, p.WidthLoss, distDelta)
	speed := decay(f.Speed, p.SpeedLoss, distDelta)
	density := decay(f.Density, p.DensityLoss, distDelta)

	var valueRate float64
	if newDist >= 0 {
		valueRate = speed * p.SpeedMul
	} else {
		valueRate = speed
	}

	next = Frame{
		Pos:     newPos,
		Normal:  newNormal,
		Angle:   newAngle,
		Width:   width,
		Speed:   speed,
		Density: density,
		Value:   f.Value + distDelta*valueRate + extraValue,
		Offset:  f.Offset + extraOffset,
		Dist:    newDist,
		EMLeft:  f.EMLeft,
		EMRight: f.EMRight,
	}
	if p.ExtentLeft != nil {
		next.EMLeft = p.ExtentLeft(newPos, newDist)
	}
	if p.ExtentRight != nil {
		next.EMRight = p.ExtentRight(newPos, newDist)
	}
	return next, pivotPoint, pivotOffset
}

// AdvancePos is the position-only variant of Advance used for rasterization
// sampling: it advances pos/normal/angle/dist without propagating
// width/speed/value/offset/density (spec §4.E).
func AdvancePos(f Frame, distDelta, angleDelta float64, radial bool) (next Frame, pivotPoint geom.Vec2, pivotOffset float64) {
	newAngle := geom.NormalizeDeg(f.Angle + angleDelta)
	newNormal := geom.Direction(newAngle)

	var newPos geom.Vec2
	if radial && angleDelta != 0 {
		pivotOffset = 180 * distDelta / (math.Pi * -angleDelta)
		pivotPoint = f.Pos.Add(f.PerpCCW().Scale(pivotOffset))
		newPos = pivotPoint.Sub(newNormal.PerpCCW().Scale(pivotOffset))
	} else {
		newPos = f.Pos.Add(f.Normal.Scale(distDelta))
	}

	next = f
	next.Pos = newPos
	next.Normal = newNormal
	next.Angle = newAngle
	next.Dist = f.Dist + distDelta
	return next, pivotPoint, pivotOffset
}

func decay(value, loss, distDelta float64) float64 {
	v := value - loss*distDelta
	if v < 0 {
		return 0
	}
	return v
}
