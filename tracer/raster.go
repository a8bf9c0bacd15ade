package tracer

import (
	"math"

	"github.com/lixenwraith/terrain-tracer/geom"
	"github.com/lixenwraith/terrain-tracer/params"
	"github.com/lixenwraith/terrain-tracer/pathgraph"
	"github.com/lixenwraith/terrain-tracer/traceframe"
)

// rasterizeStep enumerates the integer cells in the step's bounding
// rectangle and writes distance/task/main/side/value/offset (spec §4.F.4
// "Rasterization"). It returns a non-nil Collision and stops writing as
// soon as one is detected.
func (t *Tracer) rasterizeStep(task *Task, a, b traceframe.Frame, pivot geom.Vec2, pivotOffset float64, radial bool, simulated []*Collision) *Collision {
	tp := task.Segment.Params

	aLeft, aRight := extentAt(a)
	bLeft, bRight := extentAt(b)
	maxExt := math.Max(math.Max(aLeft, aRight), math.Max(bLeft, bRight))

	corners := [4]geom.Vec2{
		a.Pos.Add(a.PerpCCW().Scale(aLeft)),
		a.Pos.Add(a.PerpCW().Scale(aRight)),
		b.Pos.Add(b.PerpCCW().Scale(bLeft)),
		b.Pos.Add(b.PerpCW().Scale(bRight)),
	}
	minX, maxX, minZ, maxZ := corners[0].X, corners[0].X, corners[0].Z, corners[0].Z
	for _, c := range corners[1:] {
		minX, maxX = math.Min(minX, c.X), math.Max(maxX, c.X)
		minZ, maxZ = math.Min(minZ, c.Z), math.Max(maxZ, c.Z)
	}
	margin := t.Grids.TraceOuterMargin + maxExt
	loX, hiX := int(math.Floor(minX-margin)), int(math.Ceil(maxX+margin))
	loZ, hiZ := int(math.Floor(minZ-margin)), int(math.Ceil(maxZ+margin))

	for mz := loZ; mz <= hiZ; mz++ {
		for mx := loX; mx <= hiX; mx++ {
			p := geom.Vec2{X: float64(mx), Z: float64(mz)}

			if a.Normal.Dot(p.Sub(a.Pos)) < 0 {
				continue // behind the step's start normal
			}
			if b.Normal.Dot(p.Sub(b.Pos)) > 0 {
				continue // in front of the step's end normal
			}

			shift, progress := shiftAndProgress(p, a, b, pivot, pivotOffset, radial)
			progress = clamp(progress, 0, 1)

			var extA, extB float64
			if shift < 0 {
				extA, extB = aLeft, bLeft
			} else {
				extA, extB = aRight, bRight
			}
			extent := geom.LerpF(extA, extB, progress)
			density := densityAt(tp, p, shift, a, b, progress, task)

			nowDist := math.Abs(shift) - extent

			ox, oz := mx+t.Grids.GridMargin, mz+t.Grids.GridMargin
			if !t.Grids.InBounds(ox, oz) {
				continue
			}

			prevDist := t.Grids.DistanceAt(ox, oz)
			if nowDist < prevDist {
				t.Grids.SetDistance(ox, oz, nowDist)
				t.Grids.SetTask(ox, oz, task.ID)
			}
			if nowDist > t.Grids.TraceInnerMargin {
				continue
			}

			value := geom.LerpF(a.Value, b.Value, progress)
			offset := geom.LerpF(a.Offset, b.Offset, progress) + offsetAccumulation(t.Cfg.OffsetAccumulation, shift, extent, density, a, b, progress)

			distAlong := geom.LerpF(a.Dist, b.Dist, progress)
			if nowDist <= t.Cfg.CollisionCheckMargin && distAlong >= 0 && distAlong <= task.Segment.Length+t.Cfg.TraceLengthTolerance {
				if coll := t.detectCollision(task, p, shift, progress, value, offset, nowDist, distAlong, a, b, ox, oz); coll != nil {
					return coll
				}
			}

			completeSimulated(simulated, task, p, a, b)

			if nowDist <= 0 {
				mainVal := geom.LerpF(a.Width, b.Width, progress)
				t.Grids.SetMain(ox, oz, mainVal)
				t.Grids.SetSide(ox, oz, shift)
				t.applySmoothBranching(task, ox, oz, mainVal, shift)
			}
			if nowDist < prevDist {
				t.Grids.SetValue(ox, oz, value)
				t.Grids.SetOffset(ox, oz, offset)
			}
		}
	}
	return nil
}

// extentAt returns the left/right half-width extents of a frame, derived
// from width/2 and the frame's local extent multipliers (spec §4.F.4).
func extentAt(f traceframe.Frame) (left, right float64) {
	half := f.Width / 2
	return half * f.EMLeft, half * f.EMRight
}

func densityAt(tp pathgraph.TraceParams, p geom.Vec2, shift float64, a, b traceframe.Frame, progress float64, task *Task) float64 {
	ctx := params.Context{Pos: p, TaskID: task.ID, SegmentID: task.Segment.ID()}
	fn := tp.DensityRight
	if shift < 0 {
		fn = tp.DensityLeft
	}
	return fn.Eval(ctx) * geom.LerpF(a.Density, b.Density, progress)
}

// shiftAndProgress computes the step-local signed perpendicular distance
// and [0,1] progress along the step, using circular-arc geometry around
// pivot when radial, or linear projection otherwise (spec §4.F.4).
func shiftAndProgress(p geom.Vec2, a, b traceframe.Frame, pivot geom.Vec2, pivotOffset float64, radial bool) (shift, progress float64) {
	if radial && pivotOffset != 0 {
		r := p.Sub(pivot).Length()
		shift = math.Copysign(math.Abs(pivotOffset)-r, pivotOffset)

		angleA := geom.AngleOf(a.Pos.Sub(pivot))
		angleB := geom.AngleOf(b.Pos.Sub(pivot))
		angleP := geom.AngleOf(p.Sub(pivot))
		sweep := geom.AngleDiff(angleA, angleB)
		if sweep == 0 {
			return shift, 0
		}
		progress = geom.AngleDiff(angleA, angleP) / sweep
		return shift, progress
	}

	segVec := b.Pos.Sub(a.Pos)
	length := segVec.Length()
	shift = a.PerpCW().Dot(p.Sub(a.Pos))
	if length < 1e-9 {
		return shift, 0
	}
	progress = p.Sub(a.Pos).Dot(a.Normal) / length
	return shift, progress
}

func offsetAccumulation(kind params.OffsetAccumulation, shift, extent, density float64, a, b traceframe.Frame, progress float64) float64 {
	if kind == params.OffsetWidthDensity {
		return shift * geom.LerpF(a.Width, b.Width, progress) * density
	}
	return shift * extent * density * 2
}
