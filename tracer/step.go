package tracer

import (
	"math"

	"github.com/pkg/errors"

	"github.com/lixenwraith/terrain-tracer/geom"
	"github.com/lixenwraith/terrain-tracer/params"
	"github.com/lixenwraith/terrain-tracer/pathfind"
	"github.com/lixenwraith/terrain-tracer/pathgraph"
	"github.com/lixenwraith/terrain-tracer/traceframe"
)

// traceTask walks one segment from its base frame to its end, rasterizing
// every step into the tracer's grids and returning as soon as a collision
// is detected (spec §4.F.4).
func (t *Tracer) traceTask(task *Task, simulated []*Collision) *Result {
	seg := task.Segment
	tp := seg.Params

	if t.activeTasks == nil {
		t.activeTasks = make(map[int]*Task)
	}
	t.activeTasks[task.ID] = task

	a := task.BaseFrame
	a.Dist = 0
	a.Value += seg.RelValue
	a.Offset += seg.RelOffset

	if seg.Length <= 0 {
		return &Result{InitialFrame: a, FinalFrame: a, WidthBuildup: task.WidthBuildup, TraceEnd: true}
	}

	mapMin := geom.Vec2{}
	mapMax := geom.Vec2{X: float64(t.Grids.InnerX), Z: float64(t.Grids.InnerZ)}

	everInBounds := a.PossiblyInBounds(mapMin, mapMax, 0)
	widthBuildup := task.WidthBuildup
	traceEnd := false

	var plan []stepPlan
	if tp.HasTarget {
		plan = t.planFromPathfinder(task, a)
	}

	remaining := seg.Length
	stepIdx := 0
	frameCount := 0

	pathfinderActive := tp.HasTarget && len(plan) > 0

	for remaining > 1e-9 && !traceEnd {
		var distDelta, angleDelta float64
		var radial bool

		if pathfinderActive && stepIdx < len(plan) {
			step := plan[stepIdx]
			distDelta = math.Min(step.distDelta, remaining)
			angleDelta = step.angleDelta
			radial = step.radial
		} else {
			// Pathfinder exhausted or never found a path: non-fatal, fall
			// back to local steering for the rest of the segment (spec §7).
			pathfinderActive = false
			distDelta = math.Min(tp.StepSize, remaining)
			angleDelta, radial = t.localSteerAngle(task, a, stepIdx)
		}

		extraValue, extraOffset := applyExtraDeltas(seg, stepIdx)

		ctx := params.Context{Pos: a.Pos, Dist: a.Dist, TaskID: task.ID, SegmentID: seg.ID()}
		speedMul := tp.Speed.Eval(ctx)

		adv := traceframe.AdvanceParams{
			WidthLoss: tp.WidthLoss, SpeedLoss: tp.SpeedLoss, DensityLoss: tp.DensityLoss,
			SpeedMul: speedMul,
		}
		b, pivot, pivotOffset := traceframe.Advance(a, distDelta, angleDelta, extraValue, extraOffset, radial, adv)

		bCtx := params.Context{Pos: b.Pos, Dist: b.Dist, TaskID: task.ID, SegmentID: seg.ID()}
		b.EMLeft = tp.ExtentLeft.Eval(bCtx)
		b.EMRight = tp.ExtentRight.Eval(bCtx)

		if !everInBounds {
			everInBounds = b.PossiblyInBounds(mapMin, mapMax, 0)
		}

		coll := t.rasterizeStep(task, a, b, pivot, pivotOffset, radial, simulated)
		frameCount++
		if t.Cfg.MaxTraceFrames > 0 && frameCount > t.Cfg.MaxTraceFrames {
			panic(errors.Wrap(ErrFrameBudgetExceeded, "traceTask"))
		}
		if coll != nil {
			return &Result{
				InitialFrame: task.BaseFrame, FinalFrame: a,
				WidthBuildup: widthBuildup, EverInBounds: everInBounds,
				Collision: coll,
			}
		}

		if b.EMLeft+b.EMRight < 1 {
			traceEnd = true
			seg.Length = b.Dist
		}
		if everInBounds && t.Cfg.StopWhenOutOfBounds && b.PossiblyOutOfBounds(mapMin, mapMax, 0) {
			traceEnd = true
		}
		if tp.HasEndCondition && t.endConditionMet(tp, b, seg, stepIdx) {
			traceEnd = true
		}

		a = b
		remaining -= distDelta
		stepIdx++
	}

	return &Result{
		InitialFrame: task.BaseFrame, FinalFrame: a,
		WidthBuildup: widthBuildup, EverInBounds: everInBounds, TraceEnd: traceEnd,
	}
}

type stepPlan struct {
	distDelta, angleDelta float64
	radial                bool
}

// planFromPathfinder runs the bounded-angle A* (spec §4.D) once up front and
// converts the returned node path into a dist/angle-delta sequence. Nodes
// only carry position and direction, not the arcs the search actually swept,
// so each inter-node hop is replayed as a single straight or single-pivot
// step sized to match the node-to-node displacement — a documented
// simplification of the node path's literal arc geometry.
func (t *Tracer) planFromPathfinder(task *Task, start traceframe.Frame) []stepPlan {
	seg := task.Segment
	tp := seg.Params

	nodes, ok := pathfind.SearchWithEscalation(pathfind.Params{
		ArcCount:          8,
		SplitCount:        4,
		StepSize:          tp.StepSize,
		ObstacleThreshold: 1000,
		CurvatureWeight:   0,
		Cost: func(pos geom.Vec2) float64 {
			return tp.Cost.Eval(params.Context{Pos: pos, TaskID: task.ID, SegmentID: seg.ID()})
		},
		AngleLimit: func(pos geom.Vec2) float64 {
			return angleLimitAt(tp, start.Width, 0)
		},
		Start:    start.Pos,
		StartDir: start.Normal,
		Target:   tp.Target,
	}, 1)
	if !ok || len(nodes) < 2 {
		return nil
	}

	steps := make([]stepPlan, 0, len(nodes)-1)
	cur := start
	for i := 1; i < len(nodes); i++ {
		delta := nodes[i].Pos.Sub(cur.Pos)
		dist := delta.Length()
		if dist < 1e-9 {
			continue
		}
		angle := geom.SignedAngle(cur.Normal, delta.Normalize())
		steps = append(steps, stepPlan{distDelta: dist, angleDelta: angle, radial: angle != 0})
		cur.Pos = nodes[i].Pos
		cur.Angle = geom.NormalizeDeg(cur.Angle + angle)
		cur.Normal = geom.Direction(cur.Angle)
	}
	return steps
}

// localSteerAngle computes the clamped per-step heading change for
// non-targeted local steering (spec §4.F.4 "local steering").
func (t *Tracer) localSteerAngle(task *Task, a traceframe.Frame, stepIdx int) (angleDelta float64, radial bool) {
	seg := task.Segment
	tp := seg.Params

	stability := stabilityAt(tp.StabilityPoints, a.Pos)
	cost := func(p geom.Vec2) float64 {
		return tp.Cost.Eval(params.Context{Pos: p, Dist: a.Dist, Stability: stability, TaskID: task.ID, SegmentID: seg.ID()})
	}
	follow := followVector(a.Pos, a.Dist, cost, tp.DiversionPoints)

	desired := 0.0
	if follow.LengthSq() > 1e-12 {
		desired = geom.SignedAngle(a.Normal, follow.Normalize())
	}

	limit := angleLimitAt(tp, a.Width, stepIdx)
	angleDelta = clamp(desired, -limit, limit)

	swerve := tp.Swerve.Eval(params.Context{Pos: a.Pos, Dist: a.Dist, Stability: stability, TaskID: task.ID, SegmentID: seg.ID()})
	angleDelta = clamp(angleDelta+swerve*limit, -limit, limit)

	if stepIdx == 0 && seg.InitialAngleDeltaMin != 0 && absF(angleDelta) < absF(seg.InitialAngleDeltaMin) {
		angleDelta = math.Copysign(seg.InitialAngleDeltaMin, angleDelta)
	}

	return angleDelta, angleDelta != 0
}

// angleLimitAt is the per-step angle-delta limit: a function of current
// width and tenacity, interpolated toward split-tenacity over the first two
// steps near a split, and capped by the absolute limit (spec §4.F.4).
func angleLimitAt(tp pathgraph.TraceParams, width float64, stepIdx int) float64 {
	base := tp.AngleTenacity
	if !tp.StaticAngleTenacity {
		base *= width
	}
	if stepIdx < 2 && tp.SplitTenacity != 0 {
		blend := float64(stepIdx+1) / 3
		base += (tp.SplitTenacity - base) * (1 - blend)
	}
	if tp.AngleLimitAbs > 0 && base > tp.AngleLimitAbs {
		base = tp.AngleLimitAbs
	}
	return base
}

// stabilityAt returns the maximum local stability coefficient in [0,1]
// induced by any stability point covering pos (spec §3.1 StabilityPoint).
func stabilityAt(points []pathgraph.StabilityPoint, pos geom.Vec2) float64 {
	var max float64
	for _, sp := range points {
		if sp.Range <= 0 {
			continue
		}
		d := pos.Dist(sp.Position)
		if d >= sp.Range {
			continue
		}
		if v := 1 - d/sp.Range; v > max {
			max = v
		}
	}
	return max
}

// applyExtraDeltas sums the additive value/offset contribution of every
// ExtraDelta covering integration step stepIdx (spec §3.1 SmoothDelta:
// "piecewise-linear hat function ... with centered rise/fall and
// configurable flat padding").
func applyExtraDeltas(seg *pathgraph.Segment, stepIdx int) (value, offset float64) {
	for _, d := range seg.ExtraDelta {
		if d.StepsTotal <= 0 || stepIdx < d.StepsStart || stepIdx >= d.StepsStart+d.StepsTotal {
			continue
		}
		local := stepIdx - d.StepsStart
		w := hatWeight(local, d.StepsTotal, d.StepsPadding)
		value += d.ValueDelta * w
		offset += d.OffsetDelta * w
	}
	return value, offset
}

func hatWeight(local, total, padding int) float64 {
	if padding <= 0 {
		padding = 1
	}
	var w float64
	switch {
	case local < padding:
		w = float64(local+1) / float64(padding+1)
	case local >= total-padding:
		w = float64(total-local) / float64(padding+1)
	default:
		w = 1
	}
	return clamp(w, 0, 1)
}

// endConditionMet samples params.end_condition (a width-mask grid) at five
// points in total across the frame's width (both edges, the two half-way
// points and the centerline); it fires only once every
// sample passes, the step is outside the smoothing zone of a recent split,
// and the segment has no descendant merges (spec §4.F.4).
func (t *Tracer) endConditionMet(tp pathgraph.TraceParams, b traceframe.Frame, seg *pathgraph.Segment, stepIdx int) bool {
	if stepIdx < 2 {
		return false // within the smoothing zone of the segment's own start (acts as a proxy for "recent split")
	}
	if hasDescendantMerge(seg) {
		return false
	}
	half := b.Width / 2
	offsets := []float64{-half, -half / 2, 0, half / 2, half}
	for _, o := range offsets {
		p := b.Pos.Add(b.PerpCW().Scale(o))
		if tp.EndCondition.ValueAt(p.X, p.Z) <= 0 {
			return false
		}
	}
	return true
}

func hasDescendantMerge(seg *pathgraph.Segment) bool {
	found := false
	seg.Path().BFS([]int{seg.ID()}, true, false, func(s *pathgraph.Segment) bool {
		if len(s.Parents()) > 1 {
			found = true
		}
		return !found
	})
	return found
}
