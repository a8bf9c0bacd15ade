package tracer

import (
	"math"

	"github.com/lixenwraith/terrain-tracer/geom"
	"github.com/lixenwraith/terrain-tracer/traceframe"
)

// cellMatchTolerance is how close a completion-pass sample must land to a
// simulated collision's recorded position to be considered "the same cell"
// (spec §4.F.2: the second pass exists purely to fill in the side of each
// collision that detection left without frames, here FramesA).
const cellMatchTolerance = 0.5

// detectCollision implements spec §4.F.4's collision-detection rule for one
// rasterized cell: if the cell already belongs to another task (main > 0),
// compare value/offset divergence against the strict or margin-band
// thresholds and, if they diverge enough and the parent-distance guard
// passes, emit a TraceCollision.
func (t *Tracer) detectCollision(task *Task, p geom.Vec2, shift, progress, value, offset, nowDist, distAlong float64, a, b traceframe.Frame, ox, oz int) *Collision {
	if t.Grids.MainAt(ox, oz) <= 0 {
		return nil
	}
	ownerID := t.Grids.TaskAt(ox, oz)
	if ownerID < 0 || ownerID == task.ID {
		return nil
	}
	owner, ok := t.activeTasks[ownerID]
	if !ok {
		return nil
	}

	valDiff := math.Abs(value - t.Grids.ValueAt(ox, oz))
	offDiff := math.Abs(offset - t.Grids.OffsetAt(ox, oz))

	var valThresh, offThresh float64
	if nowDist <= 0 {
		valThresh, offThresh = t.Cfg.CollisionMinValueDiff, t.Cfg.CollisionMinOffsetDiff
	} else {
		valThresh, offThresh = t.Cfg.CollisionMinValueDiffM, t.Cfg.CollisionMinOffsetDiffM
	}
	if valDiff <= valThresh && offDiff <= offThresh {
		return nil
	}

	isParent := false
	for _, pid := range task.Segment.Parents() {
		if pid == owner.Segment.ID() {
			isParent = true
			break
		}
	}
	if distAlong < t.Cfg.CollisionMinParentDist && isParent {
		return nil
	}

	cyclic := owner.Segment.IsAncestor(task.Segment) || task.Segment.IsAncestor(owner.Segment)

	return &Collision{
		TaskA: owner, TaskB: task,
		Position:  p,
		ProgressA: 0, ProgressB: progress,
		ShiftA: t.Grids.SideAt(ox, oz), ShiftB: shift,
		FramesB: []traceframe.Frame{a, b},
		Cyclic:  cyclic,
	}
}

// completeSimulated fills in the missing frame-history side of any
// previously detected collision whose recorded cell this task's step now
// overlaps (spec §4.F.2 "populate them now").
func completeSimulated(simulated []*Collision, task *Task, p geom.Vec2, a, b traceframe.Frame) {
	for _, sc := range simulated {
		if sc.Position.Dist(p) > cellMatchTolerance {
			continue
		}
		if sc.FramesA == nil && sc.TaskA != nil && sc.TaskA.Segment == task.Segment {
			sc.FramesA = []traceframe.Frame{a, b}
		}
		if sc.FramesB == nil && sc.TaskB != nil && sc.TaskB.Segment == task.Segment {
			sc.FramesB = []traceframe.Frame{a, b}
		}
	}
}
