package tracer

import (
	"math"

	"github.com/pkg/errors"

	"github.com/lixenwraith/terrain-tracer/collision"
	"github.com/lixenwraith/terrain-tracer/geom"
	"github.com/lixenwraith/terrain-tracer/gridview"
	"github.com/lixenwraith/terrain-tracer/params"
	"github.com/lixenwraith/terrain-tracer/pathgraph"
)

// ErrFrameBudgetExceeded is wrapped and panicked when a single trace pass
// integrates more frames than Config.MaxTraceFrames allows (spec §4.F.4,
// "If total frames exceed max_trace_frames, fatal").
var ErrFrameBudgetExceeded = errors.New("tracer: frame budget exceeded")

// followKernel is the pre-constructed 3x3 square offset kernel used for
// cost-gradient estimation (spec §4.F.1).
var followKernel = [8][2]float64{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Tracer is the deterministic forward integrator (spec §4.F). It owns one
// set of output Grids and repeatedly rewalks a path graph until no
// collisions remain or the attempt budget is exhausted. This mirrors
// render/orchestrator.go's per-frame pass-and-present loop in the teacher
// repo, generalized from a terminal-cell render pass to a raster-into-grids
// geometry pass, and navigation/cache.go's dirty/recompute/retry cadence,
// generalized to "clear grids, retry with a rewritten graph".
type Tracer struct {
	Grids *gridview.Grids
	Cfg   params.Config

	nextTaskID  int
	activeTasks map[int]*Task // live only during a runPass, for collision-owner lookup
}

// New constructs a Tracer with fresh output grids sized per spec §4.F.1.
func New(innerX, innerZ, gridMargin int, traceInnerMargin, traceOuterMargin float64, cfg params.Config) *Tracer {
	return &Tracer{
		Grids: gridview.New(innerX, innerZ, gridMargin, traceInnerMargin, traceOuterMargin),
		Cfg:   cfg,
	}
}

// Trace runs the top-level loop (spec §4.F.2): trace the whole path,
// and on any collision, run a second pass to complete both sides of every
// detected collision, hand them to the collision handler for repair, clear
// the grids, and retry. Returns true once a full pass produces zero
// collisions, or false if max_attempts (or Cfg.MaxAttempts if maxAttempts
// is 0) is exhausted without converging.
func (t *Tracer) Trace(path *pathgraph.Path, maxAttempts int) bool {
	if maxAttempts <= 0 {
		maxAttempts = t.Cfg.MaxAttempts
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		_, collisions := t.runPass(path, nil)
		if len(collisions) == 0 {
			return true
		}
		t.Grids.Clear()
		t.runPass(path, collisions) // completion pass: fills each collision's missing FramesA
		if !collision.Handle(path, toInputs(collisions), t.Cfg) {
			return false
		}
		t.Grids.Clear()
	}
	return false
}

func toInputs(cs []*Collision) []collision.Input {
	inputs := make([]collision.Input, len(cs))
	for i, c := range cs {
		inputs[i] = collision.Input{
			SegmentA: c.TaskA.Segment, SegmentB: c.TaskB.Segment,
			DistFromRootA: c.TaskA.DistFromRoot, DistFromRootB: c.TaskB.DistFromRoot,
			Position:   c.Position,
			ProgressA:  c.ProgressA, ProgressB: c.ProgressB,
			ShiftA:     c.ShiftA, ShiftB: c.ShiftB,
			FramesA:    c.FramesA, FramesB: c.FramesB,
			Cyclic:     c.Cyclic,
			HasMergeA:  c.HasMergeA, HasMergeB: c.HasMergeB,
		}
	}
	return inputs
}

// followVector samples the 3x3 cost kernel around pos plus any diversion
// point contributions scaled by (1 - dist/range), returning the direction
// local steering should turn toward (spec §4.F.4 "local steering").
func followVector(pos geom.Vec2, dist float64, cost func(geom.Vec2) float64, diversions []pathgraph.DiversionPoint) geom.Vec2 {
	var grad geom.Vec2
	center := cost(pos)
	for _, off := range followKernel {
		sample := geom.Vec2{X: pos.X + off[0], Z: pos.Z + off[1]}
		delta := center - cost(sample)
		grad = grad.Add(geom.Vec2{X: off[0], Z: off[1]}.Scale(delta))
	}
	follow := grad
	for _, dp := range diversions {
		r := pos.Dist(dp.Position)
		if dp.Range <= 0 || r >= dp.Range {
			continue
		}
		follow = follow.Add(dp.Diversion.Scale(1 - r/dp.Range))
	}
	return follow
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absF(v float64) float64 { return math.Abs(v) }
