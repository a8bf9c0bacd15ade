// Package pathgraph implements the path graph (spec §4.C): a mutable DAG of
// typed Segments addressed by integer id, held in a single arena slice with
// no owning pointers between segments — parents/branches are id lists. This
// mirrors navigation.RouteGraph's rgNode/rgEdge arena-of-structs style in
// the teacher repo, generalized from a fixed contracted route graph to a
// mutable, growable segment DAG.
package pathgraph

import (
	"github.com/lixenwraith/terrain-tracer/geom"
	"github.com/lixenwraith/terrain-tracer/params"
)

// SmoothDelta is a piecewise-linear hat function applied across an integer
// number of integration steps, spanning a linear run of segments, with
// centered rise/fall and configurable flat padding (spec §3.1).
type SmoothDelta struct {
	ValueDelta   float64
	OffsetDelta  float64
	StepsTotal   int
	StepsStart   int
	StepsPadding int
}

// DiversionPoint adds an influence vector within a radius; composes
// additively with cost-following during steering (spec §3.1).
type DiversionPoint struct {
	Position  Vec2
	Diversion Vec2
	Range     float64
}

// StabilityPoint induces a per-frame local stability coefficient in [0,1]
// inversely proportional to normalized distance (spec §3.1).
type StabilityPoint struct {
	Position Vec2
	Range    float64
}

// Vec2 re-exports geom.Vec2 so callers of this package don't need to import
// geom directly just to set RelPosition/Target/DiversionPoint fields.
type Vec2 = geom.Vec2

// TraceParams holds the tunable per-segment extension parameters (spec
// §3.1 table). Booleans and scalars are plain fields, as in the teacher's
// parameter/*.go; the seven lazy parameter functions reuse params.Func.
type TraceParams struct {
	StepSize float64 // >= 1

	WidthLoss   float64
	SpeedLoss   float64
	DensityLoss float64

	AngleTenacity      float64 // [0, 0.9]
	SplitTenacity      float64 // [0, 1]
	AngleLimitAbs      float64 // >= 0, 0 = disabled
	ArcRetraceFactor   float64
	ArcRetraceRange    float64
	ArcStableRange     float64
	MergeResultTrim    float64 // positive: max retained length post-merge; negative: min dist-from-root before merge allowed
	SplitTurnLock      float64 // fraction of width

	StaticAngleTenacity bool
	AdjustmentPriority  bool
	ResultUnstable      bool
	PreventMerge        bool

	HasTarget bool
	Target    Vec2

	Cost         params.Func
	Swerve       params.Func
	ExtentLeft   params.Func
	ExtentRight  params.Func
	Speed        params.Func
	DensityLeft  params.Func
	DensityRight params.Func

	DiversionPoints []DiversionPoint
	StabilityPoints []StabilityPoint

	HasEndCondition bool
	EndCondition    params.GridSampler // width-mask, see spec §4.F end-condition rule
}

// DefaultTraceParams returns the zero-ish defaults used by a freshly
// attached segment: unit multipliers, no target, no end condition.
func DefaultTraceParams() TraceParams {
	return TraceParams{
		StepSize:    1,
		ExtentLeft:  params.Constant(0.5),
		ExtentRight: params.Constant(0.5),
		Speed:       params.Constant(1),
		DensityLeft: params.Constant(1),
		DensityRight: params.Constant(1),
		Cost:        params.Zero,
		Swerve:      params.Zero,
	}
}

// Equal reports whether two TraceParams describe "the same parameters" for
// the purposes of Segment.ExtendWithParams (spec §4.C): every field is
// compared, including Func identity via params.Func's value equality.
func (p TraceParams) Equal(o TraceParams) bool {
	if p.StepSize != o.StepSize || p.WidthLoss != o.WidthLoss || p.SpeedLoss != o.SpeedLoss ||
		p.DensityLoss != o.DensityLoss || p.AngleTenacity != o.AngleTenacity ||
		p.SplitTenacity != o.SplitTenacity || p.AngleLimitAbs != o.AngleLimitAbs ||
		p.ArcRetraceFactor != o.ArcRetraceFactor || p.ArcRetraceRange != o.ArcRetraceRange ||
		p.ArcStableRange != o.ArcStableRange || p.MergeResultTrim != o.MergeResultTrim ||
		p.SplitTurnLock != o.SplitTurnLock {
		return false
	}
	if p.StaticAngleTenacity != o.StaticAngleTenacity || p.AdjustmentPriority != o.AdjustmentPriority ||
		p.ResultUnstable != o.ResultUnstable || p.PreventMerge != o.PreventMerge {
		return false
	}
	if p.HasTarget != o.HasTarget || (p.HasTarget && p.Target != o.Target) {
		return false
	}
	if p.Cost != o.Cost || p.Swerve != o.Swerve || p.ExtentLeft != o.ExtentLeft ||
		p.ExtentRight != o.ExtentRight || p.Speed != o.Speed ||
		p.DensityLeft != o.DensityLeft || p.DensityRight != o.DensityRight {
		return false
	}
	if len(p.DiversionPoints) != len(o.DiversionPoints) || len(p.StabilityPoints) != len(o.StabilityPoints) {
		return false
	}
	for i := range p.DiversionPoints {
		if p.DiversionPoints[i] != o.DiversionPoints[i] {
			return false
		}
	}
	for i := range p.StabilityPoints {
		if p.StabilityPoints[i] != o.StabilityPoints[i] {
			return false
		}
	}
	if p.HasEndCondition != o.HasEndCondition || (p.HasEndCondition && p.EndCondition != o.EndCondition) {
		return false
	}
	return true
}

// Segment is one atomic piece of a path in the graph (spec §3.1). Its id
// is stable and equal to its insertion position within the owning Path's
// arena.
type Segment struct {
	id   int
	path *Path

	Length float64 // >= 0, world units

	parents  []int // sorted by increasing rel_shift of the referent
	branches []int // sorted by increasing rel_shift of the referent

	RelValue float64
	RelOffset float64
	RelShift float64
	RelAngle float64

	RelWidth   float64 // multiplier, default 1
	RelSpeed   float64 // multiplier, default 1
	RelDensity float64 // multiplier, default 1

	RelPosition Vec2 // used only for root/origin segments

	ExtraDelta []SmoothDelta

	InitialAngleDeltaMin float64

	Params TraceParams

	AdjustmentCount int
}

// ID returns the segment's stable id.
func (s *Segment) ID() int { return s.id }

// Parents returns the ids of this segment's parents, sorted by the
// parent's rel_shift.
func (s *Segment) Parents() []int { return s.parents }

// Branches returns the ids of this segment's branches, sorted by rel_shift.
func (s *Segment) Branches() []int { return s.branches }

// IsRoot reports whether the segment has no parents.
func (s *Segment) IsRoot() bool { return len(s.parents) == 0 }

// IsLeaf reports whether the segment has no branches.
func (s *Segment) IsLeaf() bool { return len(s.branches) == 0 }

// Path returns the owning path.
func (s *Segment) Path() *Path { return s.path }
