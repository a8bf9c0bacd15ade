package collision

import (
	"testing"

	"github.com/lixenwraith/terrain-tracer/geom"
	"github.com/lixenwraith/terrain-tracer/params"
	"github.com/lixenwraith/terrain-tracer/pathgraph"
	"github.com/lixenwraith/terrain-tracer/traceframe"
)

func TestHandleStubsWhenNoOtherStrategyApplies(t *testing.T) {
	path := pathgraph.New()
	a := path.NewSegment()
	a.Length = 10
	b := path.NewSegment()
	b.Length = 10

	// Block every earlier strategy: merge (PreventMerge), divert (no target,
	// zero arc_retrace_range is already the default), stabilize (shift well
	// under half-width), simplify (neither segment has a pre-split ancestor),
	// tenacity (not cyclic) — leaving only the guaranteed stub fallback.
	a.Params.PreventMerge = true
	b.Params.PreventMerge = true

	frame := traceframe.Frame{
		Pos:    geom.Vec2{X: 0, Z: 0},
		Normal: geom.Vec2{X: 1, Z: 0},
		Width:  1,
	}

	in := Input{
		SegmentA: a,
		SegmentB: b,
		FramesA:  []traceframe.Frame{frame},
		FramesB:  []traceframe.Frame{frame},
		ShiftA:   0.1,
		ShiftB:   0.1,
	}

	if ok := Handle(path, []Input{in}, params.DefaultConfig()); !ok {
		t.Fatalf("expected Handle to always succeed via the stub fallback")
	}
	if a.Length == 10 && b.Length == 10 {
		t.Errorf("expected the stub strategy to shrink one of the colliding segments")
	}
}

func TestTryStubUsesTracedFrameWidthNotRelWidth(t *testing.T) {
	path := pathgraph.New()
	a := path.NewSegment()
	a.Length = 10
	a.RelWidth = 5 // unitless multiplier, deliberately far from the traced width below
	b := path.NewSegment()
	b.Length = 20
	b.RelWidth = 5

	// a has the narrower traced frame, so a is the stub target.
	frameA := traceframe.Frame{Width: 1}
	frameB := traceframe.Frame{Width: 9}

	cfg := params.DefaultConfig()
	cfg.StubBacktrackLength = 3

	in := Input{
		SegmentA: a, SegmentB: b,
		FramesA: []traceframe.Frame{frameA}, FramesB: []traceframe.Frame{frameB},
	}

	if !tryStub(path, in, cfg) {
		t.Fatalf("expected tryStub to always succeed")
	}
	// min_stub_length = 2*traced_width = 2*1 = 2; newLen = 10-3 = 7 >= 2, so a
	// survives shrunk rather than being discarded (which rel_width=5 would have
	// forced: min_stub_length = 2*5 = 10 > 7).
	if a.Length != 7 {
		t.Errorf("expected a shrunk to length 7 using the traced frame width, got %v", a.Length)
	}
}

func TestPickEarliestTieBreaksByFrameBDist(t *testing.T) {
	path := pathgraph.New()
	s1 := path.NewSegment()
	s1.Length = 5
	s2 := path.NewSegment()
	s2.Length = 5

	far := Input{SegmentA: s1, SegmentB: s2, FramesB: []traceframe.Frame{{Dist: 5}}}
	near := Input{SegmentA: s1, SegmentB: s2, FramesB: []traceframe.Frame{{Dist: 2}}}

	chosen := pickEarliest([]Input{far, near})
	if chosen.FramesB[0].Dist != 2 {
		t.Errorf("expected the collision with the smaller frame_b distance to be picked, got dist %v", chosen.FramesB[0].Dist)
	}
}

func TestTryTenacityRaisesAngleTenacityAlongLoop(t *testing.T) {
	path := pathgraph.New()
	root := path.NewSegment()
	root.Length = 10
	child := path.AttachNew(root)
	child.Length = 10

	cfg := params.DefaultConfig()
	in := Input{SegmentA: root, SegmentB: child, Cyclic: true}

	if !tryTenacity(path, in, cfg) {
		t.Fatalf("expected tryTenacity to succeed on a cyclic collision with a connecting ancestor chain")
	}
	if root.Params.AngleTenacity <= 0 {
		t.Errorf("expected root's angle_tenacity to be raised, got %v", root.Params.AngleTenacity)
	}
}

func TestTryTenacityRejectsNonCyclic(t *testing.T) {
	path := pathgraph.New()
	a := path.NewSegment()
	b := path.NewSegment()
	if tryTenacity(path, Input{SegmentA: a, SegmentB: b, Cyclic: false}, params.DefaultConfig()) {
		t.Errorf("expected tryTenacity to reject a non-cyclic collision")
	}
}

func TestTryStabilizeAddsPointsWhenShiftExceedsHalfWidth(t *testing.T) {
	path := pathgraph.New()
	a := path.NewSegment()
	a.Length = 10
	a.RelWidth = 1
	b := path.NewSegment()
	b.Length = 10
	b.RelWidth = 1

	frame := traceframe.Frame{Pos: geom.Vec2{X: 1, Z: 1}, Normal: geom.Vec2{X: 1, Z: 0}, Width: 1}
	in := Input{
		SegmentA: a, SegmentB: b,
		FramesA: []traceframe.Frame{frame}, FramesB: []traceframe.Frame{frame},
		ShiftA: 0.9, ShiftB: 0.1, // 0.9 > traced frame Width/2 (0.5) trips the strategy
	}

	if !tryStabilize(path, in, params.DefaultConfig()) {
		t.Fatalf("expected tryStabilize to fire when shift exceeds half the segment's width")
	}
	if len(a.Params.StabilityPoints) == 0 {
		t.Errorf("expected stability points to be recorded on segment a")
	}
}
