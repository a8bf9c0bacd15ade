package tracer

import (
	"testing"

	"github.com/lixenwraith/terrain-tracer/geom"
	"github.com/lixenwraith/terrain-tracer/params"
	"github.com/lixenwraith/terrain-tracer/pathgraph"
)

// TestTraceFallsBackToLocalSteeringWhenPathfinderFails exercises spec §7's
// non-fatal pathfinder-failure rule: when the targeted segment's cost field
// makes every cell an obstacle, the arc-kernel search can never expand past
// the start node and fails outright. The segment must still be traced to
// completion via local steering rather than ending after zero steps.
func TestTraceFallsBackToLocalSteeringWhenPathfinderFails(t *testing.T) {
	path := pathgraph.New()
	root := path.NewSegment()
	root.Length = 30
	root.RelPosition = geom.Vec2{X: 5, Z: 10}
	root.RelAngle = 0
	root.Params.HasTarget = true
	root.Params.Target = geom.Vec2{X: 35, Z: 10}
	root.Params.Cost = params.Constant(2000) // >= the 1000 obstacle threshold everywhere

	tr := New(50, 20, 5, 2, 5, params.DefaultConfig())
	if ok := tr.Trace(path, 1); !ok {
		t.Fatalf("expected the segment to trace cleanly despite the pathfinder failing")
	}

	v, found := tr.Grids.MainView().At(28, 10)
	if !found || v <= 0 {
		t.Errorf("expected local steering to carry the trace near the segment's far end, got (%v, %v)", v, found)
	}
}

func TestTraceSingleSegmentNoCollision(t *testing.T) {
	path := pathgraph.New()
	root := path.NewSegment()
	root.Length = 10
	root.RelPosition = geom.Vec2{X: 5, Z: 5}
	root.RelAngle = 0

	tr := New(20, 20, 5, 2, 5, params.DefaultConfig())
	if ok := tr.Trace(path, 1); !ok {
		t.Fatalf("expected a single non-colliding segment to trace cleanly on the first attempt")
	}

	v, found := tr.Grids.MainView().At(10, 5)
	if !found || v <= 0 {
		t.Errorf("expected a positive main width at the segment's midpoint, got (%v, %v)", v, found)
	}
}

func TestTraceZeroLengthSegmentEndsImmediately(t *testing.T) {
	path := pathgraph.New()
	root := path.NewSegment()
	root.Length = 0
	root.RelPosition = geom.Vec2{X: 2, Z: 2}

	tr := New(10, 10, 3, 2, 4, params.DefaultConfig())
	if ok := tr.Trace(path, 1); !ok {
		t.Fatalf("expected a zero-length segment to produce no collisions")
	}
}

func TestTraceConvergesOrStubsOnOverlappingSegments(t *testing.T) {
	path := pathgraph.New()
	a := path.NewSegment()
	a.Length = 10
	a.RelPosition = geom.Vec2{X: 5, Z: 10}
	a.RelAngle = 0

	b := path.NewSegment()
	b.Length = 10
	b.RelPosition = geom.Vec2{X: 5, Z: 10}
	b.RelAngle = 0
	b.RelValue = 5 // diverges enough from a's accumulated value to trip collision detection

	tr := New(20, 20, 5, 2, 5, params.DefaultConfig())

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unexpected panic tracing overlapping segments: %v", r)
		}
	}()
	tr.Trace(path, 5) // bounded attempts: converge or exhaust, either way must not panic
}
