package pathfind

import (
	"testing"

	"github.com/lixenwraith/terrain-tracer/geom"
)

func noCost(geom.Vec2) float64 { return 0 }

func generousAngleLimit(geom.Vec2) float64 { return 45 }

func TestSearchStraightLineReachesTarget(t *testing.T) {
	p := Params{
		ArcCount:          3,
		SplitCount:        2,
		StepSize:          1,
		ObstacleThreshold: 100,
		HeuristicWeight:   1,
		Cost:              noCost,
		AngleLimit:        generousAngleLimit,
		Start:             geom.Vec2{X: 0, Z: 0},
		StartDir:          geom.Vec2{X: 1, Z: 0},
		Target:            geom.Vec2{X: 10, Z: 0},
	}
	path, ok := Search(p)
	if !ok {
		t.Fatalf("expected search to succeed on an open straight line")
	}
	if len(path) == 0 {
		t.Fatalf("expected non-empty path")
	}
	last := path[len(path)-1]
	if last.Pos.Dist(p.Target) > 1e-6 {
		t.Errorf("expected path to terminate at target, got %v", last.Pos)
	}
}

func TestSearchFailsWhenFullyObstructed(t *testing.T) {
	wall := func(pos geom.Vec2) float64 {
		if pos.X > 2 && pos.X < 8 {
			return 1000
		}
		return 0
	}
	p := Params{
		ArcCount:          2,
		SplitCount:        1,
		StepSize:          1,
		ObstacleThreshold: 100,
		HeuristicWeight:   1,
		MaxNodes:          500,
		Cost:              wall,
		AngleLimit:        func(geom.Vec2) float64 { return 0 }, // no turning allowed, wall is unavoidable
		Start:             geom.Vec2{X: 0, Z: 0},
		StartDir:          geom.Vec2{X: 1, Z: 0},
		Target:            geom.Vec2{X: 10, Z: 0},
	}
	_, ok := Search(p)
	if ok {
		t.Errorf("expected search to fail when the only path is blocked and turning is disallowed")
	}
}
