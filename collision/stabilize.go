package collision

import (
	"math"

	"github.com/lixenwraith/terrain-tracer/geom"
	"github.com/lixenwraith/terrain-tracer/params"
	"github.com/lixenwraith/terrain-tracer/pathgraph"
)

// tryStabilize attempts strategy 3 (spec §4.G.2): when either side's shift
// distance exceeded its base extent, add a StabilityPoint at both collision
// frame positions to every segment reachable forward and backward from the
// colliding side, damping extent variation in the neighborhood.
func tryStabilize(path *pathgraph.Path, c Input, cfg params.Config) bool {
	fa, fb := lastFrame(c.FramesA), lastFrame(c.FramesB)
	exceeded := math.Abs(c.ShiftA) > fa.Width/2 || math.Abs(c.ShiftB) > fb.Width/2
	if !exceeded {
		return false
	}

	addedA := addStabilityReachable(c.SegmentA, fa.Pos, fb.Pos, cfg)
	addedB := addStabilityReachable(c.SegmentB, fa.Pos, fb.Pos, cfg)
	return addedA || addedB
}

func addStabilityReachable(seg *pathgraph.Segment, p1, p2 geom.Vec2, cfg params.Config) bool {
	reachable := seg.Path().ConnectedSegments(seg, true, true, nil, nil)
	applied := false
	for _, s := range reachable {
		if len(s.Params.StabilityPoints) >= cfg.MaxStabilityPoints {
			continue
		}
		rng := s.Params.ArcStableRange
		if rng <= 0 {
			rng = s.RelWidth
		}
		s.Params.StabilityPoints = append(s.Params.StabilityPoints,
			pathgraph.StabilityPoint{Position: p1, Range: rng},
			pathgraph.StabilityPoint{Position: p2, Range: rng},
		)
		applied = true
	}
	return applied
}
