package collision

import (
	"math"

	"github.com/lixenwraith/terrain-tracer/params"
	"github.com/lixenwraith/terrain-tracer/pathgraph"
)

// tryTenacity attempts strategy 5 (spec §4.G.2): for cyclic collisions
// (a same-path loop), raise angle_tenacity on every ancestor segment
// connecting the two arms, up to tenacity_adj_max.
func tryTenacity(path *pathgraph.Path, c Input, cfg params.Config) bool {
	if !c.Cyclic {
		return false
	}
	ancestors := loopAncestors(c.SegmentA, c.SegmentB)
	if len(ancestors) == 0 {
		return false
	}
	changed := false
	for _, s := range ancestors {
		if s.Params.AngleTenacity < cfg.TenacityAdjMax {
			s.Params.AngleTenacity = math.Min(s.Params.AngleTenacity+cfg.TenacityAdjStep, cfg.TenacityAdjMax)
			changed = true
		}
	}
	return changed
}

// loopAncestors returns the ancestor chain connecting whichever of a, b is
// the descendant back up to the other, i.e. the segments forming the
// cyclic loop the collision was detected on.
func loopAncestors(a, b *pathgraph.Segment) []*pathgraph.Segment {
	if a.IsAncestor(b) {
		return a.Path().ConnectedSegments(a, false, true, nil, func(s *pathgraph.Segment) bool { return s == b })
	}
	if b.IsAncestor(a) {
		return b.Path().ConnectedSegments(b, false, true, nil, func(s *pathgraph.Segment) bool { return s == a })
	}
	return nil
}
