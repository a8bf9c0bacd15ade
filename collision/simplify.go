package collision

import (
	"math"

	"github.com/lixenwraith/terrain-tracer/params"
	"github.com/lixenwraith/terrain-tracer/pathgraph"
)

// trySimplify attempts strategy 4 (spec §4.G.2): if the colliding segment's
// chain has a preceding split with no downstream merges in its sibling
// subtree, lengthen the pre-split anchor so the split happens later,
// giving both arms more room to diverge before they would otherwise touch.
func trySimplify(path *pathgraph.Path, c Input, cfg params.Config) bool {
	anchor := findPreSplitAnchor(c.SegmentB)
	if anchor == nil {
		anchor = findPreSplitAnchor(c.SegmentA)
	}
	if anchor == nil {
		return false
	}
	if hasDownstreamMergeInSiblings(anchor) {
		return false
	}
	anchor.Length += cfg.SimplificationLength * math.Pow(2, float64(anchor.AdjustmentCount))
	anchor.AdjustmentCount++
	return true
}

func findPreSplitAnchor(seg *pathgraph.Segment) *pathgraph.Segment {
	cur := seg
	for {
		parents := cur.Parents()
		if len(parents) != 1 {
			return nil
		}
		parent := cur.Path().Segment(parents[0])
		if len(parent.Branches()) > 1 {
			return parent
		}
		if parent.IsRoot() {
			return nil
		}
		cur = parent
	}
}

func hasDownstreamMergeInSiblings(anchor *pathgraph.Segment) bool {
	for _, bid := range anchor.Branches() {
		sib := anchor.Path().Segment(bid)
		found := false
		anchor.Path().BFS([]int{sib.ID()}, true, false, func(s *pathgraph.Segment) bool {
			if len(s.Parents()) > 1 {
				found = true
			}
			return !found
		})
		if found {
			return true
		}
	}
	return false
}
