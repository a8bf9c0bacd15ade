package collision

import (
	"math"

	"github.com/lixenwraith/terrain-tracer/params"
	"github.com/lixenwraith/terrain-tracer/pathgraph"
)

// tryStub applies strategy 6 (spec §4.G.2), the guaranteed fallback:
// shrink the less-capable side back by stub_backtrack_length from the
// collision position, cascading onto ancestors when the remainder would be
// below min_stub_length, discarding a segment entirely if it cannot
// shrink far enough. Always succeeds (possibly by discarding the whole
// chain), so Handle never returns false when collisions is non-empty.
func tryStub(path *pathgraph.Path, c Input, cfg params.Config) bool {
	fa, fb := lastFrame(c.FramesA), lastFrame(c.FramesB)
	target := c.SegmentB
	initialWidth := fb.Width
	if fa.Width < fb.Width {
		target = c.SegmentA
		initialWidth = fa.Width
	}
	stubBack(path, target, initialWidth, cfg)
	return true
}

// stubBack shrinks seg (and cascades onto ancestors) by stub_backtrack_length
// until the remainder is at least min_stub_length = 2*initial_width, where
// initial_width is the actual traced width at the collision frame (world
// units), not the segment's unitless rel_width multiplier.
func stubBack(path *pathgraph.Path, seg *pathgraph.Segment, initialWidth float64, cfg params.Config) {
	cur := seg
	backtrack := cfg.StubBacktrackLength
	minStub := 2 * math.Max(initialWidth, 0.01)
	for cur != nil {
		newLen := cur.Length - backtrack
		if newLen < minStub {
			parent := singleParent(cur)
			path.Discard(cur)
			cur = parent
			continue
		}
		cur.Length = newLen
		cur.Params.WidthLoss = math.Max(cur.Params.WidthLoss, initialWidth/math.Max(newLen, 1e-6))
		return
	}
}

func singleParent(seg *pathgraph.Segment) *pathgraph.Segment {
	parents := seg.Parents()
	if len(parents) != 1 {
		return nil
	}
	return seg.Path().Segment(parents[0])
}
