package collision

import (
	"math"

	"github.com/lixenwraith/terrain-tracer/geom"
	"github.com/lixenwraith/terrain-tracer/params"
	"github.com/lixenwraith/terrain-tracer/pathgraph"
)

// tryMerge attempts strategy 1 (spec §4.G.2): splice a short straight duct
// plus a constant-curvature arc onto each colliding arm so they join along
// a shared normal, then append one merged continuation segment. This is a
// simplified rendition of the full tangent-circular-arc solve: rather than
// walking frame histories with a two-pointer search for an exact
// circle-through-point fit, duct/arc lengths are derived directly from the
// two arms' final frame positions, and the "arc" is realized as a segment
// whose swerve parameter is pinned to force the maximum per-step turn
// (spec §4.F.4's angle-limit clamp then bends it at a roughly constant
// rate, approximating constant curvature).
func tryMerge(path *pathgraph.Path, c Input, cfg params.Config) bool {
	segA, segB := c.SegmentA, c.SegmentB
	if c.Cyclic || hasDownstreamMerge(segA) || hasDownstreamMerge(segB) {
		return false
	}
	if segA.Params.PreventMerge || segB.Params.PreventMerge {
		return false
	}
	if descendsFromUnstable(segA) || descendsFromUnstable(segB) {
		return false
	}
	if len(c.FramesA) == 0 || len(c.FramesB) == 0 {
		return false
	}

	if trim := segA.Params.MergeResultTrim; trim < 0 && c.DistFromRootA < -trim {
		return false
	}
	if trim := segB.Params.MergeResultTrim; trim < 0 && c.DistFromRootB < -trim {
		return false
	}

	fa := c.FramesA[len(c.FramesA)-1]
	fb := c.FramesB[len(c.FramesB)-1]

	valueDiff := math.Abs(fa.Value - fb.Value)
	offsetDiff := math.Abs(fa.Offset - fb.Offset)
	if valueDiff > cfg.MergeValueDeltaLimit*2 || offsetDiff > cfg.MergeOffsetDeltaLimit*2 {
		return false
	}

	normal := mergedNormal(fa.Normal, fb.Normal)
	ductLen := fa.Pos.Dist(fb.Pos) / 2
	if ductLen <= 1e-6 {
		return false
	}

	ductA := appendFixedChild(path, segA, ductLen, params.Zero)
	arcA := appendFixedChild(path, ductA, ductLen, params.Constant(1))
	ductB := appendFixedChild(path, segB, ductLen, params.Zero)
	arcB := appendFixedChild(path, ductB, ductLen, params.Constant(1))

	heavier := segA
	if segB.Length > segA.Length {
		heavier = segB
	}

	merged := path.AttachNew(arcA)
	path.Attach(arcB, merged)
	merged.Params = heavier.Params
	merged.Length = math.Max(segA.Length, segB.Length) - 2*ductLen
	if merged.Length < 0 {
		merged.Length = 0
	}
	merged.RelAngle = geom.AngleOf(normal)

	distributeSmoothDelta(segA, -valueDiff/2, -offsetDiff/2, cfg)
	distributeSmoothDelta(segB, valueDiff/2, offsetDiff/2, cfg)

	return true
}

func mergedNormal(na, nb geom.Vec2) geom.Vec2 {
	sum := na.Add(nb)
	if sum.LengthSq() < 1e-6 {
		return na.PerpCW()
	}
	return sum.Normalize()
}

func appendFixedChild(path *pathgraph.Path, parent *pathgraph.Segment, length float64, swerve params.Func) *pathgraph.Segment {
	child := path.AttachNew(parent)
	child.Length = length
	child.Params.Swerve = swerve
	child.Params.HasTarget = false
	return child
}

func hasDownstreamMerge(seg *pathgraph.Segment) bool {
	found := false
	seg.Path().BFS([]int{seg.ID()}, true, false, func(s *pathgraph.Segment) bool {
		if s.ID() != seg.ID() && len(s.Parents()) > 1 {
			found = true
		}
		return !found
	})
	return found
}

func descendsFromUnstable(seg *pathgraph.Segment) bool {
	cur := seg
	for {
		if cur.Params.ResultUnstable {
			return true
		}
		parents := cur.Parents()
		if len(parents) != 1 {
			return false
		}
		cur = cur.Path().Segment(parents[0])
	}
}

// distributeSmoothDelta spreads a value/offset delta as a padded hat
// function over seg's linear-parents chain (spec §4.G.2 "smooth-distribute
// ... using SmoothDelta with steps_padding = total_steps/8"), falling back
// to nudging the chain root's rel_value/rel_offset when the chain has no
// integration steps to carry a delta over.
func distributeSmoothDelta(seg *pathgraph.Segment, valueDelta, offsetDelta float64, cfg params.Config) {
	chain := seg.LinearParents()
	if len(chain) == 0 {
		return
	}

	totalSteps := 0
	for _, s := range chain {
		totalSteps += stepsOf(s)
	}
	if totalSteps == 0 {
		root := chain[len(chain)-1]
		root.RelValue += valueDelta / 2
		root.RelOffset += offsetDelta / 2
		return
	}

	padding := totalSteps / 8
	for _, s := range chain {
		steps := stepsOf(s)
		if steps <= 0 {
			continue
		}
		s.ExtraDelta = append(s.ExtraDelta, pathgraph.SmoothDelta{
			ValueDelta:   valueDelta * float64(steps) / float64(totalSteps),
			OffsetDelta:  offsetDelta * float64(steps) / float64(totalSteps),
			StepsTotal:   steps,
			StepsPadding: padding,
		})
	}
}

func stepsOf(s *pathgraph.Segment) int {
	if s.Params.StepSize <= 0 {
		return 0
	}
	return int(s.Length / s.Params.StepSize)
}
