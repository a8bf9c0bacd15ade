package collision

import (
	"github.com/lixenwraith/terrain-tracer/geom"
	"github.com/lixenwraith/terrain-tracer/params"
	"github.com/lixenwraith/terrain-tracer/pathgraph"
	"github.com/lixenwraith/terrain-tracer/traceframe"
)

// tryDivert attempts strategy 2 (spec §4.G.2): push the higher-priority
// side away from the other arm by distributing a DiversionPoint over its
// divertable linear-parents chain.
func tryDivert(path *pathgraph.Path, c Input, cfg params.Config) bool {
	seg, other := pickDivertSide(c)
	tp := seg.Params
	if tp.HasTarget || tp.ArcRetraceRange <= 0 || tp.ArcRetraceFactor <= 0 {
		return false
	}
	if len(seg.Params.DiversionPoints) >= cfg.MaxDiversionPoints {
		return false
	}

	direction := divertDirection(c, seg, other)

	chain := seg.LinearParents()
	var cumulative float64
	applied := false
	for _, s := range chain {
		if cumulative >= tp.ArcRetraceRange {
			break
		}
		remaining := tp.ArcRetraceRange - cumulative
		segLen := s.Length
		target := s
		if segLen > remaining && remaining > 0 {
			target = path.InsertNew(s)
			target.Length = segLen - remaining
			s.Length = remaining
		}
		s.Params.DiversionPoints = append(s.Params.DiversionPoints, pathgraph.DiversionPoint{
			Position:  c.Position,
			Diversion: direction.Scale(tp.ArcRetraceFactor),
			Range:     tp.ArcRetraceRange,
		})
		cumulative += s.Length
		applied = true
	}
	return applied
}

// pickDivertSide chooses the side to divert: the one with the wider final
// frame (a proxy for "higher priority"), preferring whichever has fewer
// existing diversion points on a tie.
func pickDivertSide(c Input) (seg, other *pathgraph.Segment) {
	fa, fb := lastFrame(c.FramesA), lastFrame(c.FramesB)
	if fa.Width > fb.Width {
		return c.SegmentA, c.SegmentB
	}
	if fb.Width > fa.Width {
		return c.SegmentB, c.SegmentA
	}
	if len(c.SegmentA.Params.DiversionPoints) <= len(c.SegmentB.Params.DiversionPoints) {
		return c.SegmentA, c.SegmentB
	}
	return c.SegmentB, c.SegmentA
}

func divertDirection(c Input, seg, other *pathgraph.Segment) geom.Vec2 {
	fa, fb := lastFrame(c.FramesA), lastFrame(c.FramesB)
	if c.Cyclic {
		bis := fa.Normal.Add(fb.Normal)
		if bis.LengthSq() < 1e-9 {
			return fa.PerpCW()
		}
		return bis.Normalize()
	}
	self, otherFrame := fa, fb
	if seg == c.SegmentB {
		self, otherFrame = fb, fa
	}
	away := self.Pos.Sub(otherFrame.Pos)
	if away.LengthSq() < 1e-9 {
		return self.PerpCW()
	}
	dir := away.Normalize()
	if grazing(self, otherFrame) {
		dir = dir.Reflect(self.Normal)
	}
	return dir
}

// grazing reports whether the two arms meet at a shallow angle (nearly
// parallel normals), the case spec §4.G.2 calls out for a reflected
// diversion direction.
func grazing(a, b traceframe.Frame) bool {
	return a.Normal.Dot(b.Normal) > 0.8
}
