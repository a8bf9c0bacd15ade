package pathgraph

import "github.com/pkg/errors"

// Clone deep-copies every segment's attributes and re-attaches by id,
// producing an independent Path with the same structure (spec §4.C).
func (p *Path) Clone() *Path {
	np := &Path{segments: make([]*Segment, len(p.segments))}
	for _, s := range p.segments {
		ns := &Segment{
			id:                   s.id,
			path:                 np,
			Length:               s.Length,
			parents:              append([]int(nil), s.parents...),
			branches:             append([]int(nil), s.branches...),
			RelValue:             s.RelValue,
			RelOffset:            s.RelOffset,
			RelShift:             s.RelShift,
			RelAngle:             s.RelAngle,
			RelWidth:             s.RelWidth,
			RelSpeed:             s.RelSpeed,
			RelDensity:           s.RelDensity,
			RelPosition:          s.RelPosition,
			ExtraDelta:           append([]SmoothDelta(nil), s.ExtraDelta...),
			InitialAngleDeltaMin: s.InitialAngleDeltaMin,
			Params:               s.Params,
			AdjustmentCount:      s.AdjustmentCount,
		}
		np.segments[s.id] = ns
	}
	np.roots = append([]int(nil), p.roots...)
	return np
}

// Combine grafts another path's roots into self: self-equal roots and
// branches (by Segment.SelfEquals) are identified with self's existing
// segments rather than duplicated; everything else is cloned in as new
// segments (spec §4.C).
func (p *Path) Combine(other *Path) {
	if p.empty {
		panic(errors.Wrap(ErrEmptyPathMutation, "Combine"))
	}
	idMap := make(map[int]int, len(other.segments))
	for _, otherRootID := range other.roots {
		p.combineSubtree(other, otherRootID, idMap)
	}
}

// combineSubtree recursively grafts the subtree rooted at otherID (in
// other) into p, returning the id within p that now represents it.
func (p *Path) combineSubtree(other *Path, otherID int, idMap map[int]int) int {
	if mapped, ok := idMap[otherID]; ok {
		return mapped
	}
	otherSeg := other.Segment(otherID)

	// Try to identify with an existing root of p that is self-equal, for
	// the top-level roots of other.
	var target *Segment
	for _, pRootID := range p.roots {
		pRoot := p.Segment(pRootID)
		if pRoot.SelfEquals(otherSeg) {
			target = pRoot
			break
		}
	}
	if target == nil {
		target = p.NewSegment()
		copySegmentAttrs(target, otherSeg)
	}
	idMap[otherID] = target.id

	p.combineChildren(other, otherSeg, target, idMap)
	return target.id
}

// combineChildren identifies or clones otherSeg's branches against target's
// own branches and recurses, so a matched branch's descendants are grafted
// too rather than left stranded behind the idMap memo guard.
func (p *Path) combineChildren(other *Path, otherSeg, target *Segment, idMap map[int]int) {
	for _, obID := range otherSeg.branches {
		ob := other.Segment(obID)
		var branchTarget *Segment
		for _, candID := range target.branches {
			cand := p.Segment(candID)
			if cand.SelfEquals(ob) {
				branchTarget = cand
				break
			}
		}
		if branchTarget == nil {
			childID := p.combineNewSubtree(other, obID, idMap)
			branchTarget = p.Segment(childID)
			p.Attach(target, branchTarget)
		} else {
			idMap[obID] = branchTarget.id
			p.combineChildren(other, ob, branchTarget, idMap)
		}
	}
}

// combineNewSubtree clones otherID's subtree wholesale (no further
// identification attempts below the first unmatched node).
func (p *Path) combineNewSubtree(other *Path, otherID int, idMap map[int]int) int {
	if mapped, ok := idMap[otherID]; ok {
		return mapped
	}
	otherSeg := other.Segment(otherID)
	target := p.NewSegment()
	copySegmentAttrs(target, otherSeg)
	idMap[otherID] = target.id
	for _, obID := range otherSeg.branches {
		childID := p.combineNewSubtree(other, obID, idMap)
		p.Attach(target, p.Segment(childID))
	}
	return target.id
}

func copySegmentAttrs(dst, src *Segment) {
	dst.Length = src.Length
	dst.RelValue = src.RelValue
	dst.RelOffset = src.RelOffset
	dst.RelShift = src.RelShift
	dst.RelAngle = src.RelAngle
	dst.RelWidth = src.RelWidth
	dst.RelSpeed = src.RelSpeed
	dst.RelDensity = src.RelDensity
	dst.RelPosition = src.RelPosition
	dst.ExtraDelta = append([]SmoothDelta(nil), src.ExtraDelta...)
	dst.InitialAngleDeltaMin = src.InitialAngleDeltaMin
	dst.Params = src.Params
	dst.AdjustmentCount = src.AdjustmentCount
}
