// Package collision implements the path-graph repair engine (spec §4.G):
// picking the earliest detected collision under a topological preorder and
// applying, in order, the six repair strategies (merge, divert, stabilize,
// simplify, tenacity, stub) until one succeeds. It is grounded on
// physics/collision.go's CollisionProfile-driven response-selection pattern
// in the teacher repo, generalized from a fixed per-entity-pair response
// table to an ordered strategy chain over a mutable segment graph, and on
// navigation/cache.go's recompute-and-retry cadence for the "mutate, then
// let the caller re-trace" control flow.
package collision

import (
	"sort"

	"github.com/lixenwraith/terrain-tracer/geom"
	"github.com/lixenwraith/terrain-tracer/params"
	"github.com/lixenwraith/terrain-tracer/pathgraph"
	"github.com/lixenwraith/terrain-tracer/traceframe"
)

// Input is the tracer-independent description of one detected collision
// (spec §3.1 TraceCollision) the handler needs. The tracer package
// constructs these from its own Collision/Task types so that this package
// never has to import tracer (which imports this package to invoke Handle).
type Input struct {
	SegmentA, SegmentB           *pathgraph.Segment
	DistFromRootA, DistFromRootB float64

	Position             geom.Vec2
	ProgressA, ProgressB float64
	ShiftA, ShiftB       float64
	FramesA, FramesB     []traceframe.Frame

	Cyclic               bool
	HasMergeA, HasMergeB bool
}

// passive and active return which side is the "passive" (already-written,
// owning) arm and which is "active" (the one that discovered the overlap):
// the active side is the one whose own frame history terminates at
// Position, i.e. the one that was still being traced when the collision
// fired (spec §4.F.4: "emit a TraceCollision ... and return early" — the
// returning task is always B).
func (in Input) passive() *pathgraph.Segment { return in.SegmentA }
func (in Input) active() *pathgraph.Segment  { return in.SegmentB }

// Handle picks the earliest collision under the spec §4.G.1 preorder and
// applies the first repair strategy (of the six in §4.G.2) that succeeds.
// It returns true if a repair was applied (the caller should clear grids
// and retrace), or false if collisions is empty.
func Handle(path *pathgraph.Path, collisions []Input, cfg params.Config) bool {
	if len(collisions) == 0 {
		return false
	}

	chosen := pickEarliest(collisions)

	strategies := []func(*pathgraph.Path, Input, params.Config) bool{
		tryMerge,
		tryDivert,
		tryStabilize,
		trySimplify,
		tryTenacity,
		tryStub,
	}
	for _, strategy := range strategies {
		if strategy(path, chosen, cfg) {
			return true
		}
	}
	return false
}

// pickEarliest selects the collision that precedes all others under the
// spec §4.G.1 preorder: "A precedes B if A is not a descendant of B's
// passive, B's passive is an ancestor of A's active ... preferring
// collisions further upstream; as a last tie-break, earlier by
// frame_b.dist when passives match." Enclosed collisions (whose actives
// lie within the chosen one's topological loop) are not filtered out here;
// discarding them is deferred to the next attempt's collision set, since
// correctly classifying "enclosed" requires the same loop walk merge
// itself performs.
func pickEarliest(collisions []Input) Input {
	sort.SliceStable(collisions, func(i, j int) bool {
		a, b := collisions[i], collisions[j]
		if precedesUpstream(a, b) != precedesUpstream(b, a) {
			return precedesUpstream(a, b)
		}
		return lastDist(a.FramesB) < lastDist(b.FramesB)
	})
	return collisions[0]
}

// precedesUpstream reports whether a is at least as far upstream as b: a's
// passive is an ancestor of b's active, or a's active is not a descendant
// of b's passive.
func precedesUpstream(a, b Input) bool {
	if a.passive() == nil || b.active() == nil {
		return false
	}
	if b.active().IsAncestor(a.passive()) {
		return true
	}
	return !b.passive().IsDescendant(a.active())
}

func lastDist(frames []traceframe.Frame) float64 {
	if len(frames) == 0 {
		return 0
	}
	return frames[len(frames)-1].Dist
}
