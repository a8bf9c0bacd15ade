package pathfind

import (
	"math"

	"github.com/lixenwraith/terrain-tracer/geom"
)

// Node is one expanded pose in the search (spec §4.D).
type Node struct {
	Pos         geom.Vec2
	Dir         geom.Vec2 // unit direction
	DirIdx      int
	KernelSplit int
	Parent      *Node
	TotalCost   float64

	sameSplitRun int // consecutive ancestors sharing KernelSplit, for rollback escalation
}

// nodeKey quantizes a node's position (to q = 0.5*step) and direction
// index for open/closed-set deduplication (spec §4.D "Dedupe by NodeKey").
type nodeKey struct {
	qx, qz int64
	dirIdx int
}

func keyFor(pos geom.Vec2, dirIdx int, step float64) nodeKey {
	q := 0.5 * step
	if q == 0 {
		q = 1
	}
	return nodeKey{
		qx:     int64(math.Round(pos.X / q)),
		qz:     int64(math.Round(pos.Z / q)),
		dirIdx: dirIdx,
	}
}

// Path reconstructs the ordered list of nodes from the start to n by
// walking Parent links.
func (n *Node) Path() []*Node {
	var rev []*Node
	for cur := n; cur != nil; cur = cur.Parent {
		rev = append(rev, cur)
	}
	out := make([]*Node, len(rev))
	for i, node := range rev {
		out[len(rev)-1-i] = node
	}
	return out
}
