package pathfind

import (
	"math"

	"github.com/lixenwraith/terrain-tracer/geom"
	"github.com/lixenwraith/terrain-tracer/pqueue"
)

// DefaultMaxNodes is the search node cap after which Search fails outright
// (spec §4.D, "Terminate unsuccessfully ... node count exceeds a cap").
const DefaultMaxNodes = 20000

// stepsUntilKernelRollback is the run length of ancestors sharing a
// kernel_split before the search re-inflates resolution (spec §4.D step 5).
const stepsUntilKernelRollback = 4

// TargetTolerance is how close a node must land to Target to be considered
// a match in the outer dequeue loop.
const TargetTolerance = 1e-6

// CostFunc samples the steering cost grid at pos (spec §4.F.4: "local cost
// = params.cost(..., stability_at(dist))"); obstacle cells return a value
// >= Params.ObstacleThreshold.
type CostFunc func(pos geom.Vec2) float64

// AngleLimitFunc returns the per-position per-unit angle-delta limit at
// pos (spec §4.D step 1, §4.F.4: "derived from width, tenacity, absolute
// cap, sibling turn-lock zones").
type AngleLimitFunc func(pos geom.Vec2) float64

// Params configures one Search call.
type Params struct {
	ArcCount   int
	SplitCount int
	StepSize   float64

	ObstacleThreshold float64
	HeuristicWeight   float64 // h_weight
	CurvatureWeight   float64 // optional, 0 disables the curvature term
	MaxNodes          int     // 0 uses DefaultMaxNodes

	Cost       CostFunc
	AngleLimit AngleLimitFunc

	Start    geom.Vec2
	StartDir geom.Vec2 // unit
	Target   geom.Vec2
}

// Search runs the bounded-angle A* described in spec §4.D. It returns the
// ordered node list from start to target and ok=true on success, or
// ok=false if the open set empties or the node cap is hit.
func Search(p Params) (path []*Node, ok bool) {
	if p.MaxNodes <= 0 {
		p.MaxNodes = DefaultMaxNodes
	}
	if p.ArcCount < 2 {
		p.ArcCount = 2
	}
	if p.SplitCount < 1 {
		p.SplitCount = 1
	}
	kernel := NewKernel(p.ArcCount, p.SplitCount)

	start := &Node{Pos: p.Start, Dir: p.StartDir, DirIdx: 0, KernelSplit: kernel.MaxSplitIdx(), TotalCost: 0}

	open := pqueue.New()
	closed := make(map[nodeKey]*Node)

	startKey := keyFor(start.Pos, start.DirIdx, p.StepSize)
	open.Enqueue(start, priority(start, p))
	closed[startKey] = start

	nodeCount := 1

	for open.Len() > 0 {
		v, _, _ := open.Dequeue()
		cur := v.(*Node)

		if cur.Pos.Dist(p.Target) <= TargetTolerance {
			return cur.Path(), true
		}

		expanded := expand(kernel, cur, p, open, closed, &nodeCount)
		if !expanded && cur.KernelSplit > 0 {
			// dynamic_kernel_adjustment: roll the split down and re-expand
			// this node in place (spec §4.D, "If a frame fails to produce
			// any new nodes and kernel_split > 0, it rolls its own split
			// down and is re-expanded").
			cur.KernelSplit--
			cur.sameSplitRun = 0
			expand(kernel, cur, p, open, closed, &nodeCount)
		}

		if nodeCount > p.MaxNodes {
			return nil, false
		}
	}
	return nil, false
}

// expand generates and enqueues cur's valid children, returning whether at
// least one new node was produced (spec §4.D steps 1-6).
func expand(kernel *Kernel, cur *Node, p Params, open *pqueue.Queue, closed map[nodeKey]*Node, nodeCount *int) bool {
	produced := false
	totalDirs := 2 * p.ArcCount

	for i := 0; i <= 2*p.ArcCount; i++ {
		var dirIdxDelta int
		if i%2 == 1 {
			dirIdxDelta = i/2 + 1
		} else {
			dirIdxDelta = -i / 2
		}
		arcIdx := absInt(dirIdxDelta) - 1

		substeps := cur.KernelSplit + 1
		splitDistance := float64(substeps)

		var angleDeltaPerSub float64
		if arcIdx >= 0 {
			angleDeltaPerSub = kernel.AngleAt(arcIdx) / splitDistance
			limit := p.AngleLimit(cur.Pos)
			if angleDeltaPerSub > limit {
				break // step 1: subsequent i are larger, stop scanning
			}
			if dirIdxDelta < 0 {
				angleDeltaPerSub = -angleDeltaPerSub
			}
		}

		child, childCost, ok := advanceArc(cur, angleDeltaPerSub, substeps, p)
		if !ok {
			continue
		}

		nextDirIdx := ((cur.DirIdx+dirIdxDelta)%totalDirs + totalDirs) % totalDirs
		child.DirIdx = nextDirIdx
		child.KernelSplit = cur.KernelSplit
		child.Parent = cur
		child.TotalCost = cur.TotalCost + childCost
		if cur.KernelSplit == child.KernelSplit {
			child.sameSplitRun = cur.sameSplitRun + 1
		}
		if child.KernelSplit < kernel.MaxSplitIdx() && child.sameSplitRun >= stepsUntilKernelRollback {
			child.KernelSplit++
			child.sameSplitRun = 0
		}

		key := keyFor(child.Pos, child.DirIdx, p.StepSize)
		if existing, found := closed[key]; found {
			if priority(existing, p) <= priority(child, p) {
				continue
			}
		}
		closed[key] = child
		open.Enqueue(child, priority(child, p))
		*nodeCount++
		produced = true
	}

	if term, cost, ok := tryTerminalArc(cur, p); ok {
		term.Parent = cur
		term.TotalCost = cur.TotalCost + cost
		open.Enqueue(term, priority(term, p))
		*nodeCount++
		produced = true
	}

	return produced
}

// advanceArc walks substeps sub-steps along the arc/line implied by
// angleDeltaPerSub per substep, accumulating cost; it fails if any
// sub-step's cost meets or exceeds ObstacleThreshold (spec §4.D step 2).
func advanceArc(cur *Node, angleDeltaPerSub float64, substeps int, p Params) (child *Node, cost float64, ok bool) {
	pos := cur.Pos
	dir := cur.Dir
	subDist := p.StepSize / float64(substeps)

	for s := 0; s < substeps; s++ {
		if angleDeltaPerSub != 0 {
			pivotOffset := 180 * subDist / (math.Pi * -angleDeltaPerSub)
			pivot := pos.Add(dir.PerpCCW().Scale(pivotOffset))
			newDir := dir.RotateDeg(angleDeltaPerSub)
			pos = pivot.Sub(newDir.PerpCCW().Scale(pivotOffset))
			dir = newDir
		} else {
			pos = pos.Add(dir.Scale(subDist))
		}
		stepCost := p.Cost(pos)
		if stepCost >= p.ObstacleThreshold {
			return nil, 0, false
		}
		cost += stepCost + subDist
	}
	return &Node{Pos: pos, Dir: dir}, cost, true
}

// tryTerminalArc attempts a single arc that meets Target exactly, once cur
// is within one full step of it (spec §4.D step 6: "circle through
// (pos, direction, target)").
func tryTerminalArc(cur *Node, p Params) (*Node, float64, bool) {
	toTarget := p.Target.Sub(cur.Pos)
	dist := toTarget.Length()
	if dist > p.StepSize || dist == 0 {
		return nil, 0, false
	}

	angle := geom.SignedAngle(cur.Dir, toTarget.Normalize()) * 2 // chord-angle doubling for circle-through-point fit
	limit := p.AngleLimit(cur.Pos) * dist
	if math.Abs(angle) > limit {
		return nil, 0, false
	}

	steps := 8
	subDist := dist / float64(steps)
	angleDeltaPerSub := angle / float64(steps)
	pos := cur.Pos
	dir := cur.Dir
	var cost float64
	for s := 0; s < steps; s++ {
		if angleDeltaPerSub != 0 {
			pivotOffset := 180 * subDist / (math.Pi * -angleDeltaPerSub)
			pivot := pos.Add(dir.PerpCCW().Scale(pivotOffset))
			newDir := dir.RotateDeg(angleDeltaPerSub)
			pos = pivot.Sub(newDir.PerpCCW().Scale(pivotOffset))
			dir = newDir
		} else {
			pos = pos.Add(dir.Scale(subDist))
		}
		stepCost := p.Cost(pos)
		if stepCost >= p.ObstacleThreshold {
			return nil, 0, false
		}
		cost += stepCost + subDist
	}
	return &Node{Pos: p.Target, Dir: dir, DirIdx: cur.DirIdx, KernelSplit: cur.KernelSplit}, cost, true
}

// priority is the A* evaluation function: total_cost + h_weight*dist(pos,
// target) [+ curvature_weight*angle] (spec §4.D "Algorithm").
func priority(n *Node, p Params) float64 {
	h := n.Pos.Dist(p.Target) * p.HeuristicWeight
	if p.CurvatureWeight != 0 {
		h += p.CurvatureWeight * math.Abs(geom.SignedAngle(geom.Vec2{X: 1}, n.Dir))
	}
	return n.TotalCost + h
}

func absInt(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// SearchWithEscalation retries Search with escalating heuristic weight
// (1+2, 1+4, 1+8 multipliers of baseWeight) on failure, per spec §4.D:
// "On failure the outer tracer retries with escalating heuristic weight".
// It does not itself fall back to local steering — that is the caller's
// responsibility (spec: "on exhaustion it clears target and falls back to
// local steering").
func SearchWithEscalation(p Params, baseWeight float64) (path []*Node, ok bool) {
	multipliers := []float64{1, 1 + 2, 1 + 4, 1 + 8}
	for _, m := range multipliers {
		p.HeuristicWeight = baseWeight * m
		if path, ok = Search(p); ok {
			return path, true
		}
	}
	return nil, false
}
