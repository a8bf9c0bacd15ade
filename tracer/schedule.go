package tracer

import (
	"math"
	"sort"

	"github.com/lixenwraith/terrain-tracer/geom"
	"github.com/lixenwraith/terrain-tracer/pathgraph"
	"github.com/lixenwraith/terrain-tracer/traceframe"
)

// runPass performs one BFS sweep of try_trace over the whole path (spec
// §4.F.3). simulated carries collisions detected on a prior pass, supplied
// so the completion pass can fill in each collision's missing frame side.
// It returns every segment's result (keyed by segment id) and the new
// collisions detected on this pass.
func (t *Tracer) runPass(path *pathgraph.Path, simulated []*Collision) (map[int]*Result, []*Collision) {
	results := make(map[int]*Result)
	arrived := make(map[int]int)
	buildup := make(map[int]float64)
	t.activeTasks = make(map[int]*Task)

	var queue []*Task
	for _, rid := range path.Roots() {
		seg := path.Segment(rid)
		if seg.RelWidth <= 0 {
			continue
		}
		f := traceframe.New(seg.RelPosition, seg.RelAngle)
		queue = append(queue, t.newTask(seg, f, nil))
	}

	var collisions []*Collision
	for len(queue) > 0 {
		task := queue[0]
		queue = queue[1:]

		res := t.traceTask(task, simulated)
		results[task.Segment.ID()] = res

		if res.Collision != nil {
			collisions = append(collisions, res.Collision)
			continue
		}

		branches := append([]int(nil), task.Segment.Branches()...)
		sort.SliceStable(branches, func(i, j int) bool {
			return path.Segment(branches[i]).RelWidth > path.Segment(branches[j]).RelWidth
		})

		liveBranches := 0
		for _, bid := range branches {
			if path.Segment(bid).RelWidth > 0 {
				liveBranches++
			}
		}

		var inheritedBuildup float64
		if liveBranches == 1 {
			inheritedBuildup = res.WidthBuildup
		}

		for _, bid := range branches {
			branch := path.Segment(bid)
			if branch.RelWidth <= 0 {
				continue
			}
			parents := branch.Parents()
			arrived[bid]++
			if arrived[bid] != len(parents) {
				continue
			}

			var base traceframe.Frame
			branchParent := task.BranchParent
			if len(parents) == 1 {
				base = res.FinalFrame
				if inheritedBuildup > 0 {
					buildup[bid] = inheritedBuildup
				}
				branchParent = task
			} else {
				base = mergeParentFrames(parents, results)
				branchParent = nil // merges start a fresh linear branch
			}

			child := t.newTask(branch, base, branchParent)
			child.WidthBuildup = buildup[bid]
			child.DistFromRoot = task.DistFromRoot + task.Segment.Length
			queue = append(queue, child)
		}
	}

	return results, collisions
}

func (t *Tracer) newTask(seg *pathgraph.Segment, base traceframe.Frame, branchParent *Task) *Task {
	id := t.nextTaskID
	t.nextTaskID++
	tk := &Task{ID: id, Segment: seg, BaseFrame: base, BranchParent: branchParent}
	if branchParent != nil {
		tk.DistFromRoot = branchParent.DistFromRoot + branchParent.Segment.Length
	}
	return tk
}

// mergeParentFrames computes the width-weighted average base frame for a
// multi-parent branch (spec §4.F.3 "for multi-parent merges").
func mergeParentFrames(parentIDs []int, results map[int]*Result) traceframe.Frame {
	n := len(parentIDs)
	frames := make([]traceframe.Frame, n)
	var sumNormal geom.Vec2
	var sumWidth, sumSpeed, sumValue, sumDensity float64
	for i, pid := range parentIDs {
		f := results[pid].FinalFrame
		frames[i] = f
		sumNormal = sumNormal.Add(f.Normal)
		sumWidth += f.Width
		sumSpeed += f.Speed
		sumValue += f.Value
		sumDensity += f.Density
	}
	widthAvg := sumWidth / float64(n)

	var sumPos geom.Vec2
	var sumOffset float64
	for _, f := range frames {
		weight := 1.0
		if widthAvg != 0 {
			weight = f.Width / widthAvg
		}
		sumPos = sumPos.Add(f.Pos.Scale(weight))
		sumOffset += f.Offset * weight
	}

	normal := sumNormal.Scale(1 / float64(n))
	if normal.LengthSq() < 1e-12 {
		normal = frames[0].Normal
	} else {
		normal = normal.Normalize()
	}
	pos := sumPos.Scale(1 / float64(n))

	minProj := math.Inf(1)
	for _, f := range frames {
		proj := f.Pos.Sub(pos).Dot(normal)
		if proj < minProj {
			minProj = proj
		}
	}
	if minProj < 0 {
		pos = pos.Add(normal.Scale(minProj))
	}

	return traceframe.Frame{
		Pos:     pos,
		Normal:  normal,
		Angle:   geom.AngleOf(normal),
		Width:   widthAvg,
		Speed:   sumSpeed / float64(n),
		Value:   sumValue / float64(n),
		Offset:  sumOffset / float64(n),
		Density: sumDensity / float64(n),
		EMLeft:  0.5,
		EMRight: 0.5,
	}
}
