package tracer

import "github.com/lixenwraith/terrain-tracer/geom"

// applySmoothBranching blends a just-written main-channel cell toward an
// idealized "cone" value derived from sibling relative widths when the
// owning segment sits at a split or merge fork, preventing a visible seam
// at the fork (spec §4.F.5). This is a simplified stand-in for the full
// distance-to-fork-weighted blend: it applies a fixed half-strength blend
// whenever the segment has branches or multiple parents, rather than
// fading the blend in/out over main_grid_smooth_length · base_width.
func (t *Tracer) applySmoothBranching(task *Task, ox, oz int, mainVal, shift float64) {
	seg := task.Segment
	if t.Cfg.MainGridSmoothLength <= 0 {
		return
	}

	var widths []float64
	for _, bid := range seg.Branches() {
		widths = append(widths, seg.Path().Segment(bid).RelWidth)
	}
	for _, pid := range seg.Parents() {
		widths = append(widths, seg.Path().Segment(pid).RelWidth)
	}
	if len(widths) == 0 {
		return
	}

	var sum float64
	for _, w := range widths {
		sum += w
	}
	coneMain := mainVal * (sum / float64(len(widths)))

	t.Grids.SetMain(ox, oz, geom.LerpF(mainVal, coneMain, 0.5))
	t.Grids.SetSide(ox, oz, shift*0.5)
}
