package gridview

// View is a lazy sampler over one channel of Grids, translated to map
// space by GridMargin (spec §6 "Outputs": "Grid-view accessors returning
// lazy samplers ... translated to map space by grid_margin"). Map-space
// (0,0) corresponds to outer-grid cell (GridMargin, GridMargin).
type View struct {
	grids *Grids
	at    func(x, z int) float64
}

// MainView returns a map-space view over the rendered-width channel.
func (g *Grids) MainView() View { return View{grids: g, at: g.MainAt} }

// SideView returns a map-space view over the signed lateral-offset channel.
func (g *Grids) SideView() View { return View{grids: g, at: g.SideAt} }

// ValueView returns a map-space view over the accumulated-value channel.
func (g *Grids) ValueView() View { return View{grids: g, at: g.ValueAt} }

// OffsetView returns a map-space view over the accumulated-offset channel.
func (g *Grids) OffsetView() View { return View{grids: g, at: g.OffsetAt} }

// DistanceView returns a map-space view over the signed-distance channel.
func (g *Grids) DistanceView() View { return View{grids: g, at: g.DistanceAt} }

// At samples the view at map-space (x, z). ok is false if out of range.
func (v View) At(x, z int) (value float64, ok bool) {
	ox, oz := x+v.grids.GridMargin, z+v.grids.GridMargin
	if !v.grids.InBounds(ox, oz) {
		return 0, false
	}
	return v.at(ox, oz), true
}

// TaskView is a map-space view over the task-ownership channel (spec §3.2
// "task[x,z]"), returning task ids rather than float64 samples.
type TaskView struct {
	grids *Grids
}

// TaskOwnerView returns a map-space view over the task-ownership channel.
func (g *Grids) TaskOwnerView() TaskView { return TaskView{grids: g} }

// At samples the owning task id at map-space (x, z), or (-1, false) if out
// of range.
func (v TaskView) At(x, z int) (taskID int, ok bool) {
	ox, oz := x+v.grids.GridMargin, z+v.grids.GridMargin
	if !v.grids.InBounds(ox, oz) {
		return -1, false
	}
	return v.grids.TaskAt(ox, oz), true
}
