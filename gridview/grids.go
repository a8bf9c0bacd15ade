// Package gridview implements the tracer's output grids (spec §3.2) and the
// lazy sampler views callers retrieve them through (spec §6 "Outputs").
// Grid storage mirrors core.Buffer's flat 2D-grid-of-cells shape in the
// teacher repo, generalized from a rune/style/entity cell to the tracer's
// per-channel float64/task-id cells.
package gridview

// Grids holds the fixed-size rectangular output arrays over
// outer_size = inner_size + 2*margin (spec §3.2, §4.F.1). All indexing on
// this type (MainAt/SetMain/... ) is in outer-grid coordinates; use the
// View/TaskView accessors for map-space access translated by GridMargin.
type Grids struct {
	InnerX, InnerZ int
	GridMargin     int
	OuterX, OuterZ int

	TraceInnerMargin float64
	TraceOuterMargin float64

	main     []float64 // rendered width at this cell, 0 if untouched
	side     []float64 // signed lateral offset from the centerline
	value    []float64
	offset   []float64
	distance []float64 // min signed distance to any centerline; clamp init = TraceOuterMargin
	task     []int     // id of the task owning this cell, -1 if none
}

// New constructs Grids per spec §4.F.1: distance initialized to
// traceOuterMargin, all other channels zero, task channel -1 (no owner).
// traceOuterMargin must be >= traceInnerMargin >= 0.
func New(innerX, innerZ, gridMargin int, traceInnerMargin, traceOuterMargin float64) *Grids {
	outerX := innerX + 2*gridMargin
	outerZ := innerZ + 2*gridMargin
	size := outerX * outerZ
	g := &Grids{
		InnerX: innerX, InnerZ: innerZ, GridMargin: gridMargin,
		OuterX: outerX, OuterZ: outerZ,
		TraceInnerMargin: traceInnerMargin,
		TraceOuterMargin: traceOuterMargin,
		main:             make([]float64, size),
		side:             make([]float64, size),
		value:            make([]float64, size),
		offset:           make([]float64, size),
		distance:         make([]float64, size),
		task:             make([]int, size),
	}
	g.Clear()
	return g
}

// Clear resets all channels to their initial state (spec §4.F.2
// "clear grids"): distance := traceOuterMargin, everything else zero/unset.
func (g *Grids) Clear() {
	for i := range g.main {
		g.main[i] = 0
		g.side[i] = 0
		g.value[i] = 0
		g.offset[i] = 0
		g.distance[i] = g.TraceOuterMargin
		g.task[i] = -1
	}
}

func (g *Grids) idx(x, z int) (int, bool) {
	if x < 0 || x >= g.OuterX || z < 0 || z >= g.OuterZ {
		return 0, false
	}
	return z*g.OuterX + x, true
}

// InBounds reports whether (x, z) addresses a valid outer-grid cell.
func (g *Grids) InBounds(x, z int) bool {
	_, ok := g.idx(x, z)
	return ok
}

// MainAt returns the main-channel value at outer-grid cell (x, z).
func (g *Grids) MainAt(x, z int) float64 {
	i, ok := g.idx(x, z)
	if !ok {
		return 0
	}
	return g.main[i]
}

// SetMain sets the main-channel value at outer-grid cell (x, z).
func (g *Grids) SetMain(x, z int, v float64) {
	if i, ok := g.idx(x, z); ok {
		g.main[i] = v
	}
}

// SideAt returns the side-channel value at outer-grid cell (x, z).
func (g *Grids) SideAt(x, z int) float64 {
	i, ok := g.idx(x, z)
	if !ok {
		return 0
	}
	return g.side[i]
}

// SetSide sets the side-channel value at outer-grid cell (x, z).
func (g *Grids) SetSide(x, z int, v float64) {
	if i, ok := g.idx(x, z); ok {
		g.side[i] = v
	}
}

// ValueAt returns the value-channel value at outer-grid cell (x, z).
func (g *Grids) ValueAt(x, z int) float64 {
	i, ok := g.idx(x, z)
	if !ok {
		return 0
	}
	return g.value[i]
}

// SetValue sets the value-channel value at outer-grid cell (x, z).
func (g *Grids) SetValue(x, z int, v float64) {
	if i, ok := g.idx(x, z); ok {
		g.value[i] = v
	}
}

// OffsetAt returns the offset-channel value at outer-grid cell (x, z).
func (g *Grids) OffsetAt(x, z int) float64 {
	i, ok := g.idx(x, z)
	if !ok {
		return 0
	}
	return g.offset[i]
}

// SetOffset sets the offset-channel value at outer-grid cell (x, z).
func (g *Grids) SetOffset(x, z int, v float64) {
	if i, ok := g.idx(x, z); ok {
		g.offset[i] = v
	}
}

// DistanceAt returns the distance-channel value at outer-grid cell (x, z).
func (g *Grids) DistanceAt(x, z int) float64 {
	i, ok := g.idx(x, z)
	if !ok {
		return g.TraceOuterMargin
	}
	return g.distance[i]
}

// SetDistance sets the distance-channel value at outer-grid cell (x, z).
func (g *Grids) SetDistance(x, z int, v float64) {
	if i, ok := g.idx(x, z); ok {
		g.distance[i] = v
	}
}

// TaskAt returns the owning task id at outer-grid cell (x, z), or -1.
func (g *Grids) TaskAt(x, z int) int {
	i, ok := g.idx(x, z)
	if !ok {
		return -1
	}
	return g.task[i]
}

// SetTask sets the owning task id at outer-grid cell (x, z).
func (g *Grids) SetTask(x, z int, id int) {
	if i, ok := g.idx(x, z); ok {
		g.task[i] = id
	}
}
