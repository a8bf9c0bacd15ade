// Package tracer implements the deterministic forward integrator (spec
// §4.F): task scheduling across the path graph, per-step frame
// integration, rasterization into output grids, collision detection, and
// smooth branching/merging. It is grounded on core.Buffer's grid-of-cells
// storage shape and render/orchestrator.go's per-frame pass structure in
// the teacher repo, and embeds pathfind as its bounded-angle sub-algorithm
// (spec §1).
package tracer

import (
	"github.com/lixenwraith/terrain-tracer/geom"
	"github.com/lixenwraith/terrain-tracer/pathgraph"
	"github.com/lixenwraith/terrain-tracer/traceframe"
)

// Task is a non-owning bundle describing one scheduled traversal of a
// segment (spec §3.1 TraceTask).
type Task struct {
	ID int // stable within one trace attempt; doubles as the grid task-ownership id

	Segment      *pathgraph.Segment
	BaseFrame    traceframe.Frame
	BranchParent *Task // task for the first segment of the current linear branch

	MarginHead, MarginTail float64
	DistFromRoot           float64
	WidthBuildup           float64
	EverInBounds           bool

	Simulated []*Collision // populated on the completion pass (spec §4.F.2)
}

// Collision records a detected overlap between two tasks (spec §3.1
// TraceCollision). It is "complete" once both FramesA and FramesB are
// populated.
type Collision struct {
	TaskA, TaskB           *Task
	Position               geom.Vec2
	ProgressA, ProgressB   float64
	ShiftA, ShiftB         float64
	FramesA, FramesB       []traceframe.Frame
	Cyclic                 bool
	HasMergeA, HasMergeB   bool
}

// Complete reports whether both sides of the collision have frame
// histories populated (spec §3.1).
func (c *Collision) Complete() bool { return c.FramesA != nil && c.FramesB != nil }

// Result is the outcome of tracing one task (spec §3.1 TraceResult).
type Result struct {
	InitialFrame, FinalFrame traceframe.Frame
	WidthBuildup             float64
	EverInBounds             bool
	TraceEnd                 bool
	Collision                *Collision
}
