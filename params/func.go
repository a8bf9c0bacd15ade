// Package params implements the external parameter-function contract (spec
// §3.3, §6) and the tracer/handler Config (spec §6). Parameter functions are
// a sealed tagged-variant abstraction with value equality rather than an
// interface hierarchy, per spec §9's design note, mirroring the teacher's
// plain-struct style in parameter/*.go rather than a generic callback type.
package params

import "github.com/lixenwraith/terrain-tracer/geom"

// GridSampler is the abstract contract for a 2D scalar grid (spec §6):
// grid.value_at(x, z) -> double. Implementations are provided by callers
// (out of scope for this module) and are treated as pure and deterministic.
type GridSampler interface {
	ValueAt(x, z float64) float64
}

// CurveSampler is the abstract contract for a 1D curve (spec §6):
// curve.value_at(x) -> double.
type CurveSampler interface {
	ValueAt(x float64) float64
}

// Context carries the per-call state a parameter function may read: the
// sampling position, distance along the segment, and locally-induced
// stability coefficient. Tracer/task identity is carried by id rather than
// by reference, so this package never imports tracer or pathgraph.
type Context struct {
	Pos       geom.Vec2
	Dist      float64
	Stability float64
	TaskID    int
	SegmentID int
}

// Kind tags which concrete form a Func takes.
type Kind uint8

const (
	// KindConstant always returns Value.
	KindConstant Kind = iota
	// KindFromGrid samples Grid at ctx.Pos, scaled by Scale.
	KindFromGrid
	// KindCustom delegates to Custom.Eval; callers may register any
	// Evaluator implementation to extend the closed variant set.
	KindCustom
)

// Evaluator is the trait object custom parameter functions implement.
// Implementations should be comparable (e.g. a pointer or a small value
// type) so that Func equality works as a proxy for "same parameters".
type Evaluator interface {
	Eval(ctx Context) float64
}

// Func is a parameter function: one of the closed set of forms above.
// Equality (==) on two Func values is meaningful and is used by
// pathgraph.Segment.ExtendWithParams to detect "same parameters" (spec
// §4.C, §3.3) — exactly the comparison Go gives for free on a struct made
// of comparable fields, which is why Grid/Custom are interfaces wrapping
// comparable concrete types rather than raw func values (func values are
// not comparable in Go).
type Func struct {
	Kind  Kind
	Value float64
	Grid  GridSampler
	Scale float64
	Custom Evaluator
}

// Zero is the always-zero parameter function, the default for optional
// TraceParams fields such as diversion/swerve contributions.
var Zero = Func{Kind: KindConstant, Value: 0}

// Constant returns a Func that always evaluates to v.
func Constant(v float64) Func { return Func{Kind: KindConstant, Value: v} }

// FromGrid returns a Func that samples grid at ctx.Pos, scaled by scale.
// This is the thin from-grid adapter spec §3.3 calls "the only concrete
// form the core needs".
func FromGrid(grid GridSampler, scale float64) Func {
	return Func{Kind: KindFromGrid, Grid: grid, Scale: scale}
}

// FromCurve returns a Func that samples curve at ctx.Pos.X, scaled by
// scale — used for swerve/cost functions expressed as a 1D curve over the
// segment's lateral or longitudinal axis.
type curveAdapter struct {
	curve CurveSampler
	scale float64
}

func (c curveAdapter) Eval(ctx Context) float64 { return c.curve.ValueAt(ctx.Pos.X) * c.scale }

func FromCurve(curve CurveSampler, scale float64) Func {
	return Func{Kind: KindCustom, Custom: curveAdapter{curve: curve, scale: scale}}
}

// Eval dispatches to the concrete form.
func (f Func) Eval(ctx Context) float64 {
	switch f.Kind {
	case KindConstant:
		return f.Value
	case KindFromGrid:
		if f.Grid == nil {
			return 0
		}
		return f.Grid.ValueAt(ctx.Pos.X, ctx.Pos.Z) * f.Scale
	case KindCustom:
		if f.Custom == nil {
			return 0
		}
		return f.Custom.Eval(ctx)
	default:
		return 0
	}
}

// IsZero reports whether f is the Zero constant function — used as the
// "unset" sentinel for optional TraceParams fields.
func (f Func) IsZero() bool { return f == Zero }
