package params

// OffsetAccumulation selects which of the two diverging source-history
// conventions (spec §9 open question) is used to accumulate `offset` when
// rasterizing a step. The spec adopts the extent-based form as default but
// requires both be available rather than silently picking one.
type OffsetAccumulation uint8

const (
	// OffsetExtentDensity computes offset += shift * extent * density * 2.
	OffsetExtentDensity OffsetAccumulation = iota
	// OffsetWidthDensity computes offset += shift * width * density.
	OffsetWidthDensity
)

// Config holds the tunable options recognized by the tracer and collision
// handler (spec §6). Defaults are laid out as plain struct fields set by
// DefaultConfig, matching parameter/*.go's plain-struct-of-constants style
// rather than a functional-options builder.
type Config struct {
	// --- Tracer ---
	RadialThreshold          float64
	CollisionMinValueDiff    float64
	CollisionMinOffsetDiff   float64
	CollisionCheckMargin     float64
	CollisionMinValueDiffM   float64
	CollisionMinOffsetDiffM  float64
	CollisionMinParentDist   float64
	MainGridSmoothLength     float64
	WidthPatternResolution   int
	TraceLengthTolerance     float64
	StopWhenOutOfBounds      bool
	MaxTraceFrames           int
	MaxAttempts              int
	OffsetAccumulation       OffsetAccumulation

	// --- Collision handler ---
	MaxDiversionPoints   int
	MaxStabilityPoints   int
	MergeValueDeltaLimit float64
	MergeOffsetDeltaLimit float64
	SimplificationLength float64
	DiversionMinLength   float64
	StubBacktrackLength  float64
	TenacityAdjStep      float64
	TenacityAdjMax       float64
}

// DefaultConfig returns a Config populated with the documented defaults
// from spec §6.
func DefaultConfig() Config {
	return Config{
		RadialThreshold:         0.5,
		CollisionMinValueDiff:   0.75,
		CollisionMinOffsetDiff:  0.5,
		CollisionCheckMargin:    0.5,
		CollisionMinValueDiffM:  5,
		CollisionMinOffsetDiffM: 5,
		CollisionMinParentDist:  2,
		MainGridSmoothLength:    1,
		WidthPatternResolution:  1,
		TraceLengthTolerance:    0.5,
		StopWhenOutOfBounds:     true,
		MaxTraceFrames:          1_000_000,
		MaxAttempts:             50,
		OffsetAccumulation:      OffsetExtentDensity,

		MaxDiversionPoints:    5,
		MaxStabilityPoints:    3,
		MergeValueDeltaLimit:  0.45,
		MergeOffsetDeltaLimit: 0.45,
		SimplificationLength:  10,
		DiversionMinLength:    5,
		StubBacktrackLength:   10,
		TenacityAdjStep:       0.15,
		TenacityAdjMax:        0.9,
	}
}
