// Package pathfind implements the bounded-angle, continuous-domain A*
// pathfinder embedded in the tracer (spec §4.D), adapted from eLIAN. It is
// grounded on navigation/routegraph.go's bidirectional-Dijkstra-over-a-
// flat-grid-index style and navigation/flowfield.go's hand-rolled min-heap
// in the teacher repo, generalized from 8-directional grid stepping to
// continuous bounded-angle arcs with a variable kernel-split resolution.
package pathfind

// Kernel precomputes the per-direction angle table for a given
// (arcCount, splitCount) pair (spec §4.D "Kernel").
type Kernel struct {
	ArcCount   int
	SplitCount int

	// angleData[i] is 180*(i+1)/(splitCount*arcCount), the base per-unit
	// cumulative arc angle for direction-offset index i (0-based arc_idx).
	angleData []float64
}

// NewKernel builds a Kernel for the given arc/split counts. arcCount must
// be >= 2 and splitCount >= 1 (spec §4.D).
func NewKernel(arcCount, splitCount int) *Kernel {
	if arcCount < 2 {
		arcCount = 2
	}
	if splitCount < 1 {
		splitCount = 1
	}
	angleData := make([]float64, arcCount)
	for i := 0; i < arcCount; i++ {
		angleData[i] = 180 * float64(i+1) / float64(splitCount*arcCount)
	}
	return &Kernel{ArcCount: arcCount, SplitCount: splitCount, angleData: angleData}
}

// SplitFraction returns (s+1)/SplitCount.
func (k *Kernel) SplitFraction(s int) float64 {
	return float64(s+1) / float64(k.SplitCount)
}

// MaxSplitIdx returns SplitCount - 1.
func (k *Kernel) MaxSplitIdx() int { return k.SplitCount - 1 }

// AngleAt returns the base cumulative arc angle for arc_idx (0-based),
// angleData[arc_idx].
func (k *Kernel) AngleAt(arcIdx int) float64 { return k.angleData[arcIdx] }
