package pathgraph

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrEmptyPathMutation is panicked (wrapped) when a mutation is attempted
// on the distinguished immutable empty path (spec §3.1, §4.C "Failure").
var ErrEmptyPathMutation = errors.New("pathgraph: mutation attempted on the immutable empty path")

// ErrCrossPathAttach is panicked (wrapped) when Attach is called with a
// branch segment that does not belong to the receiver's path.
var ErrCrossPathAttach = errors.New("pathgraph: attach across two different paths")

// Path is a container owning an ordered arena of Segments (spec §3.1).
type Path struct {
	segments []*Segment
	roots    []int // ids of root segments, in insertion order
	empty    bool  // true only for the distinguished immutable empty path
}

// Empty is the distinguished immutable empty path instance; any mutation
// attempted on it is a fatal invariant violation.
var Empty = &Path{empty: true}

// New creates an empty, mutable path.
func New() *Path { return &Path{} }

// Segments returns every segment in the arena, indexed by id.
func (p *Path) Segments() []*Segment { return p.segments }

// Segment returns the segment with the given id, or nil if out of range.
func (p *Path) Segment(id int) *Segment {
	if id < 0 || id >= len(p.segments) {
		return nil
	}
	return p.segments[id]
}

// Roots returns the ids of all root segments (spec §4.F.3 BFS entry set),
// in insertion order.
func (p *Path) Roots() []int { return p.roots }

// NewSegment creates and appends a new, unattached segment with default
// trace params, returning it. Fails fatally on the empty path.
func (p *Path) NewSegment() *Segment {
	if p.empty {
		panic(errors.Wrap(ErrEmptyPathMutation, "NewSegment"))
	}
	s := &Segment{
		id:         len(p.segments),
		path:       p,
		RelWidth:   1,
		RelSpeed:   1,
		RelDensity: 1,
		Params:     DefaultTraceParams(),
	}
	p.segments = append(p.segments, s)
	p.roots = append(p.roots, s.id)
	return s
}

// Attach makes branch a child of parent: parent.branches gets branch's id
// (re-sorted by rel_shift) and branch.parents gets parent's id. Both
// segments must belong to this path.
func (p *Path) Attach(parent, branch *Segment) {
	if p.empty {
		panic(errors.Wrap(ErrEmptyPathMutation, "Attach"))
	}
	if parent.path != p || branch.path != p {
		panic(errors.Wrap(ErrCrossPathAttach, "Attach"))
	}
	if !containsInt(parent.branches, branch.id) {
		parent.branches = append(parent.branches, branch.id)
	}
	if !containsInt(branch.parents, parent.id) {
		branch.parents = append(branch.parents, parent.id)
	}
	p.sortByRelShift(parent.branches)
	p.sortByRelShift(branch.parents)
	p.removeRoot(branch.id)
}

// Detach undoes Attach, maintaining the bidirectional invariant.
func (p *Path) Detach(parent, branch *Segment) {
	if p.empty {
		panic(errors.Wrap(ErrEmptyPathMutation, "Detach"))
	}
	parent.branches = removeInt(parent.branches, branch.id)
	branch.parents = removeInt(branch.parents, parent.id)
	if len(branch.parents) == 0 {
		p.addRoot(branch.id)
	}
}

// AttachNew creates an empty segment with copied trace params from parent
// and attaches it as a branch of parent.
func (p *Path) AttachNew(parent *Segment) *Segment {
	s := p.NewSegment()
	s.Params = parent.Params
	p.Attach(parent, s)
	return s
}

// InsertNew creates a new segment that inherits all of self's current
// branches (spec §4.C), and attaches itself as the sole child of self. Used
// by ExtendWithParams when splicing in a parameter change mid-segment.
func (p *Path) InsertNew(self *Segment) *Segment {
	s := p.NewSegment()
	s.Params = self.Params
	for _, bID := range append([]int(nil), self.branches...) {
		b := p.Segment(bID)
		p.Detach(self, b)
		p.Attach(s, b)
	}
	p.Attach(self, s)
	return s
}

// ExtendWithParams in-place extends self by length under params if
// length == 0 or params equal self's current params; otherwise it inserts
// a new segment carrying params and length as self's sole child (spec
// §4.C). Returns the segment that now represents the extension (self or
// the newly inserted segment).
func (p *Path) ExtendWithParams(self *Segment, newParams TraceParams, length float64) *Segment {
	if length == 0 || self.Params.Equal(newParams) {
		self.Length += length
		return self
	}
	s := p.InsertNew(self)
	s.Params = newParams
	s.Length = length
	return s
}

// Discard zeroes a segment's width and length and recursively discards any
// branches that become orphaned (i.e. whose only parent was self).
func (p *Path) Discard(s *Segment) {
	s.RelWidth = 0
	s.Length = 0
	for _, bID := range append([]int(nil), s.branches...) {
		b := p.Segment(bID)
		if len(b.parents) == 1 && b.parents[0] == s.id {
			p.Discard(b)
		}
	}
}

// SelfEquals reports whether s and o have field-by-field equal attributes
// and trace params, excluding structure (ids, parents, branches).
func (s *Segment) SelfEquals(o *Segment) bool {
	if s.Length != o.Length || s.RelValue != o.RelValue || s.RelOffset != o.RelOffset ||
		s.RelShift != o.RelShift || s.RelAngle != o.RelAngle || s.RelWidth != o.RelWidth ||
		s.RelSpeed != o.RelSpeed || s.RelDensity != o.RelDensity || s.RelPosition != o.RelPosition ||
		s.InitialAngleDeltaMin != o.InitialAngleDeltaMin {
		return false
	}
	if len(s.ExtraDelta) != len(o.ExtraDelta) {
		return false
	}
	for i := range s.ExtraDelta {
		if s.ExtraDelta[i] != o.ExtraDelta[i] {
			return false
		}
	}
	return s.Params.Equal(o.Params)
}

func (p *Path) sortByRelShift(ids []int) {
	sort.SliceStable(ids, func(i, j int) bool {
		return p.Segment(ids[i]).RelShift < p.Segment(ids[j]).RelShift
	})
}

func (p *Path) addRoot(id int) {
	if !containsInt(p.roots, id) {
		p.roots = append(p.roots, id)
	}
}

func (p *Path) removeRoot(id int) {
	p.roots = removeInt(p.roots, id)
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func removeInt(s []int, v int) []int {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
