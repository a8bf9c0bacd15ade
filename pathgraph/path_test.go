package pathgraph

import "testing"

func TestAttachMaintainsBidirectionalAdjacency(t *testing.T) {
	p := New()
	root := p.NewSegment()
	child := p.NewSegment()
	p.Attach(root, child)

	if !containsInt(root.Branches(), child.ID()) {
		t.Fatalf("expected root.Branches() to contain child")
	}
	if !containsInt(child.Parents(), root.ID()) {
		t.Fatalf("expected child.Parents() to contain root")
	}
}

func TestBranchesSortedByRelShift(t *testing.T) {
	p := New()
	root := p.NewSegment()
	b1 := p.NewSegment()
	b1.RelShift = 0.5
	b2 := p.NewSegment()
	b2.RelShift = -0.5
	p.Attach(root, b1)
	p.Attach(root, b2)

	branches := root.Branches()
	if len(branches) != 2 {
		t.Fatalf("expected 2 branches, got %d", len(branches))
	}
	if branches[0] != b2.ID() || branches[1] != b1.ID() {
		t.Errorf("expected branches sorted by rel_shift ascending, got %v", branches)
	}
}

func TestEmptyPathRejectsMutation(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic creating a segment on the empty path")
		}
	}()
	Empty.NewSegment()
}

func TestRootAndLeaf(t *testing.T) {
	p := New()
	root := p.NewSegment()
	if !root.IsRoot() || !root.IsLeaf() {
		t.Fatalf("fresh unattached segment should be both root and leaf")
	}
	child := p.NewSegment()
	p.Attach(root, child)
	if root.IsLeaf() {
		t.Errorf("root should no longer be a leaf after attach")
	}
	if child.IsRoot() {
		t.Errorf("child should no longer be a root after attach")
	}
}

func TestExtendWithParamsNoOpOnSameParamsZeroLength(t *testing.T) {
	p := New()
	root := p.NewSegment()
	root.Length = 5
	before := len(p.Segments())

	result := p.ExtendWithParams(root, root.Params, 0)
	if result != root {
		t.Fatalf("expected no-op extend to return self")
	}
	if root.Length != 5 {
		t.Errorf("expected length unchanged, got %v", root.Length)
	}
	if len(p.Segments()) != before {
		t.Errorf("expected no new segments, got %d (was %d)", len(p.Segments()), before)
	}
}

func TestExtendWithParamsSameParamsIsAdditive(t *testing.T) {
	p := New()
	root := p.NewSegment()

	s1 := p.ExtendWithParams(root, root.Params, 3)
	s2 := p.ExtendWithParams(root, root.Params, 4)

	if s1 != root || s2 != root {
		t.Fatalf("expected in-place extension for identical params")
	}
	if root.Length != 7 {
		t.Errorf("expected combined length 7, got %v", root.Length)
	}
}

func TestExtendWithParamsDifferentParamsInserts(t *testing.T) {
	p := New()
	root := p.NewSegment()
	root.Length = 2

	changed := root.Params
	changed.StepSize = 2

	result := p.ExtendWithParams(root, changed, 5)
	if result == root {
		t.Fatalf("expected a new segment for changed params")
	}
	if result.Length != 5 {
		t.Errorf("expected new segment length 5, got %v", result.Length)
	}
	if len(root.Branches()) != 1 || root.Branches()[0] != result.ID() {
		t.Errorf("expected root's sole branch to be the new segment")
	}
}

func TestDiscardZeroesAndCascadesOrphans(t *testing.T) {
	p := New()
	root := p.NewSegment()
	root.Length = 5
	root.RelWidth = 1
	child := p.NewSegment()
	child.Length = 3
	p.Attach(root, child)

	p.Discard(root)

	if root.RelWidth != 0 || root.Length != 0 {
		t.Errorf("expected root zeroed, got width=%v length=%v", root.RelWidth, root.Length)
	}
	if child.Length != 0 {
		t.Errorf("expected orphaned child discarded too, got length=%v", child.Length)
	}
}

func TestCombineIdentifiesSelfEqualRoots(t *testing.T) {
	a := New()
	ra := a.NewSegment()
	ra.Length = 10

	b := New()
	rb := b.NewSegment()
	rb.Length = 10 // self-equal to ra
	cb := b.NewSegment()
	cb.Length = 2
	b.Attach(rb, cb)

	a.Combine(b)

	if len(a.Roots()) != 1 {
		t.Fatalf("expected combine to identify the self-equal root, got %d roots", len(a.Roots()))
	}
	root := a.Segment(a.Roots()[0])
	if len(root.Branches()) != 1 {
		t.Fatalf("expected the new branch to be grafted onto the identified root")
	}
}

func TestCombineGraftsDescendantsOfMatchedBranch(t *testing.T) {
	a := New()
	ra := a.NewSegment()
	ra.Length = 10
	ca := a.NewSegment()
	ca.Length = 2 // self-equal to b's matched branch, but has no grandchild yet
	a.Attach(ra, ca)

	b := New()
	rb := b.NewSegment()
	rb.Length = 10 // self-equal to ra
	cb := b.NewSegment()
	cb.Length = 2 // self-equal to ca
	b.Attach(rb, cb)
	gb := b.NewSegment()
	gb.Length = 7 // grandchild under cb, not present under ca
	b.Attach(cb, gb)

	a.Combine(b)

	if len(a.Roots()) != 1 {
		t.Fatalf("expected the roots to be identified, got %d roots", len(a.Roots()))
	}
	if len(ca.Branches()) != 1 {
		t.Fatalf("expected the matched branch's own descendant to be grafted, got %d branches on ca", len(ca.Branches()))
	}
	grafted := a.Segment(ca.Branches()[0])
	if grafted.Length != 7 {
		t.Errorf("expected grafted grandchild length 7, got %v", grafted.Length)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	p := New()
	root := p.NewSegment()
	root.Length = 5
	clone := p.Clone()
	clone.Segment(root.ID()).Length = 99

	if root.Length != 5 {
		t.Errorf("expected original path unaffected by clone mutation")
	}
}
