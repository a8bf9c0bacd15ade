package pathgraph

// BFS walks the graph breadth-first from the given starting ids, following
// branches (forward) or parents (backward) or both, guarding against
// cycles with a visited set (spec §4.C, §9 design notes: "BFS traversals
// keep a visited set to stay robust even if callers construct a
// pathological structure"). visit is called once per newly-discovered
// segment, in discovery order; returning false from visit stops expansion
// through that segment's neighbors (but does not stop the overall walk).
func (p *Path) BFS(start []int, fwd, bwd bool, visit func(s *Segment) bool) {
	visited := make(map[int]bool, len(p.segments))
	queue := append([]int(nil), start...)
	for _, id := range start {
		visited[id] = true
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		s := p.Segment(id)
		if s == nil {
			continue
		}
		expand := visit(s)
		if !expand {
			continue
		}
		if fwd {
			for _, b := range s.branches {
				if !visited[b] {
					visited[b] = true
					queue = append(queue, b)
				}
			}
		}
		if bwd {
			for _, pa := range s.parents {
				if !visited[pa] {
					visited[pa] = true
					queue = append(queue, pa)
				}
			}
		}
	}
}

// ConnectedSegments performs a bidirectional reachability walk from start,
// following branches if fwd and parents if bwd, gated by entryCond (must
// hold for a segment to be included and expanded) and halted at any
// segment for which exitCond holds (included but not expanded further).
// Spec §4.C.
func (p *Path) ConnectedSegments(start *Segment, fwd, bwd bool, entryCond, exitCond func(s *Segment) bool) []*Segment {
	var out []*Segment
	visited := map[int]bool{start.id: true}
	queue := []int{start.id}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		s := p.Segment(id)
		if s == nil || (entryCond != nil && !entryCond(s)) {
			continue
		}
		out = append(out, s)
		if exitCond != nil && exitCond(s) {
			continue
		}
		if fwd {
			for _, b := range s.branches {
				if !visited[b] {
					visited[b] = true
					queue = append(queue, b)
				}
			}
		}
		if bwd {
			for _, pa := range s.parents {
				if !visited[pa] {
					visited[pa] = true
					queue = append(queue, pa)
				}
			}
		}
	}
	return out
}

// LinearParents returns the chain of single-parent/single-child ancestors
// of s, including s itself, ordered from s back toward the nearest fork
// (spec §4.C).
func (s *Segment) LinearParents() []*Segment {
	chain := []*Segment{s}
	cur := s
	for len(cur.parents) == 1 {
		parent := cur.path.Segment(cur.parents[0])
		if parent == nil || len(parent.branches) != 1 {
			break
		}
		chain = append(chain, parent)
		cur = parent
	}
	return chain
}

// IsAncestor reports whether candidate is an ancestor of s (reachable by
// repeatedly following parents), including s == candidate.
func (s *Segment) IsAncestor(candidate *Segment) bool {
	if s.id == candidate.id {
		return true
	}
	visited := map[int]bool{s.id: true}
	queue := []int{s.id}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		cur := s.path.Segment(id)
		for _, paID := range cur.parents {
			if paID == candidate.id {
				return true
			}
			if !visited[paID] {
				visited[paID] = true
				queue = append(queue, paID)
			}
		}
	}
	return false
}

// IsDescendant reports whether candidate is a descendant of s, including
// s == candidate.
func (s *Segment) IsDescendant(candidate *Segment) bool {
	return candidate.IsAncestor(s)
}

// Siblings returns the other branches sharing at least one parent with s.
func (s *Segment) Siblings() []*Segment {
	seen := map[int]bool{s.id: true}
	var out []*Segment
	for _, paID := range s.parents {
		parent := s.path.Segment(paID)
		for _, bID := range parent.branches {
			if !seen[bID] {
				seen[bID] = true
				out = append(out, s.path.Segment(bID))
			}
		}
	}
	return out
}
