package sat

// Physical storage compaction (spec §4.B/§4.H): sparse arena collection
// and watch-vector defragmentation are both driven off an accumulated-
// waste threshold rather than running on a fixed schedule.

// maybeCompact runs whichever of arena collection / vector defragmentation
// has crossed its waste threshold.
func (s *Solver) maybeCompact() {
	if s.arena.ShouldCollect(s.Opts.DefragPct) {
		s.compactArena()
	}
	if s.watches.ShouldDefrag(s.Opts.DefragPct) {
		s.watches.Defrag()
		s.Stats.Defrags++
	}
}

// compactArena sweeps garbage-flagged clauses out of the arena and
// rewrites every reference to a surviving clause: variable reasons, the
// irredundant/learnt clause lists, and every watch cell that still
// points at a large clause.
func (s *Solver) compactArena() {
	remap := s.arena.Collect()
	s.Stats.Collects++

	for v := 0; v < s.numVars; v++ {
		r := &s.info[v].reason
		if r.kind == reasonLong {
			if nr, ok := remap[r.ref]; ok {
				r.ref = nr
			}
		}
	}

	s.irredundant = remapRefs(s.irredundant, remap)
	s.learnts = remapRefs(s.learnts, remap)
	s.rewriteWatchRefs(remap)
}

func remapRefs(refs []Ref, remap map[Ref]Ref) []Ref {
	out := refs[:0]
	for _, ref := range refs {
		if nr, ok := remap[ref]; ok {
			out = append(out, nr)
		}
	}
	return out
}

// rewriteWatchRefs walks every literal's watch list, translating large
// clause cells from their pre-collection Ref to the post-collection one.
// Garbage clauses are never watched (unwatchClause runs before a clause
// is marked garbage - see reduce.go), so every large cell encountered
// here is guaranteed to have a surviving entry in remap.
func (s *Solver) rewriteWatchRefs(remap map[Ref]Ref) {
	for l := Lit(0); int(l) < len(s.values); l++ {
		cells := s.watches.View(l)
		off := 0
		for off < len(cells) {
			if isBinaryCell(cells[off]) {
				off++
				continue
			}
			oldRef := Ref(cells[off+1])
			if nr, ok := remap[oldRef]; ok {
				cells[off+1] = int32(nr)
			}
			off += 2
		}
	}
}
