package sat

// Forward subsumption and self-subsuming resolution (spec §4.J, grounded
// on kissat's subsume.c/backward.c): group clauses by their rarest
// literal (occurrence lists), then for every pair sharing that literal
// check whether the smaller clause's literals are a subset of the
// larger one's (subsumption) or differ in exactly one complementary
// literal (strengthening, which drops that literal from the larger
// clause).
func (s *Solver) subsume() int {
	occ := s.buildOccurrences()
	produced := 0

	allRefs := append(append([]Ref(nil), s.irredundant...), s.learnts...)
	for _, ref := range allRefs {
		if s.arena.Garbage(ref) {
			continue
		}
		lits := s.arena.Lits(ref)
		pivot := rarestLiteral(lits, occ)

		for _, other := range occ[pivot] {
			if other == ref || s.arena.Garbage(other) {
				continue
			}
			if s.arena.Size(other) < s.arena.Size(ref) {
				continue
			}
			switch rel, flipped := subsumeRelation(lits, s.arena.Lits(other)); rel {
			case relSubsumes:
				if s.proof != nil {
					s.proof.DeleteClause(s.arena.Lits(other))
				}
				if s.checker != nil {
					s.checker.Delete(s.arena.Lits(other))
				}
				s.unwatchClause(other)
				s.arena.MarkGarbage(other)
				s.Stats.Subsumed++
				produced++
			case relStrengthen:
				s.strengthenAway(other, flipped)
				produced++
			}
		}
	}
	return produced
}

type subRel int

const (
	relNone subRel = iota
	relSubsumes
	relStrengthen
)

// subsumeRelation reports whether small subsumes big (every literal of
// small is in big), or would after flipping exactly one of big's
// literals to its complement (self-subsuming resolution). For
// relStrengthen it also returns that literal of big, the one to remove.
func subsumeRelation(small, big []Lit) (subRel, Lit) {
	set := make(map[Lit]bool, len(big))
	for _, l := range big {
		set[l] = true
	}
	flips := 0
	flipped := InvalidLit
	for _, l := range small {
		if set[l] {
			continue
		}
		if set[l.Not()] {
			flips++
			flipped = l.Not()
			continue
		}
		return relNone, InvalidLit
	}
	if flips == 0 {
		return relSubsumes, InvalidLit
	}
	if flips == 1 {
		return relStrengthen, flipped
	}
	return relNone, InvalidLit
}

// strengthenAway removes literal l from clause ref in place, shrinking
// it and resetting its watch if l happened to be a watched literal.
func (s *Solver) strengthenAway(ref Ref, l Lit) {
	lits := s.arena.Lits(ref)
	if s.Opts.Incremental != 0 && len(lits) <= 2 {
		// Incremental mode (Non-goals §1) suppresses this one rewrite:
		// shrinking straight to a forced unit is irreversible across a
		// hypothetical future incremental call, unlike an ordinary
		// strengthen that still leaves a multi-literal clause behind.
		return
	}
	watched := lits[0] == l || lits[1] == l
	if watched {
		s.unwatchClause(ref)
	}
	idx := -1
	for i, q := range lits {
		if q == l {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	old := append([]Lit(nil), lits...)
	if s.proof != nil {
		s.proof.DeleteClause(old)
	}
	if s.checker != nil {
		s.checker.Delete(old)
	}
	last := len(lits) - 1
	lits[idx], lits[last] = lits[last], lits[idx]
	s.arena.Shrink(ref, last)
	s.Stats.Strengthened++
	if s.proof != nil {
		s.proof.AddClause(s.arena.Lits(ref))
	}
	if s.checker != nil {
		if err := s.checker.Import(s.arena.Lits(ref)); err != nil {
			panic("sat: proof checker rejected strengthened clause: " + err.Error())
		}
	}
	if watched {
		s.watchClause(ref)
	}
}

// buildOccurrences indexes every non-garbage large clause by each of its
// literals.
func (s *Solver) buildOccurrences() map[Lit][]Ref {
	occ := make(map[Lit][]Ref)
	add := func(refs []Ref) {
		for _, ref := range refs {
			if s.arena.Garbage(ref) {
				continue
			}
			for _, l := range s.arena.Lits(ref) {
				occ[l] = append(occ[l], ref)
			}
		}
	}
	add(s.irredundant)
	add(s.learnts)
	return occ
}

// rarestLiteral picks the clause literal with the fewest occurrences, to
// minimize the candidate set the subsumption check has to examine.
func rarestLiteral(lits []Lit, occ map[Lit][]Ref) Lit {
	best := lits[0]
	for _, l := range lits[1:] {
		if len(occ[l]) < len(occ[best]) {
			best = l
		}
	}
	return best
}
