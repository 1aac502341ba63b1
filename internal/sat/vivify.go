package sat

// Vivification (spec §4.J, grounded on kissat's vivify.c): assume the
// negation of a clause's literals one at a time and propagate; if that
// derives a conflict before exhausting the clause, the clause is implied
// by a strict prefix of itself and can be replaced by that shorter
// clause. Only runs at level 0, where every assumption it makes is safe
// to retract with a plain backtrack to 0.
func (s *Solver) vivify() int {
	produced := 0
	candidates := append(append([]Ref(nil), s.irredundant...), s.learnts...)

	for _, ref := range candidates {
		if s.arena.Garbage(ref) {
			continue
		}
		lits := append([]Lit(nil), s.arena.Lits(ref)...)
		if len(lits) < 3 {
			continue
		}
		redundant := s.arena.Redundant(ref)

		shrunk, ok := s.vivifyClause(ref, lits)
		if !ok {
			continue
		}
		if len(shrunk) == 1 && s.Opts.Incremental != 0 {
			// Incremental mode (Non-goals §1) suppresses weakening a
			// clause straight down to a forced unit; leave it as-is.
			continue
		}
		if s.proof != nil {
			s.proof.DeleteClause(lits)
		}
		if s.checker != nil {
			s.checker.Delete(lits)
		}
		s.unwatchClause(ref)
		s.arena.MarkGarbage(ref)
		s.removeClauseRef(ref)
		s.installVivified(shrunk, redundant)
		produced++
	}
	return produced
}

// vivifyClause reports the shrunk replacement clause, if any. ref is
// unwatched for the duration of the trial propagation so the candidate
// clause cannot resolve against itself: its own remaining disjunct
// would otherwise be free to fire as soon as the rest of the clause's
// literals are assumed false, producing a "conflict" that isn't actually
// implied by the rest of the formula (spec §4.E "respect an ignore
// clause").
func (s *Solver) vivifyClause(ref Ref, lits []Lit) ([]Lit, bool) {
	s.unwatchClause(ref)
	conflictAt := -1
	for i, l := range lits {
		if s.litValue(l) != Unknown {
			s.backtrackTo(0)
			s.watchClause(ref)
			return nil, false
		}
		s.newDecisionLevel(l.Not())
		s.assign(l.Not(), decisionReason)
		if _, conflicted := s.Propagate(); conflicted {
			conflictAt = i
			break
		}
	}
	s.backtrackTo(0)
	s.watchClause(ref)
	if conflictAt < 0 || conflictAt == len(lits)-1 {
		return nil, false
	}
	return append([]Lit(nil), lits[:conflictAt+1]...), true
}

func (s *Solver) removeClauseRef(ref Ref) {
	s.irredundant = removeRef(s.irredundant, ref)
	s.learnts = removeRef(s.learnts, ref)
}

func removeRef(refs []Ref, ref Ref) []Ref {
	out := refs[:0]
	for _, r := range refs {
		if r != ref {
			out = append(out, r)
		}
	}
	return out
}

// installVivified adds a vivified (shortened) clause back into the
// solver's storage, preserving its redundant/irredundant status.
func (s *Solver) installVivified(lits []Lit, redundant bool) {
	if s.checker != nil {
		if err := s.checker.Import(lits); err != nil {
			panic("sat: proof checker rejected vivified clause: " + err.Error())
		}
	}
	if s.proof != nil {
		s.proof.AddClause(lits)
	}
	switch len(lits) {
	case 1:
		s.assignRoot(lits[0])
	case 2:
		s.watchBinaryClause(lits[0], lits[1], redundant)
	default:
		ref := s.arena.Allocate(lits, redundant, len(lits))
		if redundant {
			s.learnts = append(s.learnts, ref)
		} else {
			s.irredundant = append(s.irredundant, ref)
		}
		s.watchClause(ref)
	}
	s.Stats.Vivified++
}
