package sat

import "sort"

// Clause database reduction (spec §4.H): periodically garbage-collect
// the least useful learned clauses, keeping glue-2-or-better ("tier 1")
// clauses and anything currently serving as a propagation reason
// permanently, and sparing glue-6-or-better ("tier 2") clauses from
// deletion until they've survived a couple of reduce rounds unused.

// shouldReduce reports whether enough conflicts have passed since the
// last reduce.
func (s *Solver) shouldReduce() bool {
	return s.Stats.Conflicts >= s.limits.reduce
}

// Reduce removes the weakest fraction of reducible learned clauses and
// then compacts storage if enough garbage accumulated (spec §4.H).
func (s *Solver) Reduce() {
	s.Stats.Reduces++
	s.limits.reduce = s.Stats.Conflicts + s.limits.reduceInc
	s.limits.reduceInc += s.limits.reduceInc / 4

	type candidate struct {
		ref  Ref
		glue int
	}
	var reducible []candidate
	kept := s.learnts[:0]

	for _, ref := range s.learnts {
		if s.arena.Garbage(ref) {
			continue
		}
		if s.arena.Reason(ref) {
			kept = append(kept, ref)
			continue
		}
		glue := s.arena.Glue(ref)
		if glue <= s.Opts.TierOneGlue {
			kept = append(kept, ref)
			continue
		}
		if glue <= s.Opts.TierTwoGlue && s.arena.Used(ref) > 0 {
			s.arena.SetUsed(ref, s.arena.Used(ref)-1)
			kept = append(kept, ref)
			continue
		}
		reducible = append(reducible, candidate{ref, glue})
		kept = append(kept, ref)
	}

	sort.Slice(reducible, func(i, j int) bool { return reducible[i].glue > reducible[j].glue })

	toDrop := len(reducible) * s.Opts.ReduceFractionPct / 100
	dropped := make(map[Ref]bool, toDrop)
	for i := 0; i < toDrop && i < len(reducible); i++ {
		ref := reducible[i].ref
		if s.proof != nil {
			s.proof.DeleteClause(s.arena.Lits(ref))
		}
		if s.checker != nil {
			s.checker.Delete(s.arena.Lits(ref))
		}
		s.unwatchClause(ref)
		s.arena.MarkGarbage(ref)
		dropped[ref] = true
	}

	final := kept[:0]
	for _, ref := range kept {
		if !dropped[ref] {
			final = append(final, ref)
		}
	}
	s.learnts = final
	s.log.WithFields(logFields{
		"reduces": s.Stats.Reduces,
		"dropped": len(dropped),
		"kept":    len(final),
	}).Info("reduce")

	s.maybeCompact()
}
