package sat

// Ternary (hyper) resolution (spec §4.J, grounded on kissat's ternary.c):
// two ternary clauses that resolve on one literal and share both of their
// other literals produce a binary resolvent directly, which subsumes both
// of them. Pairs whose resolvent would keep three or more literals are
// skipped: no ternary resolvents are generated.
func (s *Solver) ternaryResolve() {
	byLit := make(map[Lit][]Ref)
	for _, ref := range s.irredundant {
		if s.arena.Garbage(ref) || s.arena.Size(ref) != 3 {
			continue
		}
		for _, l := range s.arena.Lits(ref) {
			byLit[l] = append(byLit[l], ref)
		}
	}

	seen := map[[2]Lit]bool{}
	for pivot, refs := range byLit {
		others, ok := byLit[pivot.Not()]
		if !ok {
			continue
		}
		for _, r1 := range refs {
			for _, r2 := range others {
				resolvent, ok := resolveTernary(s.arena.Lits(r1), s.arena.Lits(r2), pivot)
				if !ok {
					continue
				}
				key := [2]Lit{resolvent[0], resolvent[1]}
				if key[0] > key[1] {
					key[0], key[1] = key[1], key[0]
				}
				if seen[key] {
					continue
				}
				seen[key] = true
				if s.Add(resolvent) {
					s.Stats.TernaryAdded++
					// The resolvent is binary by construction (ok is
					// only true when rest collapses to 2 literals), so
					// the two ternary antecedents it came from are now
					// entailed by it and can be dropped (spec §4.J:
					// "mark the two antecedents garbage if the result
					// is a binary of them").
					s.deleteTernaryAntecedent(r1)
					s.deleteTernaryAntecedent(r2)
				}
			}
		}
	}
}

// resolveTernary resolves two 3-literal clauses on pivot (present
// positively in a, negatively in b) and reports ok only when the
// resolvent itself has exactly two distinct literals, i.e. a and b share
// both of their literals besides the pivot.
func resolveTernary(a, b []Lit, pivot Lit) ([]Lit, bool) {
	var rest []Lit
	for _, l := range a {
		if l != pivot {
			rest = append(rest, l)
		}
	}
	for _, l := range b {
		if l != pivot.Not() {
			rest = append(rest, l)
		}
	}
	if len(rest) != 4 {
		return nil, false
	}
	if (rest[0] == rest[2] && rest[1] == rest[3]) || (rest[0] == rest[3] && rest[1] == rest[2]) {
		return []Lit{rest[0], rest[1]}, true
	}
	return nil, false
}

// deleteTernaryAntecedent removes a ternary clause a binary hyper-
// resolvent has just made redundant, the same way every other clause-
// removing pass reports the deletion to the proof trace and checker
// (spec §4.K). A clause still serving as some variable's reason is left
// alone, same as Reduce does.
func (s *Solver) deleteTernaryAntecedent(ref Ref) {
	if s.arena.Garbage(ref) || s.arena.Reason(ref) {
		return
	}
	if s.proof != nil {
		s.proof.DeleteClause(s.arena.Lits(ref))
	}
	if s.checker != nil {
		s.checker.Delete(s.arena.Lits(ref))
	}
	s.unwatchClause(ref)
	s.arena.MarkGarbage(ref)
	s.removeClauseRef(ref)
}
