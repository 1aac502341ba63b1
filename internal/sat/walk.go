package sat

// Local search rephasing (spec §4.G "walk" phase source, grounded on
// kissat's walk.c): run a small WalkSAT loop from a phase-seeded
// assignment and adopt whatever it converges to as the next saved/target
// phase, regardless of whether it reaches a full satisfying assignment.
func (s *Solver) walk() {
	clauses := s.collectAllClauses()
	if len(clauses) == 0 {
		return
	}

	assign := make([]bool, s.numVars)
	for v := 0; v < s.numVars; v++ {
		switch s.phases[v].saved {
		case -1:
			assign[v] = false
		case 1:
			assign[v] = true
		default:
			assign[v] = s.rng.Intn(2) == 1
		}
	}

	litSatisfied := func(l Lit) bool { return assign[l.Var()] != l.Sign() }

	unsatisfied := func() []int {
		var idxs []int
		for i, cl := range clauses {
			ok := false
			for _, l := range cl {
				if litSatisfied(l) {
					ok = true
					break
				}
			}
			if !ok {
				idxs = append(idxs, i)
			}
		}
		return idxs
	}

	flips := 0
	tries := s.Opts.WalkTries
	for try := 0; try < tries; try++ {
		unsat := unsatisfied()
		if len(unsat) == 0 {
			break
		}
		cl := clauses[unsat[s.rng.Intn(len(unsat))]]
		v := cl[s.rng.Intn(len(cl))].Var()
		assign[v] = !assign[v]
		flips++
	}
	s.Stats.WalkFlips += int64(flips)

	for v := 0; v < s.numVars; v++ {
		phase := int8(-1)
		if assign[v] {
			phase = 1
		}
		s.phases[v].saved = phase
		s.phases[v].target = phase
	}
}

// collectAllClauses materializes every irredundant large clause and every
// binary clause as a literal slice, deduplicating binary clauses which are otherwise
// represented twice (once per watched endpoint).
func (s *Solver) collectAllClauses() [][]Lit {
	var out [][]Lit
	for _, ref := range s.irredundant {
		if s.arena.Garbage(ref) {
			continue
		}
		out = append(out, append([]Lit(nil), s.arena.Lits(ref)...))
	}

	seen := map[[2]Lit]bool{}
	for l := Lit(0); int(l) < len(s.values); l++ {
		cells := s.watches.View(l)
		off := 0
		for off < len(cells) {
			if isBinaryCell(cells[off]) {
				other, _, _ := decodeBinaryCell(cells[off])
				a, b := l.Not(), other
				key := [2]Lit{a, b}
				if key[0] > key[1] {
					key[0], key[1] = key[1], key[0]
				}
				if !seen[key] {
					seen[key] = true
					out = append(out, []Lit{a, b})
				}
				off++
				continue
			}
			off += 2
		}
	}
	return out
}
