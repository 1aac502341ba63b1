package sat

// Autarky reduction (spec §4.J, grounded on kissat's autarky.c). The
// general form finds any partial assignment that satisfies every clause
// it touches without needing clauses outside its support; this
// implements the common special case - pure literal elimination, where
// a variable appears in only one polarity across the irredundant large
// clauses and can simply be fixed to satisfy all of them.
func (s *Solver) reduceAutarky() {
	pos := make([]int, s.numVars)
	neg := make([]int, s.numVars)

	for _, ref := range s.irredundant {
		if s.arena.Garbage(ref) {
			continue
		}
		for _, l := range s.arena.Lits(ref) {
			if l.Sign() {
				neg[l.Var()]++
			} else {
				pos[l.Var()]++
			}
		}
	}

	found := 0
	for v := 0; v < s.numVars; v++ {
		if !s.info[v].active || s.litValue(MkLit(Var(v))) != Unknown {
			continue
		}
		switch {
		case pos[v] > 0 && neg[v] == 0:
			// Route through Add rather than assignRoot directly so the
			// new unit is reported to the proof trace and checker the
			// same way every other clause mutation is (spec §4.K).
			if s.Add([]Lit{MkLit(Var(v))}) {
				found++
			}
		case neg[v] > 0 && pos[v] == 0:
			if s.Add([]Lit{NegLit(Var(v))}) {
				found++
			}
		}
	}
	s.Stats.AutarkiesFound += int64(found)
}
