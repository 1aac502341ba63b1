package sat

// Bounded variable elimination (spec §4.I, grounded on kissat's
// eliminate.c): a variable whose positive and negative occurrences are
// few enough is removed entirely by replacing every clause that
// mentions it with the resolvents of its positive/negative occurrence
// pairs, provided that doesn't blow up the clause count. A defining gate
// (gate.go) sidesteps the product bound for variables introduced as
// pure AND/OR definitions, since their resolvents are produced without
// combinatorial blowup by construction.
func (s *Solver) eliminate() int {
	eliminated := 0
	for v := 0; v < s.numVars; v++ {
		if !s.info[v].active || s.litValue(MkLit(Var(v))) != Unknown {
			continue
		}
		if s.tryEliminate(Var(v)) {
			eliminated++
		}
	}
	s.Stats.Eliminated += int64(eliminated)
	return eliminated
}

// clauseOcc describes one occurrence of the variable being eliminated,
// carrying enough to both resolve and physically remove the clause.
type clauseOcc struct {
	lits     []Lit
	ref      Ref
	isBinary bool
	a, b     Lit
}

func (s *Solver) tryEliminate(v Var) bool {
	pos, neg := s.occurrencesOf(v)
	if len(pos) == 0 && len(neg) == 0 {
		return false
	}
	if len(pos) > s.Opts.EliminateOccLimit || len(neg) > s.Opts.EliminateOccLimit {
		return false
	}

	isGate := detectGate(v, pos, neg)
	if !isGate && len(pos)*len(neg) > s.Opts.EliminateBound {
		return false
	}

	var resolvents [][]Lit
	for _, p := range pos {
		for _, n := range neg {
			res, ok := resolveOn(p.lits, n.lits, MkLit(v))
			if !ok {
				continue
			}
			if len(res) > s.Opts.EliminateClsLimit {
				return false
			}
			resolvents = append(resolvents, res)
		}
	}

	// Record the positive occurrences as v's extension witness before
	// they're removed: Value()/extendEliminated reconstructs v from
	// these once search settles on a satisfying assignment for the
	// variables it was resolved against (spec §4.I.4 "extension stack").
	witness := make([][]Lit, len(pos))
	for i, occ := range pos {
		witness[i] = occ.lits
	}
	s.elimStack = append(s.elimStack, elimWitness{v: v, clauses: witness})

	for _, occ := range pos {
		s.removeOccurrence(occ)
	}
	for _, occ := range neg {
		s.removeOccurrence(occ)
	}
	s.info[v].active = false
	s.info[v].eliminated = true

	for _, res := range resolvents {
		s.Add(res)
	}
	return true
}

// elimWitness is one entry of the extension stack: the clauses v
// occurred in positively, kept around so extendEliminated can decide
// v's value after the rest of the formula is satisfied.
type elimWitness struct {
	v       Var
	clauses [][]Lit
}

// extendEliminated reconstructs a value for every eliminated variable
// from the satisfying assignment of the variables that survived search,
// walking the witness stack in reverse elimination order so that a
// variable eliminated later (which can appear, through a resolvent, in
// the witness clauses of an earlier elimination) is already assigned
// when the earlier variable's turn comes. Each variable defaults to false and flips to true
// only if some clause it was removed with would otherwise be left
// unsatisfied (spec §4.I.4 "extension stack").
func (s *Solver) extendEliminated() {
	for i := len(s.elimStack) - 1; i >= 0; i-- {
		w := s.elimStack[i]
		value := False
		for _, lits := range w.clauses {
			satisfied := false
			for _, l := range lits {
				if l.Var() == w.v {
					continue
				}
				if s.litValue(l) == True {
					satisfied = true
					break
				}
			}
			if !satisfied {
				value = True
				break
			}
		}
		l := MkLit(w.v)
		s.values[l] = value
		s.values[l.Not()] = value.Opposite()
	}
}

// removeOccurrence physically deletes one clause mentioning the
// eliminated variable, reporting the deletion to the proof trace and
// internal checker the same way every other clause-removing pass does
// (spec §4.K).
func (s *Solver) removeOccurrence(occ clauseOcc) {
	if s.proof != nil {
		s.proof.DeleteClause(occ.lits)
	}
	if s.checker != nil {
		s.checker.Delete(occ.lits)
	}
	if occ.isBinary {
		s.unwatchBinaryClause(occ.a, occ.b)
		return
	}
	s.unwatchClause(occ.ref)
	s.arena.MarkGarbage(occ.ref)
	s.removeClauseRef(occ.ref)
}

// occurrencesOf collects every clause mentioning v, split by polarity.
// Binary clauses containing v as a positive literal are found in the
// watch list of v's negation (that's where watchBinaryClause registers
// them - see watches.go); negative occurrences are symmetric.
func (s *Solver) occurrencesOf(v Var) (pos, neg []clauseOcc) {
	pos = append(pos, s.binaryOccurrencesAt(NegLit(v))...)
	neg = append(neg, s.binaryOccurrencesAt(MkLit(v))...)

	scan := func(refs []Ref) {
		for _, ref := range refs {
			if s.arena.Garbage(ref) {
				continue
			}
			lits := s.arena.Lits(ref)
			for _, l := range lits {
				if l.Var() != v {
					continue
				}
				occ := clauseOcc{lits: append([]Lit(nil), lits...), ref: ref}
				if l.Sign() {
					neg = append(neg, occ)
				} else {
					pos = append(pos, occ)
				}
				break
			}
		}
	}
	scan(s.irredundant)
	scan(s.learnts)
	return pos, neg
}

func (s *Solver) binaryOccurrencesAt(watchLit Lit) []clauseOcc {
	var out []clauseOcc
	cells := s.watches.View(watchLit)
	off := 0
	for off < len(cells) {
		if isBinaryCell(cells[off]) {
			other, _, _ := decodeBinaryCell(cells[off])
			a := watchLit.Not()
			out = append(out, clauseOcc{lits: []Lit{a, other}, isBinary: true, a: a, b: other})
			off++
			continue
		}
		off += 2
	}
	return out
}

// resolveOn resolves clauses a and b on pivot (present positively in a,
// negatively in b), returning ok=false if the resolvent is tautological.
func resolveOn(a, b []Lit, pivot Lit) ([]Lit, bool) {
	out := make([]Lit, 0, len(a)+len(b)-2)
	seen := make(map[Lit]bool, len(a)+len(b))
	for _, l := range a {
		if l == pivot {
			continue
		}
		if seen[l.Not()] {
			return nil, false
		}
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	for _, l := range b {
		if l == pivot.Not() {
			continue
		}
		if seen[l.Not()] {
			return nil, false
		}
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out, true
}
