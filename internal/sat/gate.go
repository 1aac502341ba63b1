package sat

// Gate detection (spec §4.I, grounded on kissat's eliminate.c gate
// extraction): a variable introduced purely as the AND or OR of other
// literals can be eliminated without regard to the resolvent product
// bound, because its resolvents are exactly the clauses defining the
// other side of the gate - no combinatorial blowup is possible. Pattern
// matching against the two standard Tseitin encodings finds the
// candidate; kitten.go's brute-force checker then confirms the
// candidate actually holds over the occurrence clauses as found. That
// second step catches anything the syntactic match alone would miss,
// such as a surplus or duplicated disjunct in the defining clause.
func detectGate(v Var, pos, neg []clauseOcc) bool {
	if inputs, ok := detectAndGate(v, pos, neg); ok {
		base := gateBase(neg, pos)
		return verifyIff(base, MkLit(v), inputs, true)
	}
	if inputs, ok := detectOrGate(v, pos, neg); ok {
		base := gateBase(pos, neg)
		return verifyIff(base, MkLit(v), inputs, false)
	}
	return false
}

// detectAndGate looks for v <-> (a1 ∧ ... ∧ ak): k binary clauses
// (¬v ∨ ai), one per input, plus a single defining clause
// (v ∨ ¬a1 ∨ ... ∨ ¬ak).
func detectAndGate(v Var, pos, neg []clauseOcc) ([]Lit, bool) {
	if len(pos) != 1 {
		return nil, false
	}
	inputs := make([]Lit, 0, len(neg))
	for _, d := range neg {
		if len(d.lits) != 2 {
			return nil, false
		}
		other := otherLit(d.lits, NegLit(v))
		if other == InvalidLit {
			return nil, false
		}
		inputs = append(inputs, other)
	}
	anti := pos[0].lits
	if len(anti) != len(inputs)+1 {
		return nil, false
	}
	want := make(map[Lit]int, len(inputs))
	for _, in := range inputs {
		want[in.Not()]++
	}
	for _, l := range anti {
		if l == MkLit(v) {
			continue
		}
		if want[l] == 0 {
			return nil, false
		}
		want[l]--
	}
	for _, n := range want {
		if n != 0 {
			return nil, false
		}
	}
	return inputs, true
}

// detectOrGate looks for v <-> (a1 ∨ ... ∨ ak): k binary clauses
// (v ∨ ¬ai), one per input, plus a single defining clause
// (¬v ∨ a1 ∨ ... ∨ ak).
func detectOrGate(v Var, pos, neg []clauseOcc) ([]Lit, bool) {
	if len(neg) != 1 {
		return nil, false
	}
	inputs := make([]Lit, 0, len(pos))
	for _, d := range pos {
		if len(d.lits) != 2 {
			return nil, false
		}
		other := otherLit(d.lits, MkLit(v))
		if other == InvalidLit {
			return nil, false
		}
		inputs = append(inputs, other.Not())
	}
	anti := neg[0].lits
	if len(anti) != len(inputs)+1 {
		return nil, false
	}
	want := make(map[Lit]int, len(inputs))
	for _, in := range inputs {
		want[in]++
	}
	for _, l := range anti {
		if l == NegLit(v) {
			continue
		}
		if want[l] == 0 {
			return nil, false
		}
		want[l]--
	}
	for _, n := range want {
		if n != 0 {
			return nil, false
		}
	}
	return inputs, true
}

func otherLit(lits []Lit, pivot Lit) Lit {
	for _, l := range lits {
		if l != pivot {
			return l
		}
	}
	return InvalidLit
}

func gateBase(a, b []clauseOcc) [][]Lit {
	base := make([][]Lit, 0, len(a)+len(b))
	for _, occ := range a {
		base = append(base, occ.lits)
	}
	for _, occ := range b {
		base = append(base, occ.lits)
	}
	return base
}

// verifyIff confirms, by brute-force unsat checks over the actual
// defining clauses, that vPos really is equivalent to the conjunction
// (conjunctive == true) or disjunction (conjunctive == false) of inputs.
func verifyIff(base [][]Lit, vPos Lit, inputs []Lit, conjunctive bool) bool {
	forward, backward := vPos, vPos.Not()
	if !conjunctive {
		forward, backward = vPos.Not(), vPos
	}

	// vPos (or its negation, for OR-gates) true forces every input to
	// agree; check each disagreement is unsatisfiable against base.
	for _, in := range inputs {
		unit := in.Not()
		if !conjunctive {
			unit = in
		}
		clauses := append(append([][]Lit(nil), base...), []Lit{forward}, []Lit{unit})
		if !newKitten(clauses).unsat() {
			return false
		}
	}

	// All inputs agreeing forces vPos the other way; check that too.
	clauses := append(append([][]Lit(nil), base...), []Lit{backward})
	for _, in := range inputs {
		unit := in
		if !conjunctive {
			unit = in.Not()
		}
		clauses = append(clauses, []Lit{unit})
	}
	return newKitten(clauses).unsat()
}
