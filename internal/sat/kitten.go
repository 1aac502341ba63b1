package sat

// kitten is a small embedded satisfiability checker used only to verify
// candidate gate definitions during elimination (spec §4.I, grounded on
// kissat's kitten.c - there a full incremental CDCL solver reused for
// this; the instances gate.go poses it are always a handful of
// variables, so direct enumeration suffices here).
type kitten struct {
	clauses [][]Lit
	vars    []Var
}

func newKitten(clauses [][]Lit) *kitten {
	seen := map[Var]bool{}
	var vars []Var
	for _, cl := range clauses {
		for _, l := range cl {
			if !seen[l.Var()] {
				seen[l.Var()] = true
				vars = append(vars, l.Var())
			}
		}
	}
	return &kitten{clauses: clauses, vars: vars}
}

// unsat reports whether the clause set has no satisfying assignment, by
// brute-force enumeration over its (small) variable set. Callers must
// keep the instance tiny; past 20 variables it gives up and reports
// "not unsat" so the caller falls back to treating the gate as
// unconfirmed rather than paying for full enumeration.
func (k *kitten) unsat() bool {
	n := len(k.vars)
	if n > 20 {
		return false
	}
	assign := make(map[Var]bool, n)
	var try func(i int) bool
	try = func(i int) bool {
		if i == n {
			return k.satisfiedBy(assign)
		}
		assign[k.vars[i]] = false
		if try(i + 1) {
			return true
		}
		assign[k.vars[i]] = true
		defer delete(assign, k.vars[i])
		return try(i + 1)
	}
	return !try(0)
}

func (k *kitten) satisfiedBy(assign map[Var]bool) bool {
	for _, cl := range k.clauses {
		ok := false
		for _, l := range cl {
			if assign[l.Var()] != l.Sign() {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}
