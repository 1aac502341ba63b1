package sat

import "fmt"

// This file implements clause addition: external clauses arriving via
// Add (spec §6 add_clause) and learned clauses produced by Analyze
// (spec §4.F "learn"). Both paths end up either recording a unit at
// level 0, registering a binary watch pair, or allocating an arena
// clause and watching its first two literals.

// Add appends an external clause over internal literals, simplifying it
// against the current (necessarily level-0) trail and deduplicating
// repeated/complementary literals. It returns false if the clause is
// already known to make the formula unsatisfiable (spec §6 add_clause,
// §4.A "tautologies and repeats are simplified away before allocation").
func (s *Solver) Add(lits []Lit) bool {
	if s.unsat {
		return false
	}
	if s.checker != nil {
		if err := s.checker.Import(lits); err != nil {
			panic("sat: proof checker rejected clause " + fmt.Sprint(lits) + ": " + err.Error())
		}
	}
	if s.proof != nil {
		s.proof.AddClause(lits)
	}

	buf := s.analyzeBuf[:0]
	for _, l := range lits {
		switch s.litValue(l) {
		case True:
			s.analyzeBuf = buf
			return true // clause already satisfied at level 0
		case False:
			continue // falsified literal, drop it
		}
		dup := false
		for _, b := range buf {
			if b == l {
				dup = true
				break
			}
			if b == l.Not() {
				s.analyzeBuf = buf
				return true // tautology
			}
		}
		if !dup {
			buf = append(buf, l)
		}
	}
	s.analyzeBuf = buf[:0]

	switch len(buf) {
	case 0:
		s.unsat = true
		return false
	case 1:
		return s.assignRoot(buf[0])
	case 2:
		s.watchBinaryClause(buf[0], buf[1], false)
		return true
	default:
		ref := s.arena.Allocate(buf, false, 0)
		s.irredundant = append(s.irredundant, ref)
		s.watchClause(ref)
		return true
	}
}

// AddClause adds a clause given as signed external (1-indexed DIMACS
// style) literals, reserving any variable seen for the first time, and
// returns false if the clause immediately falsifies the formula (spec
// §6 add_clause: the C-style API works over external literal ints, not
// the internal packed Lit).
func (s *Solver) AddClause(extLits []int) bool {
	lits := make([]Lit, len(extLits))
	for i, el := range extLits {
		v := s.internalVar(abs(el))
		if el < 0 {
			lits[i] = NegLit(v)
		} else {
			lits[i] = MkLit(v)
		}
	}
	return s.Add(lits)
}

// assignRoot assigns a unit literal at level 0, detecting an immediate
// contradiction against an already-assigned opposite unit.
func (s *Solver) assignRoot(l Lit) bool {
	switch s.litValue(l) {
	case True:
		return true
	case False:
		s.unsat = true
		return false
	}
	s.assign(l, unitReason)
	return true
}

// learn installs the clause produced by Analyze: backtracks to its
// target level, assigns the asserting literal, and (for clauses longer
// than 2) allocates and watches the clause (spec §4.F "learn").
func (s *Solver) learn(res analyzeResult) {
	if s.checker != nil {
		if err := s.checker.Import(res.lits); err != nil {
			panic("sat: proof checker rejected learned clause " + fmt.Sprint(res.lits) + ": " + err.Error())
		}
	}
	level := res.level
	if s.Opts.Chronological != 0 && len(res.lits) > 1 {
		// If backjumping all the way to the clause's computed assertion
		// level would skip more levels than ChronoLevels allows, only
		// pop the current (topmost) decision level instead. The
		// intermediate levels are left exactly as they are: the
		// asserting literal lands deeper than its minimal level, but
		// the clause's second watch stays assigned false throughout,
		// so the watch invariant and every level still on the trail
		// remain valid (spec §3 "reuse trail optimization", §4.F.8). A
		// unit clause (no second watch at all) always goes to level 0:
		// it holds unconditionally, regardless of how it was derived.
		if current := len(s.frames); current-level > s.Opts.ChronoLevels {
			level = current - 1
		}
	}
	s.backtrackTo(level)
	s.Stats.LearnedClauses++
	s.Stats.LearnedLiterals += int64(len(res.lits))

	switch len(res.lits) {
	case 1:
		s.assign(res.lits[0], unitReason)
	case 2:
		s.watchBinaryClause(res.lits[0], res.lits[1], true)
		s.assign(res.lits[0], reason{kind: reasonBinary, lit: res.lits[1]})
	default:
		ref := s.arena.Allocate(res.lits, true, res.glue)
		if res.glue <= s.Opts.TierOneGlue {
			s.arena.SetKeep(ref, true)
		} else if res.glue <= s.Opts.TierTwoGlue {
			s.arena.SetUsed(ref, 2)
		}
		s.learnts = append(s.learnts, ref)
		s.watchClause(ref)
		s.assign(res.lits[0], reason{kind: reasonLong, ref: ref})
	}

	if s.proof != nil {
		s.proof.AddClause(res.lits)
	}
}
