package sat

// analyzeResult is the output of conflict analysis: the learned clause
// (lits[0] is the asserting literal), the level to backtrack to, and the
// clause's glue (LBD), used for tier classification at learn time (spec
// §4.F).
type analyzeResult struct {
	lits  []Lit
	level int
	glue  int
}

// Analyze performs first-UIP conflict analysis from c: it resolves
// backward along the trail, marking variables as it goes, until exactly
// one literal from the current decision level remains. It bumps the
// stable-mode score of every variable it marks (the conflict's literals
// and those of each antecedent resolved on, root-level ones excepted);
// the reasons of the learned clause's literals are not bumped, and the
// focused-mode queue is not bumped. It applies recursive
// self-subsumption minimization before returning (spec §4.F).
func (s *Solver) Analyze(c conflict) analyzeResult {
	s.analyzeLits = s.analyzeLits[:0]
	s.analyzeTouched = s.analyzeTouched[:0]
	learnt := append(s.analyzeBuf[:0], InvalidLit)

	curLevel := int32(len(s.frames))
	pending := 0

	mark := func(q Lit) {
		v := q.Var()
		if s.info[v].analyzed != analyzedNone {
			return
		}
		if s.level(v) == 0 {
			return // root-forced, dropped from every learned clause
		}
		s.info[v].analyzed = analyzedSeen
		s.analyzeTouched = append(s.analyzeTouched, v)
		s.bumpScore(v)
		if s.level(v) == curLevel {
			pending++
		} else {
			learnt = append(learnt, q)
			s.analyzeLits = append(s.analyzeLits, int(s.level(v)))
		}
	}

	resolveConflict := func() {
		if c.isBinary {
			mark(c.a)
			mark(c.b)
			return
		}
		for _, q := range s.arena.Lits(c.ref) {
			mark(q)
		}
	}
	resolveConflict()

	idx := len(s.trail) - 1
	var uip Lit
	for {
		for s.info[s.trail[idx].Var()].analyzed == analyzedNone {
			idx--
		}
		uip = s.trail[idx]
		idx--
		pending--
		if pending == 0 {
			break
		}
		v := uip.Var()
		switch s.info[v].reason.kind {
		case reasonBinary:
			mark(s.info[v].reason.lit)
		case reasonLong:
			for _, q := range s.arena.Lits(s.info[v].reason.ref) {
				if q != uip {
					mark(q)
				}
			}
		}
	}

	learnt[0] = uip.Not()
	learnt = s.minimize(learnt)

	backtrackLevel := 0
	if len(learnt) > 1 {
		best := 1
		for i := 2; i < len(learnt); i++ {
			if s.level(learnt[i].Var()) > s.level(learnt[best].Var()) {
				best = i
			}
		}
		learnt[1], learnt[best] = learnt[best], learnt[1]
		backtrackLevel = int(s.level(learnt[1].Var()))
	}

	s.analyzeLits = s.analyzeLits[:0]
	for _, l := range learnt[1:] {
		s.analyzeLits = append(s.analyzeLits, int(s.level(l.Var())))
	}
	glue := uniqueLevelCount(s.analyzeLits, curLevel)

	for _, v := range s.analyzeTouched {
		s.info[v].analyzed = analyzedNone
	}
	s.analyzeBuf = learnt

	return analyzeResult{lits: learnt, level: backtrackLevel, glue: glue}
}

// litRedundant reports whether l can be dropped from the learned clause
// because its reason's other literals are already covered by the clause
// or are themselves redundant, memoizing the answer on varInfo.analyzed
// (spec §4.F.5 "recursive minimization").
func (s *Solver) litRedundant(l Lit) bool {
	v := l.Var()
	switch s.info[v].analyzed {
	case analyzedRemovable:
		return true
	case analyzedPoisoned:
		return false
	}

	r := s.info[v].reason
	if r.kind == reasonDecision || r.kind == reasonUnit {
		s.info[v].analyzed = analyzedPoisoned
		s.analyzeTouched = append(s.analyzeTouched, v)
		return false
	}

	var lits []Lit
	if r.kind == reasonBinary {
		lits = []Lit{r.lit}
	} else {
		lits = s.arena.Lits(r.ref)
	}
	for _, q := range lits {
		if q == l {
			continue
		}
		qv := q.Var()
		if s.level(qv) == 0 || s.info[qv].analyzed == analyzedSeen || s.info[qv].analyzed == analyzedRemovable {
			continue
		}
		if !s.litRedundant(q) {
			s.info[v].analyzed = analyzedPoisoned
			s.analyzeTouched = append(s.analyzeTouched, v)
			return false
		}
	}
	s.info[v].analyzed = analyzedRemovable
	s.analyzeTouched = append(s.analyzeTouched, v)
	return true
}

// minimize drops every literal after learnt[0] that litRedundant proves
// removable, compacting the slice in place.
func (s *Solver) minimize(learnt []Lit) []Lit {
	out := learnt[:1]
	for _, l := range learnt[1:] {
		if s.info[l.Var()].reason.kind == reasonDecision || !s.litRedundant(l) {
			out = append(out, l)
		} else {
			s.Stats.MinimizedLiterals++
		}
	}
	return out
}

// uniqueLevelCount returns the glue (LBD) of a learned clause: the
// number of distinct decision levels among its literals. levels holds
// every non-current-level literal's level, and curLevel accounts for
// the asserting literal itself.
func uniqueLevelCount(levels []int, curLevel int32) int {
	seen := map[int32]struct{}{curLevel: {}}
	for _, l := range levels {
		seen[int32(l)] = struct{}{}
	}
	return len(seen)
}
