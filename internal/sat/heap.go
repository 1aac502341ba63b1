package sat

// Stable-mode decision scoring: a VSIDS-style activity score per
// variable, stored negated in the teacher's yagh.IntMap min-heap so that
// Pop returns the highest-activity variable (spec §4.C, grounded on
// rhartert/yass's internal/sat/ordering.go VarOrder).

// bumpScore increases v's activity and rescales every score (keeping
// relative order) if any score would otherwise overflow float64's useful
// range, mirroring VarOrder.BumpScore/rescaleScoresAndIncrement.
func (s *Solver) bumpScore(v Var) {
	newScore := s.scores[v] + s.scoreInc
	s.scores[v] = newScore
	if s.heap.Contains(int(v)) {
		s.heap.Put(int(v), -newScore)
	}
	if newScore > 1e100 {
		s.rescaleScores()
	}
}

func (s *Solver) rescaleScores() {
	s.scoreInc *= 1e-100
	for v, sc := range s.scores {
		rescaled := sc * 1e-100
		s.scores[v] = rescaled
		if s.heap.Contains(v) {
			s.heap.Put(v, -rescaled)
		}
	}
}

func (s *Solver) decayScore() {
	s.scoreInc /= float64(s.Opts.VarDecayPpt) / 1000
	if s.scoreInc > 1e100 {
		s.rescaleScores()
	}
}

// reinsertHeap makes v a candidate again after it becomes unassigned
// (spec §4.D backtrack).
func (s *Solver) reinsertHeap(v Var) {
	s.heap.Put(int(v), -s.scores[v])
}

// nextStableDecision pops the highest-score unassigned variable from the
// stable-mode heap, discarding stale entries for already-assigned
// variables left behind by earlier pops (VarOrder.NextDecision).
func (s *Solver) nextStableDecision() Var {
	for {
		next, ok := s.heap.Pop()
		if !ok {
			panic("sat: stable-mode heap exhausted with unassigned variables remaining")
		}
		v := Var(next.Elem)
		if !s.info[v].active || s.litValue(MkLit(v)) != Unknown {
			continue
		}
		return v
	}
}

// peekStableDecision reports the variable and score nextStableDecision
// would hand back right now, without actually popping it: every entry
// examined along the way (stale or not) is put back exactly as found.
// Used by restart's reuse-trail level search (spec §4.G), which needs
// to compare against the next candidate without consuming it.
func (s *Solver) peekStableDecision() (Var, float64, bool) {
	var popped []Var
	var found Var = -1
	for {
		next, ok := s.heap.Pop()
		if !ok {
			break
		}
		v := Var(next.Elem)
		popped = append(popped, v)
		if s.info[v].active && s.litValue(MkLit(v)) == Unknown {
			found = v
			break
		}
	}
	for _, v := range popped {
		s.heap.Put(int(v), -s.scores[v])
	}
	if found < 0 {
		return 0, 0, false
	}
	return found, s.scores[found], true
}
