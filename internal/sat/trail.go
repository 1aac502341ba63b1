package sat

// This file implements the assignment trail and decision-level frames
// (spec §3 "Trail and frames", §4.D). Propagation and decisions both
// funnel through assign; only backtrack ever removes trail entries.

// level returns v's current decision level, or -1 if unassigned.
func (s *Solver) level(v Var) int32 { return s.info[v].level }

// newDecisionLevel opens a new frame without assigning anything yet;
// the caller assigns the decision literal itself right after.
func (s *Solver) newDecisionLevel(decision Lit) {
	s.frames = append(s.frames, frame{decision: decision, trailStart: len(s.trail)})
}

// assign records l as true at the current decision level with reason r,
// updating the per-literal value mirror, the per-variable info, and the
// saved phase (spec §4.D "assign").
func (s *Solver) assign(l Lit, r reason) {
	v := l.Var()
	lvl := int32(len(s.frames))

	s.values[l] = True
	s.values[l.Not()] = False
	s.info[v].level = lvl
	s.info[v].reason = r
	if r.kind == reasonLong {
		s.arena.SetReason(r.ref, true)
	}

	if l.Sign() {
		s.phases[v].saved = -1
	} else {
		s.phases[v].saved = 1
	}

	s.trail = append(s.trail, l)

	if n := len(s.trail); n > s.targetAssigned {
		s.targetAssigned = n
	}
}

// unassign clears l's variable back to Unknown and makes it a decision
// candidate again in both heuristics: it is put back into the VSIDS
// heap, and the VMTF search cursor moves to it if its stamp is newer
// than the cursor's (spec §4.D).
func (s *Solver) unassign(l Lit) {
	v := l.Var()
	if r := s.info[v].reason; r.kind == reasonLong {
		s.arena.SetReason(r.ref, false)
	}
	s.values[l] = Unknown
	s.values[l.Not()] = Unknown
	s.info[v].level = -1
	s.info[v].reason = decisionReason

	s.reinsertHeap(v)
	if q := s.vmtf; q.stamp[v] > q.stamp[q.search] {
		q.search = v
	}
}

// backtrackTo undoes every assignment made at a decision level greater
// than level, closing frames back down to it. level must be <=
// s.DecisionLevel().
func (s *Solver) backtrackTo(level int) {
	if level >= len(s.frames) {
		return
	}
	start := s.frames[level].trailStart
	for i := len(s.trail) - 1; i >= start; i-- {
		s.unassign(s.trail[i])
	}
	s.trail = s.trail[:start]
	s.frames = s.frames[:level]
	s.propagated = start
}

// recordBest snapshots the current trail as the best assignment seen so
// far, used by rephase's "best" phase source (spec §4.G).
func (s *Solver) recordBest() {
	if len(s.trail) <= s.bestAssigned {
		return
	}
	s.bestAssigned = len(s.trail)
	for _, l := range s.trail {
		v := l.Var()
		if l.Sign() {
			s.phases[v].best = -1
		} else {
			s.phases[v].best = 1
		}
	}
}
