package sat

import "time"

// Solve runs CDCL search to completion, termination, or a configured
// resource limit (spec §4 overview / §6 solve()). The loop is the single
// place that sequences propagation, conflict handling, and every
// scheduled maintenance pass (reduce, restart, rephase, mode switch,
// inprocessing); everything else in the package is a subroutine it
// calls.
func (s *Solver) Solve() Status {
	if s.unsat {
		return StatusUNSAT
	}
	s.startTime = time.Now()
	s.solveRan = true

	for {
		if s.shouldTerminate() {
			return StatusUnknown
		}

		c, conflicted := s.Propagate()
		if conflicted {
			s.Stats.Conflicts++
			if len(s.frames) == 0 {
				s.unsat = true
				s.log.WithFields(logFields{"conflicts": s.Stats.Conflicts}).Info("unsatisfiable")
				return StatusUNSAT
			}
			if s.Opts.MaxConflicts >= 0 && s.Stats.Conflicts > int64(s.Opts.MaxConflicts) {
				return StatusUnknown
			}

			res := s.Analyze(c)
			s.avgFastGlue.update(float64(res.glue))
			s.avgSlowGlue.update(float64(res.glue))
			s.avgSize.update(float64(len(res.lits)))
			s.avgLevel.update(float64(len(s.frames)))
			s.avgTrail.update(float64(len(s.trail)))
			s.decayScore()
			s.learn(res)
			continue
		}

		if len(s.trail)+len(s.elimStack) == s.numVars {
			s.extendEliminated()
			s.recordBest()
			s.log.WithFields(logFields{"conflicts": s.Stats.Conflicts}).Info("satisfiable")
			return StatusSAT
		}

		s.recordBest()

		if s.shouldReduce() {
			s.Reduce()
		}
		if s.shouldRestart() {
			s.restart()
			continue
		}
		if s.shouldRephase() {
			s.rephase()
		}
		if s.shouldSwitchMode() {
			s.switchMode()
		}
		if len(s.frames) == 0 {
			s.inprocess()
			if s.unsat {
				return StatusUNSAT
			}
		}

		if s.Opts.MaxDecisions >= 0 && s.Stats.Decisions >= int64(s.Opts.MaxDecisions) {
			return StatusUnknown
		}
		s.decide()
	}
}

// decide pushes a new decision level and assigns its branching literal,
// picked from whichever heuristic the current mode uses, oriented by the
// variable's saved phase (spec §4.C/§4.D).
func (s *Solver) decide() {
	var v Var
	if s.mode == ModeStable {
		v = s.nextStableDecision()
	} else {
		cand, ok := s.vmtf.nextCandidate(func(c Var) bool { return s.info[c].active && s.litValue(MkLit(c)) == Unknown })
		if !ok {
			panic("sat: decision heuristic exhausted with unassigned variables remaining")
		}
		v = cand
	}

	lit := MkLit(v)
	if s.phases[v].saved < 0 {
		lit = lit.Not()
	}

	s.newDecisionLevel(lit)
	s.assign(lit, decisionReason)
	s.Stats.Decisions++
}

// Status returns the outcome the most recent Solve call settled on,
// without invoking search.
func (s *Solver) Status() Status {
	switch {
	case s.unsat:
		return StatusUNSAT
	case s.solveRan && len(s.trail)+len(s.elimStack) == s.numVars:
		return StatusSAT
	default:
		return StatusUnknown
	}
}
