package sat

// Restart scheduling (spec §4.G). Focused mode restarts whenever the
// fast glue average spikes above the slow one by a margin (Glucose-style
// "the search is thrashing"); stable mode instead restarts on a
// reluctant-doubling (Luby) conflict schedule, which is far less
// aggressive and suits the heap-driven, more systematic stable search.

// shouldRestart reports whether a restart is due right now. Level 0 is
// never worth restarting from.
func (s *Solver) shouldRestart() bool {
	if len(s.frames) == 0 {
		return false
	}
	if s.mode == ModeStable {
		return s.Stats.Conflicts >= s.limits.restart
	}
	margin := 1 + float64(s.Opts.RestartMarginPct)/100
	return s.avgFastGlue.Value() > s.avgSlowGlue.Value()*margin
}

// restart backtracks to the reuse-trail level and reschedules the next
// restart.
func (s *Solver) restart() {
	s.backtrackTo(s.reuseTrailLevel())
	s.Stats.Restarts++
	if s.mode == ModeStable {
		s.limits.restart = s.Stats.Conflicts + s.luby.next()*int64(s.Opts.LubyBase)
	}
	s.log.WithFields(logFields{
		"restarts":  s.Stats.Restarts,
		"conflicts": s.Stats.Conflicts,
		"mode":      s.mode,
	}).Debug("restart")
}

// reuseTrailLevel finds the deepest decision level whose own decision
// variable would still be chosen ahead of (or level with) the search's
// actual next candidate, so a restart only needs to retreat past levels
// the next decision would immediately revisit anyway, instead of always
// throwing the whole trail away (spec §3 "reuse trail optimization",
// §4.G).
func (s *Solver) reuseTrailLevel() int {
	if len(s.frames) == 0 {
		return 0
	}
	if s.mode == ModeStable {
		_, score, ok := s.peekStableDecision()
		if !ok {
			return 0
		}
		for l := len(s.frames) - 1; l >= 0; l-- {
			if s.scores[s.frames[l].decision.Var()] >= score {
				return l + 1
			}
		}
		return 0
	}
	cand, ok := s.vmtf.nextCandidate(func(c Var) bool { return s.litValue(MkLit(c)) == Unknown })
	if !ok {
		return 0
	}
	stamp := s.vmtf.stampOf(cand)
	for l := len(s.frames) - 1; l >= 0; l-- {
		if s.vmtf.stampOf(s.frames[l].decision.Var()) >= stamp {
			return l + 1
		}
	}
	return 0
}

// shouldSwitchMode reports whether enough ticks have passed since the
// last mode change to consider flipping focused<->stable (spec §4.G).
func (s *Solver) shouldSwitchMode() bool {
	return s.limits.ticks >= s.limits.modeTicks
}

// switchMode toggles between focused and stable search, growing the
// tick budget geometrically so later switches happen less often
// (kissat's "mode.c" ramp).
func (s *Solver) switchMode() {
	if s.mode == ModeFocused {
		s.mode = ModeStable
		s.limits.restart = s.Stats.Conflicts + s.luby.next()*int64(s.Opts.LubyBase)
	} else {
		s.mode = ModeFocused
	}
	s.limits.modeField += s.limits.modeField / 2
	s.limits.modeTicks = s.limits.ticks + s.limits.modeField
	s.log.WithFields(logFields{
		"mode":      s.mode,
		"conflicts": s.Stats.Conflicts,
	}).Info("mode switch")
}
