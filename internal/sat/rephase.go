package sat

// rephaseKind selects which saved-phase source overwrites the decision
// phases at a rephase point (spec §4.G "rephase"): the assignment with
// the most set variables seen so far, the target phases (which only
// local search, walk.go, writes), an inversion of the current phases, a
// fresh random assignment, or local search's result (walk.go).
type rephaseKind int

const (
	rephaseBest rephaseKind = iota
	rephaseInvert
	rephaseTarget
	rephaseRandom
	rephaseWalk
)

func (k rephaseKind) String() string {
	switch k {
	case rephaseBest:
		return "best"
	case rephaseInvert:
		return "invert"
	case rephaseTarget:
		return "target"
	case rephaseRandom:
		return "random"
	default:
		return "walk"
	}
}

// shouldRephase reports whether enough conflicts have passed since the
// last rephase.
func (s *Solver) shouldRephase() bool {
	return s.Stats.Conflicts >= s.limits.rephase
}

// rephase overwrites every variable's saved phase from the kind's
// source, cycling deterministically through the five kinds the way
// kissat's "rephase" schedule does (always best first, then a fixed
// repeating cycle).
func (s *Solver) rephase() {
	kind := s.pickRephaseKind()
	s.Stats.Rephases++
	s.limits.rephase = s.Stats.Conflicts + int64(s.Opts.RephaseInitial)
	s.log.WithFields(logFields{"rephases": s.Stats.Rephases, "kind": kind}).Debug("rephase")

	if kind == rephaseWalk {
		if s.Opts.WalkEnable != 0 {
			s.walk()
		}
		return
	}

	for v := 0; v < s.numVars; v++ {
		switch kind {
		case rephaseBest:
			if p := s.phases[v].best; p != 0 {
				s.phases[v].saved = p
			}
		case rephaseTarget:
			if p := s.phases[v].target; p != 0 {
				s.phases[v].saved = p
			}
		case rephaseInvert:
			s.phases[v].saved = -s.phases[v].saved
		case rephaseRandom:
			if s.rng.Intn(2) == 0 {
				s.phases[v].saved = 1
			} else {
				s.phases[v].saved = -1
			}
		}
	}
}

func (s *Solver) pickRephaseKind() rephaseKind {
	switch s.Stats.Rephases % 5 {
	case 0:
		return rephaseBest
	case 1:
		return rephaseInvert
	case 2:
		return rephaseTarget
	case 3:
		return rephaseRandom
	default:
		return rephaseWalk
	}
}
