package sat

// inprocess runs the configured inprocessing passes at a level-0 fixed
// point, in kissat's rough cost order (cheapest/most-productive first):
// probing and ternary resolution discover new binary clauses that make
// transitive reduction and elimination cheaper, subsumption and
// vivification clean up what elimination leaves behind, and autarky
// reduction runs last since it can remove whole clauses outright (spec
// §4.I/§4.J). Each pass is gated by its own enable flag; probing,
// subsumption, vivification and elimination also have a backoff delay
// so an unproductive pass of theirs runs less often over time.
func (s *Solver) inprocess() {
	s.log.WithFields(logFields{"conflicts": s.Stats.Conflicts}).Info("inprocessing")
	if s.Opts.ProbeEnable != 0 && s.delays.probe.ready() {
		produced := s.probe()
		s.delays.probe.reset(produced > 0)
	}
	if s.unsat {
		return
	}

	if s.Opts.TernaryEnable != 0 {
		s.ternaryResolve()
	}
	if s.unsat {
		return
	}

	if s.Opts.TransitiveEnable != 0 {
		s.transitiveReduce()
	}

	if s.Opts.SubsumeEnable != 0 && s.delays.subsume.ready() {
		produced := s.subsume()
		s.delays.subsume.reset(produced > 0)
	}
	if s.unsat {
		return
	}

	if s.Opts.VivifyEnable != 0 && s.delays.vivify.ready() {
		produced := s.vivify()
		s.delays.vivify.reset(produced > 0)
	}
	if s.unsat {
		return
	}

	if s.Opts.EliminateEnable != 0 && s.delays.eliminate.ready() {
		produced := s.eliminate()
		s.delays.eliminate.reset(produced > 0)
	}
	if s.unsat {
		return
	}

	if s.Opts.AutarkyEnable != 0 {
		s.reduceAutarky()
	}
}
