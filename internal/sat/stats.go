package sat

// Stats holds the solver's running counters (the exported Solver.Stats
// field); the CLI prints the conflict count after solving, and tests read
// individual counters.
type Stats struct {
	Decisions  int64
	Conflicts  int64
	Propagations int64
	Restarts   int64
	Reduces    int64
	Rephases   int64

	LearnedClauses int64
	LearnedLiterals int64
	MinimizedLiterals int64

	Eliminated int64
	Subsumed   int64
	Vivified   int64
	Strengthened int64
	TernaryAdded int64
	TransitiveRemoved int64
	AutarkiesFound int64
	HyperBinary int64
	WalkFlips  int64

	Defrags   int64
	Collects  int64
}
