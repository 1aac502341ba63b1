// Package options implements the solver's int-valued option table (spec
// §6: "set_option(name, int); all heuristics are int-valued"). It is
// deliberately not part of internal/sat so that the CLI (cmd/ksat) can
// validate and report on options without importing the whole engine.
package options

import "fmt"

// Options holds every tunable knob of the solver. Fields are plain ints
// (kissat itself keeps every option int-valued, including what would
// elsewhere be a bool or float - floats like decay are fixed-point
// thousandths here, e.g. VarDecayPpt=950 means 0.95).
type Options struct {
	Verbosity int // -1 quiet .. 3 very chatty, forwarded to satlog

	PhaseSaving  int // 0/1
	VarDecayPpt  int // variable activity decay, parts per thousand
	ClaDecayPpt  int // clause activity decay, parts per thousand
	Incremental  int // 0/1: suppress weakening-to-unit rewrites (Non-goals §1)

	Chronological  int // 0/1: allow chronological backtracking
	ChronoLevels   int // jump-skip threshold before forcing chronological backtrack

	TierOneGlue int // clauses with glue <= this are permanent ("keep")
	TierTwoGlue int // clauses with glue <= this get two extra reduce cycles

	ReduceFractionPct int // % of reducible clauses garbage-marked per reduce
	ReduceInitial     int // conflicts before first reduce
	ReduceInc         int // geometric increment applied to the reduce limit

	RestartMarginPct int // focused restart trigger margin, spec §4.G
	LubyBase         int // stable-mode reluctant-doubling unit

	ModeTicksInitial int // ticks between focused<->stable switches, initial
	RephaseInitial   int // conflicts between rephase attempts, initial

	EliminateEnable   int
	EliminateOccLimit int
	EliminateClsLimit int
	EliminateBound    int // max len(pos)*len(neg) for a non-gate elimination candidate

	SubsumeEnable int
	VivifyEnable  int
	ProbeEnable   int
	TernaryEnable int
	TransitiveEnable int
	AutarkyEnable int
	WalkEnable    int
	WalkTries     int

	DefragPct int // vector/arena defrag threshold, spec §4.B/§4.H

	MaxConflicts int // -1 == unlimited
	MaxDecisions int // -1 == unlimited
}

// Default returns the option table the solver is constructed with
// absent any CLI/API overrides. Values follow the teacher's defaults
// (ClauseDecay 0.999, VariableDecay 0.95) where a direct analog exists.
func Default() Options {
	return Options{
		Verbosity:         0,
		PhaseSaving:       1,
		VarDecayPpt:       950,
		ClaDecayPpt:       999,
		Incremental:       0,
		Chronological:     1,
		ChronoLevels:      100,
		TierOneGlue:       2,
		TierTwoGlue:       6,
		ReduceFractionPct: 50,
		ReduceInitial:     2000,
		ReduceInc:         300,
		RestartMarginPct:  10,
		LubyBase:          100,
		ModeTicksInitial:  500000,
		RephaseInitial:    1000,
		EliminateEnable:   1,
		EliminateOccLimit: 16,
		EliminateClsLimit: 32,
		EliminateBound:    16,
		SubsumeEnable:     1,
		VivifyEnable:      1,
		ProbeEnable:       1,
		TernaryEnable:     1,
		TransitiveEnable:  1,
		AutarkyEnable:     1,
		WalkEnable:        1,
		WalkTries:         10000,
		DefragPct:         25,
		MaxConflicts:      -1,
		MaxDecisions:      -1,
	}
}

// entry describes one named knob for the table-driven Get/Set below.
type entry struct {
	name     string
	ptr      func(*Options) *int
	min, max int
}

var table = []entry{
	{"verbosity", func(o *Options) *int { return &o.Verbosity }, -1, 3},
	{"phasesaving", func(o *Options) *int { return &o.PhaseSaving }, 0, 1},
	{"vardecay", func(o *Options) *int { return &o.VarDecayPpt }, 1, 999},
	{"cladecay", func(o *Options) *int { return &o.ClaDecayPpt }, 1, 999},
	{"incremental", func(o *Options) *int { return &o.Incremental }, 0, 1},
	{"chronological", func(o *Options) *int { return &o.Chronological }, 0, 1},
	{"chronolevels", func(o *Options) *int { return &o.ChronoLevels }, 0, 1 << 20},
	{"tier1", func(o *Options) *int { return &o.TierOneGlue }, 0, 1 << 10},
	{"tier2", func(o *Options) *int { return &o.TierTwoGlue }, 0, 1 << 10},
	{"reducefraction", func(o *Options) *int { return &o.ReduceFractionPct }, 1, 100},
	{"reduceinitial", func(o *Options) *int { return &o.ReduceInitial }, 1, 1 << 30},
	{"reduceinc", func(o *Options) *int { return &o.ReduceInc }, 0, 1 << 20},
	{"restartmargin", func(o *Options) *int { return &o.RestartMarginPct }, 0, 1000},
	{"lubybase", func(o *Options) *int { return &o.LubyBase }, 1, 1 << 20},
	{"modeticks", func(o *Options) *int { return &o.ModeTicksInitial }, 1, 1 << 30},
	{"rephaseinitial", func(o *Options) *int { return &o.RephaseInitial }, 1, 1 << 30},
	{"eliminate", func(o *Options) *int { return &o.EliminateEnable }, 0, 1},
	{"eliminateocclim", func(o *Options) *int { return &o.EliminateOccLimit }, 1, 1 << 20},
	{"eliminateclslim", func(o *Options) *int { return &o.EliminateClsLimit }, 1, 1 << 20},
	{"eliminatebound", func(o *Options) *int { return &o.EliminateBound }, 0, 1 << 20},
	{"subsume", func(o *Options) *int { return &o.SubsumeEnable }, 0, 1},
	{"vivify", func(o *Options) *int { return &o.VivifyEnable }, 0, 1},
	{"probe", func(o *Options) *int { return &o.ProbeEnable }, 0, 1},
	{"ternary", func(o *Options) *int { return &o.TernaryEnable }, 0, 1},
	{"transitive", func(o *Options) *int { return &o.TransitiveEnable }, 0, 1},
	{"autarky", func(o *Options) *int { return &o.AutarkyEnable }, 0, 1},
	{"walk", func(o *Options) *int { return &o.WalkEnable }, 0, 1},
	{"walktries", func(o *Options) *int { return &o.WalkTries }, 0, 1 << 30},
	{"defrag", func(o *Options) *int { return &o.DefragPct }, 1, 100},
	{"maxconflicts", func(o *Options) *int { return &o.MaxConflicts }, -1, 1 << 62},
	{"maxdecisions", func(o *Options) *int { return &o.MaxDecisions }, -1, 1 << 62},
}

func find(name string) *entry {
	for i := range table {
		if table[i].name == name {
			return &table[i]
		}
	}
	return nil
}

// Get returns the current value of the named option.
func (o *Options) Get(name string) (int, bool) {
	e := find(name)
	if e == nil {
		return 0, false
	}
	return *e.ptr(o), true
}

// Set assigns value to the named option after clamping it to the
// option's valid range; it reports an error for an unknown name.
func (o *Options) Set(name string, value int) error {
	e := find(name)
	if e == nil {
		return fmt.Errorf("option: unknown option %q", name)
	}
	if value < e.min {
		value = e.min
	}
	if value > e.max {
		value = e.max
	}
	*e.ptr(o) = value
	return nil
}

// Names returns every known option name, for CLI flag generation/help.
func Names() []string {
	names := make([]string, len(table))
	for i, e := range table {
		names[i] = e.name
	}
	return names
}
