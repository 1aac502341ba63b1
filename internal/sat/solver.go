// Package sat implements the CDCL search engine and inprocessing
// subsystems: watched-literal propagation, conflict analysis and
// learning, a packed clause arena, restart/mode/rephase control, and the
// inprocessing passes (elimination, subsumption, vivification,
// transitive reduction, ternary resolution, autarky, local search) that
// share it. The external I/O surface (DIMACS parsing, CLI, proof
// writing to disk) lives outside this package; sat.Solver only consumes
// clauses via Add/AddClause and exposes Solve/Value/proof callbacks
// (spec §1, §6).
package sat

import (
	"math/rand"
	"time"

	"github.com/rhartert/yagh"
	"github.com/sirupsen/logrus"

	"github.com/rhartert/ksat/internal/options"
)

// Status is the result of Solve: spec §6 maps these to exit codes
// 10/20/0 at the CLI boundary.
type Status int

const (
	StatusUnknown Status = 0
	StatusSAT     Status = 10
	StatusUNSAT   Status = 20
)

func (st Status) String() string {
	switch st {
	case StatusSAT:
		return "SATISFIABLE"
	case StatusUNSAT:
		return "UNSATISFIABLE"
	default:
		return "UNKNOWN"
	}
}

// Mode is the search's focused/stable toggle (spec §4.G).
type Mode int

const (
	ModeFocused Mode = iota
	ModeStable
)

func (m Mode) String() string {
	if m == ModeStable {
		return "stable"
	}
	return "focused"
}

// reasonKind tags how a variable came to be assigned.
type reasonKind uint8

const (
	reasonDecision reasonKind = iota
	reasonUnit
	reasonBinary
	reasonLong
)

// reason is the antecedent of an assignment (spec §3 "Reason encoding").
type reason struct {
	kind reasonKind
	lit  Lit // valid when kind == reasonBinary: the other literal of the binary antecedent
	ref  Ref // valid when kind == reasonLong: the arena clause
}

var (
	decisionReason = reason{kind: reasonDecision}
	unitReason     = reason{kind: reasonUnit}
)

// analysis marks used to memoize recursive minimization (spec §4.F.5).
const (
	analyzedNone uint8 = iota
	analyzedSeen
	analyzedRemovable
	analyzedPoisoned
)

// varInfo is the per-variable assignment record (spec §3 "Variable state").
type varInfo struct {
	level    int32
	reason   reason
	analyzed uint8
	active   bool
	eliminated bool
	fixed    bool
	flagSubsume bool
	flagEliminate bool
	flagProbe bool
	flagTransitive bool
}

// phaseInfo is the per-variable saved/target/best/flipped phase set
// (spec §3, each a signed byte: -1 false / 0 unset / +1 true).
type phaseInfo struct {
	saved, target, best int8
	flipped             bool
}

// frame records the per-decision-level bookkeeping (spec §3 "Trail and frames").
type frame struct {
	decision   Lit
	trailStart int
	used       uint8 // 0/1/2, glue-calculation reuse counter
	promote    bool
}

// Proof abstracts the DRAT emitter so Solver doesn't need to know
// whether it is writing ASCII or binary (see proof.go).
type Proof interface {
	AddClause(lits []Lit)
	DeleteClause(lits []Lit)
	Close() error
}

// Checker abstracts the independent RUP verifier embedded in the
// solver (see internal/checker); nil means proof checking is off.
type Checker interface {
	Import(lits []Lit) error
	Delete(lits []Lit)
}

// Solver is a CDCL SAT solver instance. The zero value is not usable;
// construct with New.
type Solver struct {
	Opts options.Options
	log  *logrus.Logger
	rng  *rand.Rand

	// Variable/literal space. Import/export tables let eliminated or
	// substituted variables leave holes between the external (DIMACS)
	// numbering and the internal dense numbering (spec §3).
	numVars  int
	extToInt map[int]Var
	intToExt []int // indexed by Var

	values  []LBool // per-literal mirror: values[l] == -values[NOT l]
	info    []varInfo
	phases  []phaseInfo

	trail      []Lit
	frames     []frame
	propagated int // next trail index the propagator hasn't consumed
	unflushed  int // not read or written anywhere in the package

	// Clause storage.
	arena           *Arena
	watches         *Vectors
	denseMode       bool
	numBinary       int
	numBinaryRedundant int
	irredundant     []Ref // large irredundant clauses
	learnts         []Ref // large redundant clauses

	// Decision heuristics.
	mode        Mode
	heap        *yagh.IntMap[float64] // stable-mode VSIDS heap (spec §4.C)
	scores      []float64
	scoreInc    float64
	vmtf        *vmtf // focused-mode stamped queue (spec §4.C)
	claInc      float64

	// Averages/limits/delays (spec §3 "Averages, limits", §4.G/H).
	avgFastGlue ema
	avgSlowGlue ema
	avgSize     ema
	avgLevel    ema
	avgTrail    ema
	limits      limits
	delays      delays

	luby lubyState

	// Analysis scratch buffers, cleared at the start/end of every use
	// (spec §5 "clear-at-end contracts").
	seen          *resetSet
	analyzeBuf    []Lit
	analyzeLits   []int  // decision levels touched during the current analysis
	analyzeTouched []Var // variables whose analyzed mark needs resetting after analysis

	// Assignment high-water marks, used by rephase/restart (spec §4.D).
	targetAssigned int
	bestAssigned   int

	// Proof tracer + internal checker (spec §4.K).
	proof   Proof
	checker Checker

	// elimStack is the bounded-variable-elimination extension/witness
	// stack (spec §4.I.4): one entry per eliminated variable, in
	// elimination order, so Solve can reconstruct its value from the
	// rest of the satisfying assignment once the formula is declared
	// SAT (eliminate.go extendEliminated).
	elimStack []elimWitness

	terminate func() bool

	unsat    bool
	solveRan bool // set by Solve and read by Status; Add does not check it

	Stats Stats

	startTime time.Time
}

// New returns a solver configured with the given options.
func New(opts options.Options) *Solver {
	s := &Solver{
		Opts:     opts,
		log:      loggerFor(opts),
		rng:      rand.New(rand.NewSource(1)),
		extToInt: make(map[int]Var),
		arena:    NewArena(1024),
		watches:  NewVectors(0),
		scoreInc: 1,
		claInc:   1,
		seen:     newResetSet(0),
		vmtf:     newVMTF(),
	}
	s.heap = yagh.New[float64](0)
	s.avgFastGlue = newEMA(1.0 / 32)
	s.avgSlowGlue = newEMA(1.0 / 4096)
	s.avgSize = newEMA(1.0 / 32)
	s.avgLevel = newEMA(1.0 / 32)
	s.avgTrail = newEMA(1.0 / 4096)
	s.limits = newLimits(opts)
	s.delays = newDelays()
	s.luby = newLubyState()
	return s
}

// NumVars reports the number of internal variables reserved so far.
func (s *Solver) NumVars() int { return s.numVars }

// NumAssigned reports the number of currently assigned variables.
func (s *Solver) NumAssigned() int { return len(s.trail) }

// DecisionLevel returns the current decision level (0 == root).
func (s *Solver) DecisionLevel() int { return len(s.frames) }

// SetTerminate installs a callback the search polls at pass boundaries
// (spec §5 "the only yield points are termination checks").
func (s *Solver) SetTerminate(cb func() bool) { s.terminate = cb }

// SetProof installs a DRAT tracer; pass nil to disable proof logging.
func (s *Solver) SetProof(p Proof) { s.proof = p }

// SetChecker installs the internal RUP checker; pass nil to disable.
func (s *Solver) SetChecker(c Checker) { s.checker = c }

func (s *Solver) shouldTerminate() bool {
	return s.terminate != nil && s.terminate()
}

// Reserve grows the internal variable space so that maxExtVar can be
// added without repeated reallocation (spec §6 reserve(solver, max_ext_var)).
func (s *Solver) Reserve(maxExtVar int) {
	for extVar := 1; extVar <= maxExtVar; extVar++ {
		if _, ok := s.extToInt[extVar]; !ok {
			s.addVariable(extVar)
		}
	}
}

// addVariable allocates one fresh internal variable mapped to extVar
// (0 means "internal only": no external number is recorded for it; every
// current caller passes a real external number).
func (s *Solver) addVariable(extVar int) Var {
	v := Var(s.numVars)
	s.numVars++

	s.values = append(s.values, Unknown, Unknown)
	s.info = append(s.info, varInfo{level: -1, reason: decisionReason, active: true})
	s.phases = append(s.phases, phaseInfo{})
	s.watches.Grow(s.numVars * 2)
	s.seen.expand()

	s.scores = append(s.scores, 0)
	s.heap.GrowBy(1)
	s.heap.Put(int(v), 0)

	s.vmtf.addVar(v)

	if extVar != 0 {
		s.extToInt[extVar] = v
		for len(s.intToExt) <= int(v) {
			s.intToExt = append(s.intToExt, 0)
		}
		s.intToExt[v] = extVar
	} else {
		for len(s.intToExt) <= int(v) {
			s.intToExt = append(s.intToExt, 0)
		}
	}
	return v
}

// internalVar resolves (allocating if necessary) the internal variable
// for an external one, growing the solver's variable space on demand.
func (s *Solver) internalVar(extVar int) Var {
	if v, ok := s.extToInt[extVar]; ok {
		return v
	}
	return s.addVariable(extVar)
}

// litValue returns the current truth value of an internal literal.
func (s *Solver) litValue(l Lit) LBool { return s.values[l] }

// Value returns the external literal's current value as a signed
// literal (elit, -elit), or 0 if unassigned (spec §6 value()).
func (s *Solver) Value(elit int) int {
	if elit == 0 {
		return 0
	}
	v, ok := s.extToInt[abs(elit)]
	if !ok {
		return 0
	}
	l := MkLit(v)
	if elit < 0 {
		l = l.Not()
	}
	switch s.litValue(l) {
	case True:
		return elit
	case False:
		return -elit
	default:
		return 0
	}
}

// ExtLit converts an internal literal back to its signed external
// (DIMACS) form, for proof writers and solution output (spec §4.K: a
// DRAT trace is over the caller's original variable numbering, not the
// solver's internal dense one).
func (s *Solver) ExtLit(l Lit) int {
	ext := s.intToExt[l.Var()]
	if l.Sign() {
		return -ext
	}
	return ext
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func loggerFor(opts options.Options) *logrus.Logger {
	return newSatLogger(opts.Verbosity)
}
