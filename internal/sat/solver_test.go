package sat

import (
	"testing"

	"github.com/rhartert/ksat/internal/options"
)

func newTestSolver(nVars int, clauses [][]int) *Solver {
	s := New(options.Default())
	s.Reserve(nVars)
	for _, cl := range clauses {
		s.AddClause(cl)
	}
	return s
}

// satisfies reports whether the solver's current model satisfies every
// clause in the original (external-literal) formula - spec §8 property 6.
func satisfies(s *Solver, clauses [][]int) bool {
	for _, cl := range clauses {
		ok := false
		for _, l := range cl {
			if s.Value(l) == l {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func TestSolve_emptyFormula(t *testing.T) {
	s := newTestSolver(0, nil)
	if got := s.Solve(); got != StatusSAT {
		t.Errorf("Solve() = %v, want SATISFIABLE", got)
	}
}

func TestSolve_trivialUnsat(t *testing.T) {
	s := newTestSolver(1, [][]int{{1}, {-1}})
	if got := s.Solve(); got != StatusUNSAT {
		t.Errorf("Solve() = %v, want UNSATISFIABLE", got)
	}
}

func TestSolve_threeVarSat(t *testing.T) {
	clauses := [][]int{{1, 2}, {2, 3}, {-1, -3}}
	s := newTestSolver(3, clauses)
	if got := s.Solve(); got != StatusSAT {
		t.Fatalf("Solve() = %v, want SATISFIABLE", got)
	}
	if !satisfies(s, clauses) {
		t.Errorf("model does not satisfy every clause")
	}
}

// TestSolve_pigeonhole4into3 encodes the classic unsatisfiable pigeonhole
// instance: 4 pigeons, 3 holes, each pigeon in some hole, no hole with
// two pigeons. Variable x[p][h] = 3*(p-1) + h.
func TestSolve_pigeonhole4into3(t *testing.T) {
	const pigeons, holes = 4, 3
	x := func(p, h int) int { return (p-1)*holes + h }

	var clauses [][]int
	for p := 1; p <= pigeons; p++ {
		cl := make([]int, 0, holes)
		for h := 1; h <= holes; h++ {
			cl = append(cl, x(p, h))
		}
		clauses = append(clauses, cl)
	}
	for h := 1; h <= holes; h++ {
		for p1 := 1; p1 <= pigeons; p1++ {
			for p2 := p1 + 1; p2 <= pigeons; p2++ {
				clauses = append(clauses, []int{-x(p1, h), -x(p2, h)})
			}
		}
	}

	s := newTestSolver(pigeons*holes, clauses)
	if got := s.Solve(); got != StatusUNSAT {
		t.Errorf("Solve() = %v, want UNSATISFIABLE", got)
	}
}

func TestSolve_fourClauseUnsat(t *testing.T) {
	clauses := [][]int{{1, 2}, {-1, 2}, {1, -2}, {-1, -2}}
	s := newTestSolver(2, clauses)
	if got := s.Solve(); got != StatusUNSAT {
		t.Errorf("Solve() = %v, want UNSATISFIABLE", got)
	}
}

func TestSolve_idempotent(t *testing.T) {
	clauses := [][]int{{1, 2}, {2, 3}, {-1, -3}}
	s := newTestSolver(3, clauses)
	first := s.Solve()
	second := s.Solve()
	if first != second {
		t.Errorf("Solve() not idempotent: got %v then %v", first, second)
	}
}

func TestValueMirrorSymmetry(t *testing.T) {
	s := newTestSolver(3, [][]int{{1, 2}, {2, 3}, {-1, -3}})
	s.Solve()
	for v := 0; v < s.NumVars(); v++ {
		l := MkLit(Var(v))
		if s.litValue(l) != s.litValue(l.Not()).Opposite() {
			t.Errorf("values[%v] != -values[%v]", l, l.Not())
		}
	}
}

func TestSolve_installedCheckerSeesAddedClauses(t *testing.T) {
	s := New(options.Default())
	s.Reserve(1)
	rup := &recordingChecker{}
	s.SetChecker(rup)
	s.AddClause([]int{1})
	s.AddClause([]int{-1})
	if got := s.Solve(); got != StatusUNSAT {
		t.Fatalf("Solve() = %v, want UNSATISFIABLE", got)
	}
	if len(rup.imported) == 0 {
		t.Errorf("installed checker saw no imported clauses")
	}
}

// recordingChecker is a permissive stand-in Checker used only to confirm
// that Solver calls into an installed checker without requiring the real
// internal/checker package as a test dependency (avoiding an import cycle).
type recordingChecker struct {
	imported [][]Lit
}

func (r *recordingChecker) Import(lits []Lit) error {
	r.imported = append(r.imported, append([]Lit(nil), lits...))
	return nil
}

func (r *recordingChecker) Delete(lits []Lit) {}
