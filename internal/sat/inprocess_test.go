package sat

import (
	"testing"

	"github.com/rhartert/ksat/internal/options"
)

// TestEliminate_reconstructsWitness exercises bounded variable elimination
// end to end: x1 is eliminated in favor of the single non-tautological
// resolvent of its occurrences, and once the reduced formula is solved,
// extendEliminated must recover a value for x1 that still satisfies every
// clause of the original (pre-elimination) formula - spec §4.I.4.
func TestEliminate_reconstructsWitness(t *testing.T) {
	clauses := [][]int{{1, 2}, {-1, 3}, {1, -3}}
	s := newTestSolver(3, clauses)

	if !s.tryEliminate(0) {
		t.Fatalf("tryEliminate(x1) = false, want true")
	}
	if got := s.Value(1); got != 0 {
		t.Fatalf("Value(1) = %d right after elimination, want 0 (unassigned)", got)
	}

	if got := s.Solve(); got != StatusSAT {
		t.Fatalf("Solve() = %v, want SATISFIABLE", got)
	}
	if s.Value(1) == 0 {
		t.Fatalf("Value(1) = 0 after Solve(), want a reconstructed value")
	}
	if !satisfies(s, clauses) {
		t.Errorf("model does not satisfy every clause of the original formula")
	}
}

// TestVivify_ignoresSelfDuringTrial guards against a clause resolving
// against its own watches during vivification. C=(a,b,c) must not be
// allowed to force c=true purely from assuming a,b false: only P=(a,x)
// and H=(-c,-x) are independent of C, and together they are satisfiable
// with c=false (a=false, b=false, c=false, x=true), so C is NOT implied by
// any strict prefix of itself and vivifyClause must report no shrink.
func TestVivify_ignoresSelfDuringTrial(t *testing.T) {
	s := newTestSolver(4, [][]int{
		{1, 2, 3},  // C: a, b, c
		{1, 4},     // P: a, x
		{-3, -4},   // H: -c, -x
	})

	if len(s.irredundant) != 1 {
		t.Fatalf("len(irredundant) = %d, want 1", len(s.irredundant))
	}
	ref := s.irredundant[0]
	lits := append([]Lit(nil), s.arena.Lits(ref)...)

	shrunk, ok := s.vivifyClause(ref, lits)
	if ok {
		t.Fatalf("vivifyClause shrunk C to %v using its own watches as a premise, want no shrink", shrunk)
	}
	if got := s.DecisionLevel(); got != 0 {
		t.Errorf("DecisionLevel() = %d after vivifyClause, want 0 (fully backtracked)", got)
	}
}

// TestTernaryResolve_keepsFormulaSatisfiable checks that ternary
// resolution of two clauses that clash on x1 and share x2 adds their
// resolvent and never changes what the formula as a whole is satisfied
// by (spec §4.J).
func TestTernaryResolve_keepsFormulaSatisfiable(t *testing.T) {
	clauses := [][]int{{1, 2, 3}, {-1, 2, 4}}
	s := newTestSolver(4, clauses)

	s.ternaryResolve()
	if s.Stats.TernaryAdded == 0 {
		t.Errorf("Stats.TernaryAdded = 0, want at least one resolvent added")
	}

	if got := s.Solve(); got != StatusSAT {
		t.Fatalf("Solve() = %v, want SATISFIABLE", got)
	}
	if !satisfies(s, clauses) {
		t.Errorf("model does not satisfy every clause of the original formula")
	}
}

// TestTransitiveReduce_preservesSatisfiability checks that removing a
// binary clause implied by a longer chain of other binary clauses never
// changes satisfiability or the validity of the resulting model (spec
// §4.J). p->r is implied by p->q->r and is a transitive-reduction
// candidate, whether or not the graph library's BFS happens to flag it.
func TestTransitiveReduce_preservesSatisfiability(t *testing.T) {
	clauses := [][]int{{-1, 2}, {-2, 3}, {-1, 3}}
	s := newTestSolver(3, clauses)

	s.transitiveReduce()

	if got := s.Solve(); got != StatusSAT {
		t.Fatalf("Solve() = %v, want SATISFIABLE", got)
	}
	if !satisfies(s, clauses) {
		t.Errorf("model does not satisfy every clause of the original formula")
	}
}

// TestReduceAutarky_firesPureLiteral checks that a variable appearing in
// only one polarity across the irredundant clause set is fixed to satisfy
// every clause it appears in (spec §4.J).
func TestReduceAutarky_firesPureLiteral(t *testing.T) {
	s := newTestSolver(5, [][]int{{1, 2, 3}, {1, 4, 5}})

	s.reduceAutarky()

	if s.Stats.AutarkiesFound == 0 {
		t.Errorf("Stats.AutarkiesFound = 0, want at least one pure literal")
	}
	if got := s.Value(1); got != 1 {
		t.Errorf("Value(1) = %d, want 1 (forced true)", got)
	}
}

func TestReduceAutarky_noopWithoutPureLiteral(t *testing.T) {
	s := New(options.Default())
	s.Reserve(3)
	s.AddClause([]int{1, 2, 3})
	s.AddClause([]int{-1, -2, -3})

	s.reduceAutarky()

	if s.Stats.AutarkiesFound != 0 {
		t.Errorf("Stats.AutarkiesFound = %d, want 0 (every variable appears both ways)", s.Stats.AutarkiesFound)
	}
}
