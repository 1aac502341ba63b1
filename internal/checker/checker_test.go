package checker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rhartert/ksat/internal/sat"
)

func v(i int32) sat.Var { return sat.Var(i) }

func TestChecker_acceptsRUPClause(t *testing.T) {
	c := New()
	a, b := v(0), v(1)

	require.NoError(t, c.Import([]sat.Lit{sat.MkLit(a), sat.MkLit(b)}))
	require.NoError(t, c.Import([]sat.Lit{sat.NegLit(a), sat.MkLit(b)}))
	// (a ∨ b) ∧ (¬a ∨ b) unit-propagate b when both are negated in turn,
	// so (b) alone is RUP against them.
	require.NoError(t, c.Import([]sat.Lit{sat.MkLit(b)}))
}

func TestChecker_rejectsNonRUPClause(t *testing.T) {
	c := New()
	a, b := v(0), v(1)

	require.NoError(t, c.Import([]sat.Lit{sat.MkLit(a), sat.MkLit(b)}))
	// ¬b is not implied by (a ∨ b) alone.
	require.Error(t, c.Import([]sat.Lit{sat.NegLit(b)}))
}

func TestChecker_deleteThenReimport(t *testing.T) {
	c := New()
	a, b := v(0), v(1)
	clause := []sat.Lit{sat.MkLit(a), sat.MkLit(b)}

	require.NoError(t, c.Import(clause))
	c.Delete(clause)

	// Now nothing supports (b) as RUP anymore.
	require.Error(t, c.Import([]sat.Lit{sat.MkLit(b)}))
}

func TestChecker_emptyClauseAlwaysAccepted(t *testing.T) {
	c := New()
	require.NoError(t, c.Import(nil))
}
