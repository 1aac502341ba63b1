// Package checker implements the independent proof checker the solver
// consults alongside its DRAT trace (spec §4.K): its own clause store,
// its own trail and per-literal value array, entirely separate from
// sat.Solver's. It imports every clause the solver wants to add to the
// proof and rejects any that isn't RUP (reverse unit propagation: the
// clause's negation, unit-propagated against everything already
// imported, must hit a conflict) against what's already been accepted.
//
// Full DRAT also allows RAT (resolution asymmetric tautology) steps
// when a clause isn't RUP on its own; this checker only verifies RUP,
// which is what every clause a CDCL solver itself ever learns actually
// satisfies. A real external proof-replay tool would need the RAT
// fallback; this one doesn't, since it only ever sees its own solver's
// output.
package checker

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rhartert/ksat/internal/sat"
)

// Checker is a from-scratch RUP checker: a hash table of accepted
// clauses keyed by their sorted literals, and a value array indexed
// like sat.Solver's (values[l] == -values[l.Not()]).
type Checker struct {
	byKey   map[string][]int
	clauses [][]sat.Lit
	value   []sat.LBool
}

// New returns an empty checker.
func New() *Checker {
	return &Checker{byKey: make(map[string][]int)}
}

// Import checks that lits is RUP against the currently accepted clause
// set and, if so, adds it. The empty clause (signalling global
// unsatisfiability) and unit clauses are accepted unconditionally, the
// way root-level facts are in the solver itself.
func (c *Checker) Import(lits []sat.Lit) error {
	cp := append([]sat.Lit(nil), lits...)
	if len(cp) <= 1 {
		c.store(cp)
		if len(cp) == 1 {
			c.assignPermanent(cp[0])
		}
		return nil
	}
	if !c.isRUP(cp) {
		return fmt.Errorf("clause %s is not RUP against the accepted proof", formatLits(cp))
	}
	c.store(cp)
	return nil
}

// Delete removes a previously imported clause, identified by its
// (order-independent) set of literals.
func (c *Checker) Delete(lits []sat.Lit) {
	key := canonicalKey(lits)
	idxs := c.byKey[key]
	if len(idxs) == 0 {
		return
	}
	idx := idxs[len(idxs)-1]
	c.byKey[key] = idxs[:len(idxs)-1]
	c.clauses[idx] = nil // leave a hole; isRUP skips nil entries
}

func (c *Checker) store(lits []sat.Lit) {
	key := canonicalKey(lits)
	c.byKey[key] = append(c.byKey[key], len(c.clauses))
	c.clauses = append(c.clauses, lits)
}

func (c *Checker) ensure(v sat.Var) {
	need := int(v)*2 + 2
	for len(c.value) < need {
		c.value = append(c.value, sat.Unknown)
	}
}

func (c *Checker) litValue(l sat.Lit) sat.LBool { return c.value[l] }

func (c *Checker) assign(l sat.Lit) {
	c.value[l] = sat.True
	c.value[l.Not()] = sat.False
}

func (c *Checker) assignPermanent(l sat.Lit) {
	c.ensure(l.Var())
	c.assign(l)
}

func (c *Checker) unassign(l sat.Lit) {
	c.value[l] = sat.Unknown
	c.value[l.Not()] = sat.Unknown
}

// isRUP assumes the negation of every literal in lits, unit-propagates
// against the accepted clause set, and reports whether that derives a
// conflict. All assumptions are undone before returning.
func (c *Checker) isRUP(lits []sat.Lit) bool {
	var trail []sat.Lit
	conflict := false
	for _, l := range lits {
		c.ensure(l.Var())
		neg := l.Not()
		switch c.litValue(neg) {
		case sat.False:
			conflict = true
		case sat.Unknown:
			c.assign(neg)
			trail = append(trail, neg)
		}
	}
	if !conflict {
		conflict = c.propagateToConflict(&trail)
	}
	for _, l := range trail {
		c.unassign(l)
	}
	return conflict
}

const (
	clauseSatisfied = iota
	clauseUnit
	clauseConflict
	clauseUnresolved
)

func (c *Checker) clauseStatus(cl []sat.Lit) (int, sat.Lit) {
	unassignedCount := 0
	var unassignedLit sat.Lit
	for _, l := range cl {
		switch c.litValue(l) {
		case sat.True:
			return clauseSatisfied, 0
		case sat.Unknown:
			unassignedCount++
			unassignedLit = l
		}
	}
	switch unassignedCount {
	case 0:
		return clauseConflict, 0
	case 1:
		return clauseUnit, unassignedLit
	default:
		return clauseUnresolved, 0
	}
}

// propagateToConflict repeats a full pass over the accepted clauses
// until either a conflict is found or a fixpoint is reached with no new
// unit assignments. Every successful pass assigns at least one
// previously-unassigned variable, so this terminates.
func (c *Checker) propagateToConflict(trail *[]sat.Lit) bool {
	progress := true
	for progress {
		progress = false
		for _, cl := range c.clauses {
			if cl == nil {
				continue
			}
			switch status, unit := c.clauseStatus(cl); status {
			case clauseConflict:
				return true
			case clauseUnit:
				c.assign(unit)
				*trail = append(*trail, unit)
				progress = true
			}
		}
	}
	return false
}

func canonicalKey(lits []sat.Lit) string {
	ints := make([]int, len(lits))
	for i, l := range lits {
		ints[i] = int(l)
	}
	sort.Ints(ints)
	parts := make([]string, len(ints))
	for i, v := range ints {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func formatLits(lits []sat.Lit) string {
	parts := make([]string, len(lits))
	for i, l := range lits {
		parts[i] = l.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
