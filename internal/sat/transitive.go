package sat

import (
	"fmt"

	"github.com/katalvlaran/lvlath/graph"
)

// Transitive reduction of the binary implication graph (spec §4.J,
// grounded on kissat's transitive.c): a binary clause (a, b) is
// redundant if ¬a already implies b via some other path of binary
// clauses, since the direct edge adds nothing reachability-wise. Built
// on lvlath/graph's directed BFS rather than a hand-rolled traversal.
func (s *Solver) transitiveReduce() {
	g := graph.NewGraph(true, false)
	type edge struct{ from, to Lit }
	var edges []edge

	for l := Lit(0); int(l) < len(s.values); l++ {
		if s.litValue(l) != Unknown {
			continue
		}
		g.AddVertex(&graph.Vertex{ID: litNodeID(l)})
	}
	for l := Lit(0); int(l) < len(s.values); l++ {
		if s.litValue(l) != Unknown {
			continue
		}
		cells := s.watches.View(l)
		off := 0
		for off < len(cells) {
			if isBinaryCell(cells[off]) {
				other, _, _ := decodeBinaryCell(cells[off])
				if s.litValue(other) == Unknown {
					edges = append(edges, edge{from: l, to: other})
					g.AddEdge(litNodeID(l), litNodeID(other), 1)
				}
				off++
				continue
			}
			off += 2
		}
	}

	removed := 0
	for _, e := range edges {
		res, err := g.BFS(litNodeID(e.from), &graph.BFSOptions{
			OnVisit: func(v *graph.Vertex, depth int) error {
				if depth > 1 && v.ID == litNodeID(e.to) {
					return errFoundAlternatePath
				}
				return nil
			},
		})
		_ = res
		if err == errFoundAlternatePath {
			// e.from -> e.to is redundant: some other path realizes it.
			// The binary clause (e.from.Not(), e.to) is implied already.
			lits := []Lit{e.from.Not(), e.to}
			if s.proof != nil {
				s.proof.DeleteClause(lits)
			}
			if s.checker != nil {
				s.checker.Delete(lits)
			}
			s.unwatchBinaryClause(e.from.Not(), e.to)
			removed++
		}
	}
	s.Stats.TransitiveRemoved += int64(removed)
}

var errFoundAlternatePath = fmt.Errorf("sat: alternate implication path found")

func litNodeID(l Lit) string { return fmt.Sprintf("l%d", int32(l)) }
