package sat

// conflict identifies the clause that forced a contradiction: either a
// binary clause (represented by its two literals directly, since binary
// clauses have no arena storage - spec §4.A "binary clauses are watch-
// only") or a large clause by arena reference.
type conflict struct {
	isBinary bool
	a, b     Lit
	ref      Ref
}

// Propagate runs unit propagation to a fixpoint from the current trail
// cursor, returning the conflicting clause if one was found (spec §4.E).
// It consumes s.propagated..len(s.trail) and appends any literal it
// forces, so it can be re-entered after analysis pushes new trail
// entries (e.g. after asserting the 1-UIP literal).
func (s *Solver) Propagate() (conflict, bool) {
	for s.propagated < len(s.trail) {
		p := s.trail[s.propagated]
		s.propagated++
		s.Stats.Propagations++
		s.limits.ticks++

		if c, ok := s.propagateOn(p); ok {
			return c, true
		}
	}
	return conflict{}, false
}

// propagateOn scans every watch cell attached to p (the literal just
// assigned true), rebuilding its list in place as it goes: binary cells
// are 1 word, large-clause cells are 2 (blocking literal, then arena
// Ref), interleaved in arbitrary order, so the scan must inspect the tag
// of each cell to know how far to advance (spec §4.B/§4.E).
func (s *Solver) propagateOn(p Lit) (conflict, bool) {
	cells := append([]int32(nil), s.watches.View(p)...)
	s.watches.Clear(p)

	off := 0
	for off < len(cells) {
		if isBinaryCell(cells[off]) {
			cell := cells[off]
			off++
			other, _, _ := decodeBinaryCell(cell)
			s.watches.Push(p, cell) // binary watches are never relocated

			switch s.litValue(other) {
			case True:
				continue
			case False:
				s.restoreRemaining(p, cells, off)
				return conflict{isBinary: true, a: p.Not(), b: other}, true
			default:
				s.assign(other, reason{kind: reasonBinary, lit: p.Not()})
			}
			continue
		}

		blocking := decodeBlockingCell(cells[off])
		ref := Ref(cells[off+1])
		off += 2

		if s.litValue(blocking) == True {
			s.watches.Push(p, encodeBlockingCell(blocking), int32(ref))
			continue
		}

		lits := s.arena.Lits(ref)
		falsified := p.Not()
		if lits[0] != falsified {
			lits[0], lits[1] = lits[1], lits[0]
		}
		// lits[0] is now the watched literal that p just falsified.

		found := false
		searched := s.arena.Searched(ref)
		if searched < 2 || searched >= len(lits) {
			searched = 2
		}
		for scanned := 0; scanned < len(lits)-2; scanned++ {
			k := searched
			searched++
			if searched == len(lits) {
				searched = 2
			}
			if s.litValue(lits[k]) != False {
				lits[0], lits[k] = lits[k], lits[0]
				s.watchLarge(lits[0].Not(), lits[1], ref)
				s.arena.SetSearched(ref, searched)
				found = true
				break
			}
		}
		if found {
			continue
		}
		s.arena.SetSearched(ref, searched)

		// No replacement: keep the watch, lits[1] is the asserting or
		// conflicting literal.
		s.watches.Push(p, encodeBlockingCell(lits[1]), int32(ref))
		switch s.litValue(lits[1]) {
		case True:
			continue
		case False:
			s.restoreRemaining(p, cells, off)
			return conflict{ref: ref}, true
		default:
			s.assign(lits[1], reason{kind: reasonLong, ref: ref})
		}
	}
	return conflict{}, false
}

// restoreRemaining re-pushes the not-yet-examined cells[off:] back onto
// p's list unchanged, so a conflict that aborts the scan early doesn't
// drop the remaining watches.
func (s *Solver) restoreRemaining(p Lit, cells []int32, off int) {
	for off < len(cells) {
		if isBinaryCell(cells[off]) {
			s.watches.Push(p, cells[off])
			off++
		} else {
			s.watches.Push(p, cells[off], cells[off+1])
			off += 2
		}
	}
}
