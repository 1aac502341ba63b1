package sat

// This file implements the tagged watch-cell scheme from spec §3/§9:
// a binary watch is one int32 cell tagged with bit 0 set; a large-clause
// watch is two consecutive cells (blocking literal, then arena Ref) with
// bit 0 clear on the first. There is only this one shape: inprocessing
// passes use the same watch lists or build their own occurrence maps,
// Solver.denseMode is never set, and Propagate does not consult it.

const (
	cellBinaryTag = int32(1)
	binaryOtherShift = 3
	binaryRedundantBit = int32(1) << 1
	binaryHyperBit     = int32(1) << 2
)

func encodeBinaryCell(other Lit, redundant, hyper bool) int32 {
	v := int32(other)<<binaryOtherShift | cellBinaryTag
	if redundant {
		v |= binaryRedundantBit
	}
	if hyper {
		v |= binaryHyperBit
	}
	return v
}

func decodeBinaryCell(cell int32) (other Lit, redundant, hyper bool) {
	other = Lit(cell >> binaryOtherShift)
	redundant = cell&binaryRedundantBit != 0
	hyper = cell&binaryHyperBit != 0
	return
}

func isBinaryCell(cell int32) bool { return cell&cellBinaryTag != 0 }

func encodeBlockingCell(blocking Lit) int32 { return int32(blocking) << 1 }
func decodeBlockingCell(cell int32) Lit     { return Lit(cell >> 1) }

// watchBinary attaches a tagged cell pointing at other to watchLit's
// list; propagateOn visits that list when watchLit becomes true, so a
// binary clause (a, b) is registered under ¬a and ¬b. Symmetric
// registration (both directions) is the caller's responsibility
// (watchBinaryClause below).
func (s *Solver) watchBinary(watchLit, other Lit, redundant, hyper bool) {
	s.watches.Push(watchLit, encodeBinaryCell(other, redundant, hyper))
}

// watchBinaryClause adds both watch directions for a new binary clause.
func (s *Solver) watchBinaryClause(a, b Lit, redundant bool) {
	s.watchBinary(a.Not(), b, redundant, false)
	s.watchBinary(b.Not(), a, redundant, false)
	s.numBinary++
	if redundant {
		s.numBinaryRedundant++
	}
}

// watchBinaryClauseHyper adds both watch directions for a binary clause
// derived via hyper-binary resolution during probing (spec §4.E),
// tagging its cells so the clause can be told apart from an ordinarily
// added or learned binary.
func (s *Solver) watchBinaryClauseHyper(a, b Lit) {
	s.watchBinary(a.Not(), b, false, true)
	s.watchBinary(b.Not(), a, false, true)
	s.numBinary++
}

// unwatchBinaryClause removes both watch directions of a binary clause.
func (s *Solver) unwatchBinaryClause(a, b Lit) {
	s.removeWatch(a.Not(), func(other Lit, isBin bool, ref Ref) bool { return isBin && other == b })
	s.removeWatch(b.Not(), func(other Lit, isBin bool, ref Ref) bool { return isBin && other == a })
	s.numBinary--
}

// watchLarge registers a large (arena) clause's watch at watchLit with
// the given blocking literal (the clause's other watched literal, used
// to skip the clause body when it is already satisfied).
func (s *Solver) watchLarge(watchLit, blocking Lit, ref Ref) {
	s.watches.Push(watchLit, encodeBlockingCell(blocking), int32(ref))
}

// unwatchLarge removes a large clause's watch at watchLit.
func (s *Solver) unwatchLarge(watchLit Lit, ref Ref) {
	s.removeWatch(watchLit, func(other Lit, isBin bool, r Ref) bool { return !isBin && r == ref })
}

// removeWatch scans watchLit's mixed-width list exactly once, consuming
// one cell for every binary entry and two for every large entry, and
// removes the first entry for which pred returns true. Binary and large
// watches are interleaved in the same per-literal list (spec §4.B), so
// every scan of it must be width-aware like this one; a fixed-stride
// scan (as a naive single-width helper would do) silently misreads
// entries of the other kind.
func (s *Solver) removeWatch(watchLit Lit, pred func(other Lit, isBin bool, ref Ref) bool) bool {
	cells := s.watches.View(watchLit)
	off := int32(0)
	for off < int32(len(cells)) {
		if isBinaryCell(cells[off]) {
			other, _, _ := decodeBinaryCell(cells[off])
			if pred(other, true, InvalidRef) {
				s.watches.RemoveAt(watchLit, off, 1)
				return true
			}
			off++
			continue
		}
		ref := Ref(cells[off+1])
		if pred(InvalidLit, false, ref) {
			s.watches.RemoveAt(watchLit, off, 2)
			return true
		}
		off += 2
	}
	return false
}

// watchClause attaches the two initial watches of a newly allocated
// large clause, lits[0] and lits[1].
func (s *Solver) watchClause(ref Ref) {
	lits := s.arena.Lits(ref)
	s.watchLarge(lits[0].Not(), lits[1], ref)
	s.watchLarge(lits[1].Not(), lits[0], ref)
}

// unwatchClause removes both initial watches of a large clause. This is
// only correct while lits[0]/lits[1] are still the current watched
// pair, i.e. right after allocation or right before deletion.
func (s *Solver) unwatchClause(ref Ref) {
	lits := s.arena.Lits(ref)
	s.unwatchLarge(lits[0].Not(), ref)
	s.unwatchLarge(lits[1].Not(), ref)
}
