package sat

// word is the storage unit of the clause arena. The arena is a single
// flat slice of words rather than a forest of pointer-chased clause
// objects (spec §9 redesign note: "represent the arena as a contiguous
// Vec<u32>... all pointer walks become index + length iteration").
// Header fields (size/glue/searched/flags) are stored as Lit values too
// since Lit is already word-sized; this keeps the whole arena one
// uniform slice with no unsafe casting between the header and the
// literal payload that follows it.
type word = Lit

// Ref is a 32-bit handle into the arena: the index of a clause's header
// word. It plays the role of the spec's 31-bit packed reference; Go
// gives us a whole int32 so no tag bit is needed to distinguish it from
// anything else (binary clauses never live in the arena at all - they
// are encoded directly in the watch vectors, see watches.go).
type Ref int32

// InvalidRef marks the absence of a clause reference.
const InvalidRef Ref = -1

// clauseHeaderWords is the number of word slots reserved for a clause's
// header, ahead of its literals.
const clauseHeaderWords = 4

// MaxGlue is the saturating cap on the glue/LBD value stored in a
// clause header (spec §3: "glue (log2-max 22 bits, saturated)").
const MaxGlue = (1 << 22) - 1

// clause flag bits, packed into the header's flags word.
const (
	flagGarbage word = 1 << iota
	flagHyper
	flagKeep
	flagReason
	flagRedundant
	flagShrunken
	flagSubsume
	flagVivify
)

const usedShift = 16 // used counter packed into the high bits of flags

// Arena owns every large (size >= 3) clause as a contiguous slice of
// words. Deleting a clause only flags it garbage; kissat-style
// collection/defragmentation (reduce.go, compact.go) is the only thing
// that reclaims the space.
type Arena struct {
	words   []word
	garbage int // word count marked garbage, awaiting collection
}

// NewArena returns an empty arena pre-sized for roughly capHint clauses.
func NewArena(capHint int) *Arena {
	return &Arena{words: make([]word, 0, capHint*8)}
}

// Allocate reserves space for a clause of the given literals and
// returns its reference. The caller has already decided the clause
// belongs in the arena (size >= 3); binary/unit clauses never call this.
func (a *Arena) Allocate(lits []Lit, redundant bool, glue int) Ref {
	ref := Ref(len(a.words))
	if glue > MaxGlue {
		glue = MaxGlue
	}
	a.words = append(a.words, word(len(lits)), word(glue), 2, 0)
	flags := word(0)
	if redundant {
		flags |= flagRedundant
	}
	a.words[ref+3] = flags
	for _, l := range lits {
		a.words = append(a.words, word(l))
	}
	return ref
}

// header returns the mutable header slice [size, glue, searched, flags]
// for the clause at ref.
func (a *Arena) header(ref Ref) []word { return a.words[ref : ref+clauseHeaderWords] }

// Size returns the clause's literal count.
func (a *Arena) Size(ref Ref) int { return int(a.words[ref]) }

// Glue returns the clause's current glue/LBD value.
func (a *Arena) Glue(ref Ref) int { return int(a.words[ref+1]) }

// SetGlue overwrites the clause's glue value (saturating at MaxGlue).
func (a *Arena) SetGlue(ref Ref, glue int) {
	if glue > MaxGlue {
		glue = MaxGlue
	}
	a.words[ref+1] = word(glue)
}

// Searched returns the first literal index not yet scanned by the
// propagator as a replacement watch.
func (a *Arena) Searched(ref Ref) int { return int(a.words[ref+2]) }

// SetSearched updates the searched cursor; invariant: always >= 2.
func (a *Arena) SetSearched(ref Ref, v int) { a.words[ref+2] = word(v) }

// ResetSearched resets the searched cursor to 2, as required after any
// mutation of the clause's literals.
func (a *Arena) ResetSearched(ref Ref) { a.words[ref+2] = 2 }

func (a *Arena) flags(ref Ref) word   { return a.words[ref+3] }
func (a *Arena) hasFlag(ref Ref, f word) bool {
	return a.words[ref+3]&f != 0
}
func (a *Arena) setFlag(ref Ref, f word)   { a.words[ref+3] |= f }
func (a *Arena) clearFlag(ref Ref, f word) { a.words[ref+3] &^= f }

func (a *Arena) Garbage(ref Ref) bool    { return a.hasFlag(ref, flagGarbage) }
func (a *Arena) Hyper(ref Ref) bool      { return a.hasFlag(ref, flagHyper) }
func (a *Arena) Keep(ref Ref) bool       { return a.hasFlag(ref, flagKeep) }
func (a *Arena) Reason(ref Ref) bool     { return a.hasFlag(ref, flagReason) }
func (a *Arena) Redundant(ref Ref) bool  { return a.hasFlag(ref, flagRedundant) }
func (a *Arena) Shrunken(ref Ref) bool   { return a.hasFlag(ref, flagShrunken) }
func (a *Arena) Subsume(ref Ref) bool    { return a.hasFlag(ref, flagSubsume) }
func (a *Arena) Vivify(ref Ref) bool     { return a.hasFlag(ref, flagVivify) }

func (a *Arena) SetHyper(ref Ref, v bool)   { a.setOrClear(ref, flagHyper, v) }
func (a *Arena) SetKeep(ref Ref, v bool)    { a.setOrClear(ref, flagKeep, v) }
func (a *Arena) SetReason(ref Ref, v bool)  { a.setOrClear(ref, flagReason, v) }
func (a *Arena) SetSubsume(ref Ref, v bool) { a.setOrClear(ref, flagSubsume, v) }
func (a *Arena) SetVivify(ref Ref, v bool)  { a.setOrClear(ref, flagVivify, v) }

func (a *Arena) setOrClear(ref Ref, f word, v bool) {
	if v {
		a.setFlag(ref, f)
	} else {
		a.clearFlag(ref, f)
	}
}

// Used returns the clause's 0..3 usage counter (tier bookkeeping).
func (a *Arena) Used(ref Ref) int { return int(uint32(a.flags(ref)) >> usedShift & 0x3) }

// SetUsed overwrites the usage counter.
func (a *Arena) SetUsed(ref Ref, v int) {
	f := a.words[ref+3]
	f &^= 0x3 << usedShift
	f |= word(v&0x3) << usedShift
	a.words[ref+3] = f
}

// MarkGarbage flags a clause for later physical collection and accounts
// its word footprint so Arena.ShouldCollect can decide when to sweep.
func (a *Arena) MarkGarbage(ref Ref) {
	if a.Garbage(ref) {
		return
	}
	a.setFlag(ref, flagGarbage)
	a.garbage += clauseHeaderWords + a.Size(ref)
}

// Lits returns the mutable literal slice of the clause at ref.
func (a *Arena) Lits(ref Ref) []Lit {
	size := a.Size(ref)
	start := int(ref) + clauseHeaderWords
	return a.words[start : start+size]
}

// Shrink truncates the clause in place to newSize literals (newSize <
// current size), writing an InvalidLit sentinel into the vacated tail so
// the arena's sequential clause iterator (Walk) can still step over the
// original allocation, and marks the clause shrunken.
func (a *Arena) Shrink(ref Ref, newSize int) {
	size := a.Size(ref)
	if newSize >= size {
		return
	}
	start := int(ref) + clauseHeaderWords
	for i := newSize; i < size; i++ {
		a.words[start+i] = word(InvalidLit)
	}
	a.words[ref] = word(newSize)
	a.setFlag(ref, flagShrunken)
	a.ResetSearched(ref)
}

// ShouldCollect reports whether accumulated garbage justifies a sweep
// (spec §4.H sparse collect) relative to the arena's live size.
func (a *Arena) ShouldCollect(fractionPct int) bool {
	if len(a.words) == 0 {
		return false
	}
	return a.garbage*100 >= len(a.words)*fractionPct
}

// Walk visits every clause header in storage order, live or garbage,
// honoring shrunken padding, and calls fn with the clause's reference.
// This underlies both collection and statistics passes.
func (a *Arena) Walk(fn func(ref Ref)) {
	i := Ref(0)
	for int(i) < len(a.words) {
		if a.words[i] == word(InvalidLit) {
			i++ // tail padding left behind by Shrink
			continue
		}
		fn(i)
		i += Ref(clauseHeaderWords + a.Size(i))
	}
}

// Collect performs a sparse garbage collection: it compacts non-garbage
// clauses toward the front of the arena in storage order and returns a
// table mapping every old live Ref to its new Ref, so callers can
// rewrite watches/reasons. Garbage clauses are dropped entirely.
func (a *Arena) Collect() map[Ref]Ref {
	remap := make(map[Ref]Ref)
	newWords := make([]word, 0, len(a.words))

	a.Walk(func(ref Ref) {
		if a.Garbage(ref) {
			return
		}
		newRef := Ref(len(newWords))
		size := clauseHeaderWords + a.Size(ref)
		newWords = append(newWords, a.words[ref:int(ref)+size]...)
		remap[ref] = newRef
	})

	a.words = newWords
	a.garbage = 0
	return remap
}

// NumWords reports the arena's current word footprint, live + garbage.
func (a *Arena) NumWords() int { return len(a.words) }
