package sat

// Vectors is the per-literal watch-list allocator described in spec
// §4.B: every literal's watch list is a run of cells inside one shared
// stack, grown by doubling and swept back together by Defrag once
// enough of it has rotted into lazily-deleted holes. This replaces the
// teacher's `[][]watcher` (one Go slice per literal) with a single
// backing array, which is what lets Defrag turn "many small slices with
// slack" into "one tightly packed region" without the Go runtime's own
// slice-growth heuristics fighting the solver's.
type Vectors struct {
	stack []int32
	dir   []vecSpan
	usable int // cells wasted by lazy deletion/over-allocation, awaiting Defrag
}

type vecSpan struct {
	off, length, cap int32
}

// NewVectors returns an empty allocator sized for nLits literals.
func NewVectors(nLits int) *Vectors {
	return &Vectors{
		stack: make([]int32, 0, nLits*4),
		dir:   make([]vecSpan, nLits),
	}
}

// Grow extends the directory to cover newNumLits literals.
func (v *Vectors) Grow(newNumLits int) {
	for len(v.dir) < newNumLits {
		v.dir = append(v.dir, vecSpan{})
	}
}

// Len returns the number of live cells attached to literal l.
func (v *Vectors) Len(l Lit) int { return int(v.dir[l].length) }

// View returns the live cells of literal l's watch list. The returned
// slice aliases the shared stack and is only valid until the next
// mutation of any literal's list (Push may relocate a vector).
func (v *Vectors) View(l Lit) []int32 {
	s := v.dir[l]
	return v.stack[s.off : s.off+s.length]
}

// Push appends an atomic block of cells (1 for a binary watch, 2 for a
// blocking+ref pair) to literal l's watch list, enlarging or relocating
// it first if it has no room.
func (v *Vectors) Push(l Lit, cells ...int32) {
	s := &v.dir[l]
	need := int32(len(cells))
	if s.length+need > s.cap {
		v.enlarge(l, need)
		s = &v.dir[l]
	}
	copy(v.stack[s.off+s.length:], cells)
	s.length += need
}

// enlarge relocates literal l's vector to the end of the stack with
// double its capacity (spec §4.B: "the whole vector is moved to the end
// of the stack").
func (v *Vectors) enlarge(l Lit, atLeast int32) {
	s := &v.dir[l]
	newCap := s.cap * 2
	if newCap < 4 {
		newCap = 4
	}
	if newCap < s.length+atLeast {
		newCap = s.length + atLeast
	}
	newOff := int32(len(v.stack))
	v.stack = append(v.stack, make([]int32, newCap)...)
	copy(v.stack[newOff:], v.stack[s.off:s.off+s.length])
	v.usable += int(s.cap) // old slab is now pure waste
	s.off = newOff
	s.cap = newCap
}

// RemoveAt deletes the width-cell block at offset off within literal l's
// list via swap-with-last (lazy deletion - spec §4.B). The caller is
// responsible for locating off/width correctly; watches.go's removeWatch
// does this with a single variable-width scan since binary (1-cell) and
// large (2-cell) entries are interleaved in the same list.
func (v *Vectors) RemoveAt(l Lit, off, width int32) {
	s := &v.dir[l]
	last := s.length - width
	if off != last {
		copy(v.stack[s.off+off:s.off+off+width], v.stack[s.off+last:s.off+s.length])
	}
	s.length -= width
	v.usable += int(width)
}

// Clear empties literal l's watch list without freeing its slab (used
// by the search propagator, which rebuilds the list as it iterates —
// see Solver.propagateOn).
func (v *Vectors) Clear(l Lit) { v.dir[l].length = 0 }

// Defrag compacts every literal's vector to zero slack, in literal
// order, rewriting offsets. Spec calls for a radix sort by offset; since
// literal order and storage order coincide for almost every vector in
// practice (vectors are appended to the stack roughly as literals are
// first watched), a single linear pass in literal order gives the same
// tightly packed result without an explicit sort.
func (v *Vectors) Defrag() {
	newStack := make([]int32, 0, len(v.stack)-v.usable)
	for i := range v.dir {
		s := &v.dir[i]
		newOff := int32(len(newStack))
		newStack = append(newStack, v.stack[s.off:s.off+s.length]...)
		s.off = newOff
		s.cap = s.length
	}
	v.stack = newStack
	v.usable = 0
}

// ShouldDefrag reports whether wasted cells exceed fractionPct percent
// of the stack, the Defrag trigger from spec §4.B.
func (v *Vectors) ShouldDefrag(fractionPct int) bool {
	if len(v.stack) == 0 {
		return false
	}
	return v.usable*100 >= len(v.stack)*fractionPct
}
