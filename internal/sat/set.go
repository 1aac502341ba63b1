package sat

// resetSet is an O(1)-clearable membership set over small integer
// indices, without a full slice wipe between uses. Solver.seen holds one
// with a slot per variable, but nothing in the package adds to it or
// queries it: conflict analysis marks variables through
// varInfo.analyzed, and inprocessing passes use their own maps.
type resetSet struct {
	addedAt   []uint32
	timestamp uint32
}

func newResetSet(n int) *resetSet {
	return &resetSet{addedAt: make([]uint32, n), timestamp: 1}
}

func (rs *resetSet) Contains(i int) bool { return rs.addedAt[i] == rs.timestamp }

func (rs *resetSet) Add(i int) { rs.addedAt[i] = rs.timestamp }

// Clear empties the set in O(1) by bumping the generation counter, with a
// full wipe only on the rare uint32 overflow.
func (rs *resetSet) Clear() {
	rs.timestamp++
	if rs.timestamp == 0 {
		rs.timestamp = 1
		for i := range rs.addedAt {
			rs.addedAt[i] = 0
		}
	}
}

func (rs *resetSet) expand() { rs.addedAt = append(rs.addedAt, 0) }
