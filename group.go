package shift

import "github.com/jmpnz/shift/perm"

// A Grouper assigns every index of [0, 2^bits) to a cohort of exactly size
// indices. Cohorts are contiguous blocks of the shuffled domain, so
// sequential indices end up in unrelated cohorts while membership stays
// symmetric: every member of a cohort names the same co-members.
type Grouper struct {
	p    perm.Feistel
	size uint32
}

// NewGrouper returns a Grouper with cohorts of the given size over a
// permutation built as by NewShuffler. size must be a power of two no larger
// than 2^bits, so that the domain splits into whole cohorts.
func NewGrouper(size, rounds, seed, bits uint32) (Grouper, error) {
	p, err := perm.New(rounds, seed, bits)
	if err != nil {
		return Grouper{}, err
	}
	if err := perm.ValidateGroupSize(size, bits); err != nil {
		return Grouper{}, err
	}
	log.Debugf("New grouper: size %d, %d rounds, seed %#08x, %d-bit domain", size, rounds, seed, bits)
	return Grouper{p: p, size: size}, nil
}

// Size returns the number of members in each group.
func (g Grouper) Size() uint32 { return g.size }

// Groups returns the number of groups in the domain.
func (g Grouper) Groups() uint64 { return g.p.Size() / uint64(g.size) }

// GroupID returns the group that index belongs to, in [0, Groups()).
func (g Grouper) GroupID(index uint32) uint32 { return g.p.Encrypt(index) / g.size }

// Permutation returns the underlying permutation.
func (g Grouper) Permutation() perm.Feistel { return g.p }

// Member returns the co-member of index at offset within its group. Offsets
// wrap modulo the group size, and offset 0 is index itself.
func (g Grouper) Member(index, offset uint32) uint32 {
	return g.p.Decrypt(g.involution(g.p.Encrypt(index), offset))
}

// Group stores the members of index's group in members, ordered by offset
// starting at index itself, and returns it. members is resized to the group
// size, and reallocated only if its capacity is too small, so a caller can
// reuse one buffer across calls:
//
//	var buf []uint32
//	for _, id := range ids {
//	    buf = g.Group(id, buf)
//	}
func (g Grouper) Group(index uint32, members []uint32) []uint32 {
	if uint32(cap(members)) < g.size {
		members = make([]uint32, g.size)
	}
	members = members[:g.size]
	x := g.p.Encrypt(index)
	for i := range members {
		members[i] = g.p.Decrypt(g.involution(x, uint32(i)))
	}
	return members
}

// involution rotates x by offset within its block of the shuffled domain.
// size is a power of two, so x+offset may wrap without changing the result.
func (g Grouper) involution(x, offset uint32) uint32 {
	return g.size*(x/g.size) + (x+offset)%g.size
}
