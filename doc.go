// Package shift shuffles and groups dense integer indices without storing a
// permutation table.
//
// A Shuffler maps the indices [0, 2^bits) onto themselves in a scattered,
// seed-dependent order and maps them back again:
//
//	s, _ := shift.NewShuffler(4, 42, 4)
//	for i := uint32(0); i < 16; i++ {
//	    j := s.ToShuffledIndex(i)
//	    // s.FromShuffledIndex(j) == i
//	}
//
// A Grouper partitions the same domain into fixed-size cohorts, so that any
// index can name all of its co-members:
//
//	g, _ := shift.NewGrouper(4, 4, 42, 4)
//	members := g.Group(5, nil) // four indices, members[0] == 5
//
// Both types are immutable values computed from their construction
// parameters alone. They hold no tables and no caches, and may be shared by
// any number of goroutines.
//
// For collections whose size is not a power of two, pick the domain with
// perm.BitsFor and either filter while scanning (see Shuffler.Iter) or cycle
// walk (see perm.Walk).
package shift
