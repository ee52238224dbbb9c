package shift

import "github.com/jmpnz/shift/perm"

// An Iterator enumerates [0, n) in shuffled order in constant space. It is
// intended to be used in a for loop like so:
//
//	it := s.Iter(12)
//	for it.Next() {
//	    // use it.Index()
//	}
//
// Every candidate in the power-of-two domain is shuffled in turn and images
// outside [0, n) are skipped, so each value is produced exactly once. Unlike
// the Shuffler it came from, an Iterator is not safe for concurrent use.
type Iterator struct {
	p        perm.Feistel
	numElems uint32
	i        uint64
	cur      uint32
}

// Next advances the Iterator to the next shuffled index. It returns false
// when all of [0, n) has been enumerated.
func (it *Iterator) Next() bool {
	if it == nil {
		return false
	}
	for it.i < it.p.Size() {
		n := it.p.Encrypt(uint32(it.i))
		it.i++
		if n < it.numElems {
			it.cur = n
			return true
		}
	}
	return false
}

// Index returns the shuffled index produced by the last call to Next.
func (it *Iterator) Index() uint32 { return it.cur }

// Reset rewinds the Iterator to the start of the same sequence.
func (it *Iterator) Reset() {
	it.i = 0
	it.cur = 0
}
