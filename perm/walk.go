package perm

import "fmt"

// BitsFor returns the smallest domain width whose domain holds n indices. It
// never returns less than 1.
func BitsFor(n uint64) uint32 {
	bits := uint32(1)
	for bits < 64 && uint64(1)<<bits < n {
		bits++
	}
	return bits
}

// Walk restricts f to [0, n) by cycle walking: index is encrypted repeatedly
// until the result falls below n. The result is a permutation of [0, n).
// Walk panics if n is zero or larger than the domain, or if index >= n.
//
// The expected number of steps is Size()/n, so n should be more than half the
// domain size; pick the domain with BitsFor.
func Walk(f Feistel, index, n uint32) uint32 {
	checkWalk(f, index, n)
	for {
		index = f.Encrypt(index)
		if index < n {
			return index
		}
	}
}

// Unwalk is the inverse of Walk.
func Unwalk(f Feistel, shuffled, n uint32) uint32 {
	checkWalk(f, shuffled, n)
	for {
		shuffled = f.Decrypt(shuffled)
		if shuffled < n {
			return shuffled
		}
	}
}

func checkWalk(f Feistel, index, n uint32) {
	if n == 0 || uint64(n) > f.Size() {
		panic(fmt.Sprintf("perm: invalid walk bound %d for a %d-bit domain", n, f.bits))
	}
	if index >= n {
		panic(fmt.Sprintf("perm: index %d out of range [0, %d)", index, n))
	}
}
