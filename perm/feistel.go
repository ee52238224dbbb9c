// Package perm provides a stateless permutation of the index domain
// [0, 2^bits) which can be evaluated, and inverted, one index at a time in
// constant space.
//
// The current implementation uses a balanced Feistel network with a PCG-style
// integer hash as the round function. The round function is truncated to half
// the index width and is not itself invertible; the Feistel structure makes
// the whole network invertible regardless. Note that the permutation is meant
// for scattering dense indices (array positions, shard IDs), not for hiding
// them: the hash is fast and statistically decent but has no cryptographic
// strength.
//
// When the domain size is not a power of two, restrict the permutation with
// cycle walking (see Walk) or by rejecting out-of-range images while scanning
// the full domain.
package perm

// Feistel is an immutable Feistel-network permutation. The zero value is the
// identity permutation over the one-element domain and is of little use;
// construct one with New.
//
// A Feistel is a plain value. It may be copied freely and used by any number
// of goroutines at once.
type Feistel struct {
	rounds   uint32
	seed     uint32
	bits     uint32
	halfBits uint32
	halfMask uint32
}

// New returns a permutation of [0, 2^bits) using the given number of rounds
// and seed. A round count of zero yields the identity permutation.
//
// When bits is odd, the left half is one bit wider than the right half. Such
// an asymmetric network only maps the domain back onto itself after an even
// number of rounds, so New rejects odd bit widths paired with odd round
// counts.
func New(rounds, seed, bits uint32) (Feistel, error) {
	if err := validate(rounds, bits); err != nil {
		return Feistel{}, err
	}
	half := bits / 2
	return Feistel{
		rounds:   rounds,
		seed:     seed,
		bits:     bits,
		halfBits: half,
		halfMask: (uint32(1) << half) - 1, // e.g. 0x0000FFFF
	}, nil
}

// Rounds returns the number of Feistel rounds.
func (f Feistel) Rounds() uint32 { return f.rounds }

// Seed returns the seed mixed into every round.
func (f Feistel) Seed() uint32 { return f.seed }

// Bits returns the width of the index domain.
func (f Feistel) Bits() uint32 { return f.bits }

// Size returns the number of indices in the domain, 2^Bits.
func (f Feistel) Size() uint64 { return uint64(1) << f.bits }

// Contains reports whether index lies in [0, 2^Bits).
func (f Feistel) Contains(index uint32) bool { return uint64(index) < f.Size() }

// Encrypt maps index to its permuted position. Bits of index above the domain
// width are not rejected; they are carried through the left half and the
// result is outside the domain.
func (f Feistel) Encrypt(index uint32) uint32 {
	// split index into left and right bits
	left := index >> f.halfBits
	right := index & f.halfMask

	for i := uint32(0); i < f.rounds; i++ {
		left, right = right, left^f.round(right)
	}

	// join left and right bits to form permuted index
	return (left << f.halfBits) | right
}

// Decrypt is the inverse of Encrypt: Decrypt(Encrypt(i)) == i for every i in
// the domain, and vice versa.
func (f Feistel) Decrypt(index uint32) uint32 {
	left := index >> f.halfBits
	right := index & f.halfMask

	for i := uint32(0); i < f.rounds; i++ {
		left, right = right^f.round(left), left
	}

	return (left << f.halfBits) | right
}

func (f Feistel) round(x uint32) uint32 {
	return Mix(x^f.seed) & f.halfMask
}
