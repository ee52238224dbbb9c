package shift

import "github.com/jmpnz/shift/perm"

// A Shuffler is a stateless, invertible shuffle of the indices [0, 2^bits).
type Shuffler struct {
	p perm.Feistel
}

// NewShuffler returns a Shuffler over [0, 2^bits) that runs the given number
// of Feistel rounds keyed by seed. More rounds scatter indices more
// thoroughly, and zero rounds is the identity. bits must be in [1, 32], and
// odd widths need an even round count.
func NewShuffler(rounds, seed, bits uint32) (Shuffler, error) {
	p, err := perm.New(rounds, seed, bits)
	if err != nil {
		return Shuffler{}, err
	}
	log.Debugf("New shuffler: %d rounds, seed %#08x, %d-bit domain", rounds, seed, bits)
	return Shuffler{p: p}, nil
}

// ToShuffledIndex returns the shuffled position of index.
func (s Shuffler) ToShuffledIndex(index uint32) uint32 { return s.p.Encrypt(index) }

// FromShuffledIndex returns the index whose shuffled position is shuffled.
func (s Shuffler) FromShuffledIndex(shuffled uint32) uint32 { return s.p.Decrypt(shuffled) }

// Permutation returns the underlying permutation.
func (s Shuffler) Permutation() perm.Feistel { return s.p }

// Iter returns an Iterator over [0, n) in shuffled order. n must not exceed
// the domain size.
func (s Shuffler) Iter(n uint32) *Iterator {
	if uint64(n) > s.p.Size() {
		panic("shift: Iter bound exceeds the shuffle domain")
	}
	return &Iterator{p: s.p, numElems: n}
}
