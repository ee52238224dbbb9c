package perm

import (
	"encoding/binary"

	"github.com/minio/blake2b-simd"
)

// SeedFromKey derives a seed from an arbitrary key, such as a shard name or
// an epoch label, so that callers can name permutations instead of numbering
// them. The seed is the first four bytes, big endian, of the key's
// BLAKE2b-256 digest.
func SeedFromKey(key []byte) uint32 {
	var arena [32]byte
	h := blake2b.New256()
	h.Write(key)
	return binary.BigEndian.Uint32(h.Sum(arena[:0]))
}
