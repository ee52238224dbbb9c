package perm

// PCG hash parameters. These must not change: every permutation built on Mix
// depends on them bit for bit. The output step is the RXS-M-XS permutation.
// See https://www.pcg-random.org/ and
// https://www.reedbeta.com/blog/hash-functions-for-gpu-rendering/
const (
	pcgMultiplier = 47796405
	pcgIncrement  = 2891336453
	pcgOutputMul  = 277803737
)

// Mix is a seedless 32-bit avalanche hash derived from one step of a PCG
// generator. It is a pure function; all arithmetic wraps modulo 2^32.
func Mix(x uint32) uint32 {
	state := x*pcgMultiplier + pcgIncrement
	word := ((state >> ((state >> 28) + 4)) ^ state) * pcgOutputMul
	return (word >> 22) ^ word
}
