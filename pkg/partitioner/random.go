package partitioner

import (
	"golang.org/x/exp/rand"
)

// Rand is a caller-supplied source of uniformly distributed integers.
// *rand.Rand from golang.org/x/exp/rand satisfies it.
type Rand interface {
	// Intn returns a value in [0, n). n must be positive.
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a deterministic generator seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
