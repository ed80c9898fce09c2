package rota

import (
	"hash/fnv"
	"math/rand/v2"
)

// Rand is the source of random decisions used when no preference applies.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	// IntN returns a value in [0, n). n is always > 0.
	IntN(n int) int

	// Shuffle permutes n elements using swap
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a Rand seeded from the runtime's random source
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededRand returns a deterministic Rand for the given seed string.
// An empty seed falls back to NewRand.
func NewSeededRand(seed string) *rand.Rand {
	if seed == "" {
		return NewRand()
	}

	h := fnv.New64a()
	h.Write([]byte(seed))
	s := h.Sum64()

	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// pick returns a uniformly chosen element of people (which must be non-empty)
func pick(rng Rand, people []Person) Person {
	return people[rng.IntN(len(people))]
}
