package viz

import (
	"math/rand/v2"
	"slices"
)

// Sampler picks k distinct indices out of n.
type Sampler interface {
	Sample(n, k int) []int
}

// RandomSampler draws uniformly without replacement and returns the picked
// indices in ascending order.
type RandomSampler struct {
	rng *rand.Rand
}

// NewRandomSampler returns a sampler seeded with seed, or from the runtime
// entropy source when seed is 0.
func NewRandomSampler(seed uint64) *RandomSampler {
	if seed == 0 {
		return &RandomSampler{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
	}
	return &RandomSampler{rng: rand.New(rand.NewPCG(seed, seed))}
}

// Sample implements Sampler. Every index is returned when k >= n.
func (s *RandomSampler) Sample(n, k int) []int {
	if k >= n {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all
	}
	if k <= 0 {
		return nil
	}
	picked := s.rng.Perm(n)[:k]
	slices.Sort(picked)
	return picked
}
