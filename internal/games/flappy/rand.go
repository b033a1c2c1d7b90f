package flappy

import (
	"math/rand"
	"time"
)

// IntSource yields uniformly distributed integers in a closed range.
type IntSource interface {
	IntRange(lo, hi int) int
}

// RandSource adapts math/rand to IntSource.
type RandSource struct {
	rng *rand.Rand
}

// NewRandSource creates a source seeded with seed, or with the wall clock when seed is 0.
func NewRandSource(seed int64) *RandSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandSource{rng: rand.New(rand.NewSource(seed))}
}

// IntRange returns a value in [lo, hi]. hi < lo yields lo.
func (s *RandSource) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}
