package rng

import "math/rand"

// Seeded wraps math/rand with a fixed seed for deterministic replays
type Seeded struct {
	r *rand.Rand
}

// NewSeeded returns a seeded generator. Two generators built from the same
// seed produce identical draw sequences.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{r: rand.New(rand.NewSource(seed))}
}

// Intn returns a random number from 0 < n
func (s *Seeded) Intn(n int) int {
	return s.r.Intn(n)
}
