package engine

import "math/rand"

// RNG is the game's seeded random stream. The game owns one and threads
// it through level generation and monster AI. Position counts the values
// drawn from the underlying source, so a saved (seed, position) pair
// restores the exact stream even when a call draws more than once.
type RNG struct {
	seed int64
	src  *countingSource
	r    *rand.Rand
}

// countingSource counts every value drawn from a rand.Source64.
type countingSource struct {
	rand.Source64
	drawn int64
}

func (c *countingSource) Int63() int64 {
	c.drawn++
	return c.Source64.Int63()
}

func (c *countingSource) Uint64() uint64 {
	c.drawn++
	return c.Source64.Uint64()
}

// NewRNG creates a deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	src := &countingSource{Source64: rand.NewSource(seed).(rand.Source64)}
	return &RNG{seed: seed, src: src, r: rand.New(src)}
}

// RestoreRNG recreates the RNG for seed and skips position draws.
func RestoreRNG(seed int64, position int64) *RNG {
	rng := NewRNG(seed)
	for rng.src.drawn < position {
		rng.src.Int63()
	}
	return rng
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of values drawn since creation.
func (r *RNG) Position() int64 {
	return r.src.drawn
}

// Intn returns a random integer in [0, n). n must be positive.
func (r *RNG) Intn(n int) int {
	return r.r.Intn(n)
}

// WeightedSelect picks an index with probability proportional to its
// weight. weights must be non-empty and positive.
func (r *RNG) WeightedSelect(weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	roll := r.Intn(total)
	for i, w := range weights {
		if roll < w {
			return i
		}
		roll -= w
	}
	return len(weights) - 1
}
