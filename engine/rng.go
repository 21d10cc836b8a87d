package engine

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand"
)

// Source is the randomness the engine draws from. The seeded RNG is the
// production source; tests substitute scripted ones.
type Source interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// RNG wraps math/rand.Rand with deterministic position tracking.
// Position increments with every draw so traces can name the draw that
// decided an outcome.
type RNG struct {
	seed int64
	src  *mrand.Rand
	pos  int64
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  mrand.New(mrand.NewSource(seed)),
	}
}

// NewSeed draws a seed from the operating system's entropy source.
func NewSeed() (int64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("generate seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(buf[:])), nil
}

// Intn returns a random integer in [0, n).
func (r *RNG) Intn(n int) int {
	r.pos++
	return r.src.Intn(n)
}

// Float64 returns a random float in [0, 1).
func (r *RNG) Float64() float64 {
	r.pos++
	return r.src.Float64()
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}

// Roll returns a random integer in [1, sides].
func Roll(src Source, sides int) int {
	return src.Intn(sides) + 1
}

// Between returns a random integer in [lo, hi], both inclusive.
func Between(src Source, lo, hi int) int {
	return lo + src.Intn(hi-lo+1)
}

// Chance reports success with probability p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}
