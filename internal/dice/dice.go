// Package dice is the single random provider for the simulation. Every
// randomized decision (dwell times, enemy jitter, floor and column picks,
// outage rolls) goes through a Roller so tests can substitute a seeded or
// scripted source and replay a session exactly.
package dice

import (
	"math/rand"
)

// Source is the subset of *rand.Rand the Roller needs
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Roller draws game-level random values from a Source
type Roller struct {
	src Source
}

// NewRoller creates a new Roller with the given random source
func NewRoller(src Source) *Roller {
	return &Roller{src: src}
}

// NewSeeded creates a Roller backed by math/rand with a fixed seed
func NewSeeded(seed int64) *Roller {
	return NewRoller(rand.New(rand.NewSource(seed)))
}

// Intn returns a value in [0, n). It returns 0 for n <= 0 instead of
// panicking like math/rand.
func (r *Roller) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.src.Intn(n)
}

// Range returns a value in [lo, hi). When lo == hi the result is exactly lo.
func (r *Roller) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.src.Float64()*(hi-lo)
}

// Chance reports true with probability p. p <= 0 never fires and p >= 1
// always fires; neither consumes a draw.
func (r *Roller) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.src.Float64() < p
}

// OneIn reports true with probability 1/n, like rnd(n) == 0
func (r *Roller) OneIn(n int) bool {
	if n <= 1 {
		return n == 1
	}
	return r.src.Intn(n) == 0
}

// Sign returns -1, 0 or +1 with equal probability
func (r *Roller) Sign() int {
	return r.src.Intn(3) - 1
}
