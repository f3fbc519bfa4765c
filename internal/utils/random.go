package utils

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the seedable random source injected into sampling and scheduling
// logic so tests can reproduce draws exactly.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// lockedRand serializes access to the underlying source. One instance is
// shared across services whose own locks are per-player, so draws from
// concurrent requests would otherwise race.
type lockedRand struct {
	mu  sync.Mutex
	src *rand.Rand
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Float64()
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Intn(n)
}

// NewRand returns a deterministic, concurrency-safe random source for the
// given seed.
func NewRand(seed int64) Rand {
	return &lockedRand{src: rand.New(rand.NewSource(seed))} //nolint:gosec // Game logic randomness, not security critical
}

// NewTimeSeededRand returns a random source seeded from the wall clock.
func NewTimeSeededRand() Rand {
	return NewRand(time.Now().UnixNano())
}

// RandomInt returns a random integer between min and max (inclusive) from src.
func RandomInt(src Rand, min, max int) int {
	if min >= max {
		return min
	}
	return src.Intn(max-min+1) + min
}
