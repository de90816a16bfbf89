package sim

import (
	"math/rand"
	"time"
)

// Rand is the single source of randomness threaded through terrain
// generation, fighter stats, placement, movement and heal coin flips.
// *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a deterministic generator for seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- game simulation, not crypto
}

// resolveSeed turns the "no seed" value 0 into a clock-derived seed so every
// match still has a reproducible seed to report.
func resolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	s := time.Now().UnixNano()
	if s == 0 {
		s = 1
	}
	return s
}
