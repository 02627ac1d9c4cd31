package rng

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
)

// RNG provides deterministic random number generation for one placement
// solver instance. Every group in the scene (the top-level svg group and
// every nested g) gets its own solver, and each solver derives its own
// seed from the master seed so that re-rendering the same graph with the
// same seed reproduces the same placement. The derivation follows:
//
//	seed_scope = H(masterSeed, scopeName, configHash)
//
// where H is SHA-256 and the first 8 bytes are used as the uint64 seed.
type RNG struct {
	seed      uint64
	scopeName string
	source    *rand.Rand
}

// NewRNG creates a scope-specific RNG by deriving a sub-seed from the master seed.
// The derivation uses SHA-256 to combine:
//   - masterSeed: the top-level seed for the whole render
//   - scopeName: identifies what is being randomized, e.g. "placement:<groupNodeID>"
//   - configHash: hash of the render configuration, so config changes perturb the sequence
//
// This ensures that:
//  1. Same inputs always produce the same RNG sequence (determinism)
//  2. Different groups get independent random sequences (isolation)
//  3. Config changes result in different sequences (sensitivity)
func NewRNG(masterSeed uint64, scopeName string, configHash []byte) *RNG {
	h := sha256.New()

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], masterSeed)
	h.Write(buf[:])
	h.Write([]byte(scopeName))
	h.Write(configHash)

	digest := h.Sum(nil)
	derivedSeed := binary.BigEndian.Uint64(digest[:8])

	return &RNG{
		seed:      derivedSeed,
		scopeName: scopeName,
		source:    rand.New(rand.NewSource(int64(derivedSeed))),
	}
}

// Uint64 returns a pseudo-random 64-bit unsigned integer.
func (r *RNG) Uint64() uint64 {
	return r.source.Uint64()
}

// Intn returns a pseudo-random integer in [0, n). It panics if n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn argument must be positive")
	}
	return r.source.Intn(n)
}

// Float64 returns a pseudo-random float64 in [0.0, 1.0).
func (r *RNG) Float64() float64 {
	return r.source.Float64()
}

// Shuffle pseudo-randomizes the order of a slice of length n.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	r.source.Shuffle(n, swap)
}

// Seed returns the derived seed for this RNG.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// ScopeName returns the scope this RNG was derived for.
func (r *RNG) ScopeName() string {
	return r.scopeName
}

// IntRange returns a pseudo-random integer in [min, max]. It panics if min > max.
func (r *RNG) IntRange(min, max int) int {
	if min > max {
		panic("rng: IntRange min must be <= max")
	}
	if min == max {
		return min
	}
	return min + r.source.Intn(max-min+1)
}

// Float64Range returns a pseudo-random float64 in [min, max). It panics if min >= max.
func (r *RNG) Float64Range(min, max float64) float64 {
	if min >= max {
		panic("rng: Float64Range min must be < max")
	}
	return min + r.source.Float64()*(max-min)
}

// UniformRange returns a pseudo-random float64 in [-w, w]. The placement
// solver uses this to jitter an element's offset by up to its own width
// or height, scaled by the current temperature.
func (r *RNG) UniformRange(w float64) float64 {
	if w <= 0 {
		return 0
	}
	return r.source.Float64()*(2*w) - w
}
