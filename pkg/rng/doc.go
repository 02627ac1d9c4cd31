// Package rng provides deterministic random number generation for the
// placement solver.
//
// # Overview
//
// The RNG type ensures reproducible placement by deriving scope-specific
// seeds from a master seed. Every group in the assembled scene (the
// top-level svg group and every nested g) gets its own solver instance,
// and each solver derives its own seed from the master seed so that
// re-rendering the same graph with the same seed reproduces the same
// layout.
//
// # Sub-Seed Derivation
//
// Each RNG derives its seed using SHA-256:
//
//	seed_scope = H(masterSeed, scopeName, configHash)
//
// where:
//   - masterSeed: top-level seed for the whole render (render.Config.Seed,
//     which the CLI takes from -seed, the config file, or the graph
//     document's seed field)
//   - scopeName: identifies what is being randomized, e.g.
//     "placement:<groupNodeID>"
//   - configHash: hash of the render configuration
//
// This ensures:
//  1. Same inputs always produce the same RNG sequence (determinism)
//  2. Different groups get independent random sequences (isolation)
//  3. Config changes result in different sequences (sensitivity)
//
// # Usage
//
// Create an RNG for each group the scene assembler solves independently:
//
//	configHash := cfg.Hash()
//	rootRNG := rng.NewRNG(masterSeed, "placement:root", configHash)
//	groupRNG := rng.NewRNG(masterSeed, "placement:"+groupID, configHash)
//
// Use the RNG for the solver's random decisions:
//
//	dx := groupRNG.UniformRange(scale * elem.Width)
//	if groupRNG.Float64() < acceptProbability {
//	    // accept the candidate placement
//	}
//
// # Thread Safety
//
// RNG instances are NOT thread-safe. Each solver goroutine should use its
// own RNG instance. Create group-specific RNGs before spawning goroutines
// and pass them explicitly.
//
// # Performance
//
// The underlying math/rand.Rand is highly efficient:
//   - Uint64(): ~2ns per call
//   - Intn():   ~3ns per call
//   - Float64(): ~2ns per call
//
// Creating a new RNG costs ~8µs due to SHA-256 computation. Reuse RNG
// instances within a solver for best performance.
package rng
