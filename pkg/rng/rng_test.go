package rng

import (
	"crypto/sha256"
	"encoding/binary"
	"testing"
)

// TestNewRNG_Determinism verifies that the same inputs always produce the same RNG.
func TestNewRNG_Determinism(t *testing.T) {
	masterSeed := uint64(123456789)
	scopeName := "placement:n1"
	configHash := sha256.Sum256([]byte("test_config"))

	// Create two RNGs with identical inputs
	rng1 := NewRNG(masterSeed, scopeName, configHash[:])
	rng2 := NewRNG(masterSeed, scopeName, configHash[:])

	// Verify they have the same derived seed
	if rng1.Seed() != rng2.Seed() {
		t.Errorf("Same inputs produced different seeds: %d vs %d", rng1.Seed(), rng2.Seed())
	}

	// Verify they produce the same sequence
	for i := 0; i < 100; i++ {
		v1 := rng1.Uint64()
		v2 := rng2.Uint64()
		if v1 != v2 {
			t.Errorf("Iteration %d: Same RNGs produced different values: %d vs %d", i, v1, v2)
		}
	}
}

// TestNewRNG_SequenceDeterminism verifies the entire sequence is reproducible.
func TestNewRNG_SequenceDeterminism(t *testing.T) {
	masterSeed := uint64(987654321)
	scopeName := "placement:root"
	configHash := sha256.Sum256([]byte("config_v1"))

	// Generate first sequence
	rng1 := NewRNG(masterSeed, scopeName, configHash[:])
	sequence1 := make([]uint64, 50)
	for i := range sequence1 {
		sequence1[i] = rng1.Uint64()
	}

	// Generate second sequence with same inputs
	rng2 := NewRNG(masterSeed, scopeName, configHash[:])
	sequence2 := make([]uint64, 50)
	for i := range sequence2 {
		sequence2[i] = rng2.Uint64()
	}

	// Verify sequences match exactly
	for i := range sequence1 {
		if sequence1[i] != sequence2[i] {
			t.Errorf("Position %d: sequences differ: %d vs %d", i, sequence1[i], sequence2[i])
		}
	}
}

// TestNewRNG_DifferentScopes verifies different scope names produce different sequences.
func TestNewRNG_DifferentScopes(t *testing.T) {
	masterSeed := uint64(123456789)
	configHash := sha256.Sum256([]byte("same_config"))

	rng1 := NewRNG(masterSeed, "placement:root", configHash[:])
	rng2 := NewRNG(masterSeed, "placement:g1", configHash[:])
	rng3 := NewRNG(masterSeed, "placement:g2", configHash[:])

	// Verify different derived seeds
	if rng1.Seed() == rng2.Seed() {
		t.Error("Different scopes produced identical seeds")
	}
	if rng1.Seed() == rng3.Seed() {
		t.Error("Different scopes produced identical seeds")
	}
	if rng2.Seed() == rng3.Seed() {
		t.Error("Different scopes produced identical seeds")
	}

	// Verify scope names are preserved
	if rng1.ScopeName() != "placement:root" {
		t.Errorf("Scope name not preserved: got %s", rng1.ScopeName())
	}

	// Generate sequences and verify they differ
	v1 := rng1.Uint64()
	v2 := rng2.Uint64()
	v3 := rng3.Uint64()

	if v1 == v2 && v2 == v3 {
		t.Error("Different scopes produced identical first values (extremely unlikely)")
	}
}

// TestNewRNG_DifferentConfigs verifies different config hashes produce different sequences.
func TestNewRNG_DifferentConfigs(t *testing.T) {
	masterSeed := uint64(123456789)
	scopeName := "placement:n1"

	config1Hash := sha256.Sum256([]byte("config_v1"))
	config2Hash := sha256.Sum256([]byte("config_v2"))
	config3Hash := sha256.Sum256([]byte("config_v3"))

	rng1 := NewRNG(masterSeed, scopeName, config1Hash[:])
	rng2 := NewRNG(masterSeed, scopeName, config2Hash[:])
	rng3 := NewRNG(masterSeed, scopeName, config3Hash[:])

	// Verify different derived seeds
	if rng1.Seed() == rng2.Seed() {
		t.Error("Different configs produced identical seeds")
	}
	if rng1.Seed() == rng3.Seed() {
		t.Error("Different configs produced identical seeds")
	}
	if rng2.Seed() == rng3.Seed() {
		t.Error("Different configs produced identical seeds")
	}

	// Verify they produce different sequences
	v1 := rng1.Uint64()
	v2 := rng2.Uint64()
	v3 := rng3.Uint64()

	if v1 == v2 && v2 == v3 {
		t.Error("Different configs produced identical first values (extremely unlikely)")
	}
}

// TestNewRNG_DifferentMasterSeeds verifies different master seeds produce different sequences.
func TestNewRNG_DifferentMasterSeeds(t *testing.T) {
	scopeName := "placement:n1"
	configHash := sha256.Sum256([]byte("same_config"))

	rng1 := NewRNG(uint64(111), scopeName, configHash[:])
	rng2 := NewRNG(uint64(222), scopeName, configHash[:])
	rng3 := NewRNG(uint64(333), scopeName, configHash[:])

	// Verify different derived seeds
	if rng1.Seed() == rng2.Seed() {
		t.Error("Different master seeds produced identical seeds")
	}
	if rng1.Seed() == rng3.Seed() {
		t.Error("Different master seeds produced identical seeds")
	}
	if rng2.Seed() == rng3.Seed() {
		t.Error("Different master seeds produced identical seeds")
	}
}

// TestRNG_Intn verifies Intn produces values in correct range and is deterministic.
func TestRNG_Intn(t *testing.T) {
	masterSeed := uint64(123456789)
	scopeName := "test"
	configHash := sha256.Sum256([]byte("config"))

	r := NewRNG(masterSeed, scopeName, configHash[:])

	// Test range bounds
	for i := 0; i < 100; i++ {
		v := r.Intn(10)
		if v < 0 || v >= 10 {
			t.Errorf("Intn(10) produced out-of-range value: %d", v)
		}
	}

	// Test determinism
	rng1 := NewRNG(masterSeed, scopeName, configHash[:])
	rng2 := NewRNG(masterSeed, scopeName, configHash[:])

	for i := 0; i < 50; i++ {
		v1 := rng1.Intn(100)
		v2 := rng2.Intn(100)
		if v1 != v2 {
			t.Errorf("Iteration %d: Intn not deterministic: %d vs %d", i, v1, v2)
		}
	}
}

// TestRNG_IntnPanic verifies Intn panics on invalid input.
func TestRNG_IntnPanic(t *testing.T) {
	masterSeed := uint64(123456789)
	scopeName := "test"
	configHash := sha256.Sum256([]byte("config"))
	r := NewRNG(masterSeed, scopeName, configHash[:])

	defer func() {
		if rec := recover(); rec == nil {
			t.Error("Intn(0) did not panic")
		}
	}()

	r.Intn(0)
}

// TestRNG_Float64 verifies Float64 produces values in [0, 1) and is deterministic.
func TestRNG_Float64(t *testing.T) {
	masterSeed := uint64(123456789)
	scopeName := "test"
	configHash := sha256.Sum256([]byte("config"))

	r := NewRNG(masterSeed, scopeName, configHash[:])

	// Test range bounds
	for i := 0; i < 100; i++ {
		v := r.Float64()
		if v < 0.0 || v >= 1.0 {
			t.Errorf("Float64() produced out-of-range value: %f", v)
		}
	}

	// Test determinism
	rng1 := NewRNG(masterSeed, scopeName, configHash[:])
	rng2 := NewRNG(masterSeed, scopeName, configHash[:])

	for i := 0; i < 50; i++ {
		v1 := rng1.Float64()
		v2 := rng2.Float64()
		if v1 != v2 {
			t.Errorf("Iteration %d: Float64 not deterministic: %f vs %f", i, v1, v2)
		}
	}
}

// TestRNG_Shuffle verifies Shuffle produces deterministic permutations.
func TestRNG_Shuffle(t *testing.T) {
	masterSeed := uint64(123456789)
	scopeName := "test"
	configHash := sha256.Sum256([]byte("config"))

	// Create first shuffled sequence
	rng1 := NewRNG(masterSeed, scopeName, configHash[:])
	slice1 := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	rng1.Shuffle(len(slice1), func(i, j int) {
		slice1[i], slice1[j] = slice1[j], slice1[i]
	})

	// Create second shuffled sequence with same seed
	rng2 := NewRNG(masterSeed, scopeName, configHash[:])
	slice2 := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	rng2.Shuffle(len(slice2), func(i, j int) {
		slice2[i], slice2[j] = slice2[j], slice2[i]
	})

	// Verify identical shuffles
	for i := range slice1 {
		if slice1[i] != slice2[i] {
			t.Errorf("Position %d: Shuffle not deterministic: %d vs %d", i, slice1[i], slice2[i])
		}
	}

	// Verify shuffle actually changed the order (extremely likely)
	allSame := true
	for i := range slice1 {
		if slice1[i] != i {
			allSame = false
			break
		}
	}
	if allSame {
		t.Error("Shuffle did not change order (extremely unlikely)")
	}
}

// TestRNG_IntRange verifies IntRange produces values in correct range.
func TestRNG_IntRange(t *testing.T) {
	masterSeed := uint64(123456789)
	scopeName := "test"
	configHash := sha256.Sum256([]byte("config"))

	r := NewRNG(masterSeed, scopeName, configHash[:])

	// Test various ranges
	for i := 0; i < 100; i++ {
		v := r.IntRange(5, 10)
		if v < 5 || v > 10 {
			t.Errorf("IntRange(5, 10) produced out-of-range value: %d", v)
		}
	}

	// Test single value range
	for i := 0; i < 10; i++ {
		v := r.IntRange(7, 7)
		if v != 7 {
			t.Errorf("IntRange(7, 7) produced wrong value: %d", v)
		}
	}
}

// TestRNG_IntRangePanic verifies IntRange panics on invalid input.
func TestRNG_IntRangePanic(t *testing.T) {
	masterSeed := uint64(123456789)
	scopeName := "test"
	configHash := sha256.Sum256([]byte("config"))
	r := NewRNG(masterSeed, scopeName, configHash[:])

	defer func() {
		if rec := recover(); rec == nil {
			t.Error("IntRange(10, 5) did not panic")
		}
	}()

	r.IntRange(10, 5)
}

// TestRNG_Float64Range verifies Float64Range produces values in correct range.
func TestRNG_Float64Range(t *testing.T) {
	masterSeed := uint64(123456789)
	scopeName := "test"
	configHash := sha256.Sum256([]byte("config"))

	r := NewRNG(masterSeed, scopeName, configHash[:])

	// Test range bounds
	for i := 0; i < 100; i++ {
		v := r.Float64Range(5.0, 10.0)
		if v < 5.0 || v >= 10.0 {
			t.Errorf("Float64Range(5.0, 10.0) produced out-of-range value: %f", v)
		}
	}
}

// TestRNG_Float64RangePanic verifies Float64Range panics on invalid input.
func TestRNG_Float64RangePanic(t *testing.T) {
	masterSeed := uint64(123456789)
	scopeName := "test"
	configHash := sha256.Sum256([]byte("config"))
	r := NewRNG(masterSeed, scopeName, configHash[:])

	defer func() {
		if rec := recover(); rec == nil {
			t.Error("Float64Range(10.0, 5.0) did not panic")
		}
	}()

	r.Float64Range(10.0, 5.0)
}

// TestRNG_UniformRange verifies UniformRange stays within [-w, w] and is deterministic.
func TestRNG_UniformRange(t *testing.T) {
	masterSeed := uint64(123456789)
	scopeName := "placement:n1"
	configHash := sha256.Sum256([]byte("config"))

	r := NewRNG(masterSeed, scopeName, configHash[:])

	for i := 0; i < 100; i++ {
		v := r.UniformRange(4.0)
		if v < -4.0 || v > 4.0 {
			t.Errorf("UniformRange(4.0) produced out-of-range value: %f", v)
		}
	}

	// Zero and negative widths collapse to zero jitter.
	if v := r.UniformRange(0); v != 0 {
		t.Errorf("UniformRange(0) = %f, want 0", v)
	}
	if v := r.UniformRange(-1); v != 0 {
		t.Errorf("UniformRange(-1) = %f, want 0", v)
	}

	// Determinism
	rng1 := NewRNG(masterSeed, scopeName, configHash[:])
	rng2 := NewRNG(masterSeed, scopeName, configHash[:])
	for i := 0; i < 50; i++ {
		v1 := rng1.UniformRange(2.5)
		v2 := rng2.UniformRange(2.5)
		if v1 != v2 {
			t.Errorf("Iteration %d: UniformRange not deterministic: %f vs %f", i, v1, v2)
		}
	}
}

// TestSubSeedDerivationFormula verifies the exact derivation formula.
func TestSubSeedDerivationFormula(t *testing.T) {
	masterSeed := uint64(123456789)
	scopeName := "test_scope"
	configHash := []byte{1, 2, 3, 4, 5}

	// Manually compute expected derived seed
	h := sha256.New()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], masterSeed)
	h.Write(buf[:])
	h.Write([]byte(scopeName))
	h.Write(configHash)
	hash := h.Sum(nil)
	expected := binary.BigEndian.Uint64(hash[:8])

	// Create RNG and verify it matches
	r := NewRNG(masterSeed, scopeName, configHash)
	if r.Seed() != expected {
		t.Errorf("Derived seed mismatch: got %d, want %d", r.Seed(), expected)
	}
}

// BenchmarkNewRNG measures RNG creation performance.
func BenchmarkNewRNG(b *testing.B) {
	masterSeed := uint64(123456789)
	scopeName := "benchmark_scope"
	configHash := sha256.Sum256([]byte("benchmark_config"))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = NewRNG(masterSeed, scopeName, configHash[:])
	}
}

// BenchmarkRNG_Uint64 measures Uint64 performance.
func BenchmarkRNG_Uint64(b *testing.B) {
	masterSeed := uint64(123456789)
	scopeName := "benchmark"
	configHash := sha256.Sum256([]byte("config"))
	r := NewRNG(masterSeed, scopeName, configHash[:])

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.Uint64()
	}
}

// BenchmarkRNG_Intn measures Intn performance.
func BenchmarkRNG_Intn(b *testing.B) {
	masterSeed := uint64(123456789)
	scopeName := "benchmark"
	configHash := sha256.Sum256([]byte("config"))
	r := NewRNG(masterSeed, scopeName, configHash[:])

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.Intn(100)
	}
}

// BenchmarkRNG_Float64 measures Float64 performance.
func BenchmarkRNG_Float64(b *testing.B) {
	masterSeed := uint64(123456789)
	scopeName := "benchmark"
	configHash := sha256.Sum256([]byte("config"))
	r := NewRNG(masterSeed, scopeName, configHash[:])

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.Float64()
	}
}
