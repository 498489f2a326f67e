package rng_test

import (
	"testing"

	"github.com/katalvlaran/btorfalsify/rng"
	"github.com/stretchr/testify/assert"
)

func TestSplitMix64Deterministic(t *testing.T) {
	a := rng.NewSplitMix64(42)
	b := rng.NewSplitMix64(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestSplitMix64DifferentSeedsDiverge(t *testing.T) {
	a := rng.NewSplitMix64(1)
	b := rng.NewSplitMix64(2)
	assert.NotEqual(t, a.Next(), b.Next())
}

func TestXoshiro256ppDeterministicFromSeed(t *testing.T) {
	a := rng.NewXoshiro256pp(1234)
	b := rng.NewXoshiro256pp(1234)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestXoshiro256ppCloneReproducesThenDiverges(t *testing.T) {
	a := rng.NewXoshiro256pp(7)
	clone := a.Clone()

	// Drawn in lockstep, the clone reproduces the original's sequence exactly.
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Uint64(), clone.Uint64())
	}

	// Advancing only the original desynchronizes it from the clone.
	a.Uint64()
	assert.NotEqual(t, a.Uint64(), clone.Uint64())
}

func TestXoshiro256ppDoesNotRepeatImmediately(t *testing.T) {
	x := rng.NewXoshiro256pp(99)
	seen := make(map[uint64]bool)
	for i := 0; i < 1000; i++ {
		v := x.Uint64()
		assert.False(t, seen[v], "xoshiro256++ output repeated within 1000 draws (seed 99)")
		seen[v] = true
	}
}

func TestDeriveSeedDeterministic(t *testing.T) {
	s1 := rng.DeriveSeed(10, 3)
	s2 := rng.DeriveSeed(10, 3)
	assert.Equal(t, s1, s2)
}

func TestDeriveSeedDecorrelatesAdjacentStreams(t *testing.T) {
	s0 := rng.DeriveSeed(10, 0)
	s1 := rng.DeriveSeed(10, 1)
	assert.NotEqual(t, s0, s1)
}

func TestDeriveWorkerSeedDecorrelatesWorkers(t *testing.T) {
	seeds := make(map[uint64]bool)
	for i := 0; i < 8; i++ {
		s := rng.DeriveWorkerSeed(5, i)
		assert.False(t, seeds[s], "worker seed collided across worker indices")
		seeds[s] = true
	}
}

func TestDeriveWorkerSeedDeterministic(t *testing.T) {
	assert.Equal(t, rng.DeriveWorkerSeed(5, 3), rng.DeriveWorkerSeed(5, 3))
}
