package rng

// DeriveSeed mixes a base seed and a stream identifier into a new 64-bit
// seed via the SplitMix64 avalanche finalizer, copied from the teacher's
// tsp/rng.go deriveSeed (itself citing the canonical SplitMix64 constants
// from Vigna 2014). Small changes in either input produce large,
// well-distributed changes in the output, so worker i and worker i+1 get
// decorrelated streams even though their stream ids are adjacent integers.
func DeriveSeed(base int64, stream uint64) int64 {
	x := uint64(base) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// DeriveWorkerSeed returns the xoshiro256++ seed for worker index i given a
// single base seed, via DeriveSeed. The worker coordinator (spec §4.H)
// calls this once per worker at spawn time instead of seeding worker i
// with the raw integer i, so that nearby worker indices do not produce
// correlated early outputs.
func DeriveWorkerSeed(base int64, i int) uint64 {
	return uint64(DeriveSeed(base, uint64(i)))
}
