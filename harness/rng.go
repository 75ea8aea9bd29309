// SPDX-License-Identifier: MIT

package harness

import (
	"math"
	"math/rand"
)

// DefaultSeed is used when callers pass seed == 0.
const DefaultSeed int64 = 1

// NewSource returns a deterministic *rand.Rand.
// Policy: seed == 0 ⇒ DefaultSeed; otherwise the seed is used verbatim.
//
// A *rand.Rand is not goroutine-safe; use DeriveSource for workers.
func NewSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// DeriveSource returns an independent deterministic stream for (parent, stream).
// Complexity: O(1).
func DeriveSource(parent int64, stream uint64) *rand.Rand {
	if parent == 0 {
		parent = DefaultSeed
	}

	return rand.New(rand.NewSource(deriveSeed(parent, stream)))
}

// deriveSeed mixes a parent seed and a stream id with the SplitMix64 finalizer.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// RandomAngle draws θ uniformly from (−π, π].
func RandomAngle(rng *rand.Rand) float64 {
	// Float64 is in [0, 1), so π − 2π·u never reaches −π.
	return math.Pi - 2*math.Pi*rng.Float64()
}

// SampleConfiguration draws an n-joint configuration. Joints listed in fixed
// take their constant and consume no randomness.
func SampleConfiguration(rng *rand.Rand, n int, fixed map[int]float64) []float64 {
	q := make([]float64, n)
	for i := range q {
		if v, ok := fixed[i]; ok {
			q[i] = v
			continue
		}
		q[i] = RandomAngle(rng)
	}

	return q
}
