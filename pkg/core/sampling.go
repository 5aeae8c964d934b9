package core

import (
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms.
// Every stochastic operation draws from an explicit Sampler so renders can be
// reproduced by seeding it.
type Sampler interface {
	// Get1D returns a uniform value in [0, 1)
	Get1D() float64
}

// RandomSampler wraps a standard Go random generator.
// It is not safe for concurrent use; give each worker its own.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler backed by a fresh generator with the given seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// RandomInRange returns a uniform value in [lo, hi)
func RandomInRange(sampler Sampler, lo, hi float64) float64 {
	return lo + (hi-lo)*sampler.Get1D()
}

// RandomVec3 returns a vector with each component uniform in [lo, hi)
func RandomVec3(sampler Sampler, lo, hi float64) Vec3 {
	x := RandomInRange(sampler, lo, hi)
	y := RandomInRange(sampler, lo, hi)
	z := RandomInRange(sampler, lo, hi)
	return NewVec3(x, y, z)
}

// RandomInUnitSphere returns a point uniformly distributed inside the unit ball
// by rejection sampling the [-1,1]³ cube. The origin itself is rejected so the
// result can always be normalized.
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		p := RandomVec3(sampler, -1, 1)
		lengthSquared := p.LengthSquared()
		if lengthSquared <= 1.0 && lengthSquared != 0 {
			return p
		}
	}
}

// RandomUnitVector returns a direction uniformly distributed on the unit sphere
func RandomUnitVector(sampler Sampler) Vec3 {
	return RandomInUnitSphere(sampler).Normalize()
}

// RandomInUnitDisk generates a random point in the z=0 unit disk (for depth of field)
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		// Generate random point in [-1,1] x [-1,1] square
		p := NewVec3(RandomInRange(sampler, -1, 1), RandomInRange(sampler, -1, 1), 0)
		// Accept if inside unit disk
		if p.LengthSquared() <= 1.0 {
			return p
		}
	}
}

// SequenceSampler replays a fixed list of values, wrapping around at the end.
// It is intended for tests that need to steer a specific branch.
type SequenceSampler struct {
	Values []float64
	next   int
}

// NewSequenceSampler creates a sampler that replays values in order
func NewSequenceSampler(values ...float64) *SequenceSampler {
	return &SequenceSampler{Values: values}
}

// Get1D returns the next value in the sequence
func (s *SequenceSampler) Get1D() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}
