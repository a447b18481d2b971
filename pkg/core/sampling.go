package core

import (
	"math/rand/v2"
)

// Sampler provides random sampling for rendering algorithms.
// A sampler is owned by exactly one goroutine at a time.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewPCGSampler creates a RandomSampler backed by a PCG source
func NewPCGSampler(seed, stream uint64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewPCG(seed, stream)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// LCGSampler is a small linear-congruential generator with an integer hash
// finalizer. Its whole state is one uint32, so it is cheap to give every tile
// its own stream.
type LCGSampler struct {
	seed uint32
}

// NewLCGSampler creates an LCG sampler. The same seed always yields the same sequence.
func NewLCGSampler(seed uint32) *LCGSampler {
	return &LCGSampler{seed: seed}
}

func (l *LCGSampler) next() uint32 {
	l.seed = l.seed*1103515245 + 12345
	l.seed = (l.seed << 16) ^ (l.seed >> 16)
	l.seed = l.seed*224250251 + 198491317
	l.seed = (l.seed << 13) ^ (l.seed >> 19)
	return l.seed
}

// Get1D returns a random float64 in [0, 1)
func (l *LCGSampler) Get1D() float64 {
	return float64(l.next()&0x7FFFFFFF) / 2147483648.0
}

// Get2D returns two random float64 values in [0, 1)
func (l *LCGSampler) Get2D() Vec2 {
	return NewVec2(l.Get1D(), l.Get1D())
}

// Get3D returns three random float64 values in [0, 1)
func (l *LCGSampler) Get3D() Vec3 {
	return NewVec3(l.Get1D(), l.Get1D(), l.Get1D())
}

// StreamSeed derives the seed for stream index from a base seed, so that
// neighbouring streams start far apart.
func StreamSeed(base uint64, index int) uint64 {
	z := base + uint64(index+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// RandomFloat returns a value in [lo, hi)
func RandomFloat(sampler Sampler, lo, hi float64) float64 {
	return lo + (hi-lo)*sampler.Get1D()
}

// RandomInUnitSphere returns a point strictly inside the unit sphere by rejection sampling
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		s := sampler.Get3D()
		p := NewVec3(2*s.X-1, 2*s.Y-1, 2*s.Z-1)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// RandomUnitVector returns a uniformly distributed direction on the unit sphere
func RandomUnitVector(sampler Sampler) Vec3 {
	for {
		p := RandomInUnitSphere(sampler)
		// Points too close to the origin lose precision when normalized
		if p.LengthSquared() > 1e-160 {
			return p.Normalize()
		}
	}
}
