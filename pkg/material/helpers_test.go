package material

import "github.com/raylabs/go-pathtracer/pkg/core"

// fixedSampler returns the same values on every call
type fixedSampler struct {
	value float64
	point core.Vec3
}

func (f fixedSampler) Get1D() float64 { return f.value }
func (f fixedSampler) Get2D() core.Vec2 { return core.NewVec2(f.value, f.value) }
func (f fixedSampler) Get3D() core.Vec3 { return f.point }

// inUnitSphere returns a sampler whose RandomInUnitSphere draw is exactly p
func inUnitSphere(p core.Vec3) fixedSampler {
	return fixedSampler{value: 0.5, point: core.NewVec3((p.X+1)/2, (p.Y+1)/2, (p.Z+1)/2)}
}

func groundHit() core.HitRecord {
	return core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: true,
	}
}
