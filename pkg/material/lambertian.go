package material

import (
	"github.com/raylabs/go-pathtracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Color // Base color/reflectance
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Color) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering
func (l *Lambertian) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	return core.ScatterResult{
		Scattered:   scatteredRay(hit, diffuseDirection(hit.Normal, sampler)),
		Attenuation: l.Albedo,
	}, true
}

// diffuseDirection returns normal + a uniform unit vector, normalized.
// When the two nearly cancel the normal itself is used.
func diffuseDirection(normal core.Vec3, sampler core.Sampler) core.Vec3 {
	direction := normal.Add(core.RandomUnitVector(sampler))
	if direction.LengthSquared() < 1e-8 {
		return normal
	}
	return direction.Normalize()
}
