// Package material implements the surface scattering models.
//
// Materials are immutable after construction and may be shared by any number
// of scene entities and render goroutines.
package material

import "github.com/raylabs/go-pathtracer/pkg/core"

// SurfaceBias is the distance a scattered ray's origin is pushed off the surface
const SurfaceBias = 0.001

// scatteredRay builds a ray leaving hit.Point in direction, with the origin
// offset along the normal onto the side the ray leaves through.
func scatteredRay(hit core.HitRecord, direction core.Vec3) core.Ray {
	offset := hit.Normal.Multiply(SurfaceBias)
	if direction.Dot(hit.Normal) < 0 {
		offset = offset.Negate()
	}
	return core.NewRay(hit.Point.Add(offset), direction)
}
