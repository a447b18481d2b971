package geometry

import (
	"math"

	"github.com/raylabs/go-pathtracer/pkg/core"
)

// Epsilon guards near-zero denominators in the intersection routines
const Epsilon = 1e-6

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point  core.Point3 // A point on the plane
	Normal core.Vec3   // Unit normal vector
}

// NewPlane creates a new plane. The normal is normalized here so Hit can assume unit length.
func NewPlane(point core.Point3, normal core.Vec3) *Plane {
	return &Plane{
		Point:  point,
		Normal: normal.Normalize(),
	}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64, rec *core.HitRecord) bool {
	denominator := ray.Direction.Dot(p.Normal)

	// Parallel (or nearly so) rays never intersect
	if math.Abs(denominator) < Epsilon {
		return false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < tMin || t > tMax {
		return false
	}

	rec.T = t
	rec.Point = ray.At(t)
	rec.SetFaceNormal(ray, p.Normal)
	return true
}
