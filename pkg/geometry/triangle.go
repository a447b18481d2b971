package geometry

import (
	"github.com/raylabs/go-pathtracer/pkg/core"
)

// Triangle represents a single triangle defined by three vertices.
// Winding determines the outward normal: cross(V1-V0, V2-V0).
type Triangle struct {
	V0, V1, V2 core.Point3
	normal     core.Vec3 // Cached outward normal
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Point3) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2}
	t.normal = v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	return t
}

// Normal returns the triangle's outward normal. Zero for degenerate triangles.
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64, rec *core.HitRecord) bool {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	det := edge1.Dot(h)

	// Ray lies in the plane of the triangle, or the triangle has no area
	if det > -Epsilon && det < Epsilon {
		return false
	}

	f := 1.0 / det
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return false
	}

	tHit := f * edge2.Dot(q)
	if tHit < tMin || tHit > tMax {
		return false
	}

	rec.T = tHit
	rec.Point = ray.At(tHit)
	rec.SetFaceNormal(ray, t.normal)
	return true
}
