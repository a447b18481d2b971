package core

// Shape is any surface that can be intersected by a ray.
//
// Hit reports the nearest intersection with t in [tMin, tMax]. On a miss it
// returns false and leaves rec untouched.
type Shape interface {
	Hit(ray Ray, tMin, tMax float64, rec *HitRecord) bool
}

// Material decides how light leaving a surface is produced from light arriving at it.
//
// Scatter returns false when the ray is absorbed.
type Material interface {
	Scatter(rayIn Ray, hit HitRecord, sampler Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray   // The outgoing ray
	Attenuation Color // Fraction of incoming light preserved
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Point3   // Point of intersection
	Normal    Vec3     // Surface normal, always opposing the incoming ray
	T         float64  // Parameter t along the ray
	FrontFace bool     // Whether ray hit the side the outward normal points to
	Material  Material // Material of the hit entity, nil when none is bound
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Logger interface for raytracer logging
type Logger interface {
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Infof(format string, args ...interface{})    {}
func (NopLogger) Warningf(format string, args ...interface{}) {}
