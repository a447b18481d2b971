package geometry

import (
	"math"

	"github.com/raylabs/go-pathtracer/pkg/core"
)

// CameraConfig contains the user-facing camera parameters
type CameraConfig struct {
	Position    core.Point3 // Eye position
	LookAt      core.Point3 // Point the camera looks at
	Up          core.Vec3   // Up direction; must not be parallel to LookAt-Position
	VFov        float64     // Vertical field of view in degrees
	AspectRatio float64     // Viewport width / height
}

// Camera generates primary rays through a pinhole viewport.
//
// The derived basis is only recomputed by Initialize. After changing any
// CameraConfig field, call Initialize again.
type Camera struct {
	CameraConfig

	u, v, w         core.Vec3
	lowerLeftCorner core.Point3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera creates an initialized camera
func NewCamera(config CameraConfig) *Camera {
	c := &Camera{CameraConfig: config}
	c.Initialize()
	return c
}

// Initialize derives the orthonormal basis and viewport from the config
func (c *Camera) Initialize() {
	theta := c.VFov * math.Pi / 180.0
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := c.AspectRatio * viewportHeight

	c.w = c.Position.Subtract(c.LookAt).Normalize()
	c.u = c.Up.Cross(c.w).Normalize()
	c.v = c.w.Cross(c.u)

	c.horizontal = c.u.Multiply(viewportWidth)
	c.vertical = c.v.Multiply(viewportHeight)
	c.lowerLeftCorner = c.Position.
		Subtract(c.horizontal.Multiply(0.5)).
		Subtract(c.vertical.Multiply(0.5)).
		Subtract(c.w)
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1.
// (0,0) is the lower-left corner of the viewport.
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.Position)

	return core.NewRay(c.Position, direction)
}

// Forward returns the unit view direction
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}

// Basis returns the camera's right, up and backward unit vectors
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}
