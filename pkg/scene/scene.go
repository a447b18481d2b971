package scene

import (
	"fmt"
	"math"

	"github.com/raylabs/go-pathtracer/pkg/core"
	"github.com/raylabs/go-pathtracer/pkg/geometry"
)

// Entity pairs a shape with the material it is rendered with.
// Material may be nil, in which case the surface is shaded flat gray.
type Entity struct {
	Shape    core.Shape
	Material core.Material
}

// Background is the vertical sky gradient returned for rays that escape the scene
type Background struct {
	Top    core.Color // Color straight up
	Bottom core.Color // Color straight down
}

// DefaultBackground returns the blue-to-white sky
func DefaultBackground() Background {
	return Background{
		Top:    core.NewColor(0.5, 0.7, 1.0),
		Bottom: core.NewColor(1.0, 1.0, 1.0),
	}
}

// Color returns the sky color seen along direction
func (b Background) Color(direction core.Vec3) core.Color {
	t := 0.5 * (direction.Normalize().Y + 1.0)
	return core.Lerp(b.Bottom, b.Top, t)
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int    // Image width
	Height          int    // Image height
	SamplesPerPixel int    // Number of rays per pixel
	MaxDepth        int    // Maximum ray bounce depth
	OutputPath      string // Where the image sink writes
}

// Validate reports structural problems that make a configuration unrenderable
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel < 1 {
		return fmt.Errorf("samples per pixel must be at least 1, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	return nil
}

// Scene contains all the elements needed for rendering.
// It must not be modified while a render is in progress.
type Scene struct {
	Camera         *geometry.Camera
	Entities       []Entity
	Background     Background
	SamplingConfig SamplingConfig
}

// New creates an empty scene with the default sky
func New(camera *geometry.Camera, config SamplingConfig) *Scene {
	return &Scene{
		Camera:         camera,
		Background:     DefaultBackground(),
		SamplingConfig: config,
	}
}

// Add appends a shape rendered with material
func (s *Scene) Add(shape core.Shape, material core.Material) {
	s.Entities = append(s.Entities, Entity{Shape: shape, Material: material})
}

// AddShape appends a shape with no material
func (s *Scene) AddShape(shape core.Shape) {
	s.Add(shape, nil)
}

// Hit finds the closest entity hit by ray in [tMin, tMax] with a linear scan.
// On success rec carries the hit entity's material.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64, rec *core.HitRecord) bool {
	var temp core.HitRecord
	hitAnything := false
	closest := tMax

	for _, e := range s.Entities {
		if e.Shape.Hit(ray, tMin, closest, &temp) {
			hitAnything = true
			closest = temp.T
			temp.Material = e.Material
			*rec = temp
		}
	}

	return hitAnything
}

// Resize changes the output dimensions and re-derives the camera's aspect ratio
func (s *Scene) Resize(width, height int) {
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = height
	if s.Camera != nil && height > 0 {
		s.Camera.AspectRatio = float64(width) / float64(height)
		s.Camera.Initialize()
	}
}

// Validate checks that the scene can be rendered
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return fmt.Errorf("scene has no camera")
	}
	if math.IsNaN(s.Camera.VFov) || s.Camera.VFov <= 0 || s.Camera.VFov >= 180 {
		return fmt.Errorf("camera field of view must be in (0, 180) degrees, got %g", s.Camera.VFov)
	}
	return s.SamplingConfig.Validate()
}

// PrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) PrimitiveCount() int {
	count := 0
	for _, e := range s.Entities {
		switch obj := e.Shape.(type) {
		case *geometry.TriangleMesh:
			count += obj.TriangleCount()
		default:
			count++
		}
	}
	return count
}
