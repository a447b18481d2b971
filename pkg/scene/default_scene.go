package scene

import (
	"github.com/raylabs/go-pathtracer/pkg/core"
	"github.com/raylabs/go-pathtracer/pkg/geometry"
	"github.com/raylabs/go-pathtracer/pkg/material"
)

// defaultSamplingConfig is shared by the built-in scenes; callers override
// dimensions and sample counts from the command line.
func defaultSamplingConfig(name string) SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 16,
		MaxDepth:        8,
		OutputPath:      "output/" + name + ".png",
	}
}

// NewDefaultScene creates a default scene with spheres, ground, and camera
func NewDefaultScene() *Scene {
	camera := geometry.NewCamera(geometry.CameraConfig{
		Position:    core.NewVec3(0, 0.75, 2), // Higher and farther back
		LookAt:      core.NewVec3(0, 0.5, -1), // The center sphere
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40.0,
		AspectRatio: 16.0 / 9.0,
	})

	s := New(camera, defaultSamplingConfig("default"))

	lambertianGreen := material.NewLambertian(core.NewColor(0.8, 0.8, 0.0).Multiply(0.6))
	lambertianRed := material.NewLambertian(core.NewColor(0.65, 0.25, 0.2))
	metalSilver := material.NewMetal(core.NewColor(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.3)
	materialGlass := material.NewDielectric(1.5)

	s.Add(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), lambertianGreen)
	s.Add(geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5), lambertianRed)
	s.Add(geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5), metalSilver)
	s.Add(geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5), metalGold)
	s.Add(geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25), materialGlass)

	return s
}

// NewGroundScene is the minimal scene: a material-less ground plane under the sky.
// Every ground pixel renders flat gray.
func NewGroundScene() *Scene {
	camera := geometry.NewCamera(geometry.CameraConfig{
		Position:    core.NewVec3(0, 1, 3),
		LookAt:      core.NewVec3(0, 0.3, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        60.0,
		AspectRatio: 16.0 / 9.0,
	})

	config := defaultSamplingConfig("ground")
	config.SamplesPerPixel = 1
	config.MaxDepth = 1
	s := New(camera, config)
	s.AddShape(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)))
	return s
}

// NewCheckerScene shows both checker finishes: a diffuse checker floor and a
// mirror-checker panel behind two spheres
func NewCheckerScene() *Scene {
	camera := geometry.NewCamera(geometry.CameraConfig{
		Position:    core.NewVec3(0, 1.2, 3.5),
		LookAt:      core.NewVec3(0, 0.5, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        45.0,
		AspectRatio: 16.0 / 9.0,
	})

	s := New(camera, defaultSamplingConfig("checker"))

	floor := material.NewChecker(core.NewColor(0.9, 0.9, 0.9), core.NewColor(0.15, 0.15, 0.15), 2, material.CheckerDiffuse)
	panel := material.NewChecker(core.NewColor(0.95, 0.85, 0.6), core.NewColor(0.4, 0.5, 0.7), 4, material.CheckerMirror)

	s.Add(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), floor)

	// Upright panel built from two triangles
	a := core.NewVec3(-2, 0, -1.5)
	b := core.NewVec3(2, 0, -1.5)
	c := core.NewVec3(2, 2, -1.5)
	d := core.NewVec3(-2, 2, -1.5)
	s.Add(geometry.NewTriangle(a, b, c), panel)
	s.Add(geometry.NewTriangle(a, c, d), panel)

	s.Add(geometry.NewSphere(core.NewVec3(-0.6, 0.5, 0), 0.5), material.NewLambertian(core.NewColor(0.7, 0.3, 0.3)))
	s.Add(geometry.NewSphere(core.NewVec3(0.6, 0.5, 0), 0.5), material.NewMetal(core.NewColor(0.8, 0.8, 0.9), 0.05))

	return s
}

// NewGlassScene creates a row of glass spheres with different indices of refraction
func NewGlassScene() *Scene {
	camera := geometry.NewCamera(geometry.CameraConfig{
		Position:    core.NewVec3(0, 1, 4),
		LookAt:      core.NewVec3(0, 0.5, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        35.0,
		AspectRatio: 16.0 / 9.0,
	})

	config := defaultSamplingConfig("glass")
	config.MaxDepth = 16 // Glass needs several bounces to exit
	s := New(camera, config)

	ground := material.NewChecker(core.NewColor(0.8, 0.8, 0.8), core.NewColor(0.3, 0.3, 0.35), 1, material.CheckerDiffuse)
	s.Add(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), ground)

	for i, ior := range []float64{1.1, 1.33, 1.5, 2.4} {
		x := -1.5 + float64(i)
		s.Add(geometry.NewSphere(core.NewVec3(x, 0.4, 0), 0.4), material.NewDielectric(ior))
	}

	// Something colorful behind the glass to refract
	s.Add(geometry.NewSphere(core.NewVec3(0, 0.6, -2.5), 0.6), material.NewLambertian(core.NewColor(0.2, 0.6, 0.3)))

	return s
}
