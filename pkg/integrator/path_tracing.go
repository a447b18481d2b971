package integrator

import (
	"math"

	"github.com/raylabs/go-pathtracer/pkg/core"
	"github.com/raylabs/go-pathtracer/pkg/scene"
)

// MinHitDistance is the t_min passed to every scene query; it suppresses
// self-intersection of rays leaving a surface
const MinHitDistance = 0.001

// UnlitColor is returned for surfaces that have no material bound
var UnlitColor = core.Gray

// PathTracingIntegrator implements unidirectional recursive path tracing
type PathTracingIntegrator struct {
	config scene.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config scene.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor traces ray with the configured maximum bounce depth
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scn *scene.Scene, sampler core.Sampler) core.Color {
	return pt.Trace(ray, scn, pt.config.MaxDepth, sampler)
}

// Trace returns the color carried back along ray with depth bounces remaining
func (pt *PathTracingIntegrator) Trace(ray core.Ray, scn *scene.Scene, depth int, sampler core.Sampler) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Black
	}

	var hit core.HitRecord
	if !scn.Hit(ray, MinHitDistance, math.Inf(1), &hit) {
		return scn.Background.Color(ray.Direction)
	}

	if hit.Material == nil {
		return UnlitColor
	}

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		return core.Black
	}

	return scatter.Attenuation.MultiplyColor(pt.Trace(scatter.Scattered, scn, depth-1, sampler))
}
