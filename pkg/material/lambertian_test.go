package material

import (
	"math"
	"testing"

	"github.com/raylabs/go-pathtracer/pkg/core"
)

func TestLambertian_Scatter(t *testing.T) {
	albedo := core.NewColor(0.8, 0.3, 0.1)
	lambertian := NewLambertian(albedo)
	sampler := core.NewLCGSampler(42)
	hit := groundHit()
	ray := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1))

	for i := 0; i < 500; i++ {
		scatter, didScatter := lambertian.Scatter(ray, hit, sampler)
		if !didScatter {
			t.Fatal("Lambertian should always scatter")
		}
		if scatter.Attenuation != albedo {
			t.Fatalf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
		}

		dir := scatter.Scattered.Direction
		if math.Abs(dir.Length()-1) > 1e-9 {
			t.Fatalf("Scatter direction %v is not normalized", dir)
		}
		if dir.Dot(hit.Normal) < 0 {
			t.Fatalf("Scatter direction %v points into the surface", dir)
		}
		if got := scatter.Scattered.Origin.Y; math.Abs(got-SurfaceBias) > 1e-12 {
			t.Fatalf("Expected origin offset %g above the surface, got %g", SurfaceBias, got)
		}
	}
}

func TestLambertian_DegenerateFallsBackToNormal(t *testing.T) {
	lambertian := NewLambertian(core.Gray)
	hit := groundHit()

	// The sampled unit vector exactly cancels the normal
	sampler := inUnitSphere(core.NewVec3(0, -0.5, 0))
	scatter, ok := lambertian.Scatter(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), hit, sampler)
	if !ok {
		t.Fatal("Lambertian should always scatter")
	}
	if scatter.Scattered.Direction != hit.Normal {
		t.Errorf("Expected fallback to normal %v, got %v", hit.Normal, scatter.Scattered.Direction)
	}
}

func TestLambertian_CosineDistribution(t *testing.T) {
	lambertian := NewLambertian(core.White)
	sampler := core.NewPCGSampler(1, 2)
	hit := groundHit()
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	// normal + uniform unit vector is cosine distributed: E[cos θ] = 2/3
	var sum float64
	const n = 20000
	for i := 0; i < n; i++ {
		scatter, _ := lambertian.Scatter(ray, hit, sampler)
		sum += scatter.Scattered.Direction.Dot(hit.Normal)
	}
	if mean := sum / n; math.Abs(mean-2.0/3.0) > 0.02 {
		t.Errorf("Expected mean cosine near 2/3, got %f", mean)
	}
}
