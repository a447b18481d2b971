package renderer

import (
	"image"
	"time"

	"github.com/raylabs/go-pathtracer/pkg/core"
	"github.com/raylabs/go-pathtracer/pkg/integrator"
	"github.com/raylabs/go-pathtracer/pkg/scene"
)

// Raytracer turns camera rays into pixel colors using an integrator
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	width      int
	height     int
	samples    int
}

// NewRaytracer creates a raytracer for scn. The scene's sampling config fixes
// the image size and samples per pixel.
func NewRaytracer(scn *scene.Scene, integ integrator.Integrator) *Raytracer {
	return &Raytracer{
		scene:      scn,
		integrator: integ,
		width:      scn.SamplingConfig.Width,
		height:     scn.SamplingConfig.Height,
		samples:    scn.SamplingConfig.SamplesPerPixel,
	}
}

// Width returns the image width in pixels
func (rt *Raytracer) Width() int { return rt.width }

// Height returns the image height in pixels
func (rt *Raytracer) Height() int { return rt.height }

// RenderPixel averages SamplesPerPixel jittered samples for pixel (x, y).
// Row 0 is the top of the image.
func (rt *Raytracer) RenderPixel(x, y int, sampler core.Sampler) core.Color {
	var ps PixelStats
	for s := 0; s < rt.samples; s++ {
		jitter := sampler.Get2D()
		u := (float64(x) + jitter.X) / float64(rt.width)
		v := 1.0 - (float64(y)+jitter.Y)/float64(rt.height)

		ray := rt.scene.Camera.GetRay(u, v)
		ps.AddSample(rt.integrator.RayColor(ray, rt.scene, sampler).Clamp01())
	}
	return ps.GetColor().Clamp01()
}

// RenderBounds renders every pixel inside bounds into fb, row by row
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, fb *FrameBuffer, sampler core.Sampler) {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			fb.Set(x, y, rt.RenderPixel(x, y, sampler))
		}
	}
}

// RenderPass renders the whole image on the calling goroutine
func (rt *Raytracer) RenderPass(sampler core.Sampler) (*FrameBuffer, RenderStats) {
	start := time.Now()
	fb := NewFrameBuffer(rt.width, rt.height)
	rt.RenderBounds(image.Rect(0, 0, rt.width, rt.height), fb, sampler)

	stats := newRenderStats(fb, rt.samples, time.Since(start))
	stats.Tiles = 1
	stats.Workers = 1
	return fb, stats
}
