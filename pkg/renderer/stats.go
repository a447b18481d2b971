package renderer

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/raylabs/go-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of samples taken
	SamplesPerPixel int           // Samples taken for each pixel
	Tiles           int           // Number of tiles rendered
	Workers         int           // Number of goroutines that rendered tiles
	MeanLuminance   float64       // Mean pixel luminance of the final image
	StdDevLuminance float64       // Standard deviation of pixel luminance
	Elapsed         time.Duration // Wall time of the render
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Color // RGB accumulator for final result
	SampleCount int        // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Color) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Color {
	if ps.SampleCount == 0 {
		return core.Black
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// LuminanceStats returns the mean and standard deviation of pixel luminance.
// Single-pixel buffers report a zero deviation.
func LuminanceStats(fb *FrameBuffer) (mean, stdDev float64) {
	lum := fb.Luminances()
	switch len(lum) {
	case 0:
		return 0, 0
	case 1:
		return lum[0], 0
	}
	return stat.MeanStdDev(lum, nil)
}

// newRenderStats fills in the image-derived statistics for a finished buffer
func newRenderStats(fb *FrameBuffer, samplesPerPixel int, elapsed time.Duration) RenderStats {
	mean, stdDev := LuminanceStats(fb)
	pixels := fb.Width * fb.Height
	return RenderStats{
		TotalPixels:     pixels,
		TotalSamples:    pixels * samplesPerPixel,
		SamplesPerPixel: samplesPerPixel,
		MeanLuminance:   mean,
		StdDevLuminance: stdDev,
		Elapsed:         elapsed,
	}
}
