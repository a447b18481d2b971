package renderer

import "github.com/raylabs/go-pathtracer/pkg/core"

// FrameBuffer holds linear pixel colors in row-major order, top row first
type FrameBuffer struct {
	Width  int
	Height int
	Pixels []core.Color
}

// NewFrameBuffer allocates a black frame buffer
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, width*height),
	}
}

// At returns the color at pixel (x, y)
func (fb *FrameBuffer) At(x, y int) core.Color {
	return fb.Pixels[y*fb.Width+x]
}

// Set stores the color at pixel (x, y)
func (fb *FrameBuffer) Set(x, y int, c core.Color) {
	fb.Pixels[y*fb.Width+x] = c
}

// Luminances returns the luminance of every pixel in buffer order
func (fb *FrameBuffer) Luminances() []float64 {
	lum := make([]float64, len(fb.Pixels))
	for i, c := range fb.Pixels {
		lum[i] = c.Luminance()
	}
	return lum
}
