package loaders

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/raylabs/go-pathtracer/pkg/core"
	"github.com/raylabs/go-pathtracer/pkg/renderer"
)

// DefaultGamma is the display gamma applied when writing images
const DefaultGamma = 2.0

// ToRGBA converts linear colors to an 8-bit image. Each channel is clamped
// to [0,1], raised to 1/gamma and rounded to the nearest level.
func ToRGBA(fb *renderer.FrameBuffer, gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	invGamma := 1.0 / gamma
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.At(x, y).Clamp01()
			img.SetRGBA(x, y, color.RGBA{
				R: quantize(c.R, invGamma),
				G: quantize(c.G, invGamma),
				B: quantize(c.B, invGamma),
				A: 255,
			})
		}
	}
	return img
}

func quantize(v, invGamma float64) uint8 {
	if invGamma != 1 {
		v = math.Pow(v, invGamma)
	}
	return uint8(math.Round(v * 255))
}

// SavePNG writes fb to path as an 8-bit PNG, creating parent directories.
// gamma <= 0 selects DefaultGamma; 1 writes linear values.
func SavePNG(path string, fb *renderer.FrameBuffer, gamma float64) error {
	if gamma <= 0 {
		gamma = DefaultGamma
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	if err := png.Encode(file, ToRGBA(fb, gamma)); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close image file: %w", err)
	}
	return nil
}

// LoadImage loads a PNG or JPEG image as colors in [0,1]. No gamma
// decoding is applied.
func LoadImage(filename string) (*renderer.FrameBuffer, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	fb := renderer.NewFrameBuffer(bounds.Dx(), bounds.Dy())
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			fb.Set(x, y, core.NewColor(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			))
		}
	}
	return fb, nil
}
