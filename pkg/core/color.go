package core

import "fmt"

// Color is a linear RGB triple. Components are stored unclamped; arithmetic
// never saturates. Call Clamp01 before quantizing.
type Color struct {
	R, G, B float64
}

// Common colors
var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
	Gray  = Color{0.5, 0.5, 0.5}
)

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Add returns the component-wise sum
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply scales every component by s
func (c Color) Multiply(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// MultiplyColor returns the component-wise product (attenuation ⊙ incoming)
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Clamp01 clamps each component to [0, 1]
func (c Color) Clamp01() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

// Luminance returns the perceptual luminance using 0.299/0.587/0.114 weights
func (c Color) Luminance() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// Lerp linearly interpolates from a (t=0) to b (t=1)
func Lerp(a, b Color, t float64) Color {
	return a.Multiply(1.0 - t).Add(b.Multiply(t))
}

func (c Color) String() string {
	return fmt.Sprintf("(%g,%g,%g)", c.R, c.G, c.B)
}

func clamp01(x float64) float64 {
	return max(0.0, min(1.0, x))
}
