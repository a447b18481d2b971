package material

import (
	"fmt"
	"math"
	"strings"

	"github.com/raylabs/go-pathtracer/pkg/core"
)

// CheckerFinish selects how a checker surface scatters light
type CheckerFinish int

const (
	// CheckerDiffuse scatters like a Lambertian surface tinted by the tile color
	CheckerDiffuse CheckerFinish = iota
	// CheckerMirror reflects perfectly, tinted by the tile color
	CheckerMirror
)

func (f CheckerFinish) String() string {
	switch f {
	case CheckerDiffuse:
		return "diffuse"
	case CheckerMirror:
		return "mirror"
	default:
		return fmt.Sprintf("CheckerFinish(%d)", int(f))
	}
}

// ParseCheckerFinish parses "diffuse" or "mirror", case-insensitively
func ParseCheckerFinish(s string) (CheckerFinish, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "diffuse":
		return CheckerDiffuse, nil
	case "mirror":
		return CheckerMirror, nil
	default:
		return CheckerDiffuse, fmt.Errorf("unknown checker finish %q", s)
	}
}

// Checker is a procedural two-color pattern on the XZ plane.
// Tiles are Scale⁻¹ world units wide.
type Checker struct {
	Color1, Color2 core.Color
	Scale          float64
	Finish         CheckerFinish
}

// NewChecker creates a new checker material. Non-positive scales fall back to 1.
func NewChecker(color1, color2 core.Color, scale float64, finish CheckerFinish) *Checker {
	if scale <= 0 {
		scale = 1
	}
	return &Checker{Color1: color1, Color2: color2, Scale: scale, Finish: finish}
}

// ColorAt returns the tile color at p: Color1 when floor(x·scale)+floor(z·scale) is even
func (c *Checker) ColorAt(p core.Point3) core.Color {
	sum := int64(math.Floor(p.X*c.Scale)) + int64(math.Floor(p.Z*c.Scale))
	if sum%2 == 0 {
		return c.Color1
	}
	return c.Color2
}

// Scatter implements the Material interface. It never absorbs.
func (c *Checker) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	var direction core.Vec3
	switch c.Finish {
	case CheckerMirror:
		direction = core.Reflect(rayIn.Direction.Normalize(), hit.Normal)
	default:
		direction = diffuseDirection(hit.Normal, sampler)
	}

	return core.ScatterResult{
		Scattered:   scatteredRay(hit, direction),
		Attenuation: c.ColorAt(hit.Point),
	}, true
}
