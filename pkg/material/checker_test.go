package material

import (
	"testing"

	"github.com/raylabs/go-pathtracer/pkg/core"
)

func TestChecker_ColorAt(t *testing.T) {
	light := core.NewColor(0.9, 0.9, 0.9)
	dark := core.NewColor(0.1, 0.1, 0.1)
	checker := NewChecker(light, dark, 2, CheckerDiffuse)

	tests := []struct {
		name string
		p    core.Point3
		want core.Color
	}{
		{"origin tile", core.NewVec3(0.1, 5, 0.1), light},
		{"next along x", core.NewVec3(0.6, 0, 0.1), dark},
		{"next along z", core.NewVec3(0.1, 0, 0.6), dark},
		{"diagonal", core.NewVec3(0.6, 0, 0.6), light},
		{"negative x", core.NewVec3(-0.1, 0, 0.1), dark},
		{"negative both", core.NewVec3(-0.1, 0, -0.1), light},
		{"y is ignored", core.NewVec3(0.6, -100, 0.1), dark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.ColorAt(tt.p); got != tt.want {
				t.Errorf("ColorAt(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestChecker_NonPositiveScale(t *testing.T) {
	checker := NewChecker(core.White, core.Black, 0, CheckerDiffuse)
	if checker.Scale != 1 {
		t.Errorf("Expected scale 1, got %f", checker.Scale)
	}
}

func TestChecker_MirrorFinish(t *testing.T) {
	checker := NewChecker(core.White, core.Black, 1, CheckerMirror)
	hit := groundHit()
	hit.Point = core.NewVec3(0.5, 0, 0.5)
	ray := core.NewRay(core.NewVec3(-0.5, 1, 0.5), core.NewVec3(1, -1, 0))

	// Mirror finish does not consume randomness; two different samplers agree
	a, okA := checker.Scatter(ray, hit, core.NewLCGSampler(1))
	b, okB := checker.Scatter(ray, hit, core.NewLCGSampler(2))
	if !okA || !okB {
		t.Fatal("Checker should always scatter")
	}
	if a != b {
		t.Errorf("Mirror finish should be deterministic: %+v vs %+v", a, b)
	}

	want := core.NewVec3(1, 1, 0).Normalize()
	if a.Scattered.Direction.Subtract(want).Length() > 1e-9 {
		t.Errorf("Expected mirror direction %v, got %v", want, a.Scattered.Direction)
	}
	if a.Attenuation != core.White {
		t.Errorf("Expected tile color white, got %v", a.Attenuation)
	}
}

func TestChecker_DiffuseFinish(t *testing.T) {
	checker := NewChecker(core.White, core.Black, 1, CheckerDiffuse)
	hit := groundHit()
	hit.Point = core.NewVec3(1.5, 0, 0.5)
	ray := core.NewRay(core.NewVec3(1.5, 1, 0.5), core.NewVec3(0, -1, 0))
	sampler := core.NewLCGSampler(3)

	for i := 0; i < 100; i++ {
		result, ok := checker.Scatter(ray, hit, sampler)
		if !ok {
			t.Fatal("Checker should always scatter")
		}
		if result.Attenuation != core.Black {
			t.Fatalf("Expected dark tile, got %v", result.Attenuation)
		}
		if result.Scattered.Direction.Dot(hit.Normal) < 0 {
			t.Fatalf("Diffuse direction %v points into the surface", result.Scattered.Direction)
		}
	}
}

func TestParseCheckerFinish(t *testing.T) {
	tests := []struct {
		in      string
		want    CheckerFinish
		wantErr bool
	}{
		{"", CheckerDiffuse, false},
		{"diffuse", CheckerDiffuse, false},
		{"Mirror", CheckerMirror, false},
		{" MIRROR ", CheckerMirror, false},
		{"glossy", CheckerDiffuse, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCheckerFinish(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCheckerFinish(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCheckerFinish(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
