package geometry

import (
	"math"
	"testing"

	"github.com/raylabs/go-pathtracer/pkg/core"
)

func TestPlane_Hit_BasicIntersection(t *testing.T) {
	// Horizontal plane at y=0
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	// Ray shooting down from above
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	var hit core.HitRecord
	if !plane.Hit(ray, 0.001, 1000.0, &hit) {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("Expected t=1, got t=%f", hit.T)
	}
	if hit.Point.Subtract(core.NewVec3(0, 0, 0)).Length() > 1e-9 {
		t.Errorf("Expected hit point at origin, got %v", hit.Point)
	}
}

func TestPlane_Hit_CrossingRays(t *testing.T) {
	tests := []struct {
		name   string
		point  core.Point3
		normal core.Vec3
		origin core.Point3
		dir    core.Vec3
	}{
		{"ground from above", core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(0.3, 2, -1), core.NewVec3(0.1, -1, 0.2)},
		{"ground from below", core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, -3, 0), core.NewVec3(0.5, 1, 0)},
		{"tilted wall", core.NewVec3(1, 2, 3), core.NewVec3(1, 1, 0), core.NewVec3(-5, 0, 0), core.NewVec3(1, 0.2, 0.1)},
		{"unnormalized normal", core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 10), core.NewVec3(0, 0, 0), core.NewVec3(0.2, 0.1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plane := NewPlane(tt.point, tt.normal)
			ray := core.NewRay(tt.origin, tt.dir)

			var hit core.HitRecord
			if !plane.Hit(ray, 0.001, 1000.0, &hit) {
				t.Fatal("Expected hit, but got miss")
			}
			if hit.T <= 0 {
				t.Errorf("Expected positive t, got %f", hit.T)
			}
			if d := hit.Point.Subtract(tt.point).Dot(plane.Normal); math.Abs(d) > 1e-9 {
				t.Errorf("Hit point %v is %g off the plane", hit.Point, d)
			}
			wantFront := tt.dir.Dot(plane.Normal) < 0
			if hit.FrontFace != wantFront {
				t.Errorf("Expected front face %t, got %t", wantFront, hit.FrontFace)
			}
			if hit.Normal.Dot(tt.dir) >= 0 {
				t.Errorf("Normal %v should oppose ray direction %v", hit.Normal, tt.dir)
			}
		})
	}
}

func TestPlane_Hit_ParallelRay(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	tests := []struct {
		name   string
		origin core.Point3
		dir    core.Vec3
	}{
		{"above", core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0)},
		{"in plane", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)},
		{"nearly parallel", core.NewVec3(0, 1e-3, 0), core.NewVec3(1, -1e-8, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hit core.HitRecord
			if plane.Hit(core.NewRay(tt.origin, tt.dir), 0.001, 1e12, &hit) {
				t.Errorf("Expected miss for parallel ray, but got hit at t=%f", hit.T)
			}
		})
	}
}

func TestPlane_Hit_BehindRay(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	// Intersection behind the ray origin
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))

	var hit core.HitRecord
	if plane.Hit(ray, 0.001, 1000.0, &hit) {
		t.Errorf("Expected miss for intersection behind ray, but got hit at t=%f", hit.T)
	}
}

func TestPlane_Hit_MissLeavesRecordUntouched(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	hit := core.HitRecord{T: 42, Point: core.NewVec3(9, 9, 9)}
	before := hit
	// Intersection at t=1 lies beyond tMax
	if plane.Hit(ray, 0.001, 0.5, &hit) {
		t.Fatal("Expected miss beyond tMax")
	}
	if hit != before {
		t.Errorf("Record changed on miss: %+v", hit)
	}
}
