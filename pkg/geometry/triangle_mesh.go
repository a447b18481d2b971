package geometry

import (
	"fmt"
	"math"

	"github.com/raylabs/go-pathtracer/pkg/core"
)

// TriangleMesh is a collection of triangles intersected with a linear
// closest-hit scan, the same way the scene scans its entities.
type TriangleMesh struct {
	triangles []*Triangle
}

// TriangleMeshOptions contains optional transforms applied to the vertices,
// in the order scale, rotate, translate
type TriangleMeshOptions struct {
	Scale     float64    // Uniform scale; 0 means 1
	Rotation  *core.Vec3 // Optional rotation in radians around X, Y, Z (in that order)
	Center    *core.Vec3 // Optional pivot for scale and rotation
	Translate core.Vec3  // Offset applied last
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices.
// Each group of three indices forms a triangle. options may be nil.
func NewTriangleMesh(vertices []core.Point3, faces []int, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face index count %d is not a multiple of 3", len(faces))
	}

	workingVertices := vertices
	if options != nil {
		workingVertices = make([]core.Point3, len(vertices))
		for i, vertex := range vertices {
			workingVertices[i] = options.apply(vertex)
		}
	}

	numTriangles := len(faces) / 3
	triangles := make([]*Triangle, 0, numTriangles)
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		for _, idx := range []int{i0, i1, i2} {
			if idx < 0 || idx >= len(workingVertices) {
				return nil, fmt.Errorf("triangle %d: vertex index %d out of range [0,%d)", i, idx, len(workingVertices))
			}
		}
		triangles = append(triangles, NewTriangle(workingVertices[i0], workingVertices[i1], workingVertices[i2]))
	}

	return &TriangleMesh{triangles: triangles}, nil
}

// Hit tests if a ray intersects with any triangle in the mesh
func (tm *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64, rec *core.HitRecord) bool {
	hitAnything := false
	closest := tMax
	for _, tri := range tm.triangles {
		if tri.Hit(ray, tMin, closest, rec) {
			hitAnything = true
			closest = rec.T
		}
	}
	return hitAnything
}

// TriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.triangles)
}

// Triangles returns the individual triangles
func (tm *TriangleMesh) Triangles() []*Triangle {
	return tm.triangles
}

func (o *TriangleMeshOptions) apply(vertex core.Point3) core.Point3 {
	if o.Center != nil {
		vertex = vertex.Subtract(*o.Center)
	}
	if o.Scale != 0 {
		vertex = vertex.Multiply(o.Scale)
	}
	if o.Rotation != nil {
		vertex = rotateVertex(vertex, *o.Rotation)
	}
	if o.Center != nil {
		vertex = vertex.Add(*o.Center)
	}
	return vertex.Add(o.Translate)
}

// rotateVertex applies rotation around X, Y, Z axes (in that order)
func rotateVertex(vertex, rotation core.Vec3) core.Vec3 {
	if rotation.X != 0 {
		cos, sin := math.Cos(rotation.X), math.Sin(rotation.X)
		vertex = core.NewVec3(vertex.X, vertex.Y*cos-vertex.Z*sin, vertex.Y*sin+vertex.Z*cos)
	}
	if rotation.Y != 0 {
		cos, sin := math.Cos(rotation.Y), math.Sin(rotation.Y)
		vertex = core.NewVec3(vertex.X*cos+vertex.Z*sin, vertex.Y, -vertex.X*sin+vertex.Z*cos)
	}
	if rotation.Z != 0 {
		cos, sin := math.Cos(rotation.Z), math.Sin(rotation.Z)
		vertex = core.NewVec3(vertex.X*cos-vertex.Y*sin, vertex.X*sin+vertex.Y*cos, vertex.Z)
	}
	return vertex
}
