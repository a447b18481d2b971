package scene

import (
	"math"

	"github.com/raylabs/go-pathtracer/pkg/core"
	"github.com/raylabs/go-pathtracer/pkg/geometry"
	"github.com/raylabs/go-pathtracer/pkg/material"
)

// NewTriangleMeshScene creates a scene showcasing procedurally built triangle meshes
func NewTriangleMeshScene() *Scene {
	camera := geometry.NewCamera(geometry.CameraConfig{
		Position:    core.NewVec3(0, 3, 6),
		LookAt:      core.NewVec3(0, 0.8, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        45.0,
		AspectRatio: 16.0 / 9.0,
	})

	s := New(camera, defaultSamplingConfig("triangle-mesh"))

	ground := material.NewChecker(core.NewColor(0.75, 0.75, 0.75), core.NewColor(0.35, 0.35, 0.35), 1, material.CheckerDiffuse)
	s.Add(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), ground)

	redMetal := material.NewMetal(core.NewColor(0.8, 0.2, 0.2), 0.1)
	blueLambertian := material.NewLambertian(core.NewColor(0.2, 0.3, 0.8))
	goldMetal := material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.05)

	// Rotated to show multiple faces
	s.Add(mustMesh(createBoxMesh(core.NewVec3(-2, 0.5, 0), core.NewVec3(1, 1, 1), core.NewVec3(0, math.Pi/6, 0))), redMetal)
	s.Add(mustMesh(createPyramidMesh(core.NewVec3(0, 1, 0), 1.5, 2.0, core.NewVec3(0, math.Pi/4, 0))), blueLambertian)
	s.Add(mustMesh(createIcosahedronMesh(core.NewVec3(2, 0.8, 0), 0.8, core.NewVec3(0, math.Pi/3, 0))), goldMetal)

	return s
}

// mustMesh unwraps meshes built from hard-coded index tables, which cannot be malformed
func mustMesh(mesh *geometry.TriangleMesh, err error) *geometry.TriangleMesh {
	if err != nil {
		panic(err)
	}
	return mesh
}

func rotationAbout(center, rotation core.Vec3) *geometry.TriangleMeshOptions {
	if rotation == (core.Vec3{}) {
		return nil
	}
	return &geometry.TriangleMeshOptions{Rotation: &rotation, Center: &center}
}

// createBoxMesh creates a triangle mesh representing a box
func createBoxMesh(center, size, rotation core.Vec3) (*geometry.TriangleMesh, error) {
	halfSize := size.Multiply(0.5)
	vertices := []core.Vec3{
		center.Add(core.NewVec3(-halfSize.X, -halfSize.Y, -halfSize.Z)), // 0: left-bottom-back
		center.Add(core.NewVec3(+halfSize.X, -halfSize.Y, -halfSize.Z)), // 1: right-bottom-back
		center.Add(core.NewVec3(+halfSize.X, +halfSize.Y, -halfSize.Z)), // 2: right-top-back
		center.Add(core.NewVec3(-halfSize.X, +halfSize.Y, -halfSize.Z)), // 3: left-top-back
		center.Add(core.NewVec3(-halfSize.X, -halfSize.Y, +halfSize.Z)), // 4: left-bottom-front
		center.Add(core.NewVec3(+halfSize.X, -halfSize.Y, +halfSize.Z)), // 5: right-bottom-front
		center.Add(core.NewVec3(+halfSize.X, +halfSize.Y, +halfSize.Z)), // 6: right-top-front
		center.Add(core.NewVec3(-halfSize.X, +halfSize.Y, +halfSize.Z)), // 7: left-top-front
	}

	// 2 triangles per face, wound so normals point outward
	faces := []int{
		0, 2, 1, 0, 3, 2, // back (Z-)
		4, 5, 6, 4, 6, 7, // front (Z+)
		0, 4, 7, 0, 7, 3, // left (X-)
		1, 2, 6, 1, 6, 5, // right (X+)
		0, 1, 5, 0, 5, 4, // bottom (Y-)
		3, 7, 6, 3, 6, 2, // top (Y+)
	}

	return geometry.NewTriangleMesh(vertices, faces, rotationAbout(center, rotation))
}

// createPyramidMesh creates a triangle mesh representing a square pyramid
func createPyramidMesh(center core.Vec3, baseSize, height float64, rotation core.Vec3) (*geometry.TriangleMesh, error) {
	halfBase := baseSize * 0.5
	halfHeight := height * 0.5

	vertices := []core.Vec3{
		center.Add(core.NewVec3(-halfBase, -halfHeight, -halfBase)), // 0: left-back
		center.Add(core.NewVec3(+halfBase, -halfHeight, -halfBase)), // 1: right-back
		center.Add(core.NewVec3(+halfBase, -halfHeight, +halfBase)), // 2: right-front
		center.Add(core.NewVec3(-halfBase, -halfHeight, +halfBase)), // 3: left-front
		center.Add(core.NewVec3(0, +halfHeight, 0)),                 // 4: apex
	}

	faces := []int{
		0, 1, 2, 0, 2, 3, // base
		0, 4, 1, // back
		1, 4, 2, // right
		2, 4, 3, // front
		3, 4, 0, // left
	}

	return geometry.NewTriangleMesh(vertices, faces, rotationAbout(center, rotation))
}

// createIcosahedronMesh creates a triangle mesh representing an icosahedron
func createIcosahedronMesh(center core.Vec3, radius float64, rotation core.Vec3) (*geometry.TriangleMesh, error) {
	phi := math.Phi
	// The canonical vertices lie at distance sqrt(1+phi²) from the origin
	scale := radius / math.Sqrt(1+phi*phi)

	vertices := []core.Vec3{
		center.Add(core.NewVec3(-1, phi, 0).Multiply(scale)),  // 0
		center.Add(core.NewVec3(1, phi, 0).Multiply(scale)),   // 1
		center.Add(core.NewVec3(-1, -phi, 0).Multiply(scale)), // 2
		center.Add(core.NewVec3(1, -phi, 0).Multiply(scale)),  // 3
		center.Add(core.NewVec3(0, -1, phi).Multiply(scale)),  // 4
		center.Add(core.NewVec3(0, 1, phi).Multiply(scale)),   // 5
		center.Add(core.NewVec3(0, -1, -phi).Multiply(scale)), // 6
		center.Add(core.NewVec3(0, 1, -phi).Multiply(scale)),  // 7
		center.Add(core.NewVec3(phi, 0, -1).Multiply(scale)),  // 8
		center.Add(core.NewVec3(phi, 0, 1).Multiply(scale)),   // 9
		center.Add(core.NewVec3(-phi, 0, -1).Multiply(scale)), // 10
		center.Add(core.NewVec3(-phi, 0, 1).Multiply(scale)),  // 11
	}

	faces := []int{
		// 5 faces around point 0
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		// 5 adjacent faces
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		// 5 faces around point 3
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		// 5 adjacent faces
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	return geometry.NewTriangleMesh(vertices, faces, rotationAbout(center, rotation))
}
