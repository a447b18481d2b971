package loaders

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/raylabs/go-pathtracer/pkg/core"
	"github.com/raylabs/go-pathtracer/pkg/geometry"
)

// GLTFData contains the triangle geometry read from a glTF or GLB file
type GLTFData struct {
	Vertices []core.Point3
	Faces    []int // Vertex indices, three per triangle
}

// LoadGLTF reads every triangle primitive of every mesh in a .gltf or .glb
// file. Winding is preserved, so glTF front faces stay front faces.
func LoadGLTF(path string) (*GLTFData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	data := &GLTFData{}
	for _, m := range doc.Meshes {
		if err := readMesh(doc, m, data); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	return data, nil
}

// LoadGLTFMesh loads a glTF file as a triangle mesh, applying options to its vertices
func LoadGLTFMesh(path string, options *geometry.TriangleMeshOptions) (*geometry.TriangleMesh, error) {
	data, err := LoadGLTF(path)
	if err != nil {
		return nil, err
	}
	if len(data.Faces) == 0 {
		return nil, fmt.Errorf("gltf %s contains no triangles", path)
	}
	mesh, err := geometry.NewTriangleMesh(data.Vertices, data.Faces, options)
	if err != nil {
		return nil, fmt.Errorf("build mesh from %s: %w", path, err)
	}
	return mesh, nil
}

func readMesh(doc *gltf.Document, m *gltf.Mesh, data *GLTFData) error {
	for i, prim := range m.Primitives {
		// Skip non-triangle primitives (lines, points, strips)
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		if posIdx < 0 || posIdx >= len(doc.Accessors) {
			return fmt.Errorf("primitive %d: position accessor %d out of range", i, posIdx)
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("primitive %d: read positions: %w", i, err)
		}

		baseVertex := len(data.Vertices)
		for _, p := range positions {
			data.Vertices = append(data.Vertices, core.NewVec3(float64(p[0]), float64(p[1]), float64(p[2])))
		}

		if prim.Indices != nil {
			if *prim.Indices < 0 || *prim.Indices >= len(doc.Accessors) {
				return fmt.Errorf("primitive %d: index accessor %d out of range", i, *prim.Indices)
			}
			indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("primitive %d: read indices: %w", i, err)
			}
			for j := 0; j+2 < len(indices); j += 3 {
				data.Faces = append(data.Faces,
					baseVertex+int(indices[j]),
					baseVertex+int(indices[j+1]),
					baseVertex+int(indices[j+2]))
			}
		} else {
			// No indices, assume sequential triangles
			for j := 0; j+2 < len(positions); j += 3 {
				data.Faces = append(data.Faces, baseVertex+j, baseVertex+j+1, baseVertex+j+2)
			}
		}
	}
	return nil
}
