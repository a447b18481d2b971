package scene

import (
	"fmt"
	"sort"
)

// BuiltinGroup is the discovery group every built-in scene belongs to
const BuiltinGroup = "Built-in Scenes"

type builtin struct {
	info SceneInfo
	new  func() *Scene
}

var builtins = map[string]builtin{
	"default": {
		info: SceneInfo{Name: "Default Scene", Description: "Basic scene with spheres and plane ground"},
		new:  NewDefaultScene,
	},
	"ground": {
		info: SceneInfo{Name: "Ground Plane", Description: "Material-less plane under the sky gradient"},
		new:  NewGroundScene,
	},
	"checker": {
		info: SceneInfo{Name: "Checker", Description: "Diffuse and mirror checker surfaces"},
		new:  NewCheckerScene,
	},
	"glass": {
		info: SceneInfo{Name: "Glass", Description: "Glass spheres with increasing index of refraction"},
		new:  NewGlassScene,
	},
	"sphere-grid": {
		info: SceneInfo{Name: "Sphere Grid", Description: "10x10 grid of rainbow-colored metallic spheres"},
		new:  NewSphereGridScene,
	},
	"triangle-mesh": {
		info: SceneInfo{Name: "Triangle Mesh", Description: "Box, pyramid and icosahedron meshes"},
		new:  NewTriangleMeshScene,
	},
}

// NewBuiltin constructs the built-in scene registered under id
func NewBuiltin(id string) (*Scene, error) {
	b, ok := builtins[id]
	if !ok {
		return nil, fmt.Errorf("unknown built-in scene %q", id)
	}
	return b.new(), nil
}

// IsBuiltin reports whether id names a built-in scene
func IsBuiltin(id string) bool {
	_, ok := builtins[id]
	return ok
}

// ListBuiltinScenes returns the built-in scenes sorted by id
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtins))
	for id, b := range builtins {
		info := b.info
		info.ID = id
		info.DisplayName = info.Name
		info.Group = BuiltinGroup
		info.Type = "builtin"
		scenes = append(scenes, info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}
