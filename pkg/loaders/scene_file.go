package loaders

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/raylabs/go-pathtracer/pkg/core"
	"github.com/raylabs/go-pathtracer/pkg/geometry"
	"github.com/raylabs/go-pathtracer/pkg/material"
	"github.com/raylabs/go-pathtracer/pkg/scene"
)

// ErrInvalidScene is wrapped by every structural error in a scene description
var ErrInvalidScene = errors.New("invalid scene")

// Defaults applied when a scene description leaves a value out
const (
	DefaultWidth      = 800
	DefaultHeight     = 450
	DefaultSamples    = 1
	DefaultMaxDepth   = 4
	DefaultOutputPath = "output/render.png"
	DefaultFov        = 45.0
	DefaultIOR        = 1.5
)

// DefaultAlbedo is used by lambertian and metal materials without an albedo
var DefaultAlbedo = core.NewColor(0.8, 0.8, 0.8)

// SceneFile is the document layout of a YAML or JSON scene description
type SceneFile struct {
	Image      *ImageSpec      `yaml:"image"`
	Camera     *CameraSpec     `yaml:"camera"`
	Background *BackgroundSpec `yaml:"background"`
	Materials  yaml.Node       `yaml:"materials"`
	Objects    yaml.Node       `yaml:"objects"`
	Lights     yaml.Node       `yaml:"lights"`
}

// ImageSpec describes the output image and sampling
type ImageSpec struct {
	Width    *int    `yaml:"width"`
	Height   *int    `yaml:"height"`
	Samples  *int    `yaml:"samples"`
	MaxDepth *int    `yaml:"max_depth"`
	Output   *string `yaml:"output"`
}

// CameraSpec describes the camera. LookFrom and VFov are accepted as
// aliases of Position and Fov.
type CameraSpec struct {
	Position    []float64 `yaml:"position"`
	LookFrom    []float64 `yaml:"look_from"`
	LookAt      []float64 `yaml:"look_at"`
	Up          []float64 `yaml:"up"`
	Fov         *float64  `yaml:"fov"`
	VFov        *float64  `yaml:"vfov"`
	AspectRatio *float64  `yaml:"aspect_ratio"`
}

// BackgroundSpec describes the sky gradient
type BackgroundSpec struct {
	Top    []float64 `yaml:"top"`
	Bottom []float64 `yaml:"bottom"`
}

// MaterialSpec describes one material. Fuzz is an alias of Roughness.
type MaterialSpec struct {
	Type      string    `yaml:"type"`
	Albedo    []float64 `yaml:"albedo"`
	Roughness *float64  `yaml:"roughness"`
	Fuzz      *float64  `yaml:"fuzz"`
	IOR       *float64  `yaml:"ior"`
	Color1    []float64 `yaml:"color1"`
	Color2    []float64 `yaml:"color2"`
	Scale     *float64  `yaml:"scale"`
	Finish    string    `yaml:"finish"`
}

// MaterialRef is either the id of an entry in the materials block or an
// inline material definition
type MaterialRef struct {
	ID     string
	Inline *MaterialSpec
}

// UnmarshalYAML accepts a scalar id or a mapping
func (r *MaterialRef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&r.ID)
	case yaml.MappingNode:
		r.Inline = &MaterialSpec{}
		return node.Decode(r.Inline)
	default:
		return fmt.Errorf("line %d: material must be an id or an object", node.Line)
	}
}

// ObjectSpec describes one object. Which fields are required depends on Type.
type ObjectSpec struct {
	Type     string       `yaml:"type"`
	Material *MaterialRef `yaml:"material"`

	// sphere
	Center []float64 `yaml:"center"`
	Radius *float64  `yaml:"radius"`

	// plane
	Point  []float64 `yaml:"point"`
	Normal []float64 `yaml:"normal"`

	// triangle
	A []float64 `yaml:"a"`
	B []float64 `yaml:"b"`
	C []float64 `yaml:"c"`

	// mesh
	Path      string    `yaml:"path"`
	Scale     *float64  `yaml:"scale"`
	Rotate    []float64 `yaml:"rotate"` // degrees around X, Y, Z
	Translate []float64 `yaml:"translate"`
}

// SceneLoader turns scene descriptions into scenes. Soft problems are
// reported to Logger and replaced by defaults.
type SceneLoader struct {
	Logger core.Logger
}

// NewSceneLoader creates a loader that warns through logger
func NewSceneLoader(logger core.Logger) *SceneLoader {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &SceneLoader{Logger: logger}
}

// LoadSceneFile reads and builds the scene at path. Mesh paths inside the
// file are resolved relative to its directory.
func LoadSceneFile(path string, logger core.Logger) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	s, err := NewSceneLoader(logger).Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidScene, fmt.Sprintf(format, args...))
}

// Parse builds a scene from a YAML or JSON document. baseDir anchors
// relative mesh paths.
func (l *SceneLoader) Parse(data []byte, baseDir string) (*scene.Scene, error) {
	var doc SceneFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, invalidf("parse error: %v", err)
	}

	config, err := l.samplingConfig(doc.Image)
	if err != nil {
		return nil, err
	}
	camera, err := l.camera(doc.Camera, config)
	if err != nil {
		return nil, err
	}

	s := scene.New(camera, config)
	if doc.Background != nil {
		if s.Background, err = background(doc.Background); err != nil {
			return nil, err
		}
	}

	materials, err := l.materials(&doc.Materials)
	if err != nil {
		return nil, err
	}
	if err := l.objects(&doc.Objects, materials, baseDir, s); err != nil {
		return nil, err
	}

	if !absent(&doc.Lights) {
		l.Logger.Warningf("Ignoring 'lights' block: the path tracer lights scenes with the background only")
	}
	return s, nil
}

func (l *SceneLoader) samplingConfig(spec *ImageSpec) (scene.SamplingConfig, error) {
	config := scene.SamplingConfig{
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		SamplesPerPixel: DefaultSamples,
		MaxDepth:        DefaultMaxDepth,
		OutputPath:      DefaultOutputPath,
	}
	if spec == nil {
		l.Logger.Warningf("Missing 'image' block; using defaults")
		return config, nil
	}

	if spec.Width != nil {
		config.Width = *spec.Width
	}
	if spec.Height != nil {
		config.Height = *spec.Height
	}
	if config.Width <= 0 || config.Height <= 0 {
		return config, invalidf("image.width and image.height must be > 0, got %dx%d", config.Width, config.Height)
	}
	if spec.Samples != nil {
		config.SamplesPerPixel = *spec.Samples
		if config.SamplesPerPixel <= 0 {
			l.Logger.Warningf("image.samples = %d; clamping to 1", config.SamplesPerPixel)
			config.SamplesPerPixel = 1
		}
	}
	if spec.MaxDepth != nil {
		config.MaxDepth = *spec.MaxDepth
		if config.MaxDepth < 0 {
			l.Logger.Warningf("image.max_depth = %d; clamping to 0", config.MaxDepth)
			config.MaxDepth = 0
		}
	}
	if spec.Output != nil && *spec.Output != "" {
		config.OutputPath = *spec.Output
	}
	return config, nil
}

func (l *SceneLoader) camera(spec *CameraSpec, config scene.SamplingConfig) (*geometry.Camera, error) {
	cc := geometry.CameraConfig{
		Position:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        DefaultFov,
		AspectRatio: float64(config.Width) / float64(config.Height),
	}
	if spec == nil {
		l.Logger.Warningf("Missing 'camera' block; using defaults")
		return geometry.NewCamera(cc), nil
	}

	position := spec.Position
	positionPath := "camera.position"
	if position == nil && spec.LookFrom != nil {
		position, positionPath = spec.LookFrom, "camera.look_from"
	}
	var err error
	if position != nil {
		if cc.Position, err = vec3(position, positionPath); err != nil {
			return nil, err
		}
	}
	if spec.LookAt != nil {
		if cc.LookAt, err = vec3(spec.LookAt, "camera.look_at"); err != nil {
			return nil, err
		}
	}
	if spec.Up != nil {
		if cc.Up, err = vec3(spec.Up, "camera.up"); err != nil {
			return nil, err
		}
	}

	switch {
	case spec.Fov != nil:
		cc.VFov = *spec.Fov
	case spec.VFov != nil:
		cc.VFov = *spec.VFov
	}
	if err := finite(cc.VFov, "camera.fov"); err != nil {
		return nil, err
	}
	if cc.VFov <= 1 || cc.VFov >= 179 {
		l.Logger.Warningf("camera.fov = %g is out of the typical range; check it is in degrees", cc.VFov)
	}

	if spec.AspectRatio != nil && *spec.AspectRatio > 0 && !math.IsInf(*spec.AspectRatio, 0) {
		cc.AspectRatio = *spec.AspectRatio
	}
	return geometry.NewCamera(cc), nil
}

func background(spec *BackgroundSpec) (scene.Background, error) {
	bg := scene.DefaultBackground()
	var err error
	if spec.Top != nil {
		if bg.Top, err = color3(spec.Top, "background.top"); err != nil {
			return bg, err
		}
	}
	if spec.Bottom != nil {
		if bg.Bottom, err = color3(spec.Bottom, "background.bottom"); err != nil {
			return bg, err
		}
	}
	return bg, nil
}

func (l *SceneLoader) materials(node *yaml.Node) (map[string]core.Material, error) {
	materials := map[string]core.Material{}
	if absent(node) {
		return materials, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, invalidf("'materials' must be an object (id -> material), line %d", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		id := node.Content[i].Value
		path := "materials." + id

		var spec MaterialSpec
		if err := node.Content[i+1].Decode(&spec); err != nil {
			return nil, invalidf("%s: %v", path, err)
		}
		m, err := l.material(&spec, path)
		if err != nil {
			return nil, err
		}
		materials[id] = m
	}
	return materials, nil
}

func (l *SceneLoader) material(spec *MaterialSpec, path string) (core.Material, error) {
	if spec.Type == "" {
		return nil, invalidf("%s is missing field 'type'", path)
	}

	albedo := DefaultAlbedo
	if spec.Albedo != nil {
		var err error
		if albedo, err = color3(spec.Albedo, path+".albedo"); err != nil {
			return nil, err
		}
	}

	switch strings.ToLower(spec.Type) {
	case "lambertian", "diffuse":
		return material.NewLambertian(albedo), nil

	case "metal":
		fuzz := 0.0
		fuzzPath := path + ".roughness"
		switch {
		case spec.Roughness != nil:
			fuzz = *spec.Roughness
		case spec.Fuzz != nil:
			fuzz, fuzzPath = *spec.Fuzz, path+".fuzz"
		}
		if err := finite(fuzz, fuzzPath); err != nil {
			return nil, err
		}
		if fuzz < 0 || fuzz > 1 {
			clamped := math.Max(0, math.Min(1, fuzz))
			l.Logger.Warningf("%s.roughness = %g; clamping to %g", path, fuzz, clamped)
			fuzz = clamped
		}
		return material.NewMetal(albedo, fuzz), nil

	case "dielectric", "glass":
		ior := DefaultIOR
		if spec.IOR != nil {
			ior = *spec.IOR
			if err := finite(ior, path+".ior"); err != nil {
				return nil, err
			}
		}
		if ior < 1 {
			l.Logger.Warningf("%s.ior = %g < 1; clamping to 1", path, ior)
			ior = 1
		}
		return material.NewDielectric(ior), nil

	case "checker":
		color1 := core.NewColor(0.8, 0.8, 0.8)
		color2 := core.NewColor(0.2, 0.2, 0.2)
		var err error
		if spec.Color1 != nil {
			if color1, err = color3(spec.Color1, path+".color1"); err != nil {
				return nil, err
			}
		}
		if spec.Color2 != nil {
			if color2, err = color3(spec.Color2, path+".color2"); err != nil {
				return nil, err
			}
		}
		scale := 1.0
		if spec.Scale != nil {
			scale = *spec.Scale
			if err := finite(scale, path+".scale"); err != nil {
				return nil, err
			}
			if scale <= 0 {
				l.Logger.Warningf("%s.scale = %g; using 1", path, scale)
				scale = 1
			}
		}
		finish := material.CheckerDiffuse
		if spec.Finish != "" {
			if finish, err = material.ParseCheckerFinish(spec.Finish); err != nil {
				l.Logger.Warningf("%s: %v; using diffuse", path, err)
			}
		}
		return material.NewChecker(color1, color2, scale, finish), nil

	default:
		return nil, invalidf("%s: unknown material type %q", path, spec.Type)
	}
}

func (l *SceneLoader) objects(node *yaml.Node, materials map[string]core.Material, baseDir string, s *scene.Scene) error {
	if absent(node) {
		l.Logger.Warningf("No 'objects' block; scene will be empty")
		return nil
	}
	if node.Kind != yaml.SequenceNode {
		return invalidf("'objects' must be an array, line %d", node.Line)
	}

	for i, item := range node.Content {
		path := fmt.Sprintf("objects[%d]", i)

		var spec ObjectSpec
		if err := item.Decode(&spec); err != nil {
			return invalidf("%s: %v", path, err)
		}
		shape, err := l.shape(&spec, path, baseDir)
		if err != nil {
			return err
		}
		m, err := l.resolveMaterial(spec.Material, materials, path)
		if err != nil {
			return err
		}
		s.Add(shape, m)
	}
	return nil
}

func (l *SceneLoader) resolveMaterial(ref *MaterialRef, materials map[string]core.Material, path string) (core.Material, error) {
	switch {
	case ref == nil || (ref.ID == "" && ref.Inline == nil):
		l.Logger.Warningf("%s has no material; it will render flat gray", path)
		return nil, nil
	case ref.Inline != nil:
		return l.material(ref.Inline, path+".material")
	}

	m, ok := materials[ref.ID]
	if !ok {
		l.Logger.Warningf("%s references unknown material id %q; it will render flat gray", path, ref.ID)
		return nil, nil
	}
	return m, nil
}

func (l *SceneLoader) shape(spec *ObjectSpec, path, baseDir string) (core.Shape, error) {
	if spec.Type == "" {
		return nil, invalidf("%s is missing field 'type'", path)
	}

	switch strings.ToLower(spec.Type) {
	case "sphere":
		if spec.Center == nil || spec.Radius == nil {
			return nil, invalidf("%s: sphere requires 'center' and 'radius'", path)
		}
		center, err := vec3(spec.Center, path+".center")
		if err != nil {
			return nil, err
		}
		if !(*spec.Radius > 0) || math.IsInf(*spec.Radius, 0) {
			return nil, invalidf("%s.radius must be > 0, got %g", path, *spec.Radius)
		}
		return geometry.NewSphere(center, *spec.Radius), nil

	case "plane":
		if spec.Point == nil || spec.Normal == nil {
			return nil, invalidf("%s: plane requires 'point' and 'normal'", path)
		}
		point, err := vec3(spec.Point, path+".point")
		if err != nil {
			return nil, err
		}
		normal, err := vec3(spec.Normal, path+".normal")
		if err != nil {
			return nil, err
		}
		if normal.LengthSquared() == 0 {
			return nil, invalidf("%s.normal must not be zero", path)
		}
		return geometry.NewPlane(point, normal), nil

	case "triangle":
		if spec.A == nil || spec.B == nil || spec.C == nil {
			return nil, invalidf("%s: triangle requires 'a', 'b' and 'c'", path)
		}
		a, err := vec3(spec.A, path+".a")
		if err != nil {
			return nil, err
		}
		b, err := vec3(spec.B, path+".b")
		if err != nil {
			return nil, err
		}
		c, err := vec3(spec.C, path+".c")
		if err != nil {
			return nil, err
		}
		return geometry.NewTriangle(a, b, c), nil

	case "mesh":
		if spec.Path == "" {
			return nil, invalidf("%s: mesh requires 'path'", path)
		}
		options, err := meshOptions(spec, path)
		if err != nil {
			return nil, err
		}
		meshPath := spec.Path
		if !filepath.IsAbs(meshPath) {
			meshPath = filepath.Join(baseDir, meshPath)
		}
		mesh, err := LoadGLTFMesh(meshPath, options)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidScene, path, err)
		}
		l.Logger.Infof("Loaded %s with %d triangles", meshPath, mesh.TriangleCount())
		return mesh, nil

	default:
		return nil, invalidf("%s: unknown object type %q", path, spec.Type)
	}
}

func meshOptions(spec *ObjectSpec, path string) (*geometry.TriangleMeshOptions, error) {
	if spec.Scale == nil && spec.Rotate == nil && spec.Translate == nil {
		return nil, nil
	}

	options := &geometry.TriangleMeshOptions{Scale: 1}
	if spec.Scale != nil {
		if !(*spec.Scale > 0) || math.IsInf(*spec.Scale, 0) {
			return nil, invalidf("%s.scale must be > 0, got %g", path, *spec.Scale)
		}
		options.Scale = *spec.Scale
	}
	if spec.Rotate != nil {
		degrees, err := vec3(spec.Rotate, path+".rotate")
		if err != nil {
			return nil, err
		}
		radians := degrees.Multiply(math.Pi / 180)
		options.Rotation = &radians
	}
	if spec.Translate != nil {
		translate, err := vec3(spec.Translate, path+".translate")
		if err != nil {
			return nil, err
		}
		options.Translate = translate
	}
	return options, nil
}

// absent reports whether a block was left out or written as null
func absent(node *yaml.Node) bool {
	return node.IsZero() || (node.Kind == yaml.ScalarNode && node.Tag == "!!null")
}

// finite rejects NaN and infinities, which no shape or material can use
func finite(x float64, path string) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return invalidf("%s must be a finite number, got %g", path, x)
	}
	return nil
}

func finite3(v []float64, path string) error {
	if len(v) != 3 {
		return invalidf("expected 3 numbers at %s, got %d", path, len(v))
	}
	for i, x := range v {
		if err := finite(x, fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func vec3(v []float64, path string) (core.Vec3, error) {
	if err := finite3(v, path); err != nil {
		return core.Vec3{}, err
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}

func color3(v []float64, path string) (core.Color, error) {
	if err := finite3(v, path); err != nil {
		return core.Color{}, err
	}
	return core.NewColor(v[0], v[1], v[2]), nil
}
