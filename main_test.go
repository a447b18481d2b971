package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/raylabs/go-pathtracer/pkg/config"
	"github.com/raylabs/go-pathtracer/pkg/core"
	"github.com/raylabs/go-pathtracer/pkg/loaders"
	"github.com/raylabs/go-pathtracer/pkg/scene"
)

const testSceneYAML = `# Scene: Test Sphere
# Description: One sphere above a plane
# Group: Tests
image: {width: 12, height: 8, samples: 2, max_depth: 3, output: out/test.png}
camera: {position: [0, 1, 3], look_at: [0, 0.5, 0]}
materials:
  red: {type: lambertian, albedo: [0.7, 0.3, 0.3]}
objects:
  - {type: sphere, center: [0, 0.5, 0], radius: 0.5, material: red}
  - {type: plane, point: [0, 0, 0], normal: [0, 1, 0]}
`

func writeTestScene(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(testSceneYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCreateScene(t *testing.T) {
	scenesDir := t.TempDir()
	scenePath := writeTestScene(t, scenesDir, "test-sphere.yaml")
	writeTestScene(t, scenesDir, "test-sphere.json")

	tests := []struct {
		name        string
		sceneName   string
		wantWidth   int
		expectError bool
	}{
		{"default scene", "default", 400, false},
		{"ground scene", "ground", 400, false},
		{"checker scene", "checker", 400, false},
		{"glass scene", "glass", 400, false},
		{"sphere grid scene", "sphere-grid", 400, false},
		{"triangle mesh scene", "triangle-mesh", 400, false},

		{"direct path", scenePath, 12, false},
		{"file prefix", "file:test-sphere", 12, false},
		{"file prefix with extension", "file:test-sphere.json", 12, false},
		{"name in scenes dir", "test-sphere.yaml", 12, false},
		{"name without extension", "test-sphere", 12, false},

		{"unknown scene", "nonexistent", 0, true},
		{"missing file", filepath.Join(scenesDir, "missing.yaml"), 0, true},
		{"empty scene name", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneName, scenesDir, core.NopLogger{})

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene %q, but got none", tt.sceneName)
				}
				if s != nil {
					t.Errorf("Expected nil scene for %q", tt.sceneName)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene %q: %v", tt.sceneName, err)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Scene %q is not renderable: %v", tt.sceneName, err)
			}
			if s.SamplingConfig.Width != tt.wantWidth {
				t.Errorf("Expected width %d, got %d", tt.wantWidth, s.SamplingConfig.Width)
			}
			if len(s.Entities) == 0 {
				t.Errorf("Scene %q has no entities", tt.sceneName)
			}
		})
	}
}

func TestRunRender(t *testing.T) {
	output := filepath.Join(t.TempDir(), "nested", "ground.png")

	cfg := config.Default()
	cfg.Render.Workers = 2
	cfg.Render.TileSize = 4
	cfg.Overrides = config.Overrides{Width: 10, Height: 6, Samples: 2, MaxDepth: -1, Output: output}

	var out bytes.Buffer
	if err := runRender(context.Background(), &out, "ground", cfg, core.NopLogger{}); err != nil {
		t.Fatalf("runRender() error: %v", err)
	}

	fb, err := loaders.LoadImage(output)
	if err != nil {
		t.Fatalf("Rendered image cannot be read: %v", err)
	}
	if fb.Width != 10 || fb.Height != 6 {
		t.Errorf("Expected 10x6 image, got %dx%d", fb.Width, fb.Height)
	}
	if !strings.Contains(out.String(), "Render saved as "+output) {
		t.Errorf("Missing completion message in %q", out.String())
	}
}

func TestRunRender_SingleThreadedMatchesParallel(t *testing.T) {
	dir := t.TempDir()
	render := func(singleThreaded bool, name string) []byte {
		cfg := config.Default()
		cfg.Render.SingleThreaded = singleThreaded
		cfg.Render.Gamma = 1
		// One tile covers the image, so both paths draw from the same sampler stream
		cfg.Render.TileSize = 64
		cfg.Overrides = config.Overrides{Width: 16, Height: 9, Samples: 3, MaxDepth: 4, Output: filepath.Join(dir, name)}
		if err := runRender(context.Background(), &bytes.Buffer{}, "default", cfg, core.NopLogger{}); err != nil {
			t.Fatalf("runRender() error: %v", err)
		}
		data, err := os.ReadFile(cfg.Overrides.Output)
		if err != nil {
			t.Fatal(err)
		}
		return data
	}

	single := render(true, "single.png")
	parallel := render(false, "parallel.png")
	if !bytes.Equal(single, parallel) {
		t.Error("Single-threaded and parallel renders differ")
	}
}

func TestRunRender_FailureWritesNoFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("cancelled", func(t *testing.T) {
		output := filepath.Join(dir, "cancelled.png")
		cfg := config.Default()
		cfg.Overrides = config.Overrides{Width: 8, Height: 8, MaxDepth: -1, Output: output}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := runRender(ctx, &bytes.Buffer{}, "ground", cfg, core.NopLogger{})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
		if _, err := os.Stat(output); !os.IsNotExist(err) {
			t.Errorf("Expected no output file, stat error = %v", err)
		}
	})

	t.Run("invalid scene", func(t *testing.T) {
		output := filepath.Join(dir, "invalid.png")
		path := filepath.Join(dir, "invalid.yaml")
		if err := os.WriteFile(path, []byte("objects:\n  - {type: sphere, center: [0, 0], radius: 1}\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg := config.Default()
		cfg.Overrides.Output = output

		err := runRender(context.Background(), &bytes.Buffer{}, path, cfg, core.NopLogger{})
		if !errors.Is(err, loaders.ErrInvalidScene) {
			t.Errorf("Expected ErrInvalidScene, got %v", err)
		}
		if _, err := os.Stat(output); !os.IsNotExist(err) {
			t.Errorf("Expected no output file, stat error = %v", err)
		}
	})
}

func TestRenderCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	output := filepath.Join(t.TempDir(), "cli.png")
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"render", "ground",
		"--width", "8", "--height", "4", "--samples", "1",
		"--workers", "2", "--tile-size", "4", "--sampler", "pcg",
		"--output", output})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("render command failed: %v\n%s", err, out.String())
	}
	fb, err := loaders.LoadImage(output)
	if err != nil {
		t.Fatalf("Rendered image cannot be read: %v", err)
	}
	if fb.Width != 8 || fb.Height != 4 {
		t.Errorf("Expected 8x4 image, got %dx%d", fb.Width, fb.Height)
	}
}

func TestRenderCommand_InvalidFlags(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name string
		args []string
	}{
		{"unknown sampler", []string{"render", "ground", "--sampler", "sobol"}},
		{"bad tile size", []string{"render", "ground", "--tile-size", "0"}},
		{"unknown scene", []string{"render", "no-such-scene"}},
		{"too many args", []string{"render", "ground", "glass"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCommand()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)
			if err := cmd.Execute(); err == nil {
				t.Errorf("Expected error for %v", tt.args)
			}
		})
	}
}

func TestPrintScenes(t *testing.T) {
	dir := t.TempDir()
	writeTestScene(t, dir, "test-sphere.yaml")

	groups, err := scene.ListAllScenes(dir, core.NopLogger{})
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}

	var text bytes.Buffer
	if err := printScenes(&text, groups, "text"); err != nil {
		t.Fatalf("printScenes(text) error: %v", err)
	}
	for _, want := range []string{"file:test-sphere", "Test Sphere - One sphere above a plane", "Tests:", "ground"} {
		if !strings.Contains(text.String(), want) {
			t.Errorf("Text listing is missing %q:\n%s", want, text.String())
		}
	}

	var yamlOut bytes.Buffer
	if err := printScenes(&yamlOut, groups, "yaml"); err != nil {
		t.Fatalf("printScenes(yaml) error: %v", err)
	}
	if !strings.Contains(yamlOut.String(), "file:test-sphere") || !strings.Contains(yamlOut.String(), "name: Tests") {
		t.Errorf("YAML listing is missing the scene file:\n%s", yamlOut.String())
	}

	if err := printScenes(&bytes.Buffer{}, groups, "xml"); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestFlagDefaultsMatchConfig(t *testing.T) {
	cmd := newRenderCommand()
	d := config.Default()

	got := map[string]string{}
	for _, name := range []string{"workers", "tile-size", "seed", "sampler", "progress-interval", "depth"} {
		got[name] = cmd.Flags().Lookup(name).DefValue
	}
	want := map[string]string{
		"workers":           "0",
		"tile-size":         "32",
		"seed":              "42",
		"sampler":           d.Render.Sampler,
		"progress-interval": "16",
		"depth":             "-1",
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Flag defaults drift from config.Default(); diff (-got +want)\n%s", diff)
	}
	for flagName := range flagKeys {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Flag --%s is bound but not defined", flagName)
		}
	}
}
