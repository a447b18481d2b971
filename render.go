package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/raylabs/go-pathtracer/pkg/config"
	"github.com/raylabs/go-pathtracer/pkg/core"
	"github.com/raylabs/go-pathtracer/pkg/integrator"
	"github.com/raylabs/go-pathtracer/pkg/loaders"
	"github.com/raylabs/go-pathtracer/pkg/renderer"
	"github.com/raylabs/go-pathtracer/pkg/scene"
)

// flagKeys maps command-line flags to configuration keys
var flagKeys = map[string]string{
	"workers":           "render.workers",
	"tile-size":         "render.tile_size",
	"seed":              "render.seed",
	"sampler":           "render.sampler",
	"gamma":             "render.gamma",
	"single-threaded":   "render.single_threaded",
	"progress-interval": "render.progress_interval",
	"width":             "overrides.width",
	"height":            "overrides.height",
	"samples":           "overrides.samples",
	"depth":             "overrides.max_depth",
	"output":            "overrides.output",
}

func newRenderCommand() *cobra.Command {
	v := viper.New()
	var configFile string

	cmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "Render a built-in scene or a scene file to PNG",
		Long: `Render a built-in scene (default, ground, checker, glass, sphere-grid,
triangle-mesh) or a YAML/JSON scene file. Scene files are also looked up
in the scenes/ directory.

Flags override the config file, which overrides values from the scene.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for flagName, key := range flagKeys {
				if err := v.BindPFlag(key, cmd.Flags().Lookup(flagName)); err != nil {
					return fmt.Errorf("while binding flag --%s: %w", flagName, err)
				}
			}
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}

			sceneName := "default"
			if len(args) == 1 {
				sceneName = args[0]
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runRender(ctx, cmd.OutOrStdout(), sceneName, cfg, glogLogger{})
		},
	}

	d := config.Default()
	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "config file (default is ./pathtracer.yaml or $HOME/.pathtracer/pathtracer.yaml)")
	flags.String("output", "", "output PNG path (default from the scene)")
	flags.Int("samples", 0, "samples per pixel (default from the scene)")
	flags.Int("depth", -1, "maximum bounce depth (default from the scene)")
	flags.Int("width", 0, "image width in pixels (default from the scene)")
	flags.Int("height", 0, "image height in pixels (default from the scene)")
	flags.Int("workers", d.Render.Workers, "parallel workers (0 = one per CPU)")
	flags.Int("tile-size", d.Render.TileSize, "tile edge length in pixels")
	flags.Uint64("seed", d.Render.Seed, "base random seed")
	flags.String("sampler", d.Render.Sampler, "random generator: lcg or pcg")
	flags.Float64("gamma", d.Render.Gamma, "display gamma for the PNG (1 = linear)")
	flags.Bool("single-threaded", d.Render.SingleThreaded, "render on one goroutine without tiles")
	flags.Int("progress-interval", d.Render.ProgressInterval, "log progress every N tiles (0 = never)")
	return cmd
}

// runRender loads, renders and saves one scene. Nothing is written when
// rendering fails.
func runRender(ctx context.Context, out io.Writer, sceneName string, cfg *config.Config, logger core.Logger) error {
	scn, err := createScene(sceneName, scene.FindScenesDir(), logger)
	if err != nil {
		return err
	}
	cfg.Overrides.Apply(scn)
	if err := scn.Validate(); err != nil {
		return fmt.Errorf("scene %q is not renderable: %w", sceneName, err)
	}

	options, err := cfg.RendererOptions(logger)
	if err != nil {
		return err
	}

	sc := scn.SamplingConfig
	logger.Infof("Rendering %s at %dx%d, %d samples, depth %d, %d primitives",
		sceneName, sc.Width, sc.Height, sc.SamplesPerPixel, sc.MaxDepth, scn.PrimitiveCount())

	rt := renderer.NewRaytracer(scn, integrator.NewPathTracingIntegrator(sc))

	var fb *renderer.FrameBuffer
	var stats renderer.RenderStats
	if cfg.Render.SingleThreaded {
		fb, stats = rt.RenderPass(renderer.NewSampler(options.Sampler, options.Seed, 0))
	} else {
		pr, err := renderer.NewParallelRenderer(rt, options)
		if err != nil {
			return err
		}
		if fb, stats, err = pr.Render(ctx); err != nil {
			return fmt.Errorf("while rendering %s: %w", sceneName, err)
		}
	}

	if err := loaders.SavePNG(sc.OutputPath, fb, cfg.Render.Gamma); err != nil {
		return fmt.Errorf("while saving %s: %w", sc.OutputPath, err)
	}

	fmt.Fprintf(out, "Render completed in %v (%d samples, mean luminance %.4f, stddev %.4f)\n",
		stats.Elapsed, stats.TotalSamples, stats.MeanLuminance, stats.StdDevLuminance)
	fmt.Fprintf(out, "Render saved as %s\n", sc.OutputPath)
	return nil
}

// createScene resolves name as a built-in scene, a path to a scene file,
// "file:<name>" from the scenes listing, or a file name inside scenesDir
func createScene(name, scenesDir string, logger core.Logger) (*scene.Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("scene name must not be empty")
	}
	if scene.IsBuiltin(name) {
		return scene.NewBuiltin(name)
	}

	for _, candidate := range sceneFileCandidates(name, scenesDir) {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return loaders.LoadSceneFile(candidate, logger)
		}
	}
	return nil, fmt.Errorf("unknown scene %q: not a built-in scene or scene file", name)
}

func sceneFileCandidates(name, scenesDir string) []string {
	name = strings.TrimPrefix(name, "file:")
	candidates := []string{name}
	if scenesDir != "" && !filepath.IsAbs(name) {
		candidates = append(candidates, filepath.Join(scenesDir, name))
	}
	if filepath.Ext(name) == "" {
		for _, ext := range scene.SceneFileExtensions {
			candidates = append(candidates, name+ext)
			if scenesDir != "" && !filepath.IsAbs(name) {
				candidates = append(candidates, filepath.Join(scenesDir, name+ext))
			}
		}
	}
	return candidates
}

func newScenesCommand() *cobra.Command {
	var format string
	var scenesDir string

	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "List built-in scenes and scene files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if scenesDir == "" {
				scenesDir = scene.FindScenesDir()
			}
			groups, err := scene.ListAllScenes(scenesDir, glogLogger{})
			if err != nil {
				return err
			}
			return printScenes(cmd.OutOrStdout(), groups, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text or yaml")
	cmd.Flags().StringVar(&scenesDir, "dir", "", "directory with scene files (default scenes/)")
	return cmd
}

func printScenes(out io.Writer, groups []scene.SceneGroup, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(groups); err != nil {
			return fmt.Errorf("while encoding scene list: %w", err)
		}
		return enc.Close()
	case "text":
		for _, group := range groups {
			fmt.Fprintf(out, "%s:\n", group.Name)
			for _, s := range group.Scenes {
				if s.Description != "" {
					fmt.Fprintf(out, "  %-24s %s - %s\n", s.ID, s.DisplayName, s.Description)
				} else {
					fmt.Fprintf(out, "  %-24s %s\n", s.ID, s.DisplayName)
				}
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text or yaml)", format)
	}
}
