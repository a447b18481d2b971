// Package config layers render settings from defaults, a config file,
// PATHTRACER_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/raylabs/go-pathtracer/pkg/core"
	"github.com/raylabs/go-pathtracer/pkg/renderer"
	"github.com/raylabs/go-pathtracer/pkg/scene"
)

// EnvPrefix is prepended to every environment variable, e.g. PATHTRACER_RENDER_WORKERS
const EnvPrefix = "PATHTRACER"

// Config is the complete render configuration
type Config struct {
	Render    RenderConfig `mapstructure:"render" yaml:"render"`
	Overrides Overrides    `mapstructure:"overrides" yaml:"overrides"`
}

// RenderConfig controls how a scene is rendered
type RenderConfig struct {
	Workers          int     `mapstructure:"workers" yaml:"workers"`
	TileSize         int     `mapstructure:"tile_size" yaml:"tile_size"`
	Seed             uint64  `mapstructure:"seed" yaml:"seed"`
	Sampler          string  `mapstructure:"sampler" yaml:"sampler"`
	Gamma            float64 `mapstructure:"gamma" yaml:"gamma"`
	SingleThreaded   bool    `mapstructure:"single_threaded" yaml:"single_threaded"`
	ProgressInterval int     `mapstructure:"progress_interval" yaml:"progress_interval"`
}

// Overrides replace values from the scene description. Zero values (and a
// negative MaxDepth) leave the scene untouched.
type Overrides struct {
	Width    int    `mapstructure:"width" yaml:"width"`
	Height   int    `mapstructure:"height" yaml:"height"`
	Samples  int    `mapstructure:"samples" yaml:"samples"`
	MaxDepth int    `mapstructure:"max_depth" yaml:"max_depth"`
	Output   string `mapstructure:"output" yaml:"output"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Workers:          0,
			TileSize:         renderer.DefaultTileSize,
			Seed:             42,
			Sampler:          string(renderer.SamplerLCG),
			Gamma:            2.0,
			SingleThreaded:   false,
			ProgressInterval: 16,
		},
		Overrides: Overrides{
			MaxDepth: -1,
		},
	}
}

// SetDefaults registers every key with its default so that environment
// variables and flags resolve for all of them
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("render.workers", d.Render.Workers)
	v.SetDefault("render.tile_size", d.Render.TileSize)
	v.SetDefault("render.seed", d.Render.Seed)
	v.SetDefault("render.sampler", d.Render.Sampler)
	v.SetDefault("render.gamma", d.Render.Gamma)
	v.SetDefault("render.single_threaded", d.Render.SingleThreaded)
	v.SetDefault("render.progress_interval", d.Render.ProgressInterval)
	v.SetDefault("overrides.width", d.Overrides.Width)
	v.SetDefault("overrides.height", d.Overrides.Height)
	v.SetDefault("overrides.samples", d.Overrides.Samples)
	v.SetDefault("overrides.max_depth", d.Overrides.MaxDepth)
	v.SetDefault("overrides.output", d.Overrides.Output)
}

// Load reads the configuration. configFile may be empty, in which case
// pathtracer.yaml is looked up in the working directory and $HOME/.pathtracer
// and a missing file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("pathtracer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".pathtracer"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

// Validate reports settings that cannot be rendered with
func (c *Config) Validate() error {
	if c.Render.Workers < 0 {
		return fmt.Errorf("render.workers must not be negative, got %d", c.Render.Workers)
	}
	if c.Render.TileSize <= 0 {
		return fmt.Errorf("render.tile_size must be positive, got %d", c.Render.TileSize)
	}
	if _, err := renderer.ParseSamplerKind(c.Render.Sampler); err != nil {
		return fmt.Errorf("render.sampler: %w", err)
	}
	if c.Render.Gamma <= 0 {
		return fmt.Errorf("render.gamma must be positive, got %g", c.Render.Gamma)
	}
	if c.Render.ProgressInterval < 0 {
		return fmt.Errorf("render.progress_interval must not be negative, got %d", c.Render.ProgressInterval)
	}
	if c.Overrides.Width < 0 || c.Overrides.Height < 0 {
		return fmt.Errorf("overrides.width and overrides.height must not be negative, got %dx%d", c.Overrides.Width, c.Overrides.Height)
	}
	if c.Overrides.Samples < 0 {
		return fmt.Errorf("overrides.samples must not be negative, got %d", c.Overrides.Samples)
	}
	return nil
}

// RendererOptions converts the render section into renderer options
func (c *Config) RendererOptions(logger core.Logger) (renderer.Options, error) {
	kind, err := renderer.ParseSamplerKind(c.Render.Sampler)
	if err != nil {
		return renderer.Options{}, err
	}
	return renderer.Options{
		Workers:          c.Render.Workers,
		TileSize:         c.Render.TileSize,
		Seed:             c.Render.Seed,
		Sampler:          kind,
		ProgressInterval: c.Render.ProgressInterval,
		Logger:           logger,
	}, nil
}

// Apply writes the overrides into s. Changing either dimension re-derives
// the camera aspect ratio.
func (o Overrides) Apply(s *scene.Scene) {
	if o.Width > 0 || o.Height > 0 {
		width, height := s.SamplingConfig.Width, s.SamplingConfig.Height
		if o.Width > 0 {
			width = o.Width
		}
		if o.Height > 0 {
			height = o.Height
		}
		s.Resize(width, height)
	}
	if o.Samples > 0 {
		s.SamplingConfig.SamplesPerPixel = o.Samples
	}
	if o.MaxDepth >= 0 {
		s.SamplingConfig.MaxDepth = o.MaxDepth
	}
	if o.Output != "" {
		s.SamplingConfig.OutputPath = o.Output
	}
}
