package renderer

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/stat"

	"github.com/raylabs/go-pathtracer/pkg/core"
	"github.com/raylabs/go-pathtracer/pkg/integrator"
	"github.com/raylabs/go-pathtracer/pkg/scene"
)

type recordingLogger struct {
	mu    sync.Mutex
	infos []string
}

func (r *recordingLogger) Infof(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, format)
}

func (r *recordingLogger) Warningf(format string, args ...interface{}) {}

func smallDefaultScene() *scene.Scene {
	s := scene.NewDefaultScene()
	s.Resize(32, 18)
	s.SamplingConfig.SamplesPerPixel = 4
	s.SamplingConfig.MaxDepth = 4
	return s
}

func renderWith(t *testing.T, s *scene.Scene, options Options) (*FrameBuffer, RenderStats) {
	t.Helper()
	rt := NewRaytracer(s, integrator.NewPathTracingIntegrator(s.SamplingConfig))
	pr, err := NewParallelRenderer(rt, options)
	if err != nil {
		t.Fatalf("NewParallelRenderer() error: %v", err)
	}
	fb, stats, err := pr.Render(context.Background())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	return fb, stats
}

func TestParallelRenderer_WorkerCountIndependence(t *testing.T) {
	options := DefaultOptions()
	options.TileSize = 8

	var reference *FrameBuffer
	for _, workers := range []int{1, 2, 7} {
		options.Workers = workers
		fb, stats := renderWith(t, smallDefaultScene(), options)
		if stats.Workers != workers {
			t.Errorf("Expected %d workers in stats, got %d", workers, stats.Workers)
		}
		if reference == nil {
			reference = fb
			continue
		}
		if diff := cmp.Diff(reference.Pixels, fb.Pixels); diff != "" {
			t.Errorf("Render with %d workers differs from 1 worker; diff (-want +got)\n%s", workers, diff)
		}
	}
}

func TestParallelRenderer_SeedDeterminism(t *testing.T) {
	for _, kind := range []SamplerKind{SamplerLCG, SamplerPCG} {
		t.Run(string(kind), func(t *testing.T) {
			options := DefaultOptions()
			options.Sampler = kind
			options.TileSize = 16

			first, _ := renderWith(t, smallDefaultScene(), options)
			second, _ := renderWith(t, smallDefaultScene(), options)
			if diff := cmp.Diff(first.Pixels, second.Pixels); diff != "" {
				t.Errorf("Same seed produced different images; diff (-first +second)\n%s", diff)
			}

			options.Seed++
			other, _ := renderWith(t, smallDefaultScene(), options)
			if cmp.Equal(first.Pixels, other.Pixels) {
				t.Error("Different seeds produced identical images")
			}

			// The noise changes but the picture does not
			meanFirst := stat.Mean(first.Luminances(), nil)
			meanOther := stat.Mean(other.Luminances(), nil)
			if math.Abs(meanFirst-meanOther) > 0.05 {
				t.Errorf("Mean luminance moved from %f to %f with a new seed", meanFirst, meanOther)
			}
		})
	}
}

func TestParallelRenderer_Stats(t *testing.T) {
	s := groundScene(10, 6)
	options := DefaultOptions()
	options.TileSize = 4
	options.Workers = 3
	fb, stats := renderWith(t, s, options)

	if stats.TotalPixels != 60 || stats.TotalSamples != 60 || stats.SamplesPerPixel != 1 {
		t.Errorf("Unexpected sample counts %+v", stats)
	}
	if stats.Tiles != 6 {
		t.Errorf("Expected 6 tiles, got %d", stats.Tiles)
	}
	mean, stdDev := stat.MeanStdDev(fb.Luminances(), nil)
	if math.Abs(stats.MeanLuminance-mean) > 1e-12 || math.Abs(stats.StdDevLuminance-stdDev) > 1e-12 {
		t.Errorf("Stats luminance (%f, %f), want (%f, %f)", stats.MeanLuminance, stats.StdDevLuminance, mean, stdDev)
	}
}

func TestParallelRenderer_Cancellation(t *testing.T) {
	s := smallDefaultScene()
	rt := NewRaytracer(s, integrator.NewPathTracingIntegrator(s.SamplingConfig))
	pr, err := NewParallelRenderer(rt, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fb, _, err := pr.Render(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if fb != nil {
		t.Error("Cancelled render returned a frame buffer")
	}
}

func TestParallelRenderer_ProgressLogging(t *testing.T) {
	logger := &recordingLogger{}
	options := DefaultOptions()
	options.TileSize = 2
	options.ProgressInterval = 2
	options.Logger = logger

	// 4x4 image in 2x2 tiles: progress after tiles 2 and 4
	renderWith(t, groundScene(4, 4), options)

	progress := 0
	for _, format := range logger.infos {
		if strings.HasPrefix(format, "Rendered %d/%d tiles") {
			progress++
		}
	}
	if progress != 2 {
		t.Errorf("Expected 2 progress lines, got %d in %v", progress, logger.infos)
	}
}

func TestNewParallelRenderer_InvalidOptions(t *testing.T) {
	s := groundScene(4, 4)
	rt := NewRaytracer(s, constantIntegrator{})

	tests := []struct {
		name    string
		options Options
	}{
		{"zero tile size", Options{TileSize: 0}},
		{"negative workers", Options{TileSize: 8, Workers: -1}},
		{"unknown sampler", Options{TileSize: 8, Sampler: "xorshift"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewParallelRenderer(rt, tt.options); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestWorkerPool_PropagatesErrors(t *testing.T) {
	errBoom := errors.New("boom")
	tiles := NewTileGrid(8, 8, 2)

	err := NewWorkerPool(3).Run(context.Background(), tiles, func(ctx context.Context, tile *Tile) error {
		if tile.ID == 5 {
			return errBoom
		}
		return nil
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("Expected wrapped tile error, got %v", err)
	}
	if !strings.Contains(err.Error(), "tile 5") {
		t.Errorf("Error %q does not name the tile", err)
	}
}

func TestWorkerPool_VisitsEveryTile(t *testing.T) {
	tiles := NewTileGrid(17, 9, 4)
	var mu sync.Mutex
	seen := map[int]int{}

	err := NewWorkerPool(4).Run(context.Background(), tiles, func(ctx context.Context, tile *Tile) error {
		mu.Lock()
		defer mu.Unlock()
		seen[tile.ID]++
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	for _, tile := range tiles {
		if seen[tile.ID] != 1 {
			t.Errorf("Tile %d visited %d times", tile.ID, seen[tile.ID])
		}
	}
}

func TestLuminanceStats(t *testing.T) {
	fb := NewFrameBuffer(2, 1)
	fb.Set(0, 0, core.White)
	fb.Set(1, 0, core.Black)

	mean, stdDev := LuminanceStats(fb)
	if math.Abs(mean-0.5) > 1e-9 {
		t.Errorf("Expected mean 0.5, got %f", mean)
	}
	// Sample standard deviation of {0, 1}
	if math.Abs(stdDev-math.Sqrt(0.5)) > 1e-9 {
		t.Errorf("Expected stddev %f, got %f", math.Sqrt(0.5), stdDev)
	}

	single := NewFrameBuffer(1, 1)
	single.Set(0, 0, core.Gray)
	if _, sd := LuminanceStats(single); sd != 0 {
		t.Errorf("Single pixel should have zero deviation, got %f", sd)
	}
}
