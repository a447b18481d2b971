package renderer

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/raylabs/go-pathtracer/pkg/core"
)

// Options contains configuration for tiled parallel rendering
type Options struct {
	Workers          int         // Number of parallel workers (0 = use CPU count)
	TileSize         int         // Edge length of each tile in pixels
	Seed             uint64      // Base seed; every tile derives its own stream from it
	Sampler          SamplerKind // Random generator used by each tile
	ProgressInterval int         // Log progress every N completed tiles (0 = never)
	Logger           core.Logger // Logger for rendering output
}

// DefaultOptions returns sensible default values
func DefaultOptions() Options {
	return Options{
		Workers:          0,
		TileSize:         DefaultTileSize,
		Seed:             42,
		Sampler:          SamplerLCG,
		ProgressInterval: 16,
		Logger:           core.NopLogger{},
	}
}

// ParallelRenderer renders tiles of an image concurrently. The output for a
// given seed does not depend on the number of workers.
type ParallelRenderer struct {
	raytracer *Raytracer
	options   Options
	tiles     []*Tile
	pool      *WorkerPool
}

// NewParallelRenderer creates a renderer that splits rt's image into tiles
func NewParallelRenderer(rt *Raytracer, options Options) (*ParallelRenderer, error) {
	if options.TileSize <= 0 {
		return nil, fmt.Errorf("tile size must be positive, got %d", options.TileSize)
	}
	if options.Workers < 0 {
		return nil, fmt.Errorf("worker count must not be negative, got %d", options.Workers)
	}
	if options.Sampler == "" {
		options.Sampler = SamplerLCG
	}
	if _, err := ParseSamplerKind(string(options.Sampler)); err != nil {
		return nil, err
	}
	if options.Logger == nil {
		options.Logger = core.NopLogger{}
	}

	return &ParallelRenderer{
		raytracer: rt,
		options:   options,
		tiles:     NewTileGrid(rt.Width(), rt.Height(), options.TileSize),
		pool:      NewWorkerPool(options.Workers),
	}, nil
}

// Tiles returns the tile grid in render order
func (pr *ParallelRenderer) Tiles() []*Tile {
	return pr.tiles
}

// Render renders the full image. On error, including cancellation, no
// frame buffer is returned.
func (pr *ParallelRenderer) Render(ctx context.Context) (*FrameBuffer, RenderStats, error) {
	start := time.Now()
	fb := NewFrameBuffer(pr.raytracer.Width(), pr.raytracer.Height())
	logger := pr.options.Logger

	logger.Infof("Rendering %dx%d in %d tiles on %d workers", fb.Width, fb.Height, len(pr.tiles), pr.pool.NumWorkers())

	var completed atomic.Int64
	err := pr.pool.Run(ctx, pr.tiles, func(ctx context.Context, tile *Tile) error {
		// Each tile has non-overlapping bounds, so writes to fb never race
		sampler := NewSampler(pr.options.Sampler, pr.options.Seed, tile.ID)
		pr.raytracer.RenderBounds(tile.Bounds, fb, sampler)

		done := completed.Add(1)
		if interval := int64(pr.options.ProgressInterval); interval > 0 && (done%interval == 0 || done == int64(len(pr.tiles))) {
			logger.Infof("Rendered %d/%d tiles (%.0f%%)", done, len(pr.tiles), 100*float64(done)/float64(len(pr.tiles)))
		}
		return nil
	})
	if err != nil {
		return nil, RenderStats{}, err
	}

	stats := newRenderStats(fb, pr.raytracer.samples, time.Since(start))
	stats.Tiles = len(pr.tiles)
	stats.Workers = pr.pool.NumWorkers()
	logger.Infof("Render completed in %v (%d samples, mean luminance %.4f)", stats.Elapsed, stats.TotalSamples, stats.MeanLuminance)
	return fb, stats, nil
}
