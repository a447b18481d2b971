package renderer

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// TileFunc renders a single tile. It is called from several goroutines at
// once, each with a different tile.
type TileFunc func(ctx context.Context, tile *Tile) error

// WorkerPool runs tile tasks on a fixed number of goroutines
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool. numWorkers <= 0 uses one worker per CPU.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Run feeds tiles to the workers and waits for all of them. The first error
// cancels the remaining work. Cancelling ctx stops workers between tiles.
func (wp *WorkerPool) Run(ctx context.Context, tiles []*Tile, fn TileFunc) error {
	eg, ctx := errgroup.WithContext(ctx)
	taskQueue := make(chan *Tile)

	eg.Go(func() error {
		defer close(taskQueue)
		for _, tile := range tiles {
			select {
			case taskQueue <- tile:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < wp.numWorkers; i++ {
		eg.Go(func() error {
			for tile := range taskQueue {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := fn(ctx, tile); err != nil {
					return fmt.Errorf("while rendering tile %d: %w", tile.ID, err)
				}
			}
			return nil
		})
	}

	return eg.Wait()
}
