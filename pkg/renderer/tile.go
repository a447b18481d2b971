package renderer

import (
	"fmt"
	"image"
	"strings"

	"github.com/raylabs/go-pathtracer/pkg/core"
)

// DefaultTileSize is the edge length of a square tile in pixels
const DefaultTileSize = 32

// SamplerKind selects the random generator that drives each tile
type SamplerKind string

const (
	SamplerLCG SamplerKind = "lcg"
	SamplerPCG SamplerKind = "pcg"
)

// ParseSamplerKind accepts "lcg" or "pcg" in any case
func ParseSamplerKind(s string) (SamplerKind, error) {
	switch kind := SamplerKind(strings.ToLower(strings.TrimSpace(s))); kind {
	case SamplerLCG, SamplerPCG:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown sampler %q (want lcg or pcg)", s)
	}
}

// NewSampler returns the sampler for stream index of a render seeded with seed.
// A given (kind, seed, index) always produces the same sequence.
func NewSampler(kind SamplerKind, seed uint64, index int) core.Sampler {
	streamSeed := core.StreamSeed(seed, index)
	if kind == SamplerPCG {
		return core.NewPCGSampler(streamSeed, uint64(index))
	}
	return core.NewLCGSampler(uint32(streamSeed) ^ uint32(streamSeed>>32))
}

// Tile represents a rectangular region of the image
type Tile struct {
	ID     int             // Position of the tile in the grid, row-major
	Bounds image.Rectangle // Pixel bounds (Min inclusive, Max exclusive)
}

// NewTileGrid splits a width x height image into tiles of at most tileSize
// pixels on a side. Edge tiles are clipped to the image.
func NewTileGrid(width, height, tileSize int) []*Tile {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	tiles := make([]*Tile, 0, tilesX*tilesY)
	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{
				ID:     len(tiles),
				Bounds: image.Rect(x0, y0, x1, y1),
			})
		}
	}
	return tiles
}
