package render

import (
	"golang.org/x/sync/errgroup"
)

// splitBands divides height rows into at most workers contiguous bands of
// near-equal size. It returns a single band when workers < 2.
func splitBands(height, workers int) []Band {
	if height <= 0 {
		return nil
	}
	workers = min(max(workers, 1), height)

	bands := make([]Band, workers)
	y := 0
	for i := range bands {
		// Spread the remainder over the first bands
		n := height / workers
		if i < height%workers {
			n++
		}
		bands[i] = Band{y, y + n}
		y += n
	}
	return bands
}

// rasterizeBands renders each band on its own goroutine. Every band walks
// the full item list in scene order and only touches its own rows, so each
// pixel sees the same sequence of depth tests as a sequential render and
// no two goroutines share a pixel.
func (r *Renderer) rasterizeBands(fb *Framebuffer, items []drawItem, bands []Band) []RasterResult {
	perBand := make([][]RasterResult, len(bands))

	var g errgroup.Group
	for b, band := range bands {
		g.Go(func() error {
			results := make([]RasterResult, len(items))
			for i, it := range items {
				results[i] = r.raster.RasterizeTriangle(fb, r.grid, it.tri, it.color, band)
			}
			perBand[b] = results
			return nil
		})
	}
	_ = g.Wait()

	merged := make([]RasterResult, len(items))
	for i := range merged {
		// Degeneracy depends only on the triangle, so any band can report it
		merged[i].Degenerate = perBand[0][i].Degenerate
		for _, results := range perBand {
			merged[i].Written += results[i].Written
		}
	}
	return merged
}
