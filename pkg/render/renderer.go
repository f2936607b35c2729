package render

import (
	"fmt"
	"log/slog"

	"github.com/taigrr/flatraster/pkg/models"
)

// Stats summarizes one render pass.
type Stats struct {
	Objects        int // Objects in the scene
	ObjectsSkipped int // Objects with no camera-facing triangle
	Triangles      int // Triangles tested for visibility
	Culled         int // Triangles facing away from the camera
	Degenerate     int // Visible triangles with no screen-space area
	Drawn          int // Triangles handed to the rasterizer and not degenerate
	PixelsWritten  int // Depth-test passes, including overwrites
}

// Visible returns the number of triangles that passed back-face culling.
func (s Stats) Visible() int {
	return s.Triangles - s.Culled
}

// drawItem is one surviving triangle in scene order.
type drawItem struct {
	object int
	tri    Triangle
	color  Color
}

// Renderer draws a fixed list of objects with a fixed camera.
// It holds no pixel state: every Render call produces a new Framebuffer.
type Renderer struct {
	objects []*models.Object3D
	cfg     Config
	grid    *SampleGrid
	raster  TriangleRasterizer
}

// NewRenderer validates the configuration and every object up front, so
// that malformed input never reaches the pixel loop.
func NewRenderer(objects []*models.Object3D, cfg Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	for i, obj := range objects {
		if err := obj.Validate(); err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
	}

	raster := cfg.Rasterizer
	if raster == nil {
		raster = BoundingBoxRasterizer{}
	}

	return &Renderer{
		objects: objects,
		cfg:     cfg,
		grid:    NewSampleGrid(cfg.Viewport, cfg.Resolution),
		raster:  raster,
	}, nil
}

// Config returns the renderer's configuration.
func (r *Renderer) Config() Config {
	return r.cfg
}

// Grid returns the precomputed pixel sample coordinates.
func (r *Renderer) Grid() *SampleGrid {
	return r.grid
}

// Render draws the scene into a freshly cleared framebuffer.
func (r *Renderer) Render() (*Framebuffer, Stats) {
	fb := NewFramebuffer(r.cfg.Resolution.Width, r.cfg.Resolution.Height, r.cfg.Background)
	stats, _ := r.RenderInto(fb)
	return fb, stats
}

// RenderInto draws the scene over the current contents of fb. The caller
// owns fb; it must match the configured resolution.
func (r *Renderer) RenderInto(fb *Framebuffer) (Stats, error) {
	if fb == nil || fb.Width != r.cfg.Resolution.Width || fb.Height != r.cfg.Resolution.Height {
		return Stats{}, ErrSizeMismatch
	}

	items, stats := r.prepare()
	results := r.rasterize(fb, items)

	perObject := make([]int, len(r.objects))
	for i, res := range results {
		if res.Degenerate {
			stats.Degenerate++
			continue
		}
		stats.Drawn++
		stats.PixelsWritten += res.Written
		perObject[items[i].object] += res.Written
	}

	log := Logger()
	for i, n := range perObject {
		log.Debug("object rasterized", slog.Int("object", i), slog.Int("pixels", n))
	}
	return stats, nil
}

// RenderToFile renders and writes the image to path; the format follows
// the extension.
func (r *Renderer) RenderToFile(path string) (Stats, error) {
	fb, stats := r.Render()
	if err := fb.Save(path); err != nil {
		return stats, fmt.Errorf("save %s: %w", path, err)
	}
	Logger().Info("image written",
		slog.String("path", path),
		slog.Int("width", fb.Width),
		slog.Int("height", fb.Height),
		slog.Int("pixels", stats.PixelsWritten))
	return stats, nil
}

// prepare runs the geometry transform and visibility classifier for every
// object and returns the surviving triangles in scene order.
func (r *Renderer) prepare() ([]drawItem, Stats) {
	stats := Stats{Objects: len(r.objects)}
	log := Logger()

	var items []drawItem
	for i, obj := range r.objects {
		projected := ProjectPoints(obj.Points, r.cfg.Yaw, r.cfg.Pitch)
		tris := AssembleTriangles(projected, obj.Triangles)
		visible, colors := CullBackFaces(tris, obj.Colors)

		stats.Triangles += len(tris)
		stats.Culled += len(tris) - len(visible)

		if len(visible) == 0 {
			stats.ObjectsSkipped++
			log.Debug("object skipped: no camera-facing triangles",
				slog.Int("object", i), slog.String("name", obj.Name))
			continue
		}

		log.Debug("object classified",
			slog.Int("object", i),
			slog.String("name", obj.Name),
			slog.Int("visible", len(visible)),
			slog.Int("culled", len(tris)-len(visible)))

		for j, t := range visible {
			items = append(items, drawItem{object: i, tri: t, color: colors[j]})
		}
	}
	return items, stats
}

// rasterize draws items in order, on the calling goroutine or across row
// bands when more than one worker is configured.
func (r *Renderer) rasterize(fb *Framebuffer, items []drawItem) []RasterResult {
	bands := splitBands(fb.Height, r.cfg.Workers)
	if len(bands) <= 1 {
		results := make([]RasterResult, len(items))
		band := FullBand(fb)
		for i, it := range items {
			results[i] = r.raster.RasterizeTriangle(fb, r.grid, it.tri, it.color, band)
		}
		return results
	}
	return r.rasterizeBands(fb, items, bands)
}
