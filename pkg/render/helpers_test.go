package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/taigrr/flatraster/pkg/math3d"
	"github.com/taigrr/flatraster/pkg/models"
)

// quad returns a rectangle in the XY plane made of two camera-facing
// triangles. depth maps a corner's X/Y to its Z so tests can tilt it.
func quad(x0, y0, x1, y1 float64, c color.RGBA, depth func(x, y float64) float64) *models.Object3D {
	corner := func(x, y float64) math3d.Vec3 {
		return math3d.V3(x, y, depth(x, y))
	}
	obj, err := models.NewObject3D(
		[]math3d.Vec3{corner(x0, y0), corner(x0, y1), corner(x1, y1), corner(x1, y0)},
		[][3]int{{0, 1, 2}, {0, 2, 3}},
		[]color.RGBA{c, c},
	)
	if err != nil {
		panic(err)
	}
	return obj
}

func flat(z float64) func(x, y float64) float64 {
	return func(float64, float64) float64 { return z }
}

func testConfig(width, height int) Config {
	cfg := DefaultConfig()
	cfg.Resolution = Resolution{Width: width, Height: height}
	return cfg
}

func mustRenderer(t *testing.T, objects []*models.Object3D, cfg Config) *Renderer {
	t.Helper()
	r, err := NewRenderer(objects, cfg)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func deg(d float64) float64 {
	return d * math.Pi / 180
}
