package render

import (
	"math"
	"slices"
	"testing"

	"github.com/taigrr/flatraster/pkg/math3d"
)

func rasterizeOne(tri Triangle, c Color, width, height int) (*Framebuffer, *SampleGrid, RasterResult) {
	cfg := testConfig(width, height)
	fb := NewFramebuffer(width, height, cfg.Background)
	grid := NewSampleGrid(cfg.Viewport, cfg.Resolution)
	res := BoundingBoxRasterizer{}.RasterizeTriangle(fb, grid, tri, c, FullBand(fb))
	return fb, grid, res
}

func TestRasterizeSolidTriangle(t *testing.T) {
	fb, grid, res := rasterizeOne(facing, ColorRed, 61, 61)

	if res.Degenerate {
		t.Fatal("facing triangle reported degenerate")
	}

	painted := 0
	for row, sy := range grid.Ys {
		for col, sx := range grid.Xs {
			d1 := edgeSign(sx, sy, facing[0].X, facing[0].Y, facing[1].X, facing[1].Y)
			d2 := edgeSign(sx, sy, facing[1].X, facing[1].Y, facing[2].X, facing[2].Y)
			d3 := edgeSign(sx, sy, facing[2].X, facing[2].Y, facing[0].X, facing[0].Y)

			got := fb.GetPixel(col, row)
			switch {
			case (d1 > 0 && d2 > 0 && d3 > 0) || (d1 < 0 && d2 < 0 && d3 < 0):
				if got != ColorRed {
					t.Errorf("inside sample (%v, %v) = %v, want red", sx, sy, got)
				}
			case (d1 < 0 || d2 < 0 || d3 < 0) && (d1 > 0 || d2 > 0 || d3 > 0):
				if got != DefaultBackground {
					t.Errorf("outside sample (%v, %v) = %v, want background", sx, sy, got)
				}
			}
			if got == ColorRed {
				painted++
			}
		}
	}

	if painted == 0 {
		t.Fatal("no pixels painted")
	}
	if painted != res.Written {
		t.Errorf("Written = %d, counted %d red pixels", res.Written, painted)
	}
}

func TestRasterizeDegenerateLeavesBufferUnchanged(t *testing.T) {
	tests := []struct {
		name string
		tri  Triangle
	}{
		{"collinear on X axis", Triangle{math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(2, 0, 0)}},
		{"coincident points", Triangle{math3d.V3(1, 1, 0), math3d.V3(1, 1, 0), math3d.V3(1, 1, 5)}},
		{"edge-on vertical", Triangle{math3d.V3(0, -1, 0), math3d.V3(0, 1, 0), math3d.V3(0, 0, 3)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb, _, res := rasterizeOne(tc.tri, ColorRed, 41, 41)
			if !res.Degenerate {
				t.Error("expected degenerate result")
			}
			if res.Written != 0 {
				t.Errorf("Written = %d, want 0", res.Written)
			}
			clean := NewFramebuffer(41, 41, DefaultBackground)
			if !slices.Equal(fb.Pixels, clean.Pixels) {
				t.Error("color plane changed")
			}
			for i, d := range fb.Depth {
				if !math.IsInf(d, -1) {
					t.Fatalf("depth %d changed to %v", i, d)
				}
			}
		})
	}
}

func TestDepthGradient(t *testing.T) {
	// Plane z = 2x + 3y + 1
	z := func(x, y float64) float64 { return 2*x + 3*y + 1 }
	tri := Triangle{
		math3d.V3(0, 0, z(0, 0)),
		math3d.V3(1, 0.5, z(1, 0.5)),
		math3d.V3(-0.25, 2, z(-0.25, 2)),
	}

	dzdx, dzdy, ok := depthGradient(tri)
	if !ok {
		t.Fatal("depthGradient reported singular system")
	}
	if math.Abs(dzdx-2) > 1e-12 || math.Abs(dzdy-3) > 1e-12 {
		t.Errorf("gradient = (%v, %v), want (2, 3)", dzdx, dzdy)
	}
}

func TestDepthGradientSingular(t *testing.T) {
	tri := Triangle{math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(2, 0, 0)}
	if _, _, ok := depthGradient(tri); ok {
		t.Error("collinear triangle should be singular")
	}
}

func TestInterpolatedDepth(t *testing.T) {
	// Tilted facing triangle, z = x
	tri := facing
	for i := range tri {
		tri[i].Z = tri[i].X
	}
	fb, grid, _ := rasterizeOne(tri, ColorRed, 41, 41)

	for row, sy := range grid.Ys {
		for col, sx := range grid.Xs {
			if fb.GetPixel(col, row) != ColorRed {
				continue
			}
			if d := fb.DepthAt(col, row); math.Abs(d-sx) > 1e-12 {
				t.Fatalf("depth at (%v, %v) = %v, want %v", sx, sy, d, sx)
			}
		}
	}
}

func TestPointInTriangle(t *testing.T) {
	ccw := Triangle{facing[0], facing[2], facing[1]}

	tests := []struct {
		name   string
		px, py float64
		want   bool
	}{
		{"centroid", 0, -1.0 / 3, true},
		{"vertex", -1, -1, true},
		{"edge midpoint", 0, -1, true},
		{"below", 0, -1.5, false},
		{"left", -1, 0.5, false},
		{"far away", 10, 10, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := pointInTriangle(tc.px, tc.py, facing); got != tc.want {
				t.Errorf("clockwise: got %v, want %v", got, tc.want)
			}
			if got := pointInTriangle(tc.px, tc.py, ccw); got != tc.want {
				t.Errorf("counter-clockwise: got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRasterizeRespectsBand(t *testing.T) {
	cfg := testConfig(20, 20)
	fb := NewFramebuffer(20, 20, cfg.Background)
	grid := NewSampleGrid(cfg.Viewport, cfg.Resolution)

	// Covers the whole viewport
	big := Triangle{math3d.V3(-10, -10, 0), math3d.V3(0, 20, 0), math3d.V3(10, -10, 0)}
	res := BoundingBoxRasterizer{}.RasterizeTriangle(fb, grid, big, ColorBlue, Band{5, 10})

	if res.Written != 5*20 {
		t.Errorf("Written = %d, want 100", res.Written)
	}
	for row := range 20 {
		for col := range 20 {
			want := cfg.Background
			if row >= 5 && row < 10 {
				want = ColorBlue
			}
			if got := fb.GetPixel(col, row); got != want {
				t.Fatalf("pixel (%d, %d) = %v, want %v", col, row, got, want)
			}
		}
	}
}

func TestRasterizeOutsideViewport(t *testing.T) {
	far := Triangle{math3d.V3(10, 10, 0), math3d.V3(11, 12, 0), math3d.V3(12, 10, 0)}
	_, _, res := rasterizeOne(far, ColorRed, 30, 30)
	if res.Degenerate || res.Written != 0 {
		t.Errorf("result = %+v, want nothing written", res)
	}
}

func BenchmarkRasterizeTriangle(b *testing.B) {
	cfg := DefaultConfig()
	fb := NewFramebuffer(cfg.Resolution.Width, cfg.Resolution.Height, cfg.Background)
	grid := NewSampleGrid(cfg.Viewport, cfg.Resolution)
	r := BoundingBoxRasterizer{}

	for b.Loop() {
		fb.Clear(cfg.Background)
		r.RasterizeTriangle(fb, grid, facing, ColorRed, FullBand(fb))
	}
}
