package render

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Band is a half-open range of framebuffer rows [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// FullBand covers every row of fb.
func FullBand(fb *Framebuffer) Band {
	return Band{0, fb.Height}
}

// RasterResult reports what happened to one triangle.
type RasterResult struct {
	Degenerate bool // Zero screen-space area, nothing painted
	Written    int  // Pixels that passed the depth test
}

// TriangleRasterizer fills one camera-facing triangle into fb with a flat
// color, depth-testing every covered pixel. Only rows inside band are
// touched, which lets callers split the image between goroutines.
type TriangleRasterizer interface {
	RasterizeTriangle(fb *Framebuffer, grid *SampleGrid, tri Triangle, c Color, band Band) RasterResult
}

// BoundingBoxRasterizer tests every pixel whose sample point lies inside
// the triangle's X/Y bounding box. Boundary samples count as covered.
type BoundingBoxRasterizer struct{}

// RasterizeTriangle implements TriangleRasterizer.
func (BoundingBoxRasterizer) RasterizeTriangle(fb *Framebuffer, grid *SampleGrid, tri Triangle, c Color, band Band) RasterResult {
	dzdx, dzdy, ok := depthGradient(tri)
	if !ok {
		return RasterResult{Degenerate: true}
	}

	minX := min3(tri[0].X, tri[1].X, tri[2].X)
	maxX := max3(tri[0].X, tri[1].X, tri[2].X)
	minY := min3(tri[0].Y, tri[1].Y, tri[2].Y)
	maxY := max3(tri[0].Y, tri[1].Y, tri[2].Y)

	y0 := max(band.Y0, 0)
	y1 := min(band.Y1, fb.Height, len(grid.Ys))
	x1 := min(fb.Width, len(grid.Xs))

	var res RasterResult
	for col := 0; col < x1; col++ {
		sx := grid.Xs[col]
		if sx < minX || sx > maxX {
			continue
		}
		for row := y0; row < y1; row++ {
			sy := grid.Ys[row]
			if sy < minY || sy > maxY {
				continue
			}
			if !pointInTriangle(sx, sy, tri) {
				continue
			}
			depth := tri[0].Z + (sx-tri[0].X)*dzdx + (sy-tri[0].Y)*dzdy
			if fb.Plot(col, row, depth, c) {
				res.Written++
			}
		}
	}
	return res
}

// depthGradient solves
//
//	| dx1 dy1 |   | dz/dx |   | dz1 |
//	| dx2 dy2 | · | dz/dy | = | dz2 |
//
// for the edges v1-v0 and v2-v0. ok is false when the edges are collinear
// in X/Y, i.e. the triangle has no screen-space area.
func depthGradient(tri Triangle) (dzdx, dzdy float64, ok bool) {
	e1 := tri[1].Sub(tri[0])
	e2 := tri[2].Sub(tri[0])

	a := mat.NewDense(2, 2, []float64{
		e1.X, e1.Y,
		e2.X, e2.Y,
	})
	b := mat.NewVecDense(2, []float64{e1.Z, e2.Z})

	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		// mat.Condition: singular or too ill-conditioned to trust
		return 0, 0, false
	}
	dzdx, dzdy = x.AtVec(0), x.AtVec(1)
	if math.IsNaN(dzdx) || math.IsNaN(dzdy) {
		return 0, 0, false
	}
	return dzdx, dzdy, true
}

// edgeSign returns the signed area of (p, a, b) in X/Y: positive on one
// side of the line through a and b, negative on the other, zero on it.
func edgeSign(px, py, ax, ay, bx, by float64) float64 {
	return (px-bx)*(ay-by) - (ax-bx)*(py-by)
}

// pointInTriangle reports whether (px, py) lies inside tri or on its
// boundary: the three edge signs must not include both a positive and a
// negative value. Works for either winding.
func pointInTriangle(px, py float64, tri Triangle) bool {
	a, b, c := tri[0], tri[1], tri[2]
	d1 := edgeSign(px, py, a.X, a.Y, b.X, b.Y)
	d2 := edgeSign(px, py, b.X, b.Y, c.X, c.Y)
	d3 := edgeSign(px, py, c.X, c.Y, a.X, a.Y)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
