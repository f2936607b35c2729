package render

import (
	"github.com/taigrr/flatraster/pkg/math3d"
)

// Triangle is three camera-space points in winding order.
type Triangle [3]math3d.Vec3

// Normal returns the unnormalized face normal (p0-p1) × (p2-p1).
func (t Triangle) Normal() math3d.Vec3 {
	return t[0].Sub(t[1]).Cross(t[2].Sub(t[1]))
}

// FacingDot returns the dot product of the view direction (0, 0, -1) with
// the face normal.
func (t Triangle) FacingDot() float64 {
	return math3d.Forward().Dot(t.Normal())
}

// Visible reports whether the triangle faces the camera, i.e. FacingDot is
// strictly negative. Edge-on triangles are not visible.
func (t Triangle) Visible() bool {
	return t.FacingDot() < 0
}

// AssembleTriangles looks up each index triple in points.
// Indices must already be validated.
func AssembleTriangles(points []math3d.Vec3, indices [][3]int) []Triangle {
	tris := make([]Triangle, len(indices))
	for i, idx := range indices {
		tris[i] = Triangle{points[idx[0]], points[idx[1]], points[idx[2]]}
	}
	return tris
}

// CullBackFaces keeps the camera-facing triangles and their paired colors,
// preserving order.
func CullBackFaces(tris []Triangle, colors []Color) ([]Triangle, []Color) {
	var (
		visible []Triangle
		kept    []Color
	)
	for i, t := range tris {
		if !t.Visible() {
			continue
		}
		visible = append(visible, t)
		kept = append(kept, colors[i])
	}
	return visible, kept
}
