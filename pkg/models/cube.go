package models

import (
	"image/color"

	"github.com/taigrr/flatraster/pkg/math3d"
)

// Cube returns the 2x2x2 demo cube centered on the origin: 8 corners and
// 12 triangles, every triangle painted c.
//
// Each face is wound clockwise when seen from outside the cube, which is
// the camera-facing winding for the renderer's (0, 0, -1) view direction.
func Cube(c color.RGBA) *Object3D {
	points := []math3d.Vec3{
		{X: -1, Y: -1, Z: -1},
		{X: -1, Y: 1, Z: -1},
		{X: 1, Y: 1, Z: -1},
		{X: 1, Y: -1, Z: -1},
		{X: -1, Y: -1, Z: 1},
		{X: -1, Y: 1, Z: 1},
		{X: 1, Y: 1, Z: 1},
		{X: 1, Y: -1, Z: 1},
	}

	triangles := [][3]int{
		{0, 2, 1}, {0, 3, 2}, // bottom
		{4, 5, 6}, {4, 6, 7}, // top
		{1, 2, 6}, {1, 6, 5}, // back
		{0, 4, 7}, {0, 7, 3}, // front
		{0, 1, 5}, {0, 5, 4}, // left
		{3, 7, 6}, {3, 6, 2}, // right
	}

	colors := make([]color.RGBA, len(triangles))
	for i := range colors {
		colors[i] = c
	}

	return &Object3D{
		Name:      "cube",
		Points:    points,
		Triangles: triangles,
		Colors:    colors,
	}
}
