// Package models provides the scene geometry consumed by the renderer.
package models

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/taigrr/flatraster/pkg/math3d"
)

// Validation errors returned by NewObject3D and Object3D.Validate.
var (
	ErrNilObject          = errors.New("nil object")
	ErrIndexOutOfRange    = errors.New("triangle index out of range")
	ErrColorCountMismatch = errors.New("color count does not match triangle count")
	ErrNonFinitePoint     = errors.New("point has a NaN or infinite component")
)

// Object3D is a triangle mesh with one flat color per triangle.
//
// Triangle vertex order is significant: the face normal used for back-face
// culling is (p0-p1) × (p2-p1). The renderer treats an Object3D as
// read-only.
type Object3D struct {
	Name      string
	Points    []math3d.Vec3
	Triangles [][3]int     // Indices into Points
	Colors    []color.RGBA // One per triangle
}

// NewObject3D creates an object and validates it.
func NewObject3D(points []math3d.Vec3, triangles [][3]int, colors []color.RGBA) (*Object3D, error) {
	o := &Object3D{
		Points:    points,
		Triangles: triangles,
		Colors:    colors,
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate checks that every triangle index addresses a point, that there is
// exactly one color per triangle and that every point is finite.
func (o *Object3D) Validate() error {
	if o == nil {
		return ErrNilObject
	}
	if len(o.Colors) != len(o.Triangles) {
		return fmt.Errorf("%w: %d colors, %d triangles", ErrColorCountMismatch, len(o.Colors), len(o.Triangles))
	}
	for i, p := range o.Points {
		if !p.IsFinite() {
			return fmt.Errorf("point %d %v: %w", i, p, ErrNonFinitePoint)
		}
	}
	for i, tri := range o.Triangles {
		for _, idx := range tri {
			if idx < 0 || idx >= len(o.Points) {
				return fmt.Errorf("triangle %d index %d (have %d points): %w", i, idx, len(o.Points), ErrIndexOutOfRange)
			}
		}
	}
	return nil
}

// TriangleCount returns the number of triangles.
func (o *Object3D) TriangleCount() int {
	return len(o.Triangles)
}

// PointCount returns the number of points.
func (o *Object3D) PointCount() int {
	return len(o.Points)
}

// Bounds returns the axis-aligned bounding box of the points.
// An object with no points reports a zero box.
func (o *Object3D) Bounds() (min, max math3d.Vec3) {
	if len(o.Points) == 0 {
		return math3d.Zero3(), math3d.Zero3()
	}
	min, max = o.Points[0], o.Points[0]
	for _, p := range o.Points[1:] {
		min = min.Min(p)
		max = max.Max(p)
	}
	return min, max
}

// Clone creates a deep copy of the object.
func (o *Object3D) Clone() *Object3D {
	clone := &Object3D{
		Name:      o.Name,
		Points:    make([]math3d.Vec3, len(o.Points)),
		Triangles: make([][3]int, len(o.Triangles)),
		Colors:    make([]color.RGBA, len(o.Colors)),
	}
	copy(clone.Points, o.Points)
	copy(clone.Triangles, o.Triangles)
	copy(clone.Colors, o.Colors)
	return clone
}

// Fit centers the object on the origin and scales it uniformly so its
// largest extent equals size. Flat or empty objects are only centered.
func (o *Object3D) Fit(size float64) {
	lo, hi := o.Bounds()
	center := lo.Add(hi).Scale(0.5)
	ext := hi.Sub(lo)
	maxDim := max(ext.X, ext.Y, ext.Z)

	scale := 1.0
	if maxDim > 0 {
		scale = size / maxDim
	}
	for i, p := range o.Points {
		o.Points[i] = p.Sub(center).Scale(scale)
	}
}
