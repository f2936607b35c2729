package render

import (
	"math"
	"testing"

	"github.com/taigrr/flatraster/pkg/math3d"
	"github.com/taigrr/flatraster/pkg/models"
)

func TestProjectPointsIdentity(t *testing.T) {
	cube := models.Cube(ColorWhite)
	points := append([]math3d.Vec3{math3d.V3(0.1, -2.7, 13.25)}, cube.Points...)

	got := ProjectPoints(points, 0, 0)
	for i := range points {
		if got[i] != points[i] {
			t.Errorf("point %d: %v -> %v, want unchanged", i, points[i], got[i])
		}
	}
}

func TestProjectPointsDoesNotMutate(t *testing.T) {
	points := []math3d.Vec3{math3d.V3(1, 0, 0)}
	_ = ProjectPoints(points, 1, 1)
	if points[0] != math3d.V3(1, 0, 0) {
		t.Errorf("input mutated to %v", points[0])
	}
}

func TestProjectPointsOrder(t *testing.T) {
	// Yaw 90° sends +X to -Y (row-vector convention); pitch 90° then sends
	// -Y to +Z.
	got := ProjectPoints([]math3d.Vec3{math3d.V3(1, 0, 0)}, math.Pi/2, math.Pi/2)[0]
	want := math3d.V3(0, 0, 1)
	if math.Abs(got.X-want.X) > 1e-12 || math.Abs(got.Y-want.Y) > 1e-12 || math.Abs(got.Z-want.Z) > 1e-12 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestProjectPointsPreservesLength(t *testing.T) {
	cube := models.Cube(ColorWhite)
	for i, p := range ProjectPoints(cube.Points, deg(45), deg(60)) {
		if math.Abs(p.Len()-math.Sqrt(3)) > 1e-12 {
			t.Errorf("corner %d length %v, want √3", i, p.Len())
		}
	}
}
