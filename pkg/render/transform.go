package render

import "github.com/taigrr/flatraster/pkg/math3d"

// ProjectPoints rotates object-space points into camera space:
//
//	p' = p · Rz(yaw) · Rx(pitch)
//
// There is no translation and no perspective divide; Z is kept for the
// depth test. The input slice is not modified.
func ProjectPoints(points []math3d.Vec3, yaw, pitch float64) []math3d.Vec3 {
	rz := math3d.RotateZ(yaw)
	rx := math3d.RotateX(pitch)

	out := make([]math3d.Vec3, len(points))
	for i, p := range points {
		out[i] = p.MulMat(rz).MulMat(rx)
	}
	return out
}
