package render

// SampleGrid holds the scene-space coordinate sampled by every pixel column
// and row. Column 0 samples Viewport.XMin and the last column XMax; row 0
// samples YMax and the last row YMin, so Y decreases down the image.
type SampleGrid struct {
	Xs []float64 // len == Resolution.Width
	Ys []float64 // len == Resolution.Height
}

// NewSampleGrid computes the sample coordinates once per renderer.
func NewSampleGrid(vp Viewport, res Resolution) *SampleGrid {
	return &SampleGrid{
		Xs: linspace(vp.XMin, vp.XMax, res.Width),
		Ys: linspace(vp.YMax, vp.YMin, res.Height),
	}
}

// linspace returns n evenly spaced values from start to stop inclusive.
// The last value is exactly stop.
func linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = float64(i)*step + start
	}
	out[n-1] = stop
	return out
}
