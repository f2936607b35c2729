// Package render implements the flatraster pipeline: rotate, cull,
// rasterize and depth-test triangles into a Framebuffer.
package render

import (
	"image"
	"image/color"
	"math"
)

// Framebuffer owns a color plane and a depth plane of the same size.
//
// Depth follows "most positive wins": the camera looks down -Z, so a larger
// Z is nearer. Cleared depth is -Inf, which every finite depth beats.
type Framebuffer struct {
	Width  int          // Width in pixels
	Height int          // Height in pixels
	Pixels []color.RGBA // Row-major color data, top row first
	Depth  []float64    // Row-major depth data, same layout as Pixels
}

// NewFramebuffer creates a framebuffer cleared to bg.
// Non-positive dimensions produce an empty framebuffer.
func NewFramebuffer(width, height int, bg color.RGBA) *Framebuffer {
	width = max(width, 0)
	height = max(height, 0)
	fb := &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
		Depth:  make([]float64, width*height),
	}
	fb.Clear(bg)
	return fb
}

// Clear fills the color plane with c and resets every depth to -Inf.
func (fb *Framebuffer) Clear(c color.RGBA) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
	negInf := math.Inf(-1)
	for i := range fb.Depth {
		fb.Depth[i] = negInf
	}
}

// SetPixel sets a pixel at (x, y) to the given color without touching
// depth. Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DepthAt returns the depth stored at (x, y).
// Returns +Inf if out of bounds so that no write can pass there.
func (fb *Framebuffer) DepthAt(x, y int) float64 {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return math.Inf(1)
	}
	return fb.Depth[y*fb.Width+x]
}

// Plot performs the depth test at (x, y): when depth is strictly greater
// than the stored depth, it writes both c and depth and returns true.
// Equal or smaller depths leave the pixel untouched.
func (fb *Framebuffer) Plot(x, y int, depth float64, c color.RGBA) bool {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return false
	}
	i := y*fb.Width + x
	if depth <= fb.Depth[i] || math.IsNaN(depth) {
		return false
	}
	fb.Pixels[i] = c
	fb.Depth[i] = depth
	return true
}

// CountPixels returns how many pixels currently hold c.
func (fb *Framebuffer) CountPixels(c color.RGBA) int {
	n := 0
	for _, p := range fb.Pixels {
		if p == c {
			n++
		}
	}
	return n
}

// RGB returns the color plane as height*width*3 bytes, row-major, top row
// first, one byte per channel. Alpha is dropped.
func (fb *Framebuffer) RGB() []byte {
	out := make([]byte, 0, len(fb.Pixels)*3)
	for _, p := range fb.Pixels {
		out = append(out, p.R, p.G, p.B)
	}
	return out
}

// ToImage converts the framebuffer to a standard Go image.RGBA with every
// pixel opaque.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, p := range fb.Pixels {
		o := i * 4
		img.Pix[o] = p.R
		img.Pix[o+1] = p.G
		img.Pix[o+2] = p.B
		img.Pix[o+3] = 255
	}
	return img
}
