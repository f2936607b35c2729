package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// Configuration and output errors.
var (
	ErrInvalidResolution = errors.New("resolution must be positive")
	ErrInvalidViewport   = errors.New("viewport must be finite with max > min")
	ErrSizeMismatch      = errors.New("framebuffer size does not match resolution")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Viewport is the axis-aligned rectangle of camera-space X/Y that is mapped
// onto the output pixels.
type Viewport struct {
	XMin, YMin, XMax, YMax float64
}

// Validate reports ErrInvalidViewport for empty, inverted or non-finite
// rectangles.
func (v Viewport) Validate() error {
	for _, f := range [4]float64{v.XMin, v.YMin, v.XMax, v.YMax} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: %+v", ErrInvalidViewport, v)
		}
	}
	if !(v.XMax > v.XMin) || !(v.YMax > v.YMin) {
		return fmt.Errorf("%w: %+v", ErrInvalidViewport, v)
	}
	return nil
}

// Resolution is the output size in pixels.
type Resolution struct {
	Width, Height int
}

// Validate reports ErrInvalidResolution unless both dimensions are positive.
func (r Resolution) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidResolution, r.Width, r.Height)
	}
	return nil
}

// DefaultBackground is the mid-gray clear color.
var DefaultBackground = RGB(120, 120, 120)

// Config holds everything a Renderer needs besides the objects.
type Config struct {
	Viewport   Viewport
	Resolution Resolution

	// Camera rotation in radians: yaw about Z, then pitch about X.
	Yaw   float64
	Pitch float64

	Background Color

	// Workers splits the image into that many row bands rendered
	// concurrently. Values below 2 render on the calling goroutine.
	Workers int

	// Rasterizer fills single triangles. Nil selects BoundingBoxRasterizer.
	Rasterizer TriangleRasterizer
}

// DefaultConfig returns a 300x300 render of the (-2,-2)-(2,2) viewport with
// no rotation on a mid-gray background.
func DefaultConfig() Config {
	return Config{
		Viewport:   Viewport{XMin: -2, YMin: -2, XMax: 2, YMax: 2},
		Resolution: Resolution{Width: 300, Height: 300},
		Background: DefaultBackground,
		Workers:    1,
	}
}

// Validate checks the viewport and resolution.
func (c Config) Validate() error {
	if err := c.Resolution.Validate(); err != nil {
		return err
	}
	if err := c.Viewport.Validate(); err != nil {
		return err
	}
	if math.IsNaN(c.Yaw) || math.IsInf(c.Yaw, 0) || math.IsNaN(c.Pitch) || math.IsInf(c.Pitch, 0) {
		return fmt.Errorf("camera angles must be finite: yaw=%v pitch=%v", c.Yaw, c.Pitch)
	}
	return nil
}

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack  = color.RGBA{0, 0, 0, 255}
	ColorWhite  = color.RGBA{255, 255, 255, 255}
	ColorRed    = color.RGBA{200, 0, 0, 255}
	ColorGreen  = color.RGBA{0, 200, 0, 255}
	ColorBlue   = color.RGBA{0, 0, 200, 255}
	ColorYellow = color.RGBA{200, 200, 0, 255}
	ColorOrange = color.RGBA{200, 100, 0, 255}
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// RGBA creates a color from RGBA values.
func RGBA(r, g, b, a uint8) color.RGBA {
	return color.RGBA{r, g, b, a}
}
