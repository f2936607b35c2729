// flatraster - Flat-shaded software rasterizer
// Renders triangle meshes seen along -Z to a PNG, BMP or TIFF image, with an
// optional half-block preview in the terminal.
//
// Without a model argument the demo cube is drawn.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/flatraster/pkg/models"
	"github.com/taigrr/flatraster/pkg/render"
)

var (
	outPath   = flag.String("o", "scene.png", "Output image (.png, .bmp, .tif, .tiff)")
	width     = flag.Int("width", 300, "Image width in pixels")
	height    = flag.Int("height", 300, "Image height in pixels")
	viewport  = flag.String("viewport", "-2,-2,2,2", "Visible scene rectangle (xmin,ymin,xmax,ymax)")
	yawDeg    = flag.Float64("yaw", 45, "Rotation about Z in degrees")
	pitchDeg  = flag.Float64("pitch", 60, "Rotation about X in degrees, applied after yaw")
	bgColor   = flag.String("bg", "120,120,120", "Background color (R,G,B)")
	fitSize   = flag.Float64("fit", 2, "Center a loaded model and scale its largest extent to this size (0 keeps it as is)")
	workers   = flag.Int("workers", 1, "Row bands rendered concurrently")
	preview   = flag.Bool("preview", false, "Also print the scene in the terminal")
	verbose   = flag.Bool("v", false, "Log render diagnostics to stderr")
	keepWinding = flag.Bool("keep-winding", false, "Keep glTF counter-clockwise winding instead of flipping it")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "flatraster - Flat-shaded software rasterizer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: flatraster [options] [model.glb|model.gltf]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(modelPath string) error {
	if *verbose {
		render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	bg, err := parseColor(*bgColor)
	if err != nil {
		return fmt.Errorf("parse -bg: %w", err)
	}
	vp, err := parseViewport(*viewport)
	if err != nil {
		return fmt.Errorf("parse -viewport: %w", err)
	}

	obj, err := loadScene(modelPath)
	if err != nil {
		return err
	}

	cfg := render.DefaultConfig()
	cfg.Viewport = vp
	cfg.Resolution = render.Resolution{Width: *width, Height: *height}
	cfg.Yaw = *yawDeg * math.Pi / 180
	cfg.Pitch = *pitchDeg * math.Pi / 180
	cfg.Background = bg
	cfg.Workers = *workers

	r, err := render.NewRenderer([]*models.Object3D{obj}, cfg)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	stats, err := r.RenderToFile(*outPath)
	if err != nil {
		return err
	}
	fmt.Printf("Rendered %s: %d/%d triangles visible, %d pixels painted -> %s\n",
		obj.Name, stats.Visible(), stats.Triangles, stats.PixelsWritten, *outPath)

	if *preview {
		return printPreview([]*models.Object3D{obj}, cfg)
	}
	return nil
}

// loadScene returns the demo cube or the model at path.
func loadScene(path string) (*models.Object3D, error) {
	if path == "" {
		return models.Cube(render.ColorWhite), nil
	}

	loader := models.NewGLTFLoader()
	loader.ReverseWinding = !*keepWinding
	obj, err := loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	if *fitSize > 0 {
		obj.Fit(*fitSize)
	}
	return obj, nil
}

// printPreview re-renders the scene at terminal resolution. Each cell holds
// two pixel rows, so a square image fills min(cols, 2*rows) pixels a side.
func printPreview(objects []*models.Object3D, cfg render.Config) error {
	cols, rows, err := uv.DefaultTerminal().GetSize()
	if err != nil {
		// Not a terminal: fall back to a classic 80x24 screen
		cols, rows = 80, 24
	}

	side := min(cols, 2*(rows-1))
	if side <= 0 {
		return nil
	}
	cfg.Resolution = render.Resolution{Width: side, Height: side}

	r, err := render.NewRenderer(objects, cfg)
	if err != nil {
		return fmt.Errorf("create preview renderer: %w", err)
	}
	fb, _ := r.Render()
	fmt.Println(fb.Preview())
	return nil
}

// parseColor parses "R,G,B" with each channel in 0-255.
func parseColor(s string) (render.Color, error) {
	parts, err := splitFloats(s, 3)
	if err != nil {
		return render.Color{}, err
	}
	var ch [3]uint8
	for i, v := range parts {
		if v < 0 || v > 255 || v != math.Trunc(v) {
			return render.Color{}, fmt.Errorf("channel %d: %v not an integer in 0-255", i, v)
		}
		ch[i] = uint8(v)
	}
	return render.RGB(ch[0], ch[1], ch[2]), nil
}

// parseViewport parses "xmin,ymin,xmax,ymax".
func parseViewport(s string) (render.Viewport, error) {
	v, err := splitFloats(s, 4)
	if err != nil {
		return render.Viewport{}, err
	}
	return render.Viewport{XMin: v[0], YMin: v[1], XMax: v[2], YMax: v[3]}, nil
}

func splitFloats(s string, n int) ([]float64, error) {
	fields := strings.Split(s, ",")
	if len(fields) != n {
		return nil, fmt.Errorf("want %d comma-separated values, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
