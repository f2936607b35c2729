package models

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/flatraster/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into Object3D format.
type GLTFLoader struct {
	// DefaultColor paints triangles whose primitive has no material or no
	// base color factor.
	DefaultColor color.RGBA

	// ReverseWinding swaps the last two indices of every triangle.
	// GLTF front faces are counter-clockwise; the renderer's camera-facing
	// winding is clockwise, so this defaults to true.
	ReverseWinding bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		DefaultColor:   color.RGBA{255, 255, 255, 255},
		ReverseWinding: true,
	}
}

// LoadGLB loads a GLTF or GLB file with the default loader.
func LoadGLB(path string) (*Object3D, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a single Object3D holding the
// triangles of every mesh in the document.
func (l *GLTFLoader) Load(path string) (*Object3D, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	obj, err := l.FromDocument(doc)
	if err != nil {
		return nil, err
	}
	obj.Name = filepath.Base(path)
	return obj, nil
}

// FromDocument converts an already decoded GLTF document.
func (l *GLTFLoader) FromDocument(doc *gltf.Document) (*Object3D, error) {
	obj := &Object3D{}

	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, obj); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	if err := obj.Validate(); err != nil {
		return nil, fmt.Errorf("validate gltf geometry: %w", err)
	}
	return obj, nil
}

// processMesh appends the triangle primitives of a GLTF mesh to obj.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, obj *Object3D) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Lines and points have no area to fill
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		base := len(obj.Points)
		obj.Points = append(obj.Points, positions...)

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// Non-indexed: consecutive vertex triples
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		c := l.primitiveColor(doc, prim)
		for i := 0; i+2 < len(indices); i += 3 {
			tri := [3]int{base + indices[i], base + indices[i+1], base + indices[i+2]}
			if l.ReverseWinding {
				tri[1], tri[2] = tri[2], tri[1]
			}
			obj.Triangles = append(obj.Triangles, tri)
			obj.Colors = append(obj.Colors, c)
		}
	}

	return nil
}

// primitiveColor returns the flat color for a primitive from its material's
// base color factor.
func (l *GLTFLoader) primitiveColor(doc *gltf.Document, prim *gltf.Primitive) color.RGBA {
	if prim.Material == nil || *prim.Material < 0 || *prim.Material >= len(doc.Materials) {
		return l.DefaultColor
	}
	mat := doc.Materials[*prim.Material]
	if mat == nil || mat.PBRMetallicRoughness == nil || mat.PBRMetallicRoughness.BaseColorFactor == nil {
		return l.DefaultColor
	}
	f := mat.PBRMetallicRoughness.BaseColorFactor
	return color.RGBA{
		R: unitToByte(f[0]),
		G: unitToByte(f[1]),
		B: unitToByte(f[2]),
		A: 255,
	}
}

// unitToByte maps a 0-1 channel to 0-255, clamping out of range values.
func unitToByte(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// readVec3Accessor reads Vec3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float positions, got %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec3, accessor.Count)
	for i := range result {
		off := i * stride
		result[i] = math3d.V3(
			float64(readFloat32(data[off:])),
			float64(readFloat32(data[off+4:])),
			float64(readFloat32(data[off+8:])),
		)
	}
	return result, nil
}

// readIndices reads index data from a GLTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range result {
		off := i * stride
		switch size {
		case 1:
			result[i] = int(data[off])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(data[off:]))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(data[off:]))
		}
	}
	return result, nil
}

// accessorBytes returns the buffer slice starting at the accessor's first
// element together with the element stride. elemSize is the tightly packed
// element size used when the buffer view declares no stride.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	if *accessor.BufferView < 0 || *accessor.BufferView >= len(doc.BufferViews) {
		return nil, 0, fmt.Errorf("buffer view %d out of range", *accessor.BufferView)
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	if bufferView.Buffer < 0 || bufferView.Buffer >= len(doc.Buffers) {
		return nil, 0, fmt.Errorf("buffer %d out of range", bufferView.Buffer)
	}

	// gltf.Open resolves both GLB chunks and external URIs into Data
	bufData := doc.Buffers[bufferView.Buffer].Data
	if bufData == nil {
		return nil, 0, fmt.Errorf("buffer has no data")
	}

	stride := bufferView.ByteStride
	if stride == 0 {
		stride = elemSize
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	if accessor.Count == 0 {
		return nil, stride, nil
	}
	end := start + (accessor.Count-1)*stride + elemSize
	if start < 0 || end > len(bufData) {
		return nil, 0, fmt.Errorf("accessor reads [%d:%d] past buffer of %d bytes", start, end, len(bufData))
	}
	return bufData[start:end], stride, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
