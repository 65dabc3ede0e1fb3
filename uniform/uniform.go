// Package uniform packs per-draw shading data into the fixed-size uniform
// blocks read by the GPU shaders.
//
// All blocks use std140 layout with little-endian 32-bit scalars. Matrices
// are column-major. Gradients are resizable in package shade; the
// 16-slot cap of the gradient block applies only here.
package uniform

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/shade"
)

// Block sizes in bytes.
const (
	// TransformSize holds projection, local transform and an info vec4
	// whose x component is the clip depth.
	TransformSize = 2*MatrixSize + 16

	// SolidSize holds one premultiplied color.
	SolidSize = 16

	// GradientInfoSize holds counts[4]u32, colors[16]vec4 and stops[16]f32
	// (as four vec4).
	GradientInfoSize = 16 + shade.MaxColors*16 + shade.MaxColors*4

	// MatrixSize holds one mat4x4<f32>.
	MatrixSize = 64

	// GeometrySize holds linear (p0, p1) or radial (center, radius, 0)
	// geometry.
	GeometrySize = 16

	// ImageTransformSize holds the object-to-texel matrix and the texture
	// bounds (width, height, 0, 0).
	ImageTransformSize = MatrixSize + 16

	// ImageInfoSize holds flags[4]u32{premultiplied, colorType, tinted, 0}
	// and the premultiplied tint color.
	ImageInfoSize = 16 + 16
)

func putF32(buf []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
}

func putU32(buf []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(buf[off:off+4], v)
}

func putMatrix(buf []byte, off int, m shade.Mat4) {
	for i, v := range m {
		putF32(buf, off+i*4, v)
	}
}

func putColor(buf []byte, off int, r, g, b, a float32) {
	putF32(buf, off, r)
	putF32(buf, off+4, g)
	putF32(buf, off+8, b)
	putF32(buf, off+12, a)
}

// Transform packs a transform block.
func Transform(tb shade.TransformBlock) []byte {
	buf := make([]byte, TransformSize)
	putMatrix(buf, 0, tb.Projection)
	putMatrix(buf, MatrixSize, tb.Local)
	putF32(buf, 2*MatrixSize, tb.ClipDepth)
	return buf
}

// Solid packs a solid color block.
func Solid(c shade.SolidColor) []byte {
	buf := make([]byte, SolidSize)
	putColor(buf, 0, c.R, c.G, c.B, c.A)
	return buf
}

// GradientInfo packs the color ramp of g. Stops are uploaded only when
// their count matches the color count; the shader then falls back to even
// spacing.
func GradientInfo(g *shade.Gradient) ([]byte, error) {
	n := len(g.Colors)
	if n > shade.MaxColors {
		return nil, fmt.Errorf("uniform: %d colors, limit %d: %w", n, shade.MaxColors, shade.ErrTooManyColors)
	}

	stopCount := 0
	if len(g.Stops) == n {
		stopCount = n
	}

	buf := make([]byte, GradientInfoSize)
	putU32(buf, 0, uint32(n))         //nolint:gosec // n <= MaxColors
	putU32(buf, 4, uint32(stopCount)) //nolint:gosec // stopCount <= MaxColors
	putU32(buf, 8, uint32(g.TileMode))

	colors := 16
	for i, c := range g.Colors {
		putColor(buf, colors+i*16, c.R, c.G, c.B, c.A)
	}
	stops := colors + shade.MaxColors*16
	for i := 0; i < stopCount; i++ {
		putF32(buf, stops+i*4, g.Stops[i])
	}
	return buf, nil
}

// GradientMatrix packs the object-to-gradient matrix of g. A singular
// placement matrix is replaced by identity.
func GradientMatrix(g *shade.Gradient) []byte {
	if _, ok := g.Matrix.Invert(); !ok && g.Matrix != (shade.Mat4{}) {
		shade.Logger().Warn("uniform: singular gradient matrix, using identity")
	}
	buf := make([]byte, MatrixSize)
	putMatrix(buf, 0, g.InverseMatrix())
	return buf
}

// GradientGeometry packs the linear end points or radial circle of g.
func GradientGeometry(g *shade.Gradient) []byte {
	buf := make([]byte, GeometrySize)
	if g.Type == shade.GradientRadial {
		putColor(buf, 0, g.Center.X, g.Center.Y, g.Radius, 0)
	} else {
		putColor(buf, 0, g.P0.X, g.P0.Y, g.P1.X, g.P1.Y)
	}
	return buf
}

// ImageTransform packs the object-to-texel matrix and texture bounds.
func ImageTransform(p *shade.ImagePaint) ([]byte, error) {
	if p.Texture == nil {
		return nil, shade.ErrNilTexture
	}
	w, h := p.Texture.Size()
	buf := make([]byte, ImageTransformSize)
	putMatrix(buf, 0, p.InverseMatrix())
	putColor(buf, MatrixSize, float32(w), float32(h), 0, 0)
	return buf, nil
}

// ImageInfo packs the alpha convention, channel layout and tint.
func ImageInfo(p *shade.ImagePaint) ([]byte, error) {
	if p.Texture == nil {
		return nil, shade.ErrNilTexture
	}
	d := p.Texture.Descriptor()
	buf := make([]byte, ImageInfoSize)
	if d.AlphaType == shade.AlphaPremultiplied {
		putU32(buf, 0, 1)
	}
	putU32(buf, 4, uint32(d.ColorType))
	tint := shade.White
	if p.Tint != nil {
		putU32(buf, 8, 1)
		tint = p.Tint.Premultiply()
	}
	putColor(buf, 16, tint.R, tint.G, tint.B, tint.A)
	return buf, nil
}
