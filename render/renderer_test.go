// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/shade"
)

// pixelTolerance absorbs coverage rounding in the rasterizer.
const pixelTolerance = 2

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -pixelTolerance && d <= pixelTolerance
}

func checkPixel(t *testing.T, target *Target, x, y int, want color.RGBA) {
	t.Helper()
	got := target.Image().RGBAAt(x, y)
	if !near(got.R, want.R) || !near(got.G, want.G) || !near(got.B, want.B) || !near(got.A, want.A) {
		t.Errorf("pixel (%d, %d) = %v, want %v", x, y, got, want)
	}
}

var (
	opaqueRed   = color.RGBA{R: 255, A: 255}
	opaqueGreen = color.RGBA{G: 255, A: 255}
	opaqueBlue  = color.RGBA{B: 255, A: 255}
	empty       = color.RGBA{}
)

func fill(t *testing.T, r *Renderer, target *Target, m Mesh, p shade.Paint) {
	t.Helper()
	if err := r.Fill(context.Background(), target, m, shade.Identity4(), p); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
}

func pushClip(t *testing.T, r *Renderer, target *Target, m Mesh) {
	t.Helper()
	if _, err := r.PushClip(context.Background(), target, m, shade.Identity4()); err != nil {
		t.Fatalf("PushClip() error = %v", err)
	}
}

func TestRenderer_SolidFill(t *testing.T) {
	r := NewRenderer()
	target := NewTarget(8, 8)
	fill(t, r, target, Rect(0, 0, 8, 8), shade.SolidColorFrom(shade.Red))

	for y := range 8 {
		for x := range 8 {
			checkPixel(t, target, x, y, opaqueRed)
		}
	}
}

func TestRenderer_SolidTranslucentOver(t *testing.T) {
	r := NewRenderer()
	target := NewTarget(2, 2)
	target.Clear(color.White)
	fill(t, r, target, Rect(0, 0, 2, 2), shade.SolidColorFrom(shade.RGBA(0, 0, 0, 0.5)))

	checkPixel(t, target, 1, 1, color.RGBA{R: 128, G: 128, B: 128, A: 255})
}

func TestRenderer_PartialCoverage(t *testing.T) {
	r := NewRenderer()
	target := NewTarget(4, 1)
	fill(t, r, target, Rect(0, 0, 2.5, 1), shade.SolidColorFrom(shade.Blue))

	checkPixel(t, target, 1, 0, opaqueBlue)
	checkPixel(t, target, 2, 0, color.RGBA{B: 128, A: 128})
	checkPixel(t, target, 3, 0, empty)
}

func TestRenderer_LocalTransform(t *testing.T) {
	r := NewRenderer()
	target := NewTarget(6, 6)
	err := r.Fill(context.Background(), target, Rect(0, 0, 2, 2), shade.Translate4(3, 3, 0), shade.SolidColorFrom(shade.Green))
	if err != nil {
		t.Fatal(err)
	}
	checkPixel(t, target, 1, 1, empty)
	checkPixel(t, target, 3, 3, opaqueGreen)
	checkPixel(t, target, 4, 4, opaqueGreen)
}

func TestRenderer_LinearGradient(t *testing.T) {
	g, err := shade.NewLinearGradient(shade.V2(0, 0), shade.V2(10, 0), []shade.Color{shade.Red, shade.Blue}, nil)
	if err != nil {
		t.Fatal(err)
	}
	r := NewRenderer()
	target := NewTarget(10, 1)
	fill(t, r, target, Rect(0, 0, 10, 1), g)

	// Pixel centers sit at t = 0.05 and t = 0.95.
	checkPixel(t, target, 0, 0, color.RGBA{R: 242, B: 13, A: 255})
	checkPixel(t, target, 9, 0, color.RGBA{R: 13, B: 242, A: 255})
}

func TestRenderer_RadialGradient(t *testing.T) {
	g, err := shade.NewRadialGradient(shade.V2(0, 0.5), 4, []shade.Color{shade.White, shade.Black}, nil, shade.TileRepeat)
	if err != nil {
		t.Fatal(err)
	}
	r := NewRenderer()
	target := NewTarget(8, 1)
	fill(t, r, target, Rect(0, 0, 8, 1), g)

	// Distances 1.5/4 and 5.5/4 (repeated to 0.375) give the same gray.
	c1 := target.Image().RGBAAt(1, 0)
	c5 := target.Image().RGBAAt(5, 0)
	if c1.R < 150 || c1.R > 170 || !near(c1.R, c5.R) {
		t.Errorf("repeated radial pixels = %v and %v, want matching gray near 159", c1, c5)
	}
}

func TestRenderer_Image(t *testing.T) {
	b := shade.NewBitmap(2, 1, shade.ImageDescriptor{AlphaType: shade.AlphaUnpremultiplied, ColorType: shade.ColorRGBA})
	copy(b.Pix, []byte{255, 0, 0, 255, 0, 0, 255, 255})
	ip, err := shade.NewImagePaint(b, shade.Scale4(5, 10, 1))
	if err != nil {
		t.Fatal(err)
	}
	ip.Filter = shade.FilterNearest

	r := NewRenderer()
	target := NewTarget(10, 10)
	fill(t, r, target, Rect(0, 0, 10, 10), ip)

	checkPixel(t, target, 2, 5, opaqueRed)
	checkPixel(t, target, 7, 5, opaqueBlue)
}

func TestRenderer_Clip(t *testing.T) {
	r := NewRenderer()
	target := NewTarget(10, 1)
	full := Rect(0, 0, 10, 1)

	pushClip(t, r, target, Rect(0, 0, 5, 1))
	fill(t, r, target, full, shade.SolidColorFrom(shade.Red))
	checkPixel(t, target, 4, 0, opaqueRed)
	checkPixel(t, target, 5, 0, empty)

	r.PopClip(target)
	fill(t, r, target, Rect(5, 0, 5, 1), shade.SolidColorFrom(shade.Blue))
	checkPixel(t, target, 9, 0, opaqueBlue)
}

func TestRenderer_NestedClip(t *testing.T) {
	r := NewRenderer()
	target := NewTarget(10, 1)

	pushClip(t, r, target, Rect(0, 0, 6, 1))
	pushClip(t, r, target, Rect(4, 0, 6, 1))
	fill(t, r, target, Rect(0, 0, 10, 1), shade.SolidColorFrom(shade.Green))

	for x := range 10 {
		want := empty
		if x == 4 || x == 5 {
			want = opaqueGreen
		}
		checkPixel(t, target, x, 0, want)
	}
	if got := target.Clips().Depth(); got != 2 {
		t.Errorf("Clips().Depth() = %d, want 2", got)
	}
}

func TestRenderer_SiblingClip(t *testing.T) {
	r := NewRenderer()
	target := NewTarget(10, 1)

	pushClip(t, r, target, Rect(0, 0, 3, 1))
	r.PopClip(target)
	pushClip(t, r, target, Rect(5, 0, 3, 1))
	fill(t, r, target, Rect(0, 0, 10, 1), shade.SolidColorFrom(shade.Red))

	for x := range 10 {
		want := empty
		if x >= 5 && x < 8 {
			want = opaqueRed
		}
		checkPixel(t, target, x, 0, want)
	}
}

func TestRenderer_ClipOnlyWritesNoColor(t *testing.T) {
	r := NewRenderer()
	target := NewTarget(4, 4)
	pushClip(t, r, target, Rect(0, 0, 4, 4))
	for _, b := range target.Pixels() {
		if b != 0 {
			t.Fatal("clip-only draw wrote color")
		}
	}
}

func TestRenderer_ClearResetsClip(t *testing.T) {
	r := NewRenderer()
	target := NewTarget(4, 1)
	pushClip(t, r, target, Rect(0, 0, 1, 1))
	target.Clear(color.Transparent)

	fill(t, r, target, Rect(0, 0, 4, 1), shade.SolidColorFrom(shade.Red))
	checkPixel(t, target, 3, 0, opaqueRed)
}

func TestRenderer_WorkersMatch(t *testing.T) {
	g, err := shade.NewLinearGradient(shade.V2(0, 0), shade.V2(64, 64),
		[]shade.Color{shade.Red, shade.Green, shade.Blue}, []float32{0, 0.3, 1})
	if err != nil {
		t.Fatal(err)
	}
	m := Polygon(shade.V2(2, 2), shade.V2(60, 5), shade.V2(50, 60), shade.V2(4, 40))

	render := func(opts ...Option) []byte {
		target := NewTarget(64, 64)
		fill(t, NewRenderer(opts...), target, m, g)
		return target.Pixels()
	}
	serial := render(WithWorkers(1), WithBandHeight(64))
	parallel := render(WithWorkers(8), WithBandHeight(3))
	if !bytes.Equal(serial, parallel) {
		t.Error("parallel bands produced different pixels")
	}
}

func TestRenderer_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRenderer()
	target := NewTarget(4, 4)
	err := r.Fill(ctx, target, Rect(0, 0, 4, 4), shade.Identity4(), shade.SolidColorFrom(shade.Red))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Fill() error = %v, want %v", err, context.Canceled)
	}
	checkPixel(t, target, 0, 0, empty)
}

func TestRenderer_Errors(t *testing.T) {
	r := NewRenderer()
	ctx := context.Background()
	target := NewTarget(2, 2)

	if err := r.Draw(ctx, nil, Rect(0, 0, 1, 1), shade.Draw{Paint: shade.ClipOnly{}}); !errors.Is(err, ErrNilTarget) {
		t.Errorf("nil target error = %v", err)
	}
	if err := r.Draw(ctx, target, Rect(0, 0, 1, 1), shade.Draw{}); !errors.Is(err, ErrNilPaint) {
		t.Errorf("nil paint error = %v", err)
	}
	bad := Mesh{Vertices: []shade.Vec2{{}, {}}, Indices: []uint32{0, 1, 5}}
	if err := r.Fill(ctx, target, bad, shade.Identity4(), shade.SolidColor{A: 1}); !errors.Is(err, ErrInvalidMesh) {
		t.Errorf("bad mesh error = %v", err)
	}
}

func TestRenderer_DegenerateMesh(t *testing.T) {
	r := NewRenderer()
	target := NewTarget(4, 4)
	line := Mesh{Vertices: []shade.Vec2{shade.V2(0, 0), shade.V2(2, 2), shade.V2(4, 4)}}
	fill(t, r, target, line, shade.SolidColorFrom(shade.Red))
	for _, b := range target.Pixels() {
		if b != 0 {
			t.Fatal("degenerate triangle produced pixels")
		}
	}
}
