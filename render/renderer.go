// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"context"
	"errors"
	"image"

	"github.com/chewxy/math32"
	"golang.org/x/image/vector"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/shade"
	"github.com/gogpu/shade/clip"
)

var (
	// ErrNilTarget is returned when drawing into a nil target.
	ErrNilTarget = errors.New("render: nil target")

	// ErrNilPaint is returned for a draw without a paint.
	ErrNilPaint = errors.New("render: draw has no paint")
)

// Renderer shades draws into a Target on the CPU.
//
// Each draw is rasterized once into an anti-aliased coverage mask, then
// shaded in row bands on a bounded set of goroutines. Bands write disjoint
// rows, so the target needs no locking. A Renderer is safe for concurrent
// use with different targets.
//
// Example:
//
//	r := render.NewRenderer()
//	target := render.NewTarget(800, 600)
//	g, _ := shade.NewLinearGradient(shade.V2(0, 0), shade.V2(800, 0), colors, nil)
//	err := r.Fill(ctx, target, render.Rect(0, 0, 800, 600), shade.Identity4(), g)
type Renderer struct {
	opts options
}

// NewRenderer creates a software renderer.
func NewRenderer(opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{opts: o}
}

// screenTri is a triangle in pixel space with its paint coordinates.
type screenTri struct {
	p     [3]shade.Vec2
	paint [3]shade.Vec2
	area  float32 // twice the signed area
}

func edge(a, b, p shade.Vec2) float32 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

// weights returns the barycentric weights of p.
func (t *screenTri) weights(p shade.Vec2) [3]float32 {
	w0 := edge(t.p[1], t.p[2], p) / t.area
	w1 := edge(t.p[2], t.p[0], p) / t.area
	return [3]float32{w0, w1, 1 - w0 - w1}
}

// Draw rasterizes the mesh with the draw's transform and shades every
// covered pixel with its paint.
//
// Content draws composite source-over where the pixel passes the clip depth
// test. A ClipOnly draw writes no color: it records its clip depth where the
// shape covers at least half a pixel and the pixel lies inside the parent of
// the target's current clip region. Push the region on target.Clips() before
// drawing its shape, or use PushClip.
func (r *Renderer) Draw(ctx context.Context, t *Target, m Mesh, d shade.Draw) error {
	if t == nil {
		return ErrNilTarget
	}
	if d.Paint == nil {
		return ErrNilPaint
	}
	if err := m.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tris, depth, bounds := setup(t, m, d)
	if len(tris) == 0 || bounds.Empty() {
		return nil
	}
	mask := coverage(tris, bounds)

	shade.Logger().Debug("render: draw",
		"kind", d.Kind(),
		"triangles", len(tris),
		"bounds", bounds,
		"depth", depth)

	parent := clip.DepthOf(t.clips.Parent())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.workers)
	for y0 := bounds.Min.Y; y0 < bounds.Max.Y; y0 += r.opts.bandHeight {
		y1 := min(y0+r.opts.bandHeight, bounds.Max.Y)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if d.Kind() == shade.KindClipOnly {
				recordBand(t, mask, bounds, y0, y1, parent, depth)
			} else {
				shadeBand(t, d.Paint, tris, mask, bounds, y0, y1, depth)
			}
			return nil
		})
	}
	return g.Wait()
}

// Fill draws paint over the mesh inside the target's current clip region.
func (r *Renderer) Fill(ctx context.Context, t *Target, m Mesh, local shade.Mat4, paint shade.Paint) error {
	if t == nil {
		return ErrNilTarget
	}
	return r.Draw(ctx, t, m, shade.Draw{
		Transform: t.transform(local, t.clips.ClipDepth()),
		Paint:     paint,
	})
}

// PushClip opens a clip region shaped by the mesh, nested in the current
// one. Subsequent Fill calls draw inside it until PopClip.
func (r *Renderer) PushClip(ctx context.Context, t *Target, m Mesh, local shade.Mat4) (clip.Key, error) {
	if t == nil {
		return 0, ErrNilTarget
	}
	key, err := t.clips.Push()
	if err != nil {
		return 0, err
	}
	err = r.Draw(ctx, t, m, shade.Draw{
		Transform: t.transform(local, clip.DepthOf(key)),
		Paint:     shade.ClipOnly{},
	})
	if err != nil {
		t.clips.Pop()
		return 0, err
	}
	return key, nil
}

// PopClip closes the current clip region.
func (r *Renderer) PopClip(t *Target) {
	t.clips.Pop()
}

func (t *Target) transform(local shade.Mat4, depth float32) shade.TransformBlock {
	return shade.NewTransformBlock(float32(t.Width()), float32(t.Height()), local, depth)
}

// setup projects the mesh to pixel space. It returns the non-degenerate
// triangles, the draw's clip depth and the covered pixel bounds.
func setup(t *Target, m Mesh, d shade.Draw) ([]screenTri, float32, image.Rectangle) {
	w, h := float32(t.Width()), float32(t.Height())

	verts := make([]shade.Vertex, len(m.Vertices))
	pix := make([]shade.Vec2, len(m.Vertices))
	for i, p := range m.Vertices {
		v := d.Vertex(p)
		verts[i] = v
		pix[i] = shade.V2((v.Position.X+1)*0.5*w, (1-v.Position.Y)*0.5*h)
	}

	var depth float32
	if len(verts) > 0 {
		depth = verts[0].Position.Z
	}

	minX, minY := math32.Inf(1), math32.Inf(1)
	maxX, maxY := math32.Inf(-1), math32.Inf(-1)
	tris := make([]screenTri, 0, m.TriangleCount())
	for i := range m.TriangleCount() {
		a, b, c := m.triangle(i)
		tri := screenTri{
			p:     [3]shade.Vec2{pix[a], pix[b], pix[c]},
			paint: [3]shade.Vec2{verts[a].PaintCoord, verts[b].PaintCoord, verts[c].PaintCoord},
		}
		tri.area = edge(tri.p[0], tri.p[1], tri.p[2])
		if math32.Abs(tri.area) < 1e-6 {
			continue
		}
		for _, p := range tri.p {
			minX, maxX = math32.Min(minX, p.X), math32.Max(maxX, p.X)
			minY, maxY = math32.Min(minY, p.Y), math32.Max(maxY, p.Y)
		}
		tris = append(tris, tri)
	}
	if len(tris) == 0 {
		return nil, depth, image.Rectangle{}
	}

	bounds := image.Rect(
		int(math32.Floor(minX)), int(math32.Floor(minY)),
		int(math32.Ceil(maxX)), int(math32.Ceil(maxY)),
	).Intersect(image.Rect(0, 0, t.Width(), t.Height()))
	return tris, depth, bounds
}

// coverage rasterizes every triangle into one anti-aliased mask covering
// bounds. Triangles are wound the same way so shared edges sum to full
// coverage.
func coverage(tris []screenTri, bounds image.Rectangle) *image.Alpha {
	z := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	ox, oy := float32(bounds.Min.X), float32(bounds.Min.Y)
	for i := range tris {
		a, b, c := tris[i].p[0], tris[i].p[1], tris[i].p[2]
		if tris[i].area < 0 {
			b, c = c, b
		}
		z.MoveTo(a.X-ox, a.Y-oy)
		z.LineTo(b.X-ox, b.Y-oy)
		z.LineTo(c.X-ox, c.Y-oy)
		z.ClosePath()
	}
	mask := image.NewAlpha(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// locate returns the triangle containing p, or the nearest one when p lies
// on an anti-aliased edge outside all of them.
func locate(tris []screenTri, p shade.Vec2) (*screenTri, [3]float32) {
	best := math32.Inf(-1)
	var bt *screenTri
	var bw [3]float32
	for i := range tris {
		w := tris[i].weights(p)
		m := min(w[0], w[1], w[2])
		if m >= 0 {
			return &tris[i], w
		}
		if m > best {
			best, bt, bw = m, &tris[i], w
		}
	}
	return bt, bw
}

func shadeBand(t *Target, paint shade.Paint, tris []screenTri, mask *image.Alpha, bounds image.Rectangle, y0, y1 int, depth float32) {
	pix := t.img.Pix
	for y := y0; y < y1; y++ {
		row := mask.Pix[(y-bounds.Min.Y)*mask.Stride:]
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			a := row[x-bounds.Min.X]
			if a == 0 || !t.depth.Test(x, y, depth) {
				continue
			}
			center := shade.V2(float32(x)+0.5, float32(y)+0.5)
			tri, w := locate(tris, center)
			coord := tri.paint[0].Mul(w[0]).Add(tri.paint[1].Mul(w[1])).Add(tri.paint[2].Mul(w[2]))

			src, ok := paint.Shade(coord)
			if !ok {
				continue
			}
			blendOver(pix, t.pixOffset(x, y), src, float32(a)/255)
		}
	}
}

func recordBand(t *Target, mask *image.Alpha, bounds image.Rectangle, y0, y1 int, parent, depth float32) {
	for y := y0; y < y1; y++ {
		row := mask.Pix[(y-bounds.Min.Y)*mask.Stride:]
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if row[x-bounds.Min.X] < 128 {
				continue
			}
			t.depth.Record(x, y, parent, depth)
		}
	}
}

// blendOver composites a premultiplied source scaled by coverage over the
// premultiplied pixel at offset i.
func blendOver(pix []byte, i int, s shade.Result, cov float32) {
	inv := 1 - s.A*cov
	pix[i+0] = unorm(s.R*cov + float32(pix[i+0])/255*inv)
	pix[i+1] = unorm(s.G*cov + float32(pix[i+1])/255*inv)
	pix[i+2] = unorm(s.B*cov + float32(pix[i+2])/255*inv)
	pix[i+3] = unorm(s.A*cov + float32(pix[i+3])/255*inv)
}

func unorm(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
