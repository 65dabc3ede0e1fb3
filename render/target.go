// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/shade/clip"
)

// Target is a CPU-backed render target: premultiplied RGBA pixels plus the
// clip state that draws into it share.
//
// Example:
//
//	target := render.NewTarget(800, 600)
//	renderer.Draw(ctx, target, mesh, draw)
//	img := target.Image()
type Target struct {
	img   *image.RGBA
	depth *clip.DepthBuffer
	clips *clip.Stack
}

// NewTarget creates a cleared target of the given size.
func NewTarget(width, height int) *Target {
	return NewTargetFromImage(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// NewTargetFromImage wraps an existing *image.RGBA as a render target.
// The image is used directly without copying.
func NewTargetFromImage(img *image.RGBA) *Target {
	b := img.Bounds()
	return &Target{
		img:   img,
		depth: clip.NewDepthBuffer(b.Dx(), b.Dy()),
		clips: clip.NewStack(),
	}
}

// Width returns the target width in pixels.
func (t *Target) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *Target) Height() int {
	return t.img.Bounds().Dy()
}

// Format returns the pixel format (RGBA8).
func (t *Target) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Pixels returns direct access to the pixel data.
func (t *Target) Pixels() []byte {
	return t.img.Pix
}

// Stride returns the number of bytes per row.
func (t *Target) Stride() int {
	return t.img.Stride
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *Target) Image() *image.RGBA {
	return t.img
}

// Depth returns the clip depth buffer.
func (t *Target) Depth() *clip.DepthBuffer {
	return t.depth
}

// Clips returns the clip stack.
func (t *Target) Clips() *clip.Stack {
	return t.clips
}

// Clear fills the target with c and resets all clip state.
func (t *Target) Clear(c color.Color) {
	r, g, b, a := c.RGBA()
	//nolint:gosec // G115: 16-bit channels shifted to 8 bits
	rgba := color.RGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(a >> 8),
	}

	bounds := t.img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			t.img.SetRGBA(x, y, rgba)
		}
	}
	t.depth.Clear()
	t.clips.Reset()
}

// Resize replaces the pixels and clip state with a cleared target of the
// given size. The contents are not preserved.
func (t *Target) Resize(width, height int) {
	t.img = image.NewRGBA(image.Rect(0, 0, width, height))
	t.depth = clip.NewDepthBuffer(width, height)
	t.clips.Reset()
}

// pixOffset returns the index of pixel (x, y) relative to the target origin.
func (t *Target) pixOffset(x, y int) int {
	b := t.img.Bounds()
	return t.img.PixOffset(b.Min.X+x, b.Min.Y+y)
}
