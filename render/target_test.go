// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestNewTarget(t *testing.T) {
	target := NewTarget(40, 30)
	if target.Width() != 40 || target.Height() != 30 {
		t.Errorf("size = %dx%d, want 40x30", target.Width(), target.Height())
	}
	if target.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format() = %v, want RGBA8Unorm", target.Format())
	}
	if target.Stride() != 40*4 {
		t.Errorf("Stride() = %d, want %d", target.Stride(), 40*4)
	}
	if w, h := target.Depth().Size(); w != 40 || h != 30 {
		t.Errorf("Depth().Size() = %dx%d, want 40x30", w, h)
	}
}

func TestTarget_Clear(t *testing.T) {
	target := NewTarget(3, 3)
	if _, err := target.Clips().Push(); err != nil {
		t.Fatal(err)
	}
	target.Depth().Record(1, 1, 0, 0.5)

	target.Clear(color.RGBA{R: 10, G: 20, B: 30, A: 255})
	if got := target.Image().RGBAAt(2, 2); got != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("pixel after Clear = %v", got)
	}
	if target.Clips().Depth() != 0 || target.Depth().At(1, 1) != 0 {
		t.Error("Clear kept clip state")
	}
}

func TestTarget_FromImageOffset(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 14, 12))
	target := NewTargetFromImage(img)
	if target.Width() != 4 || target.Height() != 2 {
		t.Fatalf("size = %dx%d, want 4x2", target.Width(), target.Height())
	}
	if got, want := target.pixOffset(0, 0), img.PixOffset(10, 10); got != want {
		t.Errorf("pixOffset(0, 0) = %d, want %d", got, want)
	}
}

func TestTarget_Resize(t *testing.T) {
	target := NewTarget(2, 2)
	target.Resize(5, 7)
	if target.Width() != 5 || target.Height() != 7 {
		t.Errorf("size after Resize = %dx%d", target.Width(), target.Height())
	}
	if w, h := target.Depth().Size(); w != 5 || h != 7 {
		t.Errorf("depth size after Resize = %dx%d", w, h)
	}
}
