package shade

import (
	"image"

	"github.com/chewxy/math32"
	"golang.org/x/image/draw"
)

// Filter selects how a texture is sampled between texel centers.
// Sampling always clamps to the edge.
type Filter uint8

const (
	// FilterLinear interpolates the four nearest texels.
	FilterLinear Filter = iota
	// FilterNearest picks the texel containing the coordinate.
	FilterNearest
)

// String returns a string representation of the filter.
func (f Filter) String() string {
	switch f {
	case FilterLinear:
		return "Linear"
	case FilterNearest:
		return "Nearest"
	default:
		return "Unknown"
	}
}

// Texture is a sampled bitmap source.
//
// Sample returns the channels as stored, each in [0, 1], at normalized
// coordinates (u, v) where (0, 0) is the top-left corner and (1, 1) the
// bottom-right. The caller normalizes the result using Descriptor.
type Texture interface {
	Size() (width, height int)
	Descriptor() ImageDescriptor
	Sample(u, v float32, f Filter) Color
}

// Bitmap is an in-memory 8-bit-per-channel texture.
// Rows may be padded: Stride is the distance in bytes between rows.
type Bitmap struct {
	Width  int
	Height int
	Stride int
	Pix    []byte
	Info   ImageDescriptor
}

var _ Texture = (*Bitmap)(nil)

// NewBitmap allocates a tightly packed, zeroed bitmap.
func NewBitmap(width, height int, info ImageDescriptor) *Bitmap {
	stride := width * info.ColorType.BytesPerPixel()
	return &Bitmap{
		Width:  width,
		Height: height,
		Stride: stride,
		Pix:    make([]byte, stride*height),
		Info:   info,
	}
}

// BitmapFromImage copies img into a new bitmap.
// *image.RGBA keeps its premultiplied pixels, *image.NRGBA its straight
// pixels and *image.Alpha becomes an Alpha8 mask; anything else is
// converted to straight RGBA.
func BitmapFromImage(img image.Image) *Bitmap {
	r := img.Bounds()
	w, h := r.Dx(), r.Dy()

	var b *Bitmap
	switch src := img.(type) {
	case *image.RGBA:
		b = NewBitmap(w, h, ImageDescriptor{AlphaType: AlphaPremultiplied, ColorType: ColorRGBA})
		copyRows(b, src.Pix[src.PixOffset(r.Min.X, r.Min.Y):], src.Stride)
	case *image.NRGBA:
		b = NewBitmap(w, h, ImageDescriptor{AlphaType: AlphaUnpremultiplied, ColorType: ColorRGBA})
		copyRows(b, src.Pix[src.PixOffset(r.Min.X, r.Min.Y):], src.Stride)
	case *image.Alpha:
		b = NewBitmap(w, h, ImageDescriptor{AlphaType: AlphaPremultiplied, ColorType: ColorAlpha8})
		copyRows(b, src.Pix[src.PixOffset(r.Min.X, r.Min.Y):], src.Stride)
	default:
		b = NewBitmap(w, h, ImageDescriptor{AlphaType: AlphaUnpremultiplied, ColorType: ColorRGBA})
		draw.Copy(b.drawImage(), image.Point{}, img, r, draw.Src, nil)
	}
	return b
}

func copyRows(b *Bitmap, src []byte, srcStride int) {
	row := b.Width * b.Info.ColorType.BytesPerPixel()
	for y := 0; y < b.Height; y++ {
		copy(b.Pix[y*b.Stride:y*b.Stride+row], src[y*srcStride:y*srcStride+row])
	}
}

// Size returns the bitmap dimensions.
func (b *Bitmap) Size() (width, height int) {
	return b.Width, b.Height
}

// Descriptor returns the channel layout and alpha convention.
func (b *Bitmap) Descriptor() ImageDescriptor {
	return b.Info
}

// Image returns a view of the bitmap sharing its pixels.
// Channels are reported in storage order, so a BGRA bitmap appears with
// red and blue swapped.
func (b *Bitmap) Image() image.Image {
	return b.drawImage()
}

func (b *Bitmap) drawImage() draw.Image {
	r := image.Rect(0, 0, b.Width, b.Height)
	switch {
	case b.Info.ColorType == ColorAlpha8:
		return &image.Alpha{Pix: b.Pix, Stride: b.Stride, Rect: r}
	case b.Info.AlphaType == AlphaPremultiplied || b.Info.ColorType == ColorRGBX:
		return &image.RGBA{Pix: b.Pix, Stride: b.Stride, Rect: r}
	default:
		return &image.NRGBA{Pix: b.Pix, Stride: b.Stride, Rect: r}
	}
}

// Scaled returns a copy resampled to width x height.
func (b *Bitmap) Scaled(width, height int, f Filter) *Bitmap {
	dst := NewBitmap(width, height, b.Info)
	var interp draw.Interpolator = draw.BiLinear
	if f == FilterNearest {
		interp = draw.NearestNeighbor
	}
	interp.Scale(dst.drawImage(), dst.drawImage().Bounds(), b.drawImage(), b.drawImage().Bounds(), draw.Src, nil)
	return dst
}

// texel returns the stored channels at (x, y), which must be in bounds.
func (b *Bitmap) texel(x, y int) Color {
	if b.Info.ColorType == ColorAlpha8 {
		return Color{A: float32(b.Pix[y*b.Stride+x]) / 255}
	}
	p := b.Pix[y*b.Stride+x*4 : y*b.Stride+x*4+4 : y*b.Stride+x*4+4]
	return RGBA8(p[0], p[1], p[2], p[3])
}

// Sample implements Texture with clamp-to-edge addressing.
func (b *Bitmap) Sample(u, v float32, f Filter) Color {
	if b.Width <= 0 || b.Height <= 0 {
		return Transparent
	}
	if f == FilterNearest {
		return b.sampleNearest(u, v)
	}
	return b.sampleLinear(u, v)
}

func (b *Bitmap) sampleNearest(u, v float32) Color {
	x := clampInt(int(math32.Floor(u*float32(b.Width))), 0, b.Width-1)
	y := clampInt(int(math32.Floor(v*float32(b.Height))), 0, b.Height-1)
	return b.texel(x, y)
}

func (b *Bitmap) sampleLinear(u, v float32) Color {
	fx := u*float32(b.Width) - 0.5
	fy := v*float32(b.Height) - 0.5

	x0f := math32.Floor(fx)
	y0f := math32.Floor(fy)
	tx := fx - x0f
	ty := fy - y0f

	x0 := clampInt(int(x0f), 0, b.Width-1)
	y0 := clampInt(int(y0f), 0, b.Height-1)
	x1 := clampInt(int(x0f)+1, 0, b.Width-1)
	y1 := clampInt(int(y0f)+1, 0, b.Height-1)

	top := b.texel(x0, y0).Lerp(b.texel(x1, y0), tx)
	bottom := b.texel(x0, y1).Lerp(b.texel(x1, y1), tx)
	return top.Lerp(bottom, ty)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
