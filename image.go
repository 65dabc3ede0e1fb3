package shade

import "fmt"

// AlphaType tells whether stored color channels are already scaled by alpha.
type AlphaType uint32

const (
	// AlphaPremultiplied channels pass through unchanged.
	AlphaPremultiplied AlphaType = iota
	// AlphaUnpremultiplied channels are multiplied by alpha when sampled.
	AlphaUnpremultiplied
)

// String returns a string representation of the alpha type.
func (a AlphaType) String() string {
	switch a {
	case AlphaPremultiplied:
		return "Premultiplied"
	case AlphaUnpremultiplied:
		return "Unpremultiplied"
	default:
		return "Unknown"
	}
}

// ColorType is the channel layout of stored pixels.
type ColorType uint32

const (
	// ColorRGBA stores red, green, blue, alpha.
	ColorRGBA ColorType = iota
	// ColorBGRA stores blue, green, red, alpha.
	ColorBGRA
	// ColorRGBX stores red, green, blue and an ignored byte; alpha is 1.
	ColorRGBX
	// ColorAlpha8 stores a single coverage channel, used for masks.
	ColorAlpha8
)

// String returns a string representation of the color type.
func (c ColorType) String() string {
	switch c {
	case ColorRGBA:
		return "RGBA"
	case ColorBGRA:
		return "BGRA"
	case ColorRGBX:
		return "RGBX"
	case ColorAlpha8:
		return "Alpha8"
	default:
		return "Unknown"
	}
}

// BytesPerPixel returns the storage size of one pixel.
func (c ColorType) BytesPerPixel() int {
	if c == ColorAlpha8 {
		return 1
	}
	return 4
}

// ImageDescriptor describes how sampled texels must be normalized.
type ImageDescriptor struct {
	AlphaType AlphaType
	ColorType ColorType
}

// NormalizeImageColor converts a texel as stored into a premultiplied
// RGBA result: BGRA texels have red and blue swapped back, unpremultiplied
// texels are multiplied by alpha, premultiplied texels pass through.
// Alpha8 texels become white coverage and RGBX texels are opaque.
func NormalizeImageColor(c Color, d ImageDescriptor) Result {
	switch d.ColorType {
	case ColorBGRA:
		c.R, c.B = c.B, c.R
	case ColorRGBX:
		c.A = 1
	case ColorAlpha8:
		return Result{R: c.A, G: c.A, B: c.A, A: c.A}
	}
	if d.AlphaType == AlphaUnpremultiplied {
		c = c.Premultiply()
	}
	return resultOf(c)
}

// ImagePaint fills with a sampled texture.
//
// Matrix places the texture's pixel grid in object space; the zero Matrix
// is treated as identity, which draws the texture at the origin at its
// natural size. Tint colors Alpha8 masks (straight alpha, white when nil);
// it is ignored for other color types.
type ImagePaint struct {
	Texture Texture
	Matrix  Mat4
	Filter  Filter
	Tint    *Color
}

// NewImagePaint creates an image paint placed by m.
func NewImagePaint(tex Texture, m Mat4) (*ImagePaint, error) {
	if tex == nil {
		return nil, ErrNilTexture
	}
	if w, h := tex.Size(); w <= 0 || h <= 0 {
		return nil, fmt.Errorf("shade: texture size %dx%d: %w", w, h, ErrNilTexture)
	}
	return &ImagePaint{Texture: tex, Matrix: m}, nil
}

// Kind returns KindImage.
func (*ImagePaint) Kind() Kind { return KindImage }

// InverseMatrix returns the object-to-texel transform.
func (ip *ImagePaint) InverseMatrix() Mat4 {
	return inversePlacement(ip.Matrix)
}

// Vertex maps an object-space position to normalized texture coordinates.
func (ip *ImagePaint) Vertex(p Vec2) Vec2 {
	if !isPlacementIdentity(ip.Matrix) {
		p = ip.InverseMatrix().TransformPoint(p)
	}
	w, h := ip.Texture.Size()
	return Vec2{X: p.X / float32(w), Y: p.Y / float32(h)}
}

// Shade samples the texture at uv and normalizes the texel.
func (ip *ImagePaint) Shade(uv Vec2) (Result, bool) {
	d := ip.Texture.Descriptor()
	r := NormalizeImageColor(ip.Texture.Sample(uv.X, uv.Y, ip.Filter), d)
	if d.ColorType == ColorAlpha8 && ip.Tint != nil {
		t := ip.Tint.Premultiply()
		r = Result{R: t.R * r.A, G: t.G * r.A, B: t.B * r.A, A: t.A * r.A}
	}
	return r, true
}

func (*ImagePaint) paintMarker() {}
