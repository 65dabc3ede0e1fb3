package shade

// Kind identifies which of the five shading pipelines a draw uses.
type Kind uint8

const (
	// KindSolidColor fills with one premultiplied color.
	KindSolidColor Kind = iota
	// KindLinearGradient fills with a linear ramp.
	KindLinearGradient
	// KindRadialGradient fills with a radial ramp.
	KindRadialGradient
	// KindImage fills with a sampled bitmap.
	KindImage
	// KindClipOnly writes clip depth and no color.
	KindClipOnly
)

// Kinds lists every pipeline kind in declaration order.
var Kinds = [...]Kind{KindSolidColor, KindLinearGradient, KindRadialGradient, KindImage, KindClipOnly}

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindSolidColor:
		return "SolidColor"
	case KindLinearGradient:
		return "LinearGradient"
	case KindRadialGradient:
		return "RadialGradient"
	case KindImage:
		return "Image"
	case KindClipOnly:
		return "ClipOnly"
	default:
		return "Unknown"
	}
}

// Result is the color a paint contributes to one pixel.
// R, G and B are always premultiplied by A.
type Result struct {
	R, G, B, A float32
}

// Color returns r as a (premultiplied) Color.
func (r Result) Color() Color {
	return Color{R: r.R, G: r.G, B: r.B, A: r.A}
}

func resultOf(c Color) Result {
	return Result{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Paint is a fill style. The set of paints is closed: SolidColor,
// *Gradient, *ImagePaint and ClipOnly.
//
// Vertex maps an object-space vertex position into the paint's own
// coordinate frame; the consumer interpolates that coordinate across the
// primitive and passes it to Shade. Shade reports false when the paint
// produces no color.
//
// Paints are immutable once built and safe for concurrent use.
type Paint interface {
	Kind() Kind
	Vertex(p Vec2) Vec2
	Shade(v Vec2) (Result, bool)

	// paintMarker seals the interface.
	paintMarker()
}

// SolidColor is a uniform premultiplied color. It is returned unchanged.
type SolidColor Result

// SolidColorFrom premultiplies a straight-alpha color.
func SolidColorFrom(c Color) SolidColor {
	p := c.Premultiply()
	return SolidColor{R: p.R, G: p.G, B: p.B, A: p.A}
}

// Kind returns KindSolidColor.
func (SolidColor) Kind() Kind { return KindSolidColor }

// Vertex returns p unchanged; a solid color has no coordinate frame.
func (SolidColor) Vertex(p Vec2) Vec2 { return p }

// Shade returns the color as-is.
func (s SolidColor) Shade(Vec2) (Result, bool) { return Result(s), true }

func (SolidColor) paintMarker() {}

// ClipOnly records a clip region without writing color.
type ClipOnly struct{}

// Kind returns KindClipOnly.
func (ClipOnly) Kind() Kind { return KindClipOnly }

// Vertex returns p unchanged.
func (ClipOnly) Vertex(p Vec2) Vec2 { return p }

// Shade always reports no color.
func (ClipOnly) Shade(Vec2) (Result, bool) { return Result{}, false }

func (ClipOnly) paintMarker() {}

var (
	_ Paint = SolidColor{}
	_ Paint = (*Gradient)(nil)
	_ Paint = (*ImagePaint)(nil)
	_ Paint = ClipOnly{}
)
