package shade

import (
	"image/color"

	"github.com/chewxy/math32"
)

// Color is an RGBA color with float32 components in [0, 1].
// Unless a function says otherwise, a Color is straight (not
// premultiplied) alpha; Result carries the premultiplied form.
type Color struct {
	R, G, B, A float32
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA creates a color from RGBA components.
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// RGBA8 creates a color from 8-bit components.
func RGBA8(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}
}

// FromColor converts a standard color.Color to a straight-alpha Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA8(n.R, n.G, n.B, n.A)
}

// NRGBA converts c to a standard non-premultiplied color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: unorm8(c.R),
		G: unorm8(c.G),
		B: unorm8(c.B),
		A: unorm8(c.A),
	}
}

// Hex creates a color from a hex string.
// Supports "RGB", "RGBA", "RRGGBB" and "RRGGBBAA", with an optional '#'.
// Malformed input yields opaque black.
func Hex(hex string) Color {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b uint32
	a := uint32(255)

	switch len(hex) {
	case 3:
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4:
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		parseHex(hex[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6:
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
	case 8:
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
		parseHex(hex[6:8], &a)
	default:
		return Black
	}

	return RGBA8(uint8(r), uint8(g), uint8(b), uint8(a)) //nolint:gosec // parseHex yields at most 0xFF per channel
}

func parseHex(s string, val *uint32) {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return
		}
	}
}

// HSLA creates a color from hue, saturation, lightness and alpha, all in
// [0, 1]. Hue wraps around.
func HSLA(h, s, l, a float32) Color {
	h = math32.Mod(h, 1)
	if h < 0 {
		h++
	}
	s = clamp01(s)
	l = clamp01(l)

	var m2 float32
	if l <= 0.5 {
		m2 = l * (1 + s)
	} else {
		m2 = l + s - l*s
	}
	m1 := 2*l - m2

	return Color{
		R: clamp01(hueChannel(h+1.0/3, m1, m2)),
		G: clamp01(hueChannel(h, m1, m2)),
		B: clamp01(hueChannel(h-1.0/3, m1, m2)),
		A: a,
	}
}

func hueChannel(h, m1, m2 float32) float32 {
	if h < 0 {
		h++
	}
	if h > 1 {
		h--
	}
	switch {
	case h < 1.0/6:
		return m1 + (m2-m1)*h*6
	case h < 3.0/6:
		return m2
	case h < 4.0/6:
		return m1 + (m2-m1)*(2.0/3-h)*6
	default:
		return m1
	}
}

// Premultiply returns c with RGB scaled by alpha.
func (c Color) Premultiply() Color {
	return Color{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// Unpremultiply reverses Premultiply. Fully transparent colors become
// transparent black.
func (c Color) Unpremultiply() Color {
	if c.A == 0 {
		return Transparent
	}
	return Color{R: c.R / c.A, G: c.G / c.A, B: c.B / c.A, A: c.A}
}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float32) Color {
	c.A *= a
	return c
}

// Lerp performs linear interpolation: c*(1-t) + other*t.
func (c Color) Lerp(other Color, t float32) Color {
	u := 1 - t
	return Color{
		R: c.R*u + other.R*t,
		G: c.G*u + other.G*t,
		B: c.B*u + other.B*t,
		A: c.A*u + other.A*t,
	}
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func unorm8(x float32) uint8 {
	return uint8(clamp01(x)*255 + 0.5)
}

// Common colors.
var (
	Transparent = RGBA(0, 0, 0, 0)
	Black       = RGB(0, 0, 0)
	DarkGray    = RGB(0.25, 0.25, 0.25)
	LightGray   = RGB(0.5, 0.5, 0.5)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Yellow      = RGB(1, 1, 0)
	Cyan        = RGB(0, 1, 1)
	Magenta     = RGB(1, 0, 1)
)
