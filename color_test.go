package shade

import (
	"image/color"
	"testing"

	"github.com/chewxy/math32"
)

// tolerance for floating point comparisons
const testEpsilon = 1e-4

func approx(a, b float32) bool {
	return math32.Abs(a-b) < testEpsilon
}

func colorsEqual(c1, c2 Color, epsilon float32) bool {
	return math32.Abs(c1.R-c2.R) < epsilon &&
		math32.Abs(c1.G-c2.G) < epsilon &&
		math32.Abs(c1.B-c2.B) < epsilon &&
		math32.Abs(c1.A-c2.A) < epsilon
}

func resultsEqual(r1, r2 Result, epsilon float32) bool {
	return colorsEqual(r1.Color(), r2.Color(), epsilon)
}

func TestHex(t *testing.T) {
	tests := []struct {
		hex  string
		want Color
	}{
		{"#ff0000", Red},
		{"00ff00", Green},
		{"#00F", Blue},
		{"#fff8", RGBA(1, 1, 1, 0x88/255.0)},
		{"#00000080", RGBA(0, 0, 0, 0x80/255.0)},
		{"", Black},
		{"#12345", Black},
	}
	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			if got := Hex(tt.hex); !colorsEqual(got, tt.want, testEpsilon) {
				t.Errorf("Hex(%q) = %v, want %v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestColor_PremultiplyRoundTrip(t *testing.T) {
	c := RGBA(1, 0.5, 0.25, 0.5)
	p := c.Premultiply()
	if want := RGBA(0.5, 0.25, 0.125, 0.5); !colorsEqual(p, want, testEpsilon) {
		t.Errorf("Premultiply() = %v, want %v", p, want)
	}
	if got := p.Unpremultiply(); !colorsEqual(got, c, testEpsilon) {
		t.Errorf("Unpremultiply() = %v, want %v", got, c)
	}
	if got := RGBA(1, 1, 1, 0).Unpremultiply(); got != Transparent {
		t.Errorf("Unpremultiply() of zero alpha = %v, want transparent", got)
	}
}

func TestColor_Lerp(t *testing.T) {
	tests := []struct {
		name string
		t    float32
		want Color
	}{
		{"start", 0, Red},
		{"middle", 0.5, RGB(0.5, 0, 0.5)},
		{"end", 1, Blue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Red.Lerp(Blue, tt.t); !colorsEqual(got, tt.want, testEpsilon) {
				t.Errorf("Red.Lerp(Blue, %v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestHSLA(t *testing.T) {
	tests := []struct {
		name    string
		h, s, l float32
		want    Color
	}{
		{"red", 0, 1, 0.5, Red},
		{"green", 1.0 / 3, 1, 0.5, Green},
		{"blue", 2.0 / 3, 1, 0.5, Blue},
		{"wrapped red", 1, 1, 0.5, Red},
		{"gray", 0, 0, 0.5, RGB(0.5, 0.5, 0.5)},
		{"white", 0.7, 1, 1, White},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HSLA(tt.h, tt.s, tt.l, 1); !colorsEqual(got, tt.want, 1e-3) {
				t.Errorf("HSLA(%v, %v, %v, 1) = %v, want %v", tt.h, tt.s, tt.l, got, tt.want)
			}
		})
	}
}

func TestColor_StandardConversion(t *testing.T) {
	src := color.NRGBA{R: 255, G: 128, B: 0, A: 128}
	c := FromColor(src)
	if got := c.NRGBA(); got != src {
		t.Errorf("FromColor(%v).NRGBA() = %v", src, got)
	}
	if got := RGB(2, -1, 0.5).NRGBA(); got != (color.NRGBA{R: 255, G: 0, B: 128, A: 255}) {
		t.Errorf("NRGBA() should clamp, got %v", got)
	}
}

func TestColor_WithAlpha(t *testing.T) {
	if got := White.WithAlpha(0.25); got.A != 0.25 || got.R != 1 {
		t.Errorf("White.WithAlpha(0.25) = %v", got)
	}
}
