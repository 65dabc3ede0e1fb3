package shade

import (
	"fmt"

	"github.com/chewxy/math32"
)

// TileMode maps a gradient parameter that falls outside [0, 1] back into
// range. Only radial gradients apply a tile mode.
type TileMode uint32

const (
	// TileClamp clamps t to [0, 1].
	TileClamp TileMode = iota
	// TileRepeat keeps the fractional part of t.
	TileRepeat
	// TileMirror reflects t with period 2.
	TileMirror
	// TileDecal is reserved. It currently returns t unchanged instead of
	// rendering transparent outside [0, 1].
	TileDecal
)

// String returns a string representation of the tile mode.
func (m TileMode) String() string {
	switch m {
	case TileClamp:
		return "Clamp"
	case TileRepeat:
		return "Repeat"
	case TileMirror:
		return "Mirror"
	case TileDecal:
		return "Decal"
	default:
		return "Unknown"
	}
}

// TileRemap maps the raw ratio t according to mode.
func TileRemap(t float32, mode TileMode) float32 {
	switch mode {
	case TileClamp:
		return clamp01(t)
	case TileRepeat:
		return t - math32.Floor(t)
	case TileMirror:
		t1 := t - 1
		t2 := t1 - 2*math32.Floor(t1*0.5) - 1
		return math32.Abs(t2)
	default:
		return t
	}
}

// GradientType selects the geometry of a Gradient.
type GradientType uint8

const (
	// GradientLinear projects positions onto the P0→P1 axis.
	GradientLinear GradientType = iota
	// GradientRadial measures distance from Center relative to Radius.
	GradientRadial
)

// Gradient is a linear or radial color ramp.
//
// Colors are straight alpha and interpolated as such; shading premultiplies
// the interpolated color. Stops is optional: when its length differs from
// len(Colors) the stops are ignored and colors are spaced evenly.
//
// Matrix places the gradient in object space. The zero Matrix is treated
// as identity. A Gradient must not be modified once it is in use by a draw.
type Gradient struct {
	Type GradientType

	// Linear geometry.
	P0, P1 Vec2

	// Radial geometry.
	Center Vec2
	Radius float32

	Colors   []Color
	Stops    []float32
	TileMode TileMode
	Matrix   Mat4
}

// Validate checks the gradient the way the constructors do.
func (g *Gradient) Validate() error {
	n := len(g.Colors)
	if n == 0 {
		return ErrNoColors
	}
	if n > MaxColors {
		return fmt.Errorf("shade: %d colors, limit %d: %w", n, MaxColors, ErrTooManyColors)
	}
	if len(g.Stops) > 0 {
		if len(g.Stops) != n {
			return fmt.Errorf("shade: %d stops for %d colors: %w", len(g.Stops), n, ErrStopCount)
		}
		for i, s := range g.Stops {
			if s < 0 || s > 1 || math32.IsNaN(s) {
				return fmt.Errorf("shade: stop %d = %v: %w", i, s, ErrStopRange)
			}
			if i > 0 && s < g.Stops[i-1] {
				return fmt.Errorf("shade: stop %d = %v after %v: %w", i, s, g.Stops[i-1], ErrStopOrder)
			}
		}
	}
	switch g.Type {
	case GradientLinear:
		if g.P0 == g.P1 {
			return fmt.Errorf("shade: linear gradient with coincident points: %w", ErrDegenerateGeometry)
		}
	case GradientRadial:
		if !(g.Radius > 0) {
			return fmt.Errorf("shade: radial gradient radius %v: %w", g.Radius, ErrDegenerateGeometry)
		}
	}
	return nil
}

// hasStops reports whether explicit stops take part in resolution.
func (g *Gradient) hasStops() bool {
	return len(g.Stops) > 0 && len(g.Stops) == len(g.Colors)
}

// colorAt returns Colors[i], clamping i to the last valid slot.
func (g *Gradient) colorAt(i int) Color {
	if i >= len(g.Colors) {
		i = len(g.Colors) - 1
	}
	if i < 0 {
		return Transparent
	}
	return g.Colors[i]
}

// stopAt returns the position of stop i, explicit or evenly spaced,
// clamping i to the last valid slot.
func (g *Gradient) stopAt(i int) float32 {
	n := len(g.Colors)
	if i >= n {
		i = n - 1
	}
	if n < 2 || i < 0 {
		return 0
	}
	if g.hasStops() {
		return g.Stops[i]
	}
	return float32(i) / float32(n-1)
}

// Resolve returns the straight-alpha ramp color at parameter t.
// t is not clamped beforehand: values at or below 0 return the first color
// and values at or above the last stop return the last color.
// A gradient without colors resolves to transparent black.
func (g *Gradient) Resolve(t float32) Color {
	n := len(g.Colors)
	if n == 0 {
		return Transparent
	}

	maxT := float32(1)
	if g.hasStops() {
		maxT = g.Stops[n-1]
	}

	if t <= 0 {
		return g.colorAt(0)
	}
	if t >= maxT {
		return g.colorAt(n - 1)
	}

	for i := 0; i < n-1; i++ {
		s0 := g.stopAt(i)
		s1 := g.stopAt(i + 1)
		if s0 <= t && t < s1 {
			f := clamp01((t - s0) / (s1 - s0))
			return g.colorAt(i).Lerp(g.colorAt(i+1), f)
		}
	}

	// No segment matched: t precedes the first explicit stop or is NaN.
	if t < g.stopAt(0) {
		return g.colorAt(0)
	}
	return g.colorAt(n - 1)
}

// Kind returns KindLinearGradient or KindRadialGradient.
func (g *Gradient) Kind() Kind {
	if g.Type == GradientRadial {
		return KindRadialGradient
	}
	return KindLinearGradient
}

// InverseMatrix returns the object-to-gradient transform: the inverse of
// Matrix, or identity when Matrix is singular.
func (g *Gradient) InverseMatrix() Mat4 {
	return inversePlacement(g.Matrix)
}

// Vertex maps an object-space position into gradient space.
func (g *Gradient) Vertex(p Vec2) Vec2 {
	if isPlacementIdentity(g.Matrix) {
		return p
	}
	return g.InverseMatrix().TransformPoint(p)
}

// Param returns the ramp parameter at gradient-space position v.
func (g *Gradient) Param(v Vec2) float32 {
	if g.Type == GradientRadial {
		return g.radialParam(v)
	}
	return g.linearParam(v)
}

// Shade returns the premultiplied ramp color at gradient-space position v.
func (g *Gradient) Shade(v Vec2) (Result, bool) {
	return resultOf(g.Resolve(g.Param(v)).Premultiply()), true
}

func (*Gradient) paintMarker() {}
