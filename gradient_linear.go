package shade

import "github.com/chewxy/math32"

// NewLinearGradient creates a linear gradient from p0 to p1.
// stops may be nil for evenly spaced colors.
//
// Example:
//
//	g, err := shade.NewLinearGradient(shade.V2(0, 0), shade.V2(100, 0),
//	    []shade.Color{shade.Red, shade.Blue}, nil)
func NewLinearGradient(p0, p1 Vec2, colors []Color, stops []float32) (*Gradient, error) {
	g := &Gradient{
		Type:   GradientLinear,
		P0:     p0,
		P1:     p1,
		Colors: colors,
		Stops:  stops,
		Matrix: Identity4(),
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// linearParam projects v onto the gradient axis.
// The absolute value folds positions behind P0 onto the positive side and
// no tile mode is applied: the resolver's boundary clamp governs t outside
// [0, 1].
func (g *Gradient) linearParam(v Vec2) float32 {
	ba := g.P1.Sub(g.P0)
	return math32.Abs(v.Sub(g.P0).Dot(ba)) / ba.Dot(ba)
}
