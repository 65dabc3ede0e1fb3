package shade

// NewRadialGradient creates a radial gradient around center.
// stops may be nil for evenly spaced colors.
func NewRadialGradient(center Vec2, radius float32, colors []Color, stops []float32, mode TileMode) (*Gradient, error) {
	g := &Gradient{
		Type:     GradientRadial,
		Center:   center,
		Radius:   radius,
		Colors:   colors,
		Stops:    stops,
		TileMode: mode,
		Matrix:   Identity4(),
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Gradient) radialParam(v Vec2) float32 {
	return TileRemap(v.Distance(g.Center)/g.Radius, g.TileMode)
}
