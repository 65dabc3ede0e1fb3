package shade

// Depth range of the canonical viewport projection.
const (
	viewportNear = -1000
	viewportFar  = 1000
)

// TransformBlock is the per-draw transform shared by every pipeline.
// It is rebuilt for each draw and not retained.
type TransformBlock struct {
	// Projection maps viewport pixels to normalized device coordinates.
	Projection Mat4
	// Local maps object space to viewport pixels.
	Local Mat4
	// ClipDepth replaces the depth of every projected position. It is
	// assigned by the clip stack (see package clip).
	ClipDepth float32
}

// ViewportProjection returns the orthographic projection for a viewport of
// the given size with a top-left origin and y pointing down.
func ViewportProjection(width, height float32) Mat4 {
	return Ortho(0, width, height, 0, viewportNear, viewportFar)
}

// NewTransformBlock builds a transform block for a viewport of the given
// size.
func NewTransformBlock(width, height float32, local Mat4, clipDepth float32) TransformBlock {
	return TransformBlock{
		Projection: ViewportProjection(width, height),
		Local:      local,
		ClipDepth:  clipDepth,
	}
}

// Project maps an object-space position to clip space.
// x and y are divided by w, z is replaced by ClipDepth and w is set to 1,
// so the result must not be divided again.
func (tb TransformBlock) Project(p Vec2) Vec4 {
	c := tb.Projection.Mul(tb.Local).MulVec4(Homogeneous(p))
	if c.W != 0 {
		c.X /= c.W
		c.Y /= c.W
	}
	return Vec4{X: c.X, Y: c.Y, Z: tb.ClipDepth, W: 1}
}

// Vertex is the output of the transform stage for one vertex.
type Vertex struct {
	// Position is in clip space with depth replaced by the clip depth.
	Position Vec4
	// PaintCoord is the position in the paint's own frame.
	PaintCoord Vec2
}

// Draw binds one paint to one transform. The paint kind is fixed for the
// whole draw.
type Draw struct {
	Transform TransformBlock
	Paint     Paint
}

// Kind returns the pipeline kind of the draw.
func (d Draw) Kind() Kind {
	return d.Paint.Kind()
}

// Vertex runs the transform stage for an object-space vertex.
func (d Draw) Vertex(p Vec2) Vertex {
	return Vertex{
		Position:   d.Transform.Project(p),
		PaintCoord: d.Paint.Vertex(p),
	}
}

// Evaluate shades the object-space position p. It reports false for
// clip-only draws.
func (d Draw) Evaluate(p Vec2) (Result, bool) {
	return d.Paint.Shade(d.Paint.Vertex(p))
}
