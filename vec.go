package shade

import "github.com/chewxy/math32"

// Vec2 is a 2D position or displacement with float32 components,
// matching the 32-bit vertex format consumed by the shading stage.
type Vec2 struct {
	X, Y float32
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the vector scaled by s.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product of two vectors.
func (v Vec2) Dot(w Vec2) float32 {
	return v.X*w.X + v.Y*w.Y
}

// Length returns the Euclidean length of the vector.
func (v Vec2) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Distance returns the Euclidean distance between v and w.
func (v Vec2) Distance(w Vec2) float32 {
	return v.Sub(w).Length()
}

// Vec4 is a homogeneous 4-component vector.
type Vec4 struct {
	X, Y, Z, W float32
}

// V4 is a convenience function to create a Vec4.
func V4(x, y, z, w float32) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

// Homogeneous lifts a 2D position into clip-space input form (x, y, 0, 1).
func Homogeneous(p Vec2) Vec4 {
	return Vec4{X: p.X, Y: p.Y, Z: 0, W: 1}
}

// XY returns the first two components.
func (v Vec4) XY() Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}
