package clip

// DepthBuffer records one clip depth per pixel.
// Rows are independent: concurrent calls for different rows are safe.
type DepthBuffer struct {
	width  int
	height int
	depth  []float32
}

// NewDepthBuffer creates a depth buffer cleared to the root depth.
func NewDepthBuffer(width, height int) *DepthBuffer {
	return &DepthBuffer{
		width:  width,
		height: height,
		depth:  make([]float32, width*height),
	}
}

// Size returns the buffer dimensions.
func (b *DepthBuffer) Size() (width, height int) {
	return b.width, b.height
}

// Clear resets every pixel to the root depth.
func (b *DepthBuffer) Clear() {
	clear(b.depth)
}

// At returns the recorded depth at (x, y).
// Out-of-bounds pixels report the root depth.
func (b *DepthBuffer) At(x, y int) float32 {
	if !b.inBounds(x, y) {
		return 0
	}
	return b.depth[y*b.width+x]
}

// Test reports whether content drawn at depth d is visible at (x, y).
func (b *DepthBuffer) Test(x, y int, d float32) bool {
	if !b.inBounds(x, y) {
		return false
	}
	return d <= b.depth[y*b.width+x]
}

// Record writes depth d at (x, y) when the pixel lies inside the parent
// region at depth parent. It reports whether the depth was written.
func (b *DepthBuffer) Record(x, y int, parent, d float32) bool {
	if !b.inBounds(x, y) {
		return false
	}
	i := y*b.width + x
	if parent > b.depth[i] {
		return false
	}
	b.depth[i] = d
	return true
}

func (b *DepthBuffer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}
