package uniform

import (
	"errors"
	"fmt"

	"github.com/gogpu/shade"
)

// DefaultAlignment is the minimum uniform buffer offset alignment
// guaranteed by WebGPU.
const DefaultAlignment = 256

// Range is a byte range of a staged block inside a Buffer.
type Range struct {
	Offset uint64
	Size   uint64
}

// End returns the offset one past the last byte.
func (r Range) End() uint64 {
	return r.Offset + r.Size
}

// Buffer stages uniform blocks for one frame. Every block starts on an
// alignment boundary so it can be bound with a dynamic offset.
type Buffer struct {
	alignment uint64
	data      []byte
}

// NewBuffer creates a staging buffer. A zero alignment selects
// DefaultAlignment.
func NewBuffer(alignment uint64) *Buffer {
	if alignment == 0 {
		alignment = DefaultAlignment
	}
	return &Buffer{alignment: alignment}
}

// Push appends block at the next aligned offset.
func (b *Buffer) Push(block []byte) Range {
	start := uint64(len(b.data))
	if rem := start % b.alignment; rem != 0 {
		b.data = append(b.data, make([]byte, b.alignment-rem)...)
		start = uint64(len(b.data))
	}
	b.data = append(b.data, block...)
	return Range{Offset: start, Size: uint64(len(block))}
}

// Bytes returns the staged data.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the staged size in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Reset discards staged data, keeping the allocation.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}

// DrawRanges locates the blocks of one draw inside a Buffer.
// Transform backs bind group 0; Paint lists the blocks of bind group 1 in
// binding order.
type DrawRanges struct {
	Kind      shade.Kind
	Transform Range
	Paint     []Range
}

// PushDraw stages every block d needs. The paint blocks are packed before
// anything is staged, so a failed draw leaves the buffer unchanged.
func (b *Buffer) PushDraw(d shade.Draw) (DrawRanges, error) {
	blocks, err := paintBlocks(d.Paint)
	if err != nil {
		return DrawRanges{}, err
	}
	r := DrawRanges{
		Kind:      d.Kind(),
		Transform: b.Push(Transform(d.Transform)),
	}
	for _, blk := range blocks {
		r.Paint = append(r.Paint, b.Push(blk))
	}
	return r, nil
}

// paintBlocks packs the bind group 1 blocks of p in binding order.
func paintBlocks(p shade.Paint) ([][]byte, error) {
	switch p := p.(type) {
	case nil:
		return nil, errors.New("uniform: draw without paint")
	case shade.SolidColor:
		return [][]byte{Solid(p)}, nil
	case *shade.Gradient:
		info, err := GradientInfo(p)
		if err != nil {
			return nil, err
		}
		return [][]byte{info, GradientMatrix(p), GradientGeometry(p)}, nil
	case *shade.ImagePaint:
		xf, err := ImageTransform(p)
		if err != nil {
			return nil, err
		}
		info, err := ImageInfo(p)
		if err != nil {
			return nil, err
		}
		return [][]byte{xf, info}, nil
	case shade.ClipOnly:
		return nil, nil
	default:
		return nil, fmt.Errorf("uniform: unsupported paint %T", p)
	}
}
