// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/shade"
)

// ErrInvalidMesh is returned for meshes with a malformed index list.
var ErrInvalidMesh = errors.New("render: invalid mesh")

// Mesh is an indexed triangle list in object space.
type Mesh struct {
	Vertices []shade.Vec2
	// Indices holds three entries per triangle. Nil means the vertices
	// themselves form a triangle list.
	Indices []uint32
}

// Rect returns a two-triangle mesh covering the rectangle.
func Rect(x, y, w, h float32) Mesh {
	return Mesh{
		Vertices: []shade.Vec2{
			shade.V2(x, y),
			shade.V2(x+w, y),
			shade.V2(x+w, y+h),
			shade.V2(x, y+h),
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

// Polygon returns a triangle fan over a convex polygon.
func Polygon(points ...shade.Vec2) Mesh {
	m := Mesh{Vertices: points}
	for i := 2; i < len(points); i++ {
		m.Indices = append(m.Indices, 0, uint32(i-1), uint32(i)) //nolint:gosec // bounded by len(points)
	}
	return m
}

// TriangleCount returns the number of triangles in the mesh.
func (m Mesh) TriangleCount() int {
	if m.Indices == nil {
		return len(m.Vertices) / 3
	}
	return len(m.Indices) / 3
}

// Validate checks the index list.
func (m Mesh) Validate() error {
	if m.Indices == nil {
		if len(m.Vertices)%3 != 0 {
			return fmt.Errorf("%w: %d vertices is not a multiple of 3", ErrInvalidMesh, len(m.Vertices))
		}
		return nil
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3", ErrInvalidMesh, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("%w: index %d at %d out of range", ErrInvalidMesh, idx, i)
		}
	}
	return nil
}

// triangle returns the vertex indices of triangle i.
func (m Mesh) triangle(i int) (a, b, c int) {
	if m.Indices == nil {
		return 3 * i, 3*i + 1, 3*i + 2
	}
	return int(m.Indices[3*i]), int(m.Indices[3*i+1]), int(m.Indices[3*i+2])
}
