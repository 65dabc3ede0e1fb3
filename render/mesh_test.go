// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"testing"

	"github.com/gogpu/shade"
)

func TestMesh_Validate(t *testing.T) {
	tri := []shade.Vec2{shade.V2(0, 0), shade.V2(1, 0), shade.V2(0, 1)}
	tests := []struct {
		name    string
		mesh    Mesh
		wantErr bool
		count   int
	}{
		{"rect", Rect(0, 0, 2, 2), false, 2},
		{"unindexed", Mesh{Vertices: tri}, false, 1},
		{"unindexed partial", Mesh{Vertices: tri[:2]}, true, 0},
		{"short index list", Mesh{Vertices: tri, Indices: []uint32{0, 1}}, true, 0},
		{"index out of range", Mesh{Vertices: tri, Indices: []uint32{0, 1, 3}}, true, 1},
		{"empty", Mesh{}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mesh.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidMesh) {
				t.Errorf("Validate() error = %v, want %v", err, ErrInvalidMesh)
			}
			if err == nil && tt.mesh.TriangleCount() != tt.count {
				t.Errorf("TriangleCount() = %d, want %d", tt.mesh.TriangleCount(), tt.count)
			}
		})
	}
}

func TestPolygon_Fan(t *testing.T) {
	m := Polygon(shade.V2(0, 0), shade.V2(4, 0), shade.V2(4, 4), shade.V2(2, 6), shade.V2(0, 4))
	if got := m.TriangleCount(); got != 3 {
		t.Fatalf("TriangleCount() = %d, want 3", got)
	}
	a, b, c := m.triangle(2)
	if a != 0 || b != 3 || c != 4 {
		t.Errorf("triangle(2) = %d, %d, %d, want 0, 3, 4", a, b, c)
	}
	if Polygon(shade.V2(0, 0), shade.V2(1, 1)).TriangleCount() != 0 {
		t.Error("two points produced a triangle")
	}
}
