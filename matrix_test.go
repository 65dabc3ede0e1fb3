package shade

import (
	"math"
	"testing"
)

func TestMat4_Identity(t *testing.T) {
	m := Identity4()
	if !m.IsIdentity() {
		t.Error("Identity4() is not identity")
	}
	p := V2(3, -4)
	if got := m.TransformPoint(p); got != p {
		t.Errorf("Identity4().TransformPoint(%v) = %v", p, got)
	}
}

func TestMat4_TransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		p    Vec2
		want Vec2
	}{
		{"translate", Translate4(10, 20, 0), V2(1, 2), V2(11, 22)},
		{"scale", Scale4(2, 3, 1), V2(1, 2), V2(2, 6)},
		{"rotate 90", RotateZ(math.Pi / 2), V2(1, 0), V2(0, 1)},
		{"affine", Affine(1, 2, 3, 4, 5, 6), V2(1, 1), V2(6, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.p)
			if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestMat4_MulOrder(t *testing.T) {
	// Scale then translate: T * S applies S first.
	m := Translate4(10, 0, 0).Mul(Scale4(2, 2, 1))
	if got := m.TransformPoint(V2(1, 1)); !approx(got.X, 12) || !approx(got.Y, 2) {
		t.Errorf("(T*S).TransformPoint(1, 1) = %v, want (12, 2)", got)
	}
	if got := m.At(0, 3); got != 10 {
		t.Errorf("At(0, 3) = %v, want 10", got)
	}
}

func TestMat4_Invert(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
	}{
		{"translate", Translate4(5, -7, 1)},
		{"scale", Scale4(2, 4, 8)},
		{"rotate", RotateZ(0.7)},
		{"affine", Affine(2, 1, 3, 0.5, 3, -4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := tt.m.Invert()
			if !ok {
				t.Fatal("Invert() reported singular")
			}
			prod := tt.m.Mul(inv)
			id := Identity4()
			for i := range prod {
				if !approx(prod[i], id[i]) {
					t.Fatalf("m * m^-1 = %v, want identity", prod)
				}
			}
		})
	}
}

func TestMat4_InvertSingular(t *testing.T) {
	for _, m := range []Mat4{{}, Scale4(0, 1, 1), Affine(1, 2, 0, 2, 4, 0)} {
		inv, ok := m.Invert()
		if ok {
			t.Errorf("Invert(%v) reported invertible", m)
		}
		if !inv.IsIdentity() {
			t.Errorf("Invert(%v) = %v, want identity fallback", m, inv)
		}
	}
}

func TestOrtho_Viewport(t *testing.T) {
	m := Ortho(0, 200, 100, 0, -1000, 1000)
	tests := []struct {
		p    Vec2
		want Vec2
	}{
		{V2(0, 0), V2(-1, 1)},
		{V2(200, 100), V2(1, -1)},
		{V2(100, 50), V2(0, 0)},
	}
	for _, tt := range tests {
		got := m.TransformPoint(tt.p)
		if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) {
			t.Errorf("Ortho.TransformPoint(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestVec2_Ops(t *testing.T) {
	a, b := V2(3, 4), V2(1, 2)
	if got := a.Add(b); got != V2(4, 6) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != V2(2, 2) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Mul(2); got != V2(6, 8) {
		t.Errorf("Mul = %v", got)
	}
	if got := a.Dot(b); got != 11 {
		t.Errorf("Dot = %v", got)
	}
	if got := a.Length(); !approx(got, 5) {
		t.Errorf("Length = %v", got)
	}
	if got := V2(0, 0).Distance(a); !approx(got, 5) {
		t.Errorf("Distance = %v", got)
	}
	if got := Homogeneous(a); got != V4(3, 4, 0, 1) {
		t.Errorf("Homogeneous = %v", got)
	}
}
