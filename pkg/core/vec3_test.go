package core

import (
	"math"
	"testing"
)

func TestVec3_Operations(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		result   Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"Cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"Min", a.Min(b), NewVec3(1, -5, 3)},
		{"Max", a.Max(b), NewVec3(4, 2, 6)},
		{"Clamp", NewVec3(-1, 0.5, 2).Clamp(0, 1), NewVec3(0, 0.5, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.result.Equals(tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.result)
			}
		})
	}

	if got := a.Dot(b); got != 12 {
		t.Errorf("Expected dot 12, got %f", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	n := NewVec3(3, 0, 4).Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", n.Length())
	}
	if !n.Equals(NewVec3(0.6, 0, 0.8), 1e-12) {
		t.Errorf("Expected (0.6, 0, 0.8), got %v", n)
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("Expected zero vector to stay zero, got %v", zero)
	}
}

func TestVec3_NearZeroAndComponent(t *testing.T) {
	if !NewVec3(1e-9, -1e-9, 0).NearZero() {
		t.Error("Expected tiny vector to be near zero")
	}
	if NewVec3(1e-3, 0, 0).NearZero() {
		t.Error("Expected (1e-3, 0, 0) not to be near zero")
	}

	v := NewVec3(7, 8, 9)
	for axis, expected := range []float64{7, 8, 9} {
		if got := v.Component(axis); got != expected {
			t.Errorf("Axis %d: expected %f, got %f", axis, expected, got)
		}
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 1, 1), NewVec3(0, 0, -2))
	p := ray.At(1.5)
	if !p.Equals(NewVec3(1, 1, -2), 1e-12) {
		t.Errorf("Expected (1, 1, -2), got %v", p)
	}
}
