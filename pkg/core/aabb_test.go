package core

import (
	"math"
	"testing"
)

func TestAABB_Interval(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name    string
		ray     Ray
		tMin    float64
		tMax    float64
		wantHit bool
		wantT0  float64
		wantT1  float64
	}{
		{"straight through", NewRay(NewVec3(-5, 0, 0), NewVec3(1, 0, 0)), 0, math.Inf(1), true, 4, 6},
		{"origin inside", NewRay(NewVec3(0, 0, 0), NewVec3(0, 1, 0)), 0, math.Inf(1), true, 0, 1},
		{"parallel outside slab", NewRay(NewVec3(-5, 2, 0), NewVec3(1, 0, 0)), 0, math.Inf(1), false, 0, 0},
		{"pointing away", NewRay(NewVec3(-5, 0, 0), NewVec3(-1, 0, 0)), 0, math.Inf(1), false, 0, 0},
		{"clipped by tMax", NewRay(NewVec3(-5, 0, 0), NewVec3(1, 0, 0)), 0, 3, false, 0, 0},
		{"clipped range", NewRay(NewVec3(-5, 0, 0), NewVec3(1, 0, 0)), 4.5, 5, true, 4.5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t0, t1, ok := box.Interval(tt.ray, tt.tMin, tt.tMax)
			if ok != tt.wantHit {
				t.Fatalf("Expected hit=%t, got %t", tt.wantHit, ok)
			}
			if box.Hit(tt.ray, tt.tMin, tt.tMax) != tt.wantHit {
				t.Errorf("Hit disagrees with Interval")
			}
			if ok && (math.Abs(t0-tt.wantT0) > 1e-9 || math.Abs(t1-tt.wantT1) > 1e-9) {
				t.Errorf("Expected [%f, %f], got [%f, %f]", tt.wantT0, tt.wantT1, t0, t1)
			}
		})
	}
}

func TestAABB_FromPointsAndCorners(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(1, -2, 3), NewVec3(-1, 4, 0), NewVec3(0, 0, 5))
	if box.Min != NewVec3(-1, -2, 0) || box.Max != NewVec3(1, 4, 5) {
		t.Errorf("Unexpected bounds %v", box)
	}

	corners := box.Corners()
	rebuilt := NewAABBFromPoints(corners[:]...)
	if rebuilt != box {
		t.Errorf("Expected corners to rebuild %v, got %v", box, rebuilt)
	}

	if axis := box.LongestAxis(); axis != 1 {
		t.Errorf("Expected longest axis 1, got %d", axis)
	}
}

func TestAABB_Union(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABB(NewVec3(-1, 0.5, 2), NewVec3(0.5, 3, 4))
	u := a.Union(b)
	if u.Min != NewVec3(-1, 0, 0) || u.Max != NewVec3(1, 3, 4) {
		t.Errorf("Unexpected union %v", u)
	}
}
