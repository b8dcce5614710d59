package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/material"
)

// MockShape reports a fixed box and hits at a fixed t for rays travelling along +X
type MockShape struct {
	box     core.AABB
	hitAt   float64 // 0 never hits
	bounded bool
}

func (m MockShape) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if m.hitAt == 0 || ray.Direction.X <= 0 || m.hitAt < tMin || m.hitAt > tMax {
		return nil, false
	}
	return &material.HitRecord{T: m.hitAt}, true
}

func (m MockShape) BoundingBox() (core.AABB, bool) {
	return m.box, m.bounded
}

// unitBoxAt returns a bounded mock occupying [x, x+1] × [0, 1] × [0, 1]
func unitBoxAt(x, hitAt float64) MockShape {
	return MockShape{
		box:     core.NewAABB(core.NewVec3(x, 0, 0), core.NewVec3(x+1, 1, 1)),
		hitAt:   hitAt,
		bounded: true,
	}
}

func boxRow(n int) []Shape {
	shapes := make([]Shape, n)
	for i := range shapes {
		shapes[i] = unitBoxAt(float64(i), 0)
	}
	return shapes
}

func TestBVH_Structure(t *testing.T) {
	tests := []struct {
		name       string
		shapes     []Shape
		wantNodes  int // 0 means "more than one"
		wantLeaves int // 0 means "at least two"
	}{
		{"Empty", nil, 0, 0},
		{"Single shape", boxRow(1), 1, 1},
		{"Exactly the leaf threshold", boxRow(leafThreshold), 1, 1},
		{"One over the leaf threshold", boxRow(leafThreshold + 1), 0, 0},
		{"Identical boxes stay in one leaf", []Shape{unitBoxAt(0, 0), unitBoxAt(0, 0), unitBoxAt(0, 0),
			unitBoxAt(0, 0), unitBoxAt(0, 0), unitBoxAt(0, 0), unitBoxAt(0, 0), unitBoxAt(0, 0), unitBoxAt(0, 0)}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bvh := NewBVH(tt.shapes)
			if len(tt.shapes) == 0 {
				if bvh.Root != nil {
					t.Error("Expected nil root for empty BVH")
				}
				return
			}

			stats := bvh.Stats()
			if stats.TotalShapes != len(tt.shapes) {
				t.Errorf("Expected %d shapes in leaves, got %d", len(tt.shapes), stats.TotalShapes)
			}
			if tt.wantNodes > 0 && stats.TotalNodes != tt.wantNodes {
				t.Errorf("Expected %d nodes, got %d", tt.wantNodes, stats.TotalNodes)
			}
			if tt.wantNodes == 0 && stats.TotalNodes <= 1 {
				t.Errorf("Expected a split, got %d nodes", stats.TotalNodes)
			}
			if tt.wantLeaves > 0 && stats.LeafNodes != tt.wantLeaves {
				t.Errorf("Expected %d leaves, got %d", tt.wantLeaves, stats.LeafNodes)
			}
			if tt.wantLeaves == 0 && stats.LeafNodes < 2 {
				t.Errorf("Expected at least 2 leaves, got %d", stats.LeafNodes)
			}
		})
	}
}

func TestBVH_DeepTree(t *testing.T) {
	stats := NewBVH(boxRow(20)).Stats()
	if stats.TotalShapes != 20 {
		t.Errorf("Expected 20 shapes, got %d", stats.TotalShapes)
	}
	if stats.MaxDepth == 0 {
		t.Error("Expected depth > 0 for 20 shapes")
	}
	if stats.TotalNodes < stats.LeafNodes {
		t.Errorf("Expected total nodes >= leaves, got %d < %d", stats.TotalNodes, stats.LeafNodes)
	}
}

func TestBVH_ClosestHit(t *testing.T) {
	ray := core.NewRay(core.NewVec3(-1, 0.5, 0.5), core.NewVec3(1, 0, 0))

	tests := []struct {
		name   string
		shapes []Shape
		tMax   float64
		wantT  float64 // 0 expects a miss
	}{
		{"Empty", nil, 1000, 0},
		{"Overlapping shapes in one leaf", []Shape{unitBoxAt(0, 2), unitBoxAt(0.5, 1), unitBoxAt(1, 3)}, 1000, 1},
		{"Identical boxes", []Shape{unitBoxAt(0, 5), unitBoxAt(0, 4), unitBoxAt(0, 3)}, 1000, 3},
		{"Box hit but shape missed", []Shape{unitBoxAt(0, 0)}, 1000, 0},
		{"Closest beyond tMax", []Shape{unitBoxAt(0, 2)}, 1.5, 0},
		{"Across a split", append(boxRow(12), unitBoxAt(15, 16), unitBoxAt(3, 4)), 1000, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := NewBVH(tt.shapes).Hit(ray, 0.001, tt.tMax)
			if tt.wantT == 0 {
				if ok || hit != nil {
					t.Errorf("Expected miss, got %+v", hit)
				}
				return
			}
			if !ok {
				t.Fatal("Expected hit")
			}
			if math.Abs(hit.T-tt.wantT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.wantT, hit.T)
			}
		})
	}
}

func TestSplitBounded(t *testing.T) {
	plane := MockShape{hitAt: 7}
	first := unitBoxAt(0, 2)
	second := unitBoxAt(3, 5)
	bounded, unbounded := SplitBounded([]Shape{first, plane, second})

	if len(bounded) != 2 || bounded[0] != Shape(first) || bounded[1] != Shape(second) {
		t.Errorf("Expected both boxes in order, got %v", bounded)
	}
	if len(unbounded) != 1 || unbounded[0] != Shape(plane) {
		t.Errorf("Expected only the unbounded shape, got %v", unbounded)
	}

	// A zero box from an unbounded shape must not shrink the tree's root bounds
	bvh := NewBVH(bounded)
	if bvh.Root.BoundingBox.Min.X != 0 || bvh.Root.BoundingBox.Max.X != 4 {
		t.Errorf("Expected root spanning x in [0, 4], got %v", bvh.Root.BoundingBox)
	}
}

func TestSplitBounded_RealShapes(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	shapes := []Shape{NewPlane(nil, mat), NewSphere(1, nil, mat), NewCube(nil, mat)}

	bounded, unbounded := SplitBounded(shapes)
	if len(bounded) != 2 || len(unbounded) != 1 {
		t.Fatalf("Expected 2 bounded and 1 unbounded, got %d and %d", len(bounded), len(unbounded))
	}
	if _, ok := unbounded[0].(*Plane); !ok {
		t.Errorf("Expected the plane to be unbounded, got %T", unbounded[0])
	}
}
