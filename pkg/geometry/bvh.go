package geometry

import (
	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/material"
)

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Shapes      []Shape // Multiple shapes for leaf nodes (nil for internal nodes)
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// Only bounded shapes belong in a BVH.
type BVH struct {
	Root *BVHNode
}

// NewBVH constructs a BVH from a slice of bounded shapes
func NewBVH(shapes []Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{Root: nil}
	}

	// Partitioning builds new slices, but never reorder the caller's
	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)

	return &BVH{Root: buildBVH(shapesCopy, 0)}
}

// SplitBounded separates shapes that report a bounding box from those that do not.
// Only the bounded ones may go into a BVH. Order is preserved within each group.
func SplitBounded(shapes []Shape) (bounded, unbounded []Shape) {
	for _, shape := range shapes {
		if _, ok := shape.BoundingBox(); ok {
			bounded = append(bounded, shape)
		} else {
			unbounded = append(unbounded, shape)
		}
	}
	return bounded, unbounded
}

// Leaf threshold: if we have this many or fewer shapes, store them in a leaf node
const leafThreshold = 8

// buildBVH recursively builds the BVH with midpoint splits along the longest axis
func buildBVH(shapes []Shape, depth int) *BVHNode {
	boundingBox := shapeBounds(shapes[0])
	for _, shape := range shapes[1:] {
		boundingBox = boundingBox.Union(shapeBounds(shape))
	}

	if len(shapes) <= leafThreshold {
		return &BVHNode{BoundingBox: boundingBox, Shapes: shapes}
	}

	axis, splitPos, ok := findSplit(boundingBox)
	if !ok {
		return &BVHNode{BoundingBox: boundingBox, Shapes: shapes}
	}

	leftShapes, rightShapes := partitionShapes(shapes, axis, splitPos)

	// All centers on one side: splitting further cannot help
	if len(leftShapes) == 0 || len(rightShapes) == 0 {
		return &BVHNode{BoundingBox: boundingBox, Shapes: shapes}
	}

	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(leftShapes, depth+1),
		Right:       buildBVH(rightShapes, depth+1),
	}
}

// findSplit picks the longest axis of the box and its midpoint
func findSplit(boundingBox core.AABB) (axis int, splitPos float64, ok bool) {
	axis = boundingBox.LongestAxis()
	minVal := boundingBox.Min.Component(axis)
	maxVal := boundingBox.Max.Component(axis)

	// Skip if no extent along this axis
	if maxVal <= minVal {
		return -1, 0, false
	}
	return axis, (minVal + maxVal) * 0.5, true
}

// partitionShapes splits shapes by the side of splitPos their bounding box center lies on
func partitionShapes(shapes []Shape, axis int, splitPos float64) ([]Shape, []Shape) {
	var leftShapes, rightShapes []Shape
	for _, shape := range shapes {
		if shapeBounds(shape).Center().Component(axis) < splitPos {
			leftShapes = append(leftShapes, shape)
		} else {
			rightShapes = append(rightShapes, shape)
		}
	}
	return leftShapes, rightShapes
}

func shapeBounds(shape Shape) core.AABB {
	box, _ := shape.BoundingBox()
	return box
}

// Hit returns the closest intersection with any shape in the BVH
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if bvh == nil || bvh.Root == nil {
		return nil, false
	}
	return bvh.hitNode(bvh.Root, ray, tMin, tMax)
}

// hitNode recursively tests ray intersection with BVH nodes
func (bvh *BVH) hitNode(node *BVHNode, ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return nil, false
	}

	var closest *material.HitRecord
	closestSoFar := tMax

	if node.Shapes != nil {
		for _, shape := range node.Shapes {
			if hit, ok := shape.Hit(ray, tMin, closestSoFar); ok {
				closest = hit
				closestSoFar = hit.T
			}
		}
		return closest, closest != nil
	}

	for _, child := range []*BVHNode{node.Left, node.Right} {
		if child == nil {
			continue
		}
		if hit, ok := bvh.hitNode(child, ray, tMin, closestSoFar); ok {
			closest = hit
			closestSoFar = hit.T
		}
	}
	return closest, closest != nil
}

// Stats returns statistics about the BVH structure
func (bvh *BVH) Stats() BVHStats {
	if bvh == nil || bvh.Root == nil {
		return BVHStats{}
	}

	stats := BVHStats{}
	bvh.collectStats(bvh.Root, 0, &stats)

	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}
	return stats
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes  int
	LeafNodes   int
	MaxDepth    int
	AvgDepth    float64 // Mean depth of the leaves
	TotalShapes int
}

// collectStats recursively collects statistics about the BVH
func (bvh *BVH) collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.TotalNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if node.Shapes != nil {
		stats.LeafNodes++
		stats.TotalShapes += len(node.Shapes)
		stats.AvgDepth += float64(depth)
		return
	}
	if node.Left != nil {
		bvh.collectStats(node.Left, depth+1, stats)
	}
	if node.Right != nil {
		bvh.collectStats(node.Right, depth+1, stats)
	}
}
