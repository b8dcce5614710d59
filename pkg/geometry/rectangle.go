package geometry

import (
	"math"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/material"
	"github.com/df07/go-implicit-raytracer/pkg/transform"
)

// rectanglePadding gives flat shapes a non-zero thickness in their bounding box
const rectanglePadding = 1e-4

// Rectangle is the region [X0, X1] × [Y0, Y1] of the local plane z = K, facing +Z
type Rectangle struct {
	X0, Y0, X1, Y1 float64
	K              float64
	Transform      *transform.Transform
	Material       material.Material
}

// NewRectangle creates a rectangle, ordering the bounds so that X0 <= X1 and Y0 <= Y1
func NewRectangle(x0, y0, x1, y1, k float64, tr *transform.Transform, mat material.Material) *Rectangle {
	return &Rectangle{
		X0: math.Min(x0, x1), Y0: math.Min(y0, y1),
		X1: math.Max(x0, x1), Y1: math.Max(y0, y1),
		K:         k,
		Transform: transformOrIdentity(tr),
		Material:  mat,
	}
}

// Hit tests if a ray intersects with the rectangle
func (r *Rectangle) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return hitTransformed(r.Transform, r.Material, ray, tMin, tMax, r.hitLocal)
}

func (r *Rectangle) hitLocal(ray core.Ray, tMin, tMax float64) (localHit, bool) {
	// Parallel rays never hit
	if math.Abs(ray.Direction.Z) < 1e-8 {
		return localHit{}, false
	}

	t := (r.K - ray.Origin.Z) / ray.Direction.Z
	if t < tMin || t > tMax {
		return localHit{}, false
	}

	point := ray.At(t)
	if point.X < r.X0 || point.X > r.X1 || point.Y < r.Y0 || point.Y > r.Y1 {
		return localHit{}, false
	}

	uv := core.NewVec2(fraction(point.X, r.X0, r.X1), fraction(point.Y, r.Y0, r.Y1))
	return localHit{T: t, Point: point, Normal: core.NewVec3(0, 0, 1), UV: uv}, true
}

// BoundingBox returns the transformed bounds of the rectangle
func (r *Rectangle) BoundingBox() (core.AABB, bool) {
	local := core.NewAABB(
		core.NewVec3(r.X0, r.Y0, r.K-rectanglePadding),
		core.NewVec3(r.X1, r.Y1, r.K+rectanglePadding),
	)
	return r.Transform.BoundsToWorld(local), true
}

// fraction returns where x sits in [lo, hi], 0 for an empty range
func fraction(x, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	return (x - lo) / (hi - lo)
}
