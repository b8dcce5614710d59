package geometry

import (
	"math"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/material"
	"github.com/df07/go-implicit-raytracer/pkg/transform"
)

// Plane is the infinite local plane z = 0 facing +Z
type Plane struct {
	Transform *transform.Transform
	Material  material.Material
}

// NewPlane creates a new plane
func NewPlane(tr *transform.Transform, mat material.Material) *Plane {
	return &Plane{
		Transform: transformOrIdentity(tr),
		Material:  mat,
	}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return hitTransformed(p.Transform, p.Material, ray, tMin, tMax, p.hitLocal)
}

func (p *Plane) hitLocal(ray core.Ray, tMin, tMax float64) (localHit, bool) {
	// If denominator is close to zero, ray is parallel to plane (no intersection)
	if math.Abs(ray.Direction.Z) < 1e-8 {
		return localHit{}, false
	}

	t := -ray.Origin.Z / ray.Direction.Z
	if t < tMin || t > tMax {
		return localHit{}, false
	}

	point := ray.At(t)
	point.Z = 0
	uv := core.NewVec2(point.X-math.Floor(point.X), point.Y-math.Floor(point.Y))
	return localHit{T: t, Point: point, Normal: core.NewVec3(0, 0, 1), UV: uv}, true
}

// BoundingBox reports the plane as unbounded
func (p *Plane) BoundingBox() (core.AABB, bool) {
	return core.AABB{}, false
}
