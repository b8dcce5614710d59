package geometry

import (
	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/implicit"
	"github.com/df07/go-implicit-raytracer/pkg/material"
	"github.com/df07/go-implicit-raytracer/pkg/transform"
)

// Torus is a ring around the local Z axis, intersected numerically
type Torus struct {
	Radius     float64 // Distance from the center to the middle of the tube
	TubeRadius float64
	Step       float64 // March step in local units
	Transform  *transform.Transform
	Material   material.Material
	field      implicit.Torus
}

// NewTorus creates a new torus. A step <= 0 defaults to an eighth of the tube radius.
func NewTorus(radius, tubeRadius, step float64, tr *transform.Transform, mat material.Material) *Torus {
	if step <= 0 {
		step = tubeRadius / 8
	}
	return &Torus{
		Radius:     radius,
		TubeRadius: tubeRadius,
		Step:       step,
		Transform:  transformOrIdentity(tr),
		Material:   mat,
		field:      implicit.Torus{Radius: radius, TubeRadius: tubeRadius},
	}
}

// Hit tests if a ray intersects with the torus
func (t *Torus) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return hitTransformed(t.Transform, t.Material, ray, tMin, tMax, func(local core.Ray, lo, hi float64) (localHit, bool) {
		return marchField(t.field, t.Step, local, lo, hi)
	})
}

// BoundingBox returns the transformed bounds of the torus
func (t *Torus) BoundingBox() (core.AABB, bool) {
	return t.Transform.BoundsToWorld(t.field.Bounds()), true
}
