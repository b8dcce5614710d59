package geometry

import (
	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/implicit"
	"github.com/df07/go-implicit-raytracer/pkg/material"
	"github.com/df07/go-implicit-raytracer/pkg/transform"
)

// defaultStepDivisions sets the march step of an ImplicitShape without one: the local
// bounds diagonal divided by this many steps
const defaultStepDivisions = 512

// ImplicitShape is the zero set of a scalar field, found by marching the ray through
// the field's local bounds in fixed steps and bisecting the first sign change.
type ImplicitShape struct {
	Field     implicit.Field
	Step      float64 // March step in local units
	Transform *transform.Transform
	Material  material.Material
}

// NewImplicitShape creates a new implicit surface. A step <= 0 picks one from the field bounds.
func NewImplicitShape(field implicit.Field, step float64, tr *transform.Transform, mat material.Material) *ImplicitShape {
	if step <= 0 {
		step = field.Bounds().Size().Length() / defaultStepDivisions
	}
	return &ImplicitShape{
		Field:     field,
		Step:      step,
		Transform: transformOrIdentity(tr),
		Material:  mat,
	}
}

// Hit tests if a ray intersects with the surface
func (s *ImplicitShape) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return hitTransformed(s.Transform, s.Material, ray, tMin, tMax, func(local core.Ray, lo, hi float64) (localHit, bool) {
		return marchField(s.Field, s.Step, local, lo, hi)
	})
}

// BoundingBox returns the transformed field bounds
func (s *ImplicitShape) BoundingBox() (core.AABB, bool) {
	return s.Transform.BoundsToWorld(s.Field.Bounds()), true
}

// marchField intersects a local ray with the zero set of field inside its bounds
func marchField(field implicit.Field, step float64, ray core.Ray, tMin, tMax float64) (localHit, bool) {
	t0, t1, ok := field.Bounds().Interval(ray, tMin, tMax)
	if !ok {
		return localHit{}, false
	}

	f := func(t float64) float64 { return field.Value(ray.At(t)) }
	t, ok := implicit.FindRoot(f, t0, t1, step)
	if !ok {
		return localHit{}, false
	}

	point := ray.At(t)
	return localHit{
		T:      t,
		Point:  point,
		Normal: implicit.Gradient(field, point),
		UV:     implicit.UV(field, point),
	}, true
}
