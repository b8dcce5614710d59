// Package implicit holds scalar fields whose zero sets are surfaces, together with the
// numeric root finder used to intersect rays with them.
package implicit

import (
	"errors"
	"fmt"

	"github.com/df07/go-implicit-raytracer/pkg/core"
)

// ErrInvalidField is returned for field parameters that leave nothing to intersect
var ErrInvalidField = errors.New("invalid field")

// Field is a scalar function of local-space position. The surface is the set of points
// where Value is zero. Bounds must enclose the whole surface.
type Field interface {
	Value(p core.Vec3) float64
	Bounds() core.AABB
}

// Gradienter is implemented by fields with an analytic gradient
type Gradienter interface {
	Gradient(p core.Vec3) core.Vec3
}

// UVMapper is implemented by fields that define surface coordinates
type UVMapper interface {
	UV(p core.Vec3) core.Vec2
}

// Gradient returns the field gradient at p, analytic when available and by central
// differences otherwise. The result is not normalized.
func Gradient(f Field, p core.Vec3) core.Vec3 {
	if g, ok := f.(Gradienter); ok {
		return g.Gradient(p)
	}
	return FiniteDifferenceGradient(f, p, GradientEpsilon)
}

// FiniteDifferenceGradient estimates the gradient with central differences of size eps
func FiniteDifferenceGradient(f Field, p core.Vec3, eps float64) core.Vec3 {
	dx := core.NewVec3(eps, 0, 0)
	dy := core.NewVec3(0, eps, 0)
	dz := core.NewVec3(0, 0, eps)
	inv := 1.0 / (2 * eps)
	return core.NewVec3(
		(f.Value(p.Add(dx))-f.Value(p.Subtract(dx)))*inv,
		(f.Value(p.Add(dy))-f.Value(p.Subtract(dy)))*inv,
		(f.Value(p.Add(dz))-f.Value(p.Subtract(dz)))*inv,
	)
}

// UV returns the field's surface coordinates at p, or (0, 0) when it defines none
func UV(f Field, p core.Vec3) core.Vec2 {
	if m, ok := f.(UVMapper); ok {
		return m.UV(p)
	}
	return core.Vec2{}
}

// Validate rejects fields with non-positive radii. Such fields have empty bounds, and a
// ray marcher would never find their surface.
func Validate(f Field) error {
	if t, ok := f.(Torus); ok && !(t.Radius > 0 && t.TubeRadius > 0) {
		return fmt.Errorf("%w: torus needs positive radius and tube_radius, got %g and %g", ErrInvalidField, t.Radius, t.TubeRadius)
	}
	size := f.Bounds().Size()
	if !(size.X > 0 && size.Y > 0 && size.Z > 0) {
		return fmt.Errorf("%w: %T needs a positive bounding radius, bounds are %v", ErrInvalidField, f, f.Bounds())
	}
	return nil
}

func cube(halfSize float64) core.AABB {
	return core.NewAABB(core.NewVec3(-halfSize, -halfSize, -halfSize), core.NewVec3(halfSize, halfSize, halfSize))
}
