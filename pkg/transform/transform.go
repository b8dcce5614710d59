// Package transform maps points, directions and normals between an object's local space
// and world space.
package transform

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-implicit-raytracer/pkg/core"
)

// ErrDegenerateScale is returned when a scale component is zero and the transform
// cannot be inverted
var ErrDegenerateScale = errors.New("transform: degenerate scale")

// Transform is an immutable affine transform: translate ∘ rotate ∘ scale.
// Rotation angles are in degrees and applied around X, then Y, then Z.
type Transform struct {
	Translate core.Vec3
	Rotate    core.Vec3
	Scale     core.Vec3

	forward mgl64.Mat4 // local -> world
	inverse mgl64.Mat4 // world -> local
	normal  mgl64.Mat3 // inverse-transpose of the linear part
}

// New builds a transform from its translate, rotate (degrees) and scale parameters
func New(translate, rotate, scale core.Vec3) (*Transform, error) {
	if scale.X == 0 || scale.Y == 0 || scale.Z == 0 {
		return nil, fmt.Errorf("%w: scale %v", ErrDegenerateScale, scale)
	}

	forward := mgl64.Translate3D(translate.X, translate.Y, translate.Z).
		Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(rotate.Z))).
		Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(rotate.Y))).
		Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(rotate.X))).
		Mul4(mgl64.Scale3D(scale.X, scale.Y, scale.Z))

	inverse := forward.Inv()

	return &Transform{
		Translate: translate,
		Rotate:    rotate,
		Scale:     scale,
		forward:   forward,
		inverse:   inverse,
		normal:    inverse.Transpose().Mat3(),
	}, nil
}

// Identity returns the transform that leaves everything in place
func Identity() *Transform {
	t, _ := New(core.Vec3{}, core.Vec3{}, core.NewVec3(1, 1, 1))
	return t
}

// MustNew is like New but panics on error. Meant for built-in scenes with constant parameters.
func MustNew(translate, rotate, scale core.Vec3) *Transform {
	t, err := New(translate, rotate, scale)
	if err != nil {
		panic(err)
	}
	return t
}

// Translation returns a transform that only translates
func Translation(offset core.Vec3) *Transform {
	return MustNew(offset, core.Vec3{}, core.NewVec3(1, 1, 1))
}

// ToWorld maps a local-space point to world space
func (t *Transform) ToWorld(p core.Vec3) core.Vec3 {
	return applyPoint(t.forward, p)
}

// ToWorldDir maps a local-space direction to world space (translation ignored)
func (t *Transform) ToWorldDir(d core.Vec3) core.Vec3 {
	return applyDir(t.forward, d)
}

// ToLocal maps a world-space point to local space
func (t *Transform) ToLocal(p core.Vec3) core.Vec3 {
	return applyPoint(t.inverse, p)
}

// ToLocalDir maps a world-space direction to local space (translation ignored)
func (t *Transform) ToLocalDir(d core.Vec3) core.Vec3 {
	return applyDir(t.inverse, d)
}

// NormalToWorld maps a local-space normal to world space using the inverse-transpose.
// The result is not normalized.
func (t *Transform) NormalToWorld(n core.Vec3) core.Vec3 {
	return fromVec3(t.normal.Mul3x1(mgl64.Vec3{n.X, n.Y, n.Z}))
}

// RayToLocal maps a world ray into local space without renormalizing the direction,
// so the ray parameter t means the same point in both spaces
func (t *Transform) RayToLocal(ray core.Ray) core.Ray {
	return core.NewRay(t.ToLocal(ray.Origin), t.ToLocalDir(ray.Direction))
}

// BoundsToWorld returns the world-space box enclosing a local-space box
func (t *Transform) BoundsToWorld(box core.AABB) core.AABB {
	corners := box.Corners()
	for i := range corners {
		corners[i] = t.ToWorld(corners[i])
	}
	return core.NewAABBFromPoints(corners[:]...)
}

// String implements fmt.Stringer
func (t *Transform) String() string {
	return fmt.Sprintf("translate %v rotate %v scale %v", t.Translate, t.Rotate, t.Scale)
}

func applyPoint(m mgl64.Mat4, p core.Vec3) core.Vec3 {
	r := m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return core.NewVec3(r[0], r[1], r[2])
}

func applyDir(m mgl64.Mat4, d core.Vec3) core.Vec3 {
	r := m.Mul4x1(mgl64.Vec4{d.X, d.Y, d.Z, 0})
	return core.NewVec3(r[0], r[1], r[2])
}

func fromVec3(v mgl64.Vec3) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
