package geometry

import (
	"math"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/material"
	"github.com/df07/go-implicit-raytracer/pkg/transform"
)

var unitCube = core.NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))

// Cube is the local box [-1, 1]³. Size, placement and orientation come from its transform.
type Cube struct {
	Transform *transform.Transform
	Material  material.Material
}

// NewCube creates a new cube
func NewCube(tr *transform.Transform, mat material.Material) *Cube {
	return &Cube{
		Transform: transformOrIdentity(tr),
		Material:  mat,
	}
}

// Hit tests if a ray intersects with the cube
func (c *Cube) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return hitTransformed(c.Transform, c.Material, ray, tMin, tMax, c.hitLocal)
}

func (c *Cube) hitLocal(ray core.Ray, tMin, tMax float64) (localHit, bool) {
	entry, exit, ok := unitCube.Interval(ray, math.Inf(-1), math.Inf(1))
	if !ok {
		return localHit{}, false
	}

	// Entry face first; rays starting inside hit the exit face
	t := entry
	if t < tMin || t > tMax {
		t = exit
		if t < tMin || t > tMax {
			return localHit{}, false
		}
	}

	point := ray.At(t)
	normal, uv := cubeFace(point)
	return localHit{T: t, Point: point, Normal: normal, UV: uv}, true
}

// cubeFace returns the outward normal of the face a surface point lies on, and the
// point's (u, v) from the two remaining coordinates
func cubeFace(p core.Vec3) (core.Vec3, core.Vec2) {
	ax, ay, az := math.Abs(p.X), math.Abs(p.Y), math.Abs(p.Z)
	switch {
	case ax >= ay && ax >= az:
		return core.NewVec3(math.Copysign(1, p.X), 0, 0), core.NewVec2((p.Y+1)/2, (p.Z+1)/2)
	case ay >= az:
		return core.NewVec3(0, math.Copysign(1, p.Y), 0), core.NewVec2((p.X+1)/2, (p.Z+1)/2)
	default:
		return core.NewVec3(0, 0, math.Copysign(1, p.Z)), core.NewVec2((p.X+1)/2, (p.Y+1)/2)
	}
}

// BoundingBox returns the transformed bounds of the cube
func (c *Cube) BoundingBox() (core.AABB, bool) {
	return c.Transform.BoundsToWorld(unitCube), true
}
