package geometry

import (
	"math"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/material"
	"github.com/df07/go-implicit-raytracer/pkg/transform"
)

// Sphere is a sphere of the given radius centered on its local origin
type Sphere struct {
	Radius        float64
	InverseNormal bool // Normals point inward, for hollow shells
	Transform     *transform.Transform
	Material      material.Material
}

// NewSphere creates a new sphere. A nil transform places it at the origin.
func NewSphere(radius float64, tr *transform.Transform, mat material.Material) *Sphere {
	return &Sphere{
		Radius:    radius,
		Transform: transformOrIdentity(tr),
		Material:  mat,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return hitTransformed(s.Transform, s.Material, ray, tMin, tMax, s.hitLocal)
}

func (s *Sphere) hitLocal(ray core.Ray, tMin, tMax float64) (localHit, bool) {
	// Direction is unit length, so a = 1
	oc := ray.Origin
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - c
	if discriminant < 0 {
		return localHit{}, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := -halfB - sqrtD
	if root < tMin || root > tMax {
		root = -halfB + sqrtD
		if root < tMin || root > tMax {
			return localHit{}, false
		}
	}

	point := ray.At(root)
	outward := point.Multiply(1.0 / s.Radius)
	normal := outward
	if s.InverseNormal {
		normal = normal.Negate()
	}

	return localHit{T: root, Point: point, Normal: normal, UV: sphereUV(outward)}, true
}

// sphereUV maps a point on the unit sphere to (u, v) with v = 0 at the bottom pole
func sphereUV(p core.Vec3) core.Vec2 {
	theta := math.Acos(max(-1, min(1, -p.Y)))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() (core.AABB, bool) {
	r := math.Abs(s.Radius)
	local := core.NewAABB(core.NewVec3(-r, -r, -r), core.NewVec3(r, r, r))
	return s.Transform.BoundsToWorld(local), true
}
