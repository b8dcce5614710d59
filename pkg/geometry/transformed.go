package geometry

import (
	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/material"
	"github.com/df07/go-implicit-raytracer/pkg/transform"
)

// localHit is an intersection expressed in a shape's own coordinate frame
type localHit struct {
	T      float64   // Parameter along the unit-length local ray
	Point  core.Vec3 // Local hit point
	Normal core.Vec3 // Outward normal, any length
	UV     core.Vec2
}

// localIntersector intersects a unit-direction local ray within [tMin, tMax]
type localIntersector func(ray core.Ray, tMin, tMax float64) (localHit, bool)

// hitTransformed maps the world ray into the shape's local frame, runs intersect there, and
// maps the result back. The world t is recomputed from the world-space hit point.
func hitTransformed(tr *transform.Transform, mat material.Material, ray core.Ray, tMin, tMax float64, intersect localIntersector) (*material.HitRecord, bool) {
	local := tr.RayToLocal(ray)

	// One world unit of t covers toLocal units of local distance
	toLocal := local.Direction.Length()
	if toLocal == 0 {
		return nil, false
	}
	localRay := core.NewRay(local.Origin, local.Direction.Multiply(1/toLocal))

	lh, ok := intersect(localRay, tMin*toLocal, tMax*toLocal)
	if !ok {
		return nil, false
	}

	point := tr.ToWorld(lh.Point)
	t := point.Subtract(ray.Origin).Dot(ray.Direction) / ray.Direction.LengthSquared()
	if t < tMin || t > tMax {
		return nil, false
	}

	normal := tr.NormalToWorld(lh.Normal).Normalize()
	if normal.NearZero() {
		return nil, false
	}

	hit := &material.HitRecord{
		T:        t,
		Point:    point,
		UV:       lh.UV,
		Material: mat,
	}
	hit.SetFaceNormal(ray, normal)
	return hit, true
}

// transformOrIdentity returns tr, or the identity transform when tr is nil
func transformOrIdentity(tr *transform.Transform) *transform.Transform {
	if tr == nil {
		return transform.Identity()
	}
	return tr
}
