package material

import (
	"github.com/df07/go-implicit-raytracer/pkg/core"
)

// Material interface for surfaces that can scatter rays
type Material interface {
	// Scatter returns the outgoing ray and its attenuation, or false if the ray is absorbed
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// Emitter is implemented by materials that emit light
type Emitter interface {
	Emitted(uv core.Vec2, point core.Vec3) core.Vec3
}

// Emitted returns the light emitted by m at the hit, black for non-emitting materials
func Emitted(m Material, hit HitRecord) core.Vec3 {
	if e, ok := m.(Emitter); ok {
		return e.Emitted(hit.UV, hit.Point)
	}
	return core.Vec3{}
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-surface intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection (world space)
	Normal    core.Vec3 // Unit normal, facing against the incoming ray
	T         float64   // Parameter t along the world ray
	UV        core.Vec2 // Surface coordinates
	FrontFace bool      // Whether ray hit the front face
	Material  Material  // Material of the hit shape
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
