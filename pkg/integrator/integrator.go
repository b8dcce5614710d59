package integrator

import (
	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/material"
)

// HitEpsilon is the minimum ray parameter accepted as a hit, keeping scattered rays off
// the surface they leave
const HitEpsilon = 0.001

// World is the scene as seen by an integrator
type World interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
	BackgroundColor(ray core.Ray) core.Vec3
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along a camera ray
	RayColor(ray core.Ray, world World, sampler core.Sampler) core.Vec3
}
