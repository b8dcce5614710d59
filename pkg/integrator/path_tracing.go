package integrator

import (
	"math"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/material"
)

// Config controls path length
type Config struct {
	MaxDepth                  int // Scatter events allowed after the camera ray
	RussianRouletteMinBounces int // Bounces before Russian roulette starts, 0 disables it
}

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{config: config}
}

// RayColor computes the color for a camera ray. MaxDepth bounces are allowed after
// the primary hit.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world World, sampler core.Sampler) core.Vec3 {
	return pt.Trace(ray, world, pt.config.MaxDepth+1, sampler)
}

// Trace follows a path for at most depth intersections. Each hit adds its emission
// and multiplies the throughput by the scatter attenuation; an escaping ray adds the
// background. A depth of zero gathers no light.
func (pt *PathTracingIntegrator) Trace(ray core.Ray, world World, depth int, sampler core.Sampler) core.Vec3 {
	color := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)

	for bounce := 0; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, HitEpsilon, math.Inf(1))
		if !isHit {
			return color.Add(throughput.MultiplyVec(world.BackgroundColor(ray)))
		}

		color = color.Add(throughput.MultiplyVec(material.Emitted(hit.Material, *hit)))

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return color
		}
		throughput = throughput.MultiplyVec(scatter.Attenuation)
		bounce++

		// Nothing further can be gathered once the path is out of depth
		if depth == 1 {
			break
		}

		terminate, compensation := pt.ApplyRussianRoulette(bounce, throughput, sampler.Get1D())
		if terminate {
			return color
		}
		throughput = throughput.Multiply(compensation)
		ray = scatter.Scattered
	}

	return color
}

// ApplyRussianRoulette decides whether a path stops after the given number of bounces.
// u is a uniform sample in [0, 1). Returns (shouldTerminate, compensationFactor).
func (pt *PathTracingIntegrator) ApplyRussianRoulette(bounce int, throughput core.Vec3, u float64) (bool, float64) {
	if pt.config.RussianRouletteMinBounces <= 0 || bounce < pt.config.RussianRouletteMinBounces {
		return false, 1.0
	}

	survivalProb := math.Min(0.95, math.Max(0.05, throughput.Luminance()))
	if u >= survivalProb {
		return true, 0.0
	}
	return false, 1.0 / survivalProb
}
