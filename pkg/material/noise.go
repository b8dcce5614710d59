package material

import (
	"math"
	"math/rand"

	"github.com/df07/go-implicit-raytracer/pkg/core"
)

const perlinPointCount = 256

// NoiseTexture is a grey marble pattern built from Perlin turbulence
type NoiseTexture struct {
	Scale float64
	noise *perlin
}

// NewNoiseTexture creates a marble texture. The lattice is fixed by random at construction.
func NewNoiseTexture(scale float64, random *rand.Rand) *NoiseTexture {
	return &NoiseTexture{Scale: scale, noise: newPerlin(random)}
}

// Evaluate returns 0.5·(1 + sin(scale·z + 10·turbulence)) as a grey level
func (n *NoiseTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	grey := 0.5 * (1 + math.Sin(n.Scale*point.Z+10*n.noise.turbulence(point, 7)))
	return core.NewVec3(grey, grey, grey)
}

type perlin struct {
	gradients [perlinPointCount]core.Vec3
	permX     [perlinPointCount]int
	permY     [perlinPointCount]int
	permZ     [perlinPointCount]int
}

func newPerlin(random *rand.Rand) *perlin {
	p := &perlin{}
	for i := range p.gradients {
		p.gradients[i] = core.SampleOnUnitSphere(core.NewVec2(random.Float64(), random.Float64()))
	}
	for i, perm := range random.Perm(perlinPointCount) {
		p.permX[i] = perm
	}
	for i, perm := range random.Perm(perlinPointCount) {
		p.permY[i] = perm
	}
	for i, perm := range random.Perm(perlinPointCount) {
		p.permZ[i] = perm
	}
	return p
}

// noise returns gradient noise in roughly [-1, 1]
func (p *perlin) noise(point core.Vec3) float64 {
	fx, fy, fz := math.Floor(point.X), math.Floor(point.Y), math.Floor(point.Z)
	u, v, w := point.X-fx, point.Y-fy, point.Z-fz
	i, j, k := int(fx), int(fy), int(fz)

	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	var sum float64
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				g := p.gradients[p.permX[(i+di)&255]^p.permY[(j+dj)&255]^p.permZ[(k+dk)&255]]
				weight := core.NewVec3(u-float64(di), v-float64(dj), w-float64(dk))
				sum += lerpWeight(di, uu) * lerpWeight(dj, vv) * lerpWeight(dk, ww) * g.Dot(weight)
			}
		}
	}
	return sum
}

func (p *perlin) turbulence(point core.Vec3, depth int) float64 {
	var accum float64
	weight := 1.0
	for i := 0; i < depth; i++ {
		accum += weight * p.noise(point)
		weight *= 0.5
		point = point.Multiply(2)
	}
	return math.Abs(accum)
}

func lerpWeight(corner int, t float64) float64 {
	if corner == 1 {
		return t
	}
	return 1 - t
}
