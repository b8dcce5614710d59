package scene

import (
	"math"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/geometry"
	"github.com/df07/go-implicit-raytracer/pkg/implicit"
	"github.com/df07/go-implicit-raytracer/pkg/material"
	"github.com/df07/go-implicit-raytracer/pkg/transform"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	// Convert hue from degrees to radians
	hRad := h * math.Pi / 180.0

	// Convert from OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// Convert from OKLAB to linear RGB
	// First convert to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	// Cube the values
	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// Convert LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	// Clamp to [0, 1] range
	r = math.Max(0, math.Min(1, r))
	g = math.Max(0, math.Min(1, g))
	blue = math.Max(0, math.Min(1, blue))

	return core.NewVec3(r, g, blue)
}

// galleryEntry is one surface of the implicit gallery with the radius of its bounds
type galleryEntry struct {
	field  implicit.Field
	radius float64
}

// NewImplicitScene creates a row of implicit surfaces on a ground plane, each scaled to
// roughly unit size and colored around the hue wheel
func NewImplicitScene() (*Scene, error) {
	samplingConfig := DefaultSamplingConfig()
	samplingConfig.Width = 800
	samplingConfig.Height = 300
	samplingConfig.SamplesPerPixel = 64
	samplingConfig.MaxDepth = 12

	camera, err := geometry.NewCamera(geometry.CameraConfig{
		Position:    core.NewVec3(0, 3, 11),
		Direction:   core.NewVec3(0, -2.2, -11),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: float64(samplingConfig.Width) / float64(samplingConfig.Height),
	})
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Camera:         camera,
		Shapes:         make([]geometry.Shape, 0),
		Sky:            &SkyGradient{Top: core.NewVec3(0.5, 0.7, 1.0), Bottom: core.NewVec3(0.9, 0.9, 0.9)},
		SamplingConfig: samplingConfig,
	}

	// Infinite ground at y = 0, facing up
	groundChecker := material.NewUVChecker(
		material.NewSolidColor(core.NewVec3(0.25, 0.25, 0.28)),
		material.NewSolidColor(core.NewVec3(0.8, 0.8, 0.8)),
		2, 2,
	)
	ground, err := transform.New(core.Vec3{}, core.NewVec3(-90, 0, 0), core.NewVec3(1, 1, 1))
	if err != nil {
		return nil, err
	}
	s.Shapes = append(s.Shapes, geometry.NewPlane(ground, material.NewTexturedLambertian(groundChecker)))

	gallery := []galleryEntry{
		{implicit.Heart{}, 1.45},
		{implicit.Sine{A: 1, SphereRadius: 1}, 1},
		{implicit.Star{A: 8, SphereRadius: 1.1}, 1.1},
		{implicit.DupinCyclide{A: 1, B: 0.98, C: 0.199, D: 0.3, SphereRadius: 2}, 2},
		{implicit.HuntsSurface{SphereRadius: 4}, 4},
		{implicit.Cushion{SphereRadius: 1.5}, 1.5},
	}

	spacing := 2.2
	start := -spacing * float64(len(gallery)) / 2
	for i, entry := range gallery {
		scale := 0.9 / entry.radius
		placement, err := transform.New(
			core.NewVec3(start+spacing*float64(i), 1, 0),
			core.NewVec3(-90, 0, 0), // Field z axis points up
			core.NewVec3(scale, scale, scale),
		)
		if err != nil {
			return nil, err
		}
		color := oklchToRGB(0.7, 0.15, 360*float64(i)/float64(len(gallery)))
		s.Shapes = append(s.Shapes, geometry.NewImplicitShape(entry.field, 0, placement, material.NewLambertian(color)))
	}

	// Glass torus lying in front of the row, numerically intersected
	ring, err := transform.New(core.NewVec3(0, 0.3, 2.5), core.NewVec3(90, 0, 0), core.NewVec3(1, 1, 1))
	if err != nil {
		return nil, err
	}
	s.Shapes = append(s.Shapes, geometry.NewTorus(1.2, 0.3, 0, ring, material.NewDielectric(1.5)))

	// Area light above the row
	overhead, err := transform.New(core.Vec3{}, core.NewVec3(90, 0, 0), core.NewVec3(1, 1, 1))
	if err != nil {
		return nil, err
	}
	s.Shapes = append(s.Shapes, geometry.NewRectangle(-3, -2, 3, 2, -6, overhead, material.NewDiffuseLight(core.NewVec3(6, 6, 6))))

	return s, nil
}
