package scene

import (
	"math/rand"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/geometry"
	"github.com/df07/go-implicit-raytracer/pkg/material"
	"github.com/df07/go-implicit-raytracer/pkg/transform"
)

// defaultSceneSeed fixes the random sphere field so the default scene is reproducible
const defaultSceneSeed = 42

// NewDefaultScene creates the classic field of small random spheres around three large ones
func NewDefaultScene() (*Scene, error) {
	samplingConfig := DefaultSamplingConfig()
	samplingConfig.SamplesPerPixel = 100
	samplingConfig.MaxDepth = 50
	samplingConfig.RussianRouletteMinBounces = 10

	camera, err := geometry.NewCamera(geometry.CameraConfig{
		Position:    core.NewVec3(13, 2, 3),
		Direction:   core.NewVec3(-13, -2, -3), // Toward the origin
		Up:          core.NewVec3(0, 1, 0),
		VFov:        20,
		AspectRatio: float64(samplingConfig.Width) / float64(samplingConfig.Height),
	})
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Camera:         camera,
		Shapes:         make([]geometry.Shape, 0),
		Sky:            &SkyGradient{Top: core.NewVec3(0.5, 0.7, 1.0), Bottom: core.NewVec3(1.0, 1.0, 1.0)},
		SamplingConfig: samplingConfig,
	}

	// Ground is a huge sphere with a solid checker
	groundChecker := material.NewCheckerTexture(
		material.NewSolidColor(core.NewVec3(0.2, 0.3, 0.1)),
		material.NewSolidColor(core.NewVec3(0.9, 0.9, 0.9)),
		core.NewVec3(10, 10, 10),
	)
	ground := geometry.NewSphere(1000, transform.Translation(core.NewVec3(0, -1000, 0)),
		material.NewTexturedLambertian(groundChecker))

	glass := geometry.NewSphere(1, transform.Translation(core.NewVec3(0, 1, 0)), material.NewDielectric(1.5))
	matte := geometry.NewSphere(1, transform.Translation(core.NewVec3(-4, 1, 0)),
		material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))
	mirror := geometry.NewSphere(1, transform.Translation(core.NewVec3(4, 1, 0)),
		material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0))

	s.Shapes = append(s.Shapes, ground, glass, matte, mirror)
	s.Shapes = append(s.Shapes, randomSpheres(rand.New(rand.NewSource(defaultSceneSeed)))...)

	return s, nil
}

// randomSpheres scatters one small sphere per cell of a 22×22 grid, skipping the area
// around the large mirror sphere. 80% are diffuse, 15% metal and 5% glass.
func randomSpheres(random *rand.Rand) []geometry.Shape {
	const radius = 0.2
	clearing := core.NewVec3(4, radius, 0)

	var shapes []geometry.Shape
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			center := core.NewVec3(
				float64(a)+0.9*random.Float64(),
				radius,
				float64(b)+0.9*random.Float64(),
			)
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch choice := random.Float64(); {
			case choice < 0.8:
				color := randomColor(random)
				mat = material.NewLambertian(color.MultiplyVec(color))
			case choice < 0.95:
				color := randomColor(random)
				albedo := core.NewVec3(0.5*(1-color.X), 0.5*(1-color.Y), 0.5*(1-color.Z))
				mat = material.NewMetal(albedo, 0.5*random.Float64())
			default:
				mat = material.NewDielectric(1.5)
			}

			shapes = append(shapes, geometry.NewSphere(radius, transform.Translation(center), mat))
		}
	}
	return shapes
}

func randomColor(random *rand.Rand) core.Vec3 {
	return core.NewVec3(random.Float64(), random.Float64(), random.Float64())
}
