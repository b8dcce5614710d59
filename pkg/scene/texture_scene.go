package scene

import (
	"math/rand"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/geometry"
	"github.com/df07/go-implicit-raytracer/pkg/material"
	"github.com/df07/go-implicit-raytracer/pkg/transform"
)

// NewTextureScene creates a scene demonstrating every texture on the different shapes
func NewTextureScene() (*Scene, error) {
	samplingConfig := DefaultSamplingConfig()
	samplingConfig.Width = 800
	samplingConfig.Height = 450
	samplingConfig.SamplesPerPixel = 100
	samplingConfig.MaxDepth = 10
	samplingConfig.RussianRouletteMinBounces = 5

	camera, err := geometry.NewCamera(geometry.CameraConfig{
		Position:    core.NewVec3(0, 2, 10),
		Direction:   core.NewVec3(0, -1, -10),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        50, // Wide enough to see all shapes
		AspectRatio: float64(samplingConfig.Width) / float64(samplingConfig.Height),
	})
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Camera:         camera,
		Shapes:         make([]geometry.Shape, 0),
		Sky:            &SkyGradient{Top: core.NewVec3(0.3, 0.4, 0.6), Bottom: core.NewVec3(0.2, 0.2, 0.2)},
		SamplingConfig: samplingConfig,
	}

	white := material.NewSolidColor(core.NewVec3(0.9, 0.9, 0.9))
	blue := material.NewSolidColor(core.NewVec3(0.2, 0.2, 0.8))
	orange := material.NewSolidColor(core.NewVec3(0.7, 0.3, 0.1))
	brown := material.NewSolidColor(core.NewVec3(0.5, 0.2, 0.05))

	uvChecker := material.NewUVChecker(white, blue, 16, 8)
	solidChecker := material.NewCheckerTexture(orange, brown, core.NewVec3(6, 6, 6))
	marble := material.NewNoiseTexture(4, rand.New(rand.NewSource(defaultSceneSeed)))
	uvDebug := material.NewUVDebugTexture(256, 256)
	gradient := material.NewGradientTexture(256, 256, core.NewVec3(1.0, 0.2, 0.2), core.NewVec3(0.2, 1.0, 0.2))

	// All shapes in a single row, left to right
	place := func(x, y float64, rotate, scale core.Vec3) (*transform.Transform, error) {
		return transform.New(core.NewVec3(x, y, 0), rotate, scale)
	}
	unit := core.NewVec3(1, 1, 1)

	sphereAt, err := place(-5, 1, core.Vec3{}, unit)
	if err != nil {
		return nil, err
	}
	cubeAt, err := place(-2.5, 0.8, core.NewVec3(0, 30, 0), core.NewVec3(0.8, 0.8, 0.8))
	if err != nil {
		return nil, err
	}
	marbleAt, err := place(0, 1, core.Vec3{}, unit)
	if err != nil {
		return nil, err
	}
	torusAt, err := place(2.5, 1, core.NewVec3(60, 0, 0), unit)
	if err != nil {
		return nil, err
	}
	panelAt, err := place(5, 0, core.NewVec3(0, -20, 0), unit)
	if err != nil {
		return nil, err
	}
	groundAt, err := transform.New(core.Vec3{}, core.NewVec3(-90, 0, 0), unit)
	if err != nil {
		return nil, err
	}

	s.Shapes = append(s.Shapes,
		geometry.NewSphere(1, sphereAt, material.NewTexturedLambertian(uvChecker)),
		geometry.NewCube(cubeAt, material.NewTexturedLambertian(uvDebug)),
		geometry.NewSphere(1, marbleAt, material.NewTexturedLambertian(marble)),
		geometry.NewTorus(0.7, 0.3, 0, torusAt, material.NewTexturedMetal(gradient, 0.2)),
		geometry.NewRectangle(-0.8, 0, 0.8, 2, 0, panelAt, material.NewTexturedLambertian(gradient)),
		geometry.NewPlane(groundAt, material.NewTexturedLambertian(solidChecker)),
	)

	// Spherical area light
	lightAt, err := transform.New(core.NewVec3(0, 8, 5), core.Vec3{}, unit)
	if err != nil {
		return nil, err
	}
	s.Shapes = append(s.Shapes, geometry.NewSphere(2, lightAt, material.NewDiffuseLight(core.NewVec3(20, 20, 20))))

	return s, nil
}
