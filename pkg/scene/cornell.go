package scene

import (
	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/geometry"
	"github.com/df07/go-implicit-raytracer/pkg/material"
	"github.com/df07/go-implicit-raytracer/pkg/transform"
)

// Rotations that lay the local XY rectangle plane onto the world axes
var (
	facingY = core.NewVec3(-90, 0, 0) // local (x, y, k) -> world (x, k, -y)
	facingX = core.NewVec3(0, 90, 0)  // local (x, y, k) -> world (k, y, -x)
)

// NewCornellScene creates a classic Cornell box scene with rectangle walls, two boxes and an area light
func NewCornellScene() (*Scene, error) {
	samplingConfig := SamplingConfig{
		Width:                     400,
		Height:                    400,
		SamplesPerPixel:           150,
		MaxDepth:                  40,
		RussianRouletteMinBounces: 4,
	}

	camera, err := geometry.NewCamera(geometry.CameraConfig{
		Position:    core.NewVec3(278, 278, -800), // Outside the box looking in
		Direction:   core.NewVec3(0, 0, 1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: 1,
	})
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Camera:         camera,
		Background:     core.NewVec3(0, 0, 0),
		Shapes:         make([]geometry.Shape, 0),
		SamplingConfig: samplingConfig,
	}

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewDiffuseLight(core.NewVec3(15, 15, 15))

	// Standard 555 unit box
	const boxSize = 555.0

	walls, err := cornellWalls(boxSize, white, red, green)
	if err != nil {
		return nil, err
	}
	s.Shapes = append(s.Shapes, walls...)

	// Ceiling light, just below the ceiling
	lightRotation, err := transform.New(core.Vec3{}, facingY, core.NewVec3(1, 1, 1))
	if err != nil {
		return nil, err
	}
	s.Shapes = append(s.Shapes, geometry.NewRectangle(213, -332, 343, -227, boxSize-1, lightRotation, light))

	// Tall box at the back, short box at the front
	tall, err := transform.New(core.NewVec3(347.5, 165, 377.5), core.NewVec3(0, 15, 0), core.NewVec3(82.5, 165, 82.5))
	if err != nil {
		return nil, err
	}
	short, err := transform.New(core.NewVec3(212.5, 82.5, 147.5), core.NewVec3(0, -18, 0), core.NewVec3(82.5, 82.5, 82.5))
	if err != nil {
		return nil, err
	}
	s.Shapes = append(s.Shapes, geometry.NewCube(tall, white), geometry.NewCube(short, white))

	return s, nil
}

// cornellWalls builds floor, ceiling, back wall and the two colored side walls
func cornellWalls(size float64, white, red, green material.Material) ([]geometry.Shape, error) {
	horizontal, err := transform.New(core.Vec3{}, facingY, core.NewVec3(1, 1, 1))
	if err != nil {
		return nil, err
	}
	side, err := transform.New(core.Vec3{}, facingX, core.NewVec3(1, 1, 1))
	if err != nil {
		return nil, err
	}

	return []geometry.Shape{
		geometry.NewRectangle(0, -size, size, 0, 0, horizontal, white),    // floor
		geometry.NewRectangle(0, -size, size, 0, size, horizontal, white), // ceiling
		geometry.NewRectangle(0, 0, size, size, size, nil, white),         // back wall
		geometry.NewRectangle(-size, 0, 0, size, 0, side, green),          // x = 0, right of the camera
		geometry.NewRectangle(-size, 0, 0, size, size, side, red),         // x = size, left of the camera
	}, nil
}
