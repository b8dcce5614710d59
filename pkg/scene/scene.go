package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/geometry"
	"github.com/df07/go-implicit-raytracer/pkg/material"
)

// ErrNoCamera is returned when a scene is preprocessed without a camera
var ErrNoCamera = errors.New("scene has no camera")

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *geometry.Camera
	Shapes         []geometry.Shape // Objects in the scene
	Background     core.Vec3        // Color of rays that miss everything
	Sky            *SkyGradient     // Replaces Background when set
	SamplingConfig SamplingConfig

	BVH       *geometry.BVH    // Acceleration structure over the bounded shapes
	unbounded []geometry.Shape // Shapes without a bounding box, tested linearly
}

// SkyGradient blends from Bottom to Top with the height of the ray direction
type SkyGradient struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width                     int // Image width
	Height                    int // Image height
	SamplesPerPixel           int // Number of rays per pixel
	MaxDepth                  int // Maximum number of bounces after the camera ray
	RussianRouletteMinBounces int // Bounces before Russian roulette can end a path, 0 disables it
	Passes                    int // Preferred number of progressive passes, 0 leaves it to the renderer
}

// DefaultSamplingConfig returns the configuration used when a scene does not set one
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 64,
		MaxDepth:        10,
	}
}

// Preprocess prepares the scene for rendering: unbounded shapes are split off and the
// rest go into a BVH. The scene must not be modified afterwards.
func (s *Scene) Preprocess() error {
	if s.Camera == nil {
		return ErrNoCamera
	}

	bounded, unbounded := geometry.SplitBounded(s.Shapes)
	s.BVH = geometry.NewBVH(bounded)
	s.unbounded = unbounded
	return nil
}

// Hit returns the closest intersection in the scene. Preprocess must have been called.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	closest, ok := s.BVH.Hit(ray, tMin, tMax)
	if ok {
		tMax = closest.T
	}

	for _, shape := range s.unbounded {
		if hit, hitOK := shape.Hit(ray, tMin, tMax); hitOK {
			closest = hit
			tMax = hit.T
			ok = true
		}
	}
	return closest, ok
}

// BackgroundColor returns the radiance of a ray that escapes the scene
func (s *Scene) BackgroundColor(ray core.Ray) core.Vec3 {
	if s.Sky == nil {
		return s.Background
	}
	t := 0.5 * (ray.Direction.Normalize().Y + 1.0)
	return s.Sky.Bottom.Multiply(1.0 - t).Add(s.Sky.Top.Multiply(t))
}

// SetImageSize changes the output resolution and rebuilds the camera for the new aspect ratio
func (s *Scene) SetImageSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = height

	if s.Camera == nil {
		return nil
	}
	config := s.Camera.Config()
	config.AspectRatio = float64(width) / float64(height)
	camera, err := geometry.NewCamera(config)
	if err != nil {
		return err
	}
	s.Camera = camera
	return nil
}

// Stats describes the scene structure for logging
func (s *Scene) Stats() string {
	stats := s.BVH.Stats()
	return fmt.Sprintf("%d shapes (%d unbounded), BVH: %d nodes, %d leaves, max depth %d, avg leaf depth %.1f",
		len(s.Shapes), len(s.unbounded), stats.TotalNodes, stats.LeafNodes, stats.MaxDepth, stats.AvgDepth)
}
