package renderer

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/geometry"
	"github.com/df07/go-implicit-raytracer/pkg/integrator"
	"github.com/df07/go-implicit-raytracer/pkg/material"
	"github.com/df07/go-implicit-raytracer/pkg/scene"
	"github.com/df07/go-implicit-raytracer/pkg/transform"
)

func newTestCamera(t *testing.T, config geometry.CameraConfig) *geometry.Camera {
	t.Helper()
	camera, err := geometry.NewCamera(config)
	if err != nil {
		t.Fatalf("Unexpected camera error: %v", err)
	}
	return camera
}

// emptyScene has no shapes, so every ray sees the background
func emptyScene(t *testing.T, width, height, spp int) *scene.Scene {
	return &scene.Scene{
		Camera: newTestCamera(t, geometry.CameraConfig{
			Position:    core.NewVec3(0, 0, 0),
			Direction:   core.NewVec3(0, 0, -1),
			Up:          core.NewVec3(0, 1, 0),
			VFov:        45,
			AspectRatio: float64(width) / float64(height),
		}),
		Background: core.NewVec3(0.5, 0.7, 1.0),
		SamplingConfig: scene.SamplingConfig{
			Width:           width,
			Height:          height,
			SamplesPerPixel: spp,
			MaxDepth:        5,
		},
	}
}

// litSphereScene looks straight down at a grey sphere under an emitting ceiling
func litSphereScene(t *testing.T) *scene.Scene {
	ceiling, err := transform.New(core.NewVec3(0, 3, 0), core.NewVec3(90, 0, 0), core.NewVec3(1, 1, 1))
	if err != nil {
		t.Fatalf("Unexpected transform error: %v", err)
	}

	return &scene.Scene{
		Camera: newTestCamera(t, geometry.CameraConfig{
			Position:  core.NewVec3(0, 2, 0),
			Direction: core.NewVec3(0, -1, 0),
			Up:        core.NewVec3(0, 0, -1),
			VFov:      1,
		}),
		Shapes: []geometry.Shape{
			geometry.NewSphere(1, nil, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
			geometry.NewPlane(ceiling, material.NewDiffuseLight(core.NewVec3(4, 4, 4))),
		},
		SamplingConfig: scene.SamplingConfig{
			Width:           3,
			Height:          3,
			SamplesPerPixel: 1,
			MaxDepth:        1,
		},
	}
}

func newRaytracer(t *testing.T, sc *scene.Scene, config ProgressiveConfig) *ProgressiveRaytracer {
	t.Helper()
	pt := integrator.NewPathTracingIntegrator(integrator.Config{MaxDepth: sc.SamplingConfig.MaxDepth})
	pr, err := NewProgressiveRaytracer(sc, pt, config, core.NopLogger{})
	if err != nil {
		t.Fatalf("NewProgressiveRaytracer() error: %v", err)
	}
	return pr
}

func TestProgressiveSampleCalculation(t *testing.T) {
	tests := []struct {
		name     string
		spp      int
		passes   int
		expected []int
	}{
		{"Even split", 8, 4, []int{2, 4, 6, 8}},
		{"Uneven split", 10, 4, []int{2, 5, 7, 10}},
		{"Single pass", 5, 1, []int{5}},
		{"First pass at least one sample", 3, 3, []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := &ProgressiveRaytracer{
				samplesPerPixel: tt.spp,
				config:          ProgressiveConfig{Passes: tt.passes},
			}
			for i, want := range tt.expected {
				if got := pr.getSamplesForPass(i + 1); got != want {
					t.Errorf("Pass %d: expected %d samples, got %d", i+1, want, got)
				}
			}
		})
	}
}

func TestNewProgressiveRaytracer_Validation(t *testing.T) {
	pt := integrator.NewPathTracingIntegrator(integrator.Config{MaxDepth: 1})

	noCamera := emptyScene(t, 4, 4, 1)
	noCamera.Camera = nil
	if _, err := NewProgressiveRaytracer(noCamera, pt, DefaultProgressiveConfig(), core.NopLogger{}); !errors.Is(err, scene.ErrNoCamera) {
		t.Errorf("Expected ErrNoCamera, got %v", err)
	}

	if _, err := NewProgressiveRaytracer(emptyScene(t, 0, 4, 1), pt, DefaultProgressiveConfig(), core.NopLogger{}); err == nil {
		t.Error("Expected error for zero width")
	}

	if _, err := NewProgressiveRaytracer(emptyScene(t, 4, 4, 0), pt, DefaultProgressiveConfig(), core.NopLogger{}); err == nil {
		t.Error("Expected error for zero samples per pixel")
	}
}

func TestRender_EmptySceneIsBackground(t *testing.T) {
	sc := emptyScene(t, 7, 5, 3)
	pr := newRaytracer(t, sc, ProgressiveConfig{TileSize: 4, Passes: 2, NumWorkers: 2, Seed: 1})

	fb, stats, err := pr.Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if fb.Width != 7 || fb.Height != 5 || len(fb.Pixels) != 35 {
		t.Fatalf("Expected 7x5 framebuffer, got %dx%d with %d pixels", fb.Width, fb.Height, len(fb.Pixels))
	}
	for i, pixel := range fb.Pixels {
		if pixel != sc.Background {
			t.Fatalf("Pixel %d: expected %v, got %v", i, sc.Background, pixel)
		}
	}

	if stats.TotalPixels != 35 || stats.TotalSamples != 35*3 || stats.AverageSamples != 3 || stats.Passes != 2 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestRender_LitSphere(t *testing.T) {
	pr := newRaytracer(t, litSphereScene(t), ProgressiveConfig{TileSize: 2, Passes: 1, NumWorkers: 1, Seed: 42})

	fb, _, err := pr.Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	// Every camera ray lands near the top of the sphere and its single bounce reaches the ceiling
	center := fb.At(1, 1)
	if center.X <= 0 || center.X >= 4 {
		t.Errorf("Expected center radiance strictly between 0 and the emission, got %v", center)
	}
	expected := core.NewVec3(2, 2, 2)
	if !center.Equals(expected, 1e-9) {
		t.Errorf("Expected %v, got %v", expected, center)
	}
}

func TestRender_DeterministicAcrossWorkerCounts(t *testing.T) {
	render := func(workers int) *Framebuffer {
		sc, err := scene.NewCornellScene()
		if err != nil {
			t.Fatalf("NewCornellScene() error: %v", err)
		}
		if err := sc.SetImageSize(16, 16); err != nil {
			t.Fatalf("SetImageSize() error: %v", err)
		}
		sc.SamplingConfig.SamplesPerPixel = 2
		sc.SamplingConfig.MaxDepth = 3

		pr := newRaytracer(t, sc, ProgressiveConfig{TileSize: 5, Passes: 2, NumWorkers: workers, Seed: 7})
		fb, _, err := pr.Render(context.Background(), nil)
		if err != nil {
			t.Fatalf("Render() error: %v", err)
		}
		return fb
	}

	single := render(1)
	parallel := render(4)
	for i := range single.Pixels {
		if single.Pixels[i] != parallel.Pixels[i] {
			t.Fatalf("Pixel %d differs: %v vs %v", i, single.Pixels[i], parallel.Pixels[i])
		}
	}
}

func TestRender_PassCallback(t *testing.T) {
	pr := newRaytracer(t, emptyScene(t, 4, 4, 6), ProgressiveConfig{TileSize: 2, Passes: 3, NumWorkers: 2})

	var passes []int
	var last *Framebuffer
	_, stats, err := pr.Render(context.Background(), func(pass int, fb *Framebuffer) {
		passes = append(passes, pass)
		last = fb
	})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if len(passes) != 3 || passes[0] != 1 || passes[2] != 3 {
		t.Errorf("Expected callbacks for passes 1..3, got %v", passes)
	}
	if last == nil || last.Width != 4 {
		t.Errorf("Expected final framebuffer in callback, got %v", last)
	}
	if stats.TotalSamples != 16*6 {
		t.Errorf("Expected %d samples, got %d", 16*6, stats.TotalSamples)
	}
}

func TestRender_Cancelled(t *testing.T) {
	pr := newRaytracer(t, emptyScene(t, 8, 8, 4), ProgressiveConfig{TileSize: 4, Passes: 4, NumWorkers: 2})

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, _, err := pr.Render(ctx, func(pass int, fb *Framebuffer) {
		calls++
		cancel()
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected rendering to stop after the first pass, got %d callbacks", calls)
	}
}

func TestNewTileGrid(t *testing.T) {
	tiles := NewTileGrid(10, 7, 4, 100)

	if len(tiles) != 6 {
		t.Fatalf("Expected 6 tiles, got %d", len(tiles))
	}
	if tiles[5].Bounds != image.Rect(8, 4, 10, 7) {
		t.Errorf("Expected last tile clipped to image, got %v", tiles[5].Bounds)
	}

	covered := make(map[image.Point]int)
	for _, tile := range tiles {
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				covered[image.Pt(x, y)]++
			}
		}
	}
	if len(covered) != 70 {
		t.Errorf("Expected 70 covered pixels, got %d", len(covered))
	}
	for p, n := range covered {
		if n != 1 {
			t.Errorf("Pixel %v covered %d times", p, n)
		}
	}
}

func TestNewTileGrid_SeedsPerTile(t *testing.T) {
	a := NewTileGrid(8, 8, 4, 5)
	b := NewTileGrid(8, 8, 4, 5)
	for i := range a {
		if a[i].Random.Int63() != b[i].Random.Int63() {
			t.Errorf("Tile %d: expected identical seeds", i)
		}
	}

	if NewTile(0, image.Rect(0, 0, 1, 1), 6).Random.Int63() != NewTileGrid(8, 8, 4, 5)[1].Random.Int63() {
		t.Error("Expected tile 1 to be seeded with seed + 1")
	}
}
