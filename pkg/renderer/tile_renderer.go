package renderer

import (
	"image"
	"math/rand"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/geometry"
	"github.com/df07/go-implicit-raytracer/pkg/integrator"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	world         integrator.World
	camera        *geometry.Camera
	integrator    integrator.Integrator
	width, height int
}

// NewTileRenderer creates a new tile renderer for an image of the given size
func NewTileRenderer(world integrator.World, camera *geometry.Camera, integratorInst integrator.Integrator, width, height int) *TileRenderer {
	return &TileRenderer{
		world:      world,
		camera:     camera,
		integrator: integratorInst,
		width:      width,
		height:     height,
	}
}

// RenderTileBounds brings every pixel inside bounds up to targetSamples samples.
// Pixels outside bounds are never touched, so tiles can render concurrently.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, random *rand.Rand, targetSamples int) RenderStats {
	sampler := core.NewRandomSampler(random)
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			stats.TotalSamples += tr.samplePixel(i, j, &pixelStats[j][i], sampler, targetSamples)
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return stats
}

// samplePixel takes jittered samples until the pixel reaches targetSamples
func (tr *TileRenderer) samplePixel(i, j int, ps *PixelStats, sampler core.Sampler, targetSamples int) int {
	initialSampleCount := ps.SampleCount

	for ps.SampleCount < targetSamples {
		jitter := sampler.Get2D()
		s := (float64(i) + jitter.X) / float64(tr.width)
		t := (float64(j) + jitter.Y) / float64(tr.height)

		ray := tr.camera.GetRay(s, t)
		ps.AddSample(tr.integrator.RayColor(ray, tr.world, sampler))
	}

	return ps.SampleCount - initialSampleCount
}
