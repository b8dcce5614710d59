package renderer

import (
	"time"

	"github.com/df07/go-implicit-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of samples taken
	AverageSamples float64       // Average samples per pixel
	Passes         int           // Passes completed
	Duration       time.Duration // Wall time spent rendering
}

// PixelStats tracks the running estimate for a single pixel
type PixelStats struct {
	Mean        core.Vec3 // Running average of the samples
	SampleCount int       // Number of samples taken
}

// AddSample folds a new sample into the running average. Using an incremental mean
// keeps a constant signal exactly constant.
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.SampleCount++
	ps.Mean = ps.Mean.Add(color.Subtract(ps.Mean).Multiply(1.0 / float64(ps.SampleCount)))
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	return ps.Mean
}

// CalculateAverageLuminance returns the mean luminance of a framebuffer
func CalculateAverageLuminance(fb *Framebuffer) float64 {
	if len(fb.Pixels) == 0 {
		return 0
	}
	total := 0.0
	for _, pixel := range fb.Pixels {
		total += pixel.Luminance()
	}
	return total / float64(len(fb.Pixels))
}
