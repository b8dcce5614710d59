package renderer

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/integrator"
	"github.com/df07/go-implicit-raytracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	TileSize   int   // Size of each tile in pixels
	Passes     int   // Number of passes the samples are spread over
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed; tile i uses Seed + i
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:   32,
		Passes:     4,
		NumWorkers: 0,
		Seed:       42,
	}
}

// PassCallback receives the image after each completed pass. The framebuffer is a
// snapshot owned by the callback.
type PassCallback func(pass int, fb *Framebuffer)

// ProgressiveRaytracer renders a scene in passes of increasing sample count
type ProgressiveRaytracer struct {
	scene           *scene.Scene
	width, height   int
	samplesPerPixel int
	config          ProgressiveConfig
	tiles           []*Tile
	pixelStats      [][]PixelStats // Shared pixel statistics array (global image coordinates)
	tileRenderer    *TileRenderer
	logger          core.Logger
}

// NewProgressiveRaytracer prepares a scene for rendering. Image size and sample count
// come from the scene's SamplingConfig.
func NewProgressiveRaytracer(sc *scene.Scene, integratorInst integrator.Integrator, config ProgressiveConfig, logger core.Logger) (*ProgressiveRaytracer, error) {
	sampling := sc.SamplingConfig
	if sampling.Width <= 0 || sampling.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", sampling.Width, sampling.Height)
	}
	if sampling.SamplesPerPixel <= 0 {
		return nil, fmt.Errorf("invalid samples per pixel %d", sampling.SamplesPerPixel)
	}
	if err := sc.Preprocess(); err != nil {
		return nil, fmt.Errorf("preprocess scene: %w", err)
	}

	if config.TileSize <= 0 {
		config.TileSize = DefaultProgressiveConfig().TileSize
	}
	config.Passes = max(1, min(config.Passes, sampling.SamplesPerPixel))

	pixelStats := make([][]PixelStats, sampling.Height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, sampling.Width)
	}

	return &ProgressiveRaytracer{
		scene:           sc,
		width:           sampling.Width,
		height:          sampling.Height,
		samplesPerPixel: sampling.SamplesPerPixel,
		config:          config,
		tiles:           NewTileGrid(sampling.Width, sampling.Height, config.TileSize, config.Seed),
		pixelStats:      pixelStats,
		tileRenderer:    NewTileRenderer(sc, sc.Camera, integratorInst, sampling.Width, sampling.Height),
		logger:          logger,
	}, nil
}

// getSamplesForPass returns the cumulative samples per pixel after the given pass
func (pr *ProgressiveRaytracer) getSamplesForPass(passNumber int) int {
	if passNumber >= pr.config.Passes {
		return pr.samplesPerPixel
	}
	return max(1, pr.samplesPerPixel*passNumber/pr.config.Passes)
}

// Render runs every pass and returns the final image. The callback, if non-nil, is
// called after each pass. Cancellation is observed between passes and between tiles;
// a cancelled render returns ctx.Err().
func (pr *ProgressiveRaytracer) Render(ctx context.Context, callback PassCallback) (*Framebuffer, RenderStats, error) {
	start := time.Now()

	workerPool := NewWorkerPool(pr.tileRenderer, pr.config.NumWorkers, len(pr.tiles))
	workerPool.Start()
	defer workerPool.Stop()

	pr.logger.Printf("Starting progressive rendering: %dx%d, %d samples in %d passes, %d workers\n",
		pr.width, pr.height, pr.samplesPerPixel, pr.config.Passes, workerPool.GetNumWorkers())

	var fb *Framebuffer
	var stats RenderStats
	for pass := 1; pass <= pr.config.Passes; pass++ {
		if err := ctx.Err(); err != nil {
			pr.logger.Printf("Rendering cancelled before pass %d\n", pass)
			return nil, RenderStats{}, err
		}

		passStart := time.Now()
		if err := pr.renderPass(ctx, workerPool, pass); err != nil {
			return nil, RenderStats{}, err
		}

		fb, stats = pr.assembleCurrentImage()
		stats.Passes = pass
		stats.Duration = time.Since(start)

		pr.logger.Printf("Pass %d completed in %v (%.0f samples/pixel)\n", pass, time.Since(passStart), stats.AverageSamples)

		if callback != nil {
			callback(pass, fb)
		}
	}

	return fb, stats, nil
}

// renderPass brings every tile up to the pass target. Once a task is submitted its
// result is always collected, even after cancellation, so no worker is left writing.
func (pr *ProgressiveRaytracer) renderPass(ctx context.Context, workerPool *WorkerPool, passNumber int) error {
	targetSamples := pr.getSamplesForPass(passNumber)

	submitted := 0
	for taskID, tile := range pr.tiles {
		if ctx.Err() != nil {
			break
		}
		workerPool.SubmitTask(TileTask{
			Tile:          tile,
			PassNumber:    passNumber,
			TargetSamples: targetSamples,
			TaskID:        taskID,
			PixelStats:    pr.pixelStats,
		})
		submitted++
	}

	for i := 0; i < submitted; i++ {
		result, ok := workerPool.GetResult()
		if !ok {
			return fmt.Errorf("worker pool closed unexpectedly")
		}
		pr.tiles[result.TaskID].PassesCompleted++
	}

	if submitted < len(pr.tiles) {
		pr.logger.Printf("Rendering cancelled during pass %d\n", passNumber)
		return ctx.Err()
	}
	return nil
}

// assembleCurrentImage snapshots the pixel estimates and gathers statistics
func (pr *ProgressiveRaytracer) assembleCurrentImage() (*Framebuffer, RenderStats) {
	fb := NewFramebuffer(pr.width, pr.height)
	stats := RenderStats{TotalPixels: pr.width * pr.height}

	for y := 0; y < pr.height; y++ {
		for x := 0; x < pr.width; x++ {
			pixel := &pr.pixelStats[y][x]
			fb.Set(x, y, pixel.GetColor())
			stats.TotalSamples += pixel.SampleCount
		}
	}

	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	return fb, stats
}

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID              int             // Unique tile identifier
	Bounds          image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	PassesCompleted int             // Number of passes completed for this tile
	Random          *rand.Rand      // Tile-specific random generator for deterministic results
}

// NewTile creates a new tile whose random generator is seeded with seed
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
		Random: rand.New(rand.NewSource(seed)),
	}
}

// NewTileGrid creates a grid of tiles covering the entire image. Tile i is seeded
// with seed + i.
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), seed+int64(tileID)))
			tileID++
		}
	}

	return tiles
}
