package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/integrator"
	"github.com/df07/go-implicit-raytracer/pkg/loaders"
	"github.com/df07/go-implicit-raytracer/pkg/renderer"
	"github.com/df07/go-implicit-raytracer/pkg/scene"
)

// options holds the parsed command line. Zero values keep the scene's own settings.
type options struct {
	sceneName string
	width     int
	height    int
	spp       int
	depth     int
	passes    int
	workers   int
	seed      int64
	format    string
	outDir    string
	list      bool
	help      bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stdout io.Writer) (options, *flag.FlagSet, error) {
	var opts options
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stdout)

	fs.StringVar(&opts.sceneName, "scene", "default", "Built-in scene name or path to a .json, .json.gz or .json.zst scene file")
	fs.IntVar(&opts.width, "width", 0, "Image width (0 = scene setting)")
	fs.IntVar(&opts.height, "height", 0, "Image height (0 = scene setting)")
	fs.IntVar(&opts.spp, "spp", 0, "Samples per pixel (0 = scene setting)")
	fs.IntVar(&opts.depth, "depth", sceneDepth, "Maximum bounces per path, 0 shows only emitters seen directly (-1 = scene setting)")
	fs.IntVar(&opts.passes, "passes", 0, "Progressive passes (0 = scene setting or renderer default)")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	fs.Int64Var(&opts.seed, "seed", renderer.DefaultProgressiveConfig().Seed, "Base random seed")
	fs.StringVar(&opts.format, "format", "png", "Output format: png or exr")
	fs.StringVar(&opts.outDir, "out", "output", "Output directory")
	fs.BoolVar(&opts.list, "list", false, "List available scenes")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	err := fs.Parse(args)
	return opts, fs, err
}

func run(args []string, stdout io.Writer, logger core.Logger) error {
	opts, fs, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}

	if opts.help {
		printHelp(stdout, fs)
		return nil
	}
	if opts.list {
		return listScenes(stdout)
	}

	if opts.format != "png" && opts.format != "exr" {
		return fmt.Errorf("unsupported format %q: use png or exr", opts.format)
	}

	sc, err := createScene(opts.sceneName, logger)
	if err != nil {
		return err
	}
	if err := applyOverrides(sc, opts); err != nil {
		return err
	}

	config := renderer.DefaultProgressiveConfig()
	config.NumWorkers = opts.workers
	config.Seed = opts.seed
	switch {
	case opts.passes > 0:
		config.Passes = opts.passes
	case sc.SamplingConfig.Passes > 0:
		config.Passes = sc.SamplingConfig.Passes
	}

	pt := integrator.NewPathTracingIntegrator(integrator.Config{
		MaxDepth:                  sc.SamplingConfig.MaxDepth,
		RussianRouletteMinBounces: sc.SamplingConfig.RussianRouletteMinBounces,
	})
	pr, err := renderer.NewProgressiveRaytracer(sc, pt, config, logger)
	if err != nil {
		return err
	}
	logger.Printf("Scene: %s\n", sc.Stats())

	outputDir := filepath.Join(opts.outDir, scene.SceneID(opts.sceneName))
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.%s", timestamp, opts.format))

	// Every pass overwrites the same file, so an interrupted render still leaves an image
	var saveErr error
	fb, stats, err := pr.Render(context.Background(), func(pass int, fb *renderer.Framebuffer) {
		if err := loaders.SaveImage(filename, fb); err != nil && saveErr == nil {
			saveErr = err
		}
	})
	if err != nil {
		return err
	}
	if saveErr != nil {
		return saveErr
	}

	logger.Printf("Render completed in %v\n", stats.Duration)
	logger.Printf("Samples per pixel: %.1f over %d passes, average luminance %.3f\n",
		stats.AverageSamples, stats.Passes, renderer.CalculateAverageLuminance(fb))
	logger.Printf("Render saved as %s\n", filename)
	return nil
}

// createScene builds a built-in scene or loads a scene file
func createScene(name string, logger core.Logger) (*scene.Scene, error) {
	if name == "" {
		return nil, errors.New("scene name cannot be empty")
	}
	if scene.IsSceneFile(name) {
		return loaders.LoadScene(name, logger)
	}
	return scene.NewBuiltin(name)
}

// sceneDepth as the -depth value keeps the scene's own MaxDepth
const sceneDepth = -1

// applyOverrides applies command line settings on top of the scene's own
func applyOverrides(sc *scene.Scene, opts options) error {
	if opts.width < 0 || opts.height < 0 || opts.spp < 0 || opts.depth < sceneDepth || opts.passes < 0 {
		return errors.New("numeric options cannot be negative")
	}

	if opts.width > 0 || opts.height > 0 {
		width := sc.SamplingConfig.Width
		height := sc.SamplingConfig.Height
		if opts.width > 0 {
			width = opts.width
		}
		if opts.height > 0 {
			height = opts.height
		}
		if err := sc.SetImageSize(width, height); err != nil {
			return err
		}
	}
	if opts.spp > 0 {
		sc.SamplingConfig.SamplesPerPixel = opts.spp
	}
	if opts.depth != sceneDepth {
		sc.SamplingConfig.MaxDepth = opts.depth
	}
	return nil
}

func printHelp(stdout io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(stdout, "Implicit Surface Raytracer")
	fmt.Fprintln(stdout, "Usage: raytracer [options]")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Built-in scenes:")
	for _, info := range scene.ListBuiltins() {
		fmt.Fprintf(stdout, "  %-10s %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Output will be saved to <out>/<scene>/render_<timestamp>.<format>")
}

func listScenes(stdout io.Writer) error {
	for _, info := range scene.ListBuiltins() {
		fmt.Fprintf(stdout, "%-10s %s\n", info.ID, info.DisplayName)
	}
	files, err := scene.ListSceneFiles("scenes")
	if err != nil {
		return err
	}
	for _, info := range files {
		fmt.Fprintf(stdout, "%-10s %s (%s)\n", info.FilePath, info.DisplayName, info.Type)
	}
	return nil
}
