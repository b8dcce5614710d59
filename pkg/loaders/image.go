package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"path/filepath"
	"strings"

	"github.com/mrjoshuak/go-openexr/exr"
	"golang.org/x/sync/errgroup"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/material"
)

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// LoadImage loads a PNG, JPEG or OpenEXR image into a Vec3 color array, row 0 at the top.
// 8-bit formats map to [0, 1]; EXR keeps its linear float values.
func LoadImage(filename string) (*ImageData, error) {
	if strings.EqualFold(filepath.Ext(filename), ".exr") {
		return loadEXR(filename)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{Width: width, Height: height, Pixels: pixels}, nil
}

func loadEXR(filename string) (*ImageData, error) {
	img, err := exr.DecodeFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to decode EXR image %s: %w", filename, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.RGBA(x+bounds.Min.X, y+bounds.Min.Y)
			pixels[y*width+x] = core.NewVec3(float64(r), float64(g), float64(b))
		}
	}

	return &ImageData{Width: width, Height: height, Pixels: pixels}, nil
}

// loadTextureImages decodes every image texture the scene references. Each distinct
// path is decoded once, all of them concurrently.
func loadTextureImages(file sceneFile, baseDir string) (map[string]*material.ImageTexture, error) {
	var paths []string
	seen := make(map[string]bool)
	collect := func(spec *textureSpec) {
		walkTextures(spec, func(t *textureSpec) {
			if isImageTag(t.Type) && !seen[t.Path] {
				seen[t.Path] = true
				paths = append(paths, t.Path)
			}
		})
	}
	for _, spec := range file.Materials {
		collect(spec.Albedo)
		collect(spec.Emit)
	}

	textures := make([]*material.ImageTexture, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			if path == "" {
				return fmt.Errorf("image texture needs a path")
			}
			resolved := path
			if !filepath.IsAbs(resolved) {
				resolved = filepath.Join(baseDir, resolved)
			}
			data, err := LoadImage(resolved)
			if err != nil {
				return fmt.Errorf("image texture %q: %w", path, err)
			}
			textures[i] = material.NewImageTexture(data.Width, data.Height, data.Pixels)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	images := make(map[string]*material.ImageTexture, len(paths))
	for i, path := range paths {
		images[path] = textures[i]
	}
	return images, nil
}

// walkTextures calls visit for spec and every texture nested inside it
func walkTextures(spec *textureSpec, visit func(*textureSpec)) {
	if spec == nil {
		return
	}
	visit(spec)
	walkTextures(spec.Odd, visit)
	walkTextures(spec.Even, visit)
}
