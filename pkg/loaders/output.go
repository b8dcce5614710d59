package loaders

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrjoshuak/go-openexr/exr"

	"github.com/df07/go-implicit-raytracer/pkg/renderer"
)

// SaveImage writes the framebuffer in the format named by the file extension:
// .png (gamma 2, clamped) or .exr (linear)
func SaveImage(path string, fb *renderer.Framebuffer) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return SavePNG(path, fb)
	case ".exr":
		return SaveEXR(path, fb)
	default:
		return fmt.Errorf("%w: image format %q", ErrUnknownType, filepath.Ext(path))
	}
}

// SavePNG writes an 8-bit, gamma corrected PNG
func SavePNG(path string, fb *renderer.Framebuffer) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, fb.ToRGBA()); err != nil {
		return fmt.Errorf("failed to encode PNG %s: %w", path, err)
	}
	return file.Close()
}

// SaveEXR writes the linear radiance as a half-float OpenEXR image
func SaveEXR(path string, fb *renderer.Framebuffer) error {
	img := exr.NewRGBAImage(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.At(x, y)
			img.SetRGBA(x, y, float32(c.X), float32(c.Y), float32(c.Z), 1)
		}
	}

	if err := exr.EncodeFile(path, img); err != nil {
		return fmt.Errorf("failed to encode EXR %s: %w", path, err)
	}
	return nil
}
