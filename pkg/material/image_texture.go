package material

import (
	"github.com/df07/go-implicit-raytracer/pkg/core"
)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], row 0 is the top of the image
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering.
// UVs outside [0, 1] are clamped to the edge.
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height {
		return core.Vec3{}
	}

	u := clamp01(uv.X)
	v := 1.0 - clamp01(uv.Y) // V=0 is the bottom row

	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)

	return t.Pixels[y*t.Width+x]
}

func clamp01(x float64) float64 {
	return max(0, min(1, x))
}

// NewUVDebugTexture creates an image whose red and green channels show u and v
func NewUVDebugTexture(width, height int) *ImageTexture {
	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			u := float64(x) / float64(max(width-1, 1))
			v := 1 - float64(y)/float64(max(height-1, 1)) // Row 0 is v = 1
			pixels[y*width+x] = core.NewVec3(u, v, 0.0)
		}
	}
	return NewImageTexture(width, height, pixels)
}

// NewGradientTexture creates a vertical gradient from top to bottom
func NewGradientTexture(width, height int, top, bottom core.Vec3) *ImageTexture {
	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		t := float64(y) / float64(max(height-1, 1))
		color := top.Multiply(1.0 - t).Add(bottom.Multiply(t))
		for x := 0; x < width; x++ {
			pixels[y*width+x] = color
		}
	}
	return NewImageTexture(width, height, pixels)
}
