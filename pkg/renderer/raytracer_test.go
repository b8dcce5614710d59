package renderer

import (
	"image/color"
	"testing"

	"github.com/df07/go-implicit-raytracer/pkg/core"
)

func TestFramebuffer_RowMajorTopLeft(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Set(2, 1, core.NewVec3(1, 2, 3))

	if got := fb.Pixels[1*3+2]; got != core.NewVec3(1, 2, 3) {
		t.Errorf("Expected pixel stored at index 5, got %v", got)
	}
	if got := fb.At(2, 1); got != core.NewVec3(1, 2, 3) {
		t.Errorf("Expected %v, got %v", core.NewVec3(1, 2, 3), got)
	}
}

func TestVec3ToColor(t *testing.T) {
	tests := []struct {
		name     string
		input    core.Vec3
		expected color.RGBA
	}{
		{"Black", core.Vec3{}, color.RGBA{0, 0, 0, 255}},
		{"White", core.NewVec3(1, 1, 1), color.RGBA{255, 255, 255, 255}},
		{"Quarter is gamma corrected to half", core.NewVec3(0.25, 0.25, 0.25), color.RGBA{127, 127, 127, 255}},
		{"Overexposed clamps", core.NewVec3(4, 0.5, -1), color.RGBA{255, 181, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := vec3ToColor(tt.input); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestFramebuffer_ToRGBA(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.Set(1, 0, core.NewVec3(1, 1, 1))

	img := fb.ToRGBA()
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Fatalf("Expected 2x1 image, got %v", img.Bounds())
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("Expected black at (0,0), got %v", got)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("Expected white at (1,0), got %v", got)
	}
}
