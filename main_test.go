package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/scene"
)

const tinySceneJSON = `{
	"background": [0.2, 0.2, 0.2],
	"camera": {"position": [0, 0, 4], "look_at": [0, 0, 0]},
	"materials": {"grey": {"type": "lambertian", "albedo": [0.5, 0.5, 0.5]}},
	"shapes": [{"type": "sphere", "radius": 1, "material": "grey"}],
	"render": {"width": 6, "height": 4, "samples_per_pixel": 2, "max_depth": 2}
}`

func TestCreateScene(t *testing.T) {
	scenePath := filepath.Join(t.TempDir(), "tiny.json")
	if err := os.WriteFile(scenePath, []byte(tinySceneJSON), 0o644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}

	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		{"default scene", "default", false},
		{"cornell scene", "cornell", false},
		{"implicit scene", "implicit", false},
		{"textures scene", "textures", false},
		{"scene file", scenePath, false},

		{"unknown scene", "nonexistent", true},
		{"missing scene file", "scenes/nonexistent.json", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := createScene(tt.sceneType, core.NopLogger{})

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if sc != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s', got %T", tt.sceneType, sc)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if sc.SamplingConfig.Width <= 0 || sc.SamplingConfig.Height <= 0 {
				t.Errorf("Expected positive image size, got %dx%d", sc.SamplingConfig.Width, sc.SamplingConfig.Height)
			}
		})
	}

	if _, err := createScene("nonexistent", core.NopLogger{}); !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestApplyOverrides(t *testing.T) {
	sc, err := createScene("cornell", core.NopLogger{})
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}
	originalHeight := sc.SamplingConfig.Height

	if err := applyOverrides(sc, options{width: 40, spp: 3, depth: 7}); err != nil {
		t.Fatalf("applyOverrides failed: %v", err)
	}

	config := sc.SamplingConfig
	if config.Width != 40 || config.Height != originalHeight || config.SamplesPerPixel != 3 || config.MaxDepth != 7 {
		t.Errorf("Unexpected sampling config %+v", config)
	}
	if got := sc.Camera.Config().AspectRatio; got != 40/float64(originalHeight) {
		t.Errorf("Expected camera aspect %f, got %f", 40/float64(originalHeight), got)
	}

	if err := applyOverrides(sc, options{depth: sceneDepth}); err != nil {
		t.Fatalf("applyOverrides failed: %v", err)
	}
	if sc.SamplingConfig.MaxDepth != 7 {
		t.Errorf("Expected depth -1 to keep MaxDepth 7, got %d", sc.SamplingConfig.MaxDepth)
	}
	if err := applyOverrides(sc, options{depth: 0}); err != nil {
		t.Fatalf("applyOverrides failed: %v", err)
	}
	if sc.SamplingConfig.MaxDepth != 0 {
		t.Errorf("Expected depth 0 override, got %d", sc.SamplingConfig.MaxDepth)
	}

	for _, opts := range []options{{spp: -1, depth: sceneDepth}, {depth: -2}} {
		if err := applyOverrides(sc, opts); err == nil {
			t.Errorf("Expected error for negative option %+v", opts)
		}
	}
}

func TestRun_RendersImage(t *testing.T) {
	formats := []string{"png", "exr"}

	for _, format := range formats {
		t.Run(format, func(t *testing.T) {
			outDir := t.TempDir()
			args := []string{
				"-scene", "cornell", "-width", "8", "-height", "8", "-spp", "2",
				"-depth", "2", "-passes", "2", "-workers", "2", "-format", format, "-out", outDir,
			}

			if err := run(args, &bytes.Buffer{}, core.NopLogger{}); err != nil {
				t.Fatalf("run failed: %v", err)
			}

			matches, err := filepath.Glob(filepath.Join(outDir, "cornell", "render_*."+format))
			if err != nil {
				t.Fatalf("Glob failed: %v", err)
			}
			if len(matches) != 1 {
				t.Fatalf("Expected one %s output, got %v", format, matches)
			}
		})
	}
}

func TestRun_SceneFile(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "tiny.json")
	if err := os.WriteFile(scenePath, []byte(tinySceneJSON), 0o644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}

	outDir := filepath.Join(dir, "out")
	if err := run([]string{"-scene", scenePath, "-out", outDir}, &bytes.Buffer{}, core.NopLogger{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(outDir, "tiny", "render_*.png"))
	if len(matches) != 1 {
		t.Errorf("Expected one PNG output, got %v", matches)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"Unknown format", []string{"-format", "tiff", "-out", t.TempDir()}},
		{"Unknown scene", []string{"-scene", "nonexistent", "-out", t.TempDir()}},
		{"Unknown flag", []string{"-bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(tt.args, &bytes.Buffer{}, core.NopLogger{}); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestRun_Help(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"-help"}, &out, core.NopLogger{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, want := range []string{"-scene", "cornell", "implicit"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected help to mention %q", want)
		}
	}
}
