package loaders

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/scene"
)

var (
	// ErrUnknownType is returned for a shape, material, texture or field type tag
	// that has no constructor
	ErrUnknownType = errors.New("unknown type")
	// ErrUnknownMaterial is returned when a shape names a material that is not defined
	ErrUnknownMaterial = errors.New("unknown material")
)

// sceneFile is the top-level JSON document
type sceneFile struct {
	Background *vec3                   `json:"background"`
	Sky        *skySpec                `json:"sky"`
	Camera     *cameraSpec             `json:"camera"`
	Materials  map[string]materialSpec `json:"materials"`
	Shapes     []shapeSpec             `json:"shapes"`
	Render     *renderSpec             `json:"render"`
}

type skySpec struct {
	Top    vec3 `json:"top"`
	Bottom vec3 `json:"bottom"`
}

type cameraSpec struct {
	Position    vec3    `json:"position"`
	Direction   *vec3   `json:"direction"`
	LookAt      *vec3   `json:"look_at"`
	Up          *vec3   `json:"up"`
	Fov         float64 `json:"fov"`
	FocalLength float64 `json:"focal_length"`
}

// renderSpec holds the optional sampling settings. MaxDepth and the roulette threshold
// are pointers because 0 is a meaningful value for both.
type renderSpec struct {
	Width                     int  `json:"width"`
	Height                    int  `json:"height"`
	SamplesPerPixel           int  `json:"samples_per_pixel"`
	MaxDepth                  *int `json:"max_depth"`
	RussianRouletteMinBounces *int `json:"russian_roulette_min_bounces"`
	Passes                    int  `json:"passes"`
}

type transformSpec struct {
	Translate vec3  `json:"translate"`
	Rotate    vec3  `json:"rotate"`
	Scale     *vec3 `json:"scale"`
}

type materialSpec struct {
	Type              string       `json:"type"`
	Albedo            *textureSpec `json:"albedo"`
	Fuzz              float64      `json:"fuzz"`
	IOR               float64      `json:"ior"`
	IndexOfRefraction float64      `json:"index_of_refraction"`
	Emit              *textureSpec `json:"emit"`
}

// ior returns the refractive index under either of its keys
func (m materialSpec) ior() float64 {
	if m.IOR != 0 {
		return m.IOR
	}
	return m.IndexOfRefraction
}

type shapeSpec struct {
	Type          string         `json:"type"`
	Name          string         `json:"name"`
	Material      string         `json:"material"`
	Transform     *transformSpec `json:"transform"`
	Radius        float64        `json:"radius"`
	TubeRadius    *float64       `json:"tube_radius"`
	InverseNormal bool           `json:"inverse_normal"`
	Step          float64        `json:"step"`
	X0            float64        `json:"x0"`
	Y0            float64        `json:"y0"`
	X1            float64        `json:"x1"`
	Y1            float64        `json:"y1"`
	K             float64        `json:"k"`
	Field         *fieldSpec     `json:"field"`
	Shape         *fieldSpec     `json:"shape"` // older name for field
}

type fieldSpec struct {
	Type         string  `json:"type"`
	Radius       float64 `json:"radius"`
	TubeRadius   float64 `json:"tube_radius"`
	A            float64 `json:"a"`
	B            float64 `json:"b"`
	C            float64 `json:"c"`
	D            float64 `json:"d"`
	SphereRadius float64 `json:"sphere_radius"`
}

// textureSpec is either a typed texture object or a bare color. Multipliers stays raw
// until the type is known: a 3D checker takes a vector, a UV checker takes [u, v].
type textureSpec struct {
	Type          string          `json:"type"`
	Color         vec3            `json:"color"`
	Odd           *textureSpec    `json:"odd"`
	Even          *textureSpec    `json:"even"`
	Multipliers   json.RawMessage `json:"multipliers"`
	Scale         float64         `json:"scale"`
	MultU         float64         `json:"mult_u"`
	MultV         float64         `json:"mult_v"`
	Path          string          `json:"path"`
	ImageFilename string          `json:"image_filename"`
	Seed          int64           `json:"seed"`
	Width         int             `json:"width"`
	Height        int             `json:"height"`
	Top           vec3            `json:"top"`
	Bottom        vec3            `json:"bottom"`
}

// UnmarshalJSON accepts a texture object with a "type" tag, or a color in any form
// vec3 accepts, which becomes a solid color
func (t *textureSpec) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var probe struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return err
		}
		if probe.Type != "" {
			type plain textureSpec
			decoder := json.NewDecoder(bytes.NewReader(trimmed))
			decoder.DisallowUnknownFields()
			if err := decoder.Decode((*plain)(t)); err != nil {
				return fmt.Errorf("texture %q: %w", probe.Type, err)
			}
			if t.Path == "" {
				t.Path = t.ImageFilename
			}
			return nil
		}
	}

	var color vec3
	if err := json.Unmarshal(trimmed, &color); err != nil {
		return fmt.Errorf("texture: %w", err)
	}
	*t = textureSpec{Type: "solid_color", Color: color}
	return nil
}

// vec3 decodes from [x, y, z] or {"x": .., "y": .., "z": ..}
type vec3 core.Vec3

func (v *vec3) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var components []float64
		if err := json.Unmarshal(trimmed, &components); err != nil {
			return err
		}
		if len(components) != 3 {
			return fmt.Errorf("vector needs 3 components, got %d", len(components))
		}
		*v = vec3{X: components[0], Y: components[1], Z: components[2]}
		return nil
	}

	var object struct {
		X, Y, Z *float64
	}
	if err := json.Unmarshal(trimmed, &object); err != nil {
		return err
	}
	if object.X == nil || object.Y == nil || object.Z == nil {
		return fmt.Errorf("vector object needs x, y and z: %s", trimmed)
	}
	*v = vec3{X: *object.X, Y: *object.Y, Z: *object.Z}
	return nil
}

func (v vec3) vec() core.Vec3 {
	return core.Vec3(v)
}

// normalizeTag makes type tags case-insensitive and ignores underscores
func normalizeTag(tag string) string {
	return strings.ToLower(strings.ReplaceAll(tag, "_", ""))
}

func isImageTag(tag string) bool {
	switch normalizeTag(tag) {
	case "image", "imagetexture":
		return true
	}
	return false
}

// LoadScene reads a scene from a .json, .json.gz or .json.zst file. Relative image
// texture paths resolve against the file's directory.
func LoadScene(path string, logger core.Logger) (*scene.Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".gz"):
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream %s: %w", path, err)
		}
		defer gz.Close()
		reader = gz
	case strings.HasSuffix(lower, ".zst"):
		zr, err := zstd.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open zstd stream %s: %w", path, err)
		}
		defer zr.Close()
		reader = zr
	}

	sc, err := ParseScene(reader, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Printf("Loaded scene %s: %d shapes\n", path, len(sc.Shapes))
	return sc, nil
}

// ParseScene decodes a JSON scene and builds every texture, material and shape.
// All construction errors surface here, never during rendering.
func ParseScene(r io.Reader, baseDir string) (*scene.Scene, error) {
	var file sceneFile
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse scene JSON: %w", err)
	}

	images, err := loadTextureImages(file, baseDir)
	if err != nil {
		return nil, err
	}
	b := &builder{images: images}

	sc := &scene.Scene{SamplingConfig: scene.DefaultSamplingConfig()}
	if file.Background != nil {
		sc.Background = file.Background.vec()
	}
	if file.Sky != nil {
		sc.Sky = &scene.SkyGradient{Top: file.Sky.Top.vec(), Bottom: file.Sky.Bottom.vec()}
	}
	if file.Render != nil {
		if err := applyRender(&sc.SamplingConfig, *file.Render); err != nil {
			return nil, err
		}
	}

	if file.Camera == nil {
		return nil, scene.ErrNoCamera
	}
	camera, err := b.camera(*file.Camera, sc.SamplingConfig)
	if err != nil {
		return nil, err
	}
	sc.Camera = camera

	materials, err := b.materials(file.Materials)
	if err != nil {
		return nil, err
	}

	for i, spec := range file.Shapes {
		shape, err := b.shape(spec, materials)
		if err != nil {
			return nil, fmt.Errorf("shape %d (%s): %w", i, spec.Type, err)
		}
		sc.Shapes = append(sc.Shapes, shape)
	}

	return sc, nil
}

// applyRender overrides the sampling defaults with the values the scene sets
func applyRender(config *scene.SamplingConfig, render renderSpec) error {
	if render.Width > 0 {
		config.Width = render.Width
	}
	if render.Height > 0 {
		config.Height = render.Height
	}
	if render.SamplesPerPixel > 0 {
		config.SamplesPerPixel = render.SamplesPerPixel
	}
	if render.MaxDepth != nil {
		if *render.MaxDepth < 0 {
			return fmt.Errorf("render: max_depth cannot be negative, got %d", *render.MaxDepth)
		}
		config.MaxDepth = *render.MaxDepth
	}
	if render.RussianRouletteMinBounces != nil {
		config.RussianRouletteMinBounces = *render.RussianRouletteMinBounces
	}
	if render.Passes > 0 {
		config.Passes = render.Passes
	}
	return nil
}
