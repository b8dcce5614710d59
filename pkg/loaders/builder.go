package loaders

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/geometry"
	"github.com/df07/go-implicit-raytracer/pkg/implicit"
	"github.com/df07/go-implicit-raytracer/pkg/material"
	"github.com/df07/go-implicit-raytracer/pkg/scene"
	"github.com/df07/go-implicit-raytracer/pkg/transform"
)

// builder turns decoded specs into scene objects. images holds every image texture
// referenced by the file, keyed by the path as written.
type builder struct {
	images map[string]*material.ImageTexture
}

func (b *builder) camera(spec cameraSpec, sampling scene.SamplingConfig) (*geometry.Camera, error) {
	var direction core.Vec3
	switch {
	case spec.Direction != nil:
		direction = spec.Direction.vec()
	case spec.LookAt != nil:
		direction = spec.LookAt.vec().Subtract(spec.Position.vec())
	default:
		direction = core.NewVec3(0, 0, -1)
	}

	up := core.NewVec3(0, 1, 0)
	if spec.Up != nil {
		up = spec.Up.vec()
	}

	fov := spec.Fov
	if fov == 0 {
		fov = 40
	}

	camera, err := geometry.NewCamera(geometry.CameraConfig{
		Position:    spec.Position.vec(),
		Direction:   direction,
		Up:          up,
		VFov:        fov,
		FocalLength: spec.FocalLength,
		AspectRatio: float64(sampling.Width) / float64(sampling.Height),
	})
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	return camera, nil
}

func (b *builder) materials(specs map[string]materialSpec) (map[string]material.Material, error) {
	materials := make(map[string]material.Material, len(specs))
	for name, spec := range specs {
		mat, err := b.material(spec)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}
	return materials, nil
}

func (b *builder) material(spec materialSpec) (material.Material, error) {
	switch normalizeTag(spec.Type) {
	case "lambertian", "diffuse":
		albedo, err := b.requiredTexture(spec.Albedo, "albedo")
		if err != nil {
			return nil, err
		}
		return material.NewTexturedLambertian(albedo), nil
	case "metal":
		albedo, err := b.requiredTexture(spec.Albedo, "albedo")
		if err != nil {
			return nil, err
		}
		return material.NewTexturedMetal(albedo, spec.Fuzz), nil
	case "dielectric", "glass":
		ior := spec.ior()
		if ior <= 0 {
			return nil, fmt.Errorf("dielectric needs a positive ior, got %g", ior)
		}
		return material.NewDielectric(ior), nil
	case "diffuselight", "light", "emissive":
		emit, err := b.requiredTexture(spec.Emit, "emit")
		if err != nil {
			return nil, err
		}
		return material.NewTexturedDiffuseLight(emit), nil
	default:
		return nil, fmt.Errorf("%w: material %q", ErrUnknownType, spec.Type)
	}
}

func (b *builder) requiredTexture(spec *textureSpec, field string) (material.Texture, error) {
	if spec == nil {
		return nil, fmt.Errorf("missing %s", field)
	}
	return b.texture(*spec)
}

func (b *builder) texture(spec textureSpec) (material.Texture, error) {
	switch normalizeTag(spec.Type) {
	case "solidcolor", "solid", "color":
		return material.NewSolidColor(spec.Color.vec()), nil
	case "checker", "checkertexture":
		odd, even, err := b.checkerPair(spec)
		if err != nil {
			return nil, err
		}
		multipliers := core.NewVec3(1, 1, 1)
		if spec.Multipliers != nil {
			var m vec3
			if err := json.Unmarshal(spec.Multipliers, &m); err != nil {
				return nil, fmt.Errorf("checker multipliers: %w", err)
			}
			multipliers = m.vec()
		}
		checker := material.NewCheckerTexture(odd, even, multipliers)
		if spec.Scale != 0 {
			checker.Scale = spec.Scale
		}
		return checker, nil
	case "uvchecker":
		odd, even, err := b.checkerPair(spec)
		if err != nil {
			return nil, err
		}
		multU, multV := orDefault(spec.MultU, 1), orDefault(spec.MultV, 1)
		if spec.Multipliers != nil {
			var m []float64
			if err := json.Unmarshal(spec.Multipliers, &m); err != nil || len(m) != 2 {
				return nil, fmt.Errorf("uv checker multipliers must be [u, v], got %s", spec.Multipliers)
			}
			multU, multV = m[0], m[1]
		}
		return material.NewUVChecker(odd, even, multU, multV), nil
	case "image", "imagetexture":
		img, ok := b.images[spec.Path]
		if !ok {
			return nil, fmt.Errorf("image texture %q was not loaded", spec.Path)
		}
		return img, nil
	case "noise", "noisetexture":
		return material.NewNoiseTexture(orDefault(spec.Scale, 1), rand.New(rand.NewSource(spec.Seed))), nil
	case "uvdebug":
		return material.NewUVDebugTexture(orDefaultInt(spec.Width, 16), orDefaultInt(spec.Height, 16)), nil
	case "gradient":
		return material.NewGradientTexture(orDefaultInt(spec.Width, 1), orDefaultInt(spec.Height, 64), spec.Top.vec(), spec.Bottom.vec()), nil
	default:
		return nil, fmt.Errorf("%w: texture %q", ErrUnknownType, spec.Type)
	}
}

func (b *builder) checkerPair(spec textureSpec) (material.Texture, material.Texture, error) {
	odd, err := b.requiredTexture(spec.Odd, "odd")
	if err != nil {
		return nil, nil, err
	}
	even, err := b.requiredTexture(spec.Even, "even")
	if err != nil {
		return nil, nil, err
	}
	return odd, even, nil
}

func (b *builder) shape(spec shapeSpec, materials map[string]material.Material) (geometry.Shape, error) {
	mat, ok := materials[spec.Material]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMaterial, spec.Material)
	}

	tr, err := buildTransform(spec.Transform)
	if err != nil {
		return nil, err
	}

	switch normalizeTag(spec.Type) {
	case "sphere":
		if spec.TubeRadius != nil {
			return torus(spec, tr, mat)
		}
		radius := orDefault(spec.Radius, 1)
		if radius <= 0 {
			return nil, fmt.Errorf("sphere needs a positive radius, got %g", radius)
		}
		sphere := geometry.NewSphere(radius, tr, mat)
		sphere.InverseNormal = spec.InverseNormal
		return sphere, nil
	case "torus":
		return torus(spec, tr, mat)
	case "rectangle":
		return geometry.NewRectangle(spec.X0, spec.Y0, spec.X1, spec.Y1, spec.K, tr, mat), nil
	case "plane":
		return geometry.NewPlane(tr, mat), nil
	case "cube":
		return geometry.NewCube(tr, mat), nil
	case "implicit", "bruteforce", "bruteforsableshape":
		desc := spec.Field
		if desc == nil {
			desc = spec.Shape
		}
		if desc == nil {
			return nil, fmt.Errorf("implicit shape needs a field")
		}
		field, err := buildField(*desc)
		if err != nil {
			return nil, err
		}
		return geometry.NewImplicitShape(field, spec.Step, tr, mat), nil
	default:
		return nil, fmt.Errorf("%w: shape %q", ErrUnknownType, spec.Type)
	}
}

func torus(spec shapeSpec, tr *transform.Transform, mat material.Material) (geometry.Shape, error) {
	if spec.TubeRadius == nil || *spec.TubeRadius <= 0 {
		return nil, fmt.Errorf("torus needs a positive tube_radius")
	}
	radius := orDefault(spec.Radius, 1)
	if radius <= 0 {
		return nil, fmt.Errorf("torus needs a positive radius, got %g", radius)
	}
	return geometry.NewTorus(radius, *spec.TubeRadius, spec.Step, tr, mat), nil
}

func buildTransform(spec *transformSpec) (*transform.Transform, error) {
	if spec == nil {
		return transform.Identity(), nil
	}
	scale := core.NewVec3(1, 1, 1)
	if spec.Scale != nil {
		scale = spec.Scale.vec()
	}
	return transform.New(spec.Translate.vec(), spec.Rotate.vec(), scale)
}

func buildField(spec fieldSpec) (implicit.Field, error) {
	field, err := newField(spec)
	if err != nil {
		return nil, err
	}
	if err := implicit.Validate(field); err != nil {
		return nil, fmt.Errorf("field %q: %w", spec.Type, err)
	}
	return field, nil
}

func newField(spec fieldSpec) (implicit.Field, error) {
	switch normalizeTag(spec.Type) {
	case "sphere":
		return implicit.Sphere{Radius: orDefault(spec.Radius, 1)}, nil
	case "torus":
		return implicit.Torus{Radius: spec.Radius, TubeRadius: spec.TubeRadius}, nil
	case "heart":
		return implicit.Heart{}, nil
	case "sine":
		return implicit.Sine{A: spec.A, SphereRadius: spec.SphereRadius}, nil
	case "star":
		return implicit.Star{A: spec.A, SphereRadius: spec.SphereRadius}, nil
	case "dupincyclide":
		return implicit.DupinCyclide{A: spec.A, B: spec.B, C: spec.C, D: spec.D, SphereRadius: spec.SphereRadius}, nil
	case "huntssurface":
		return implicit.HuntsSurface{SphereRadius: spec.SphereRadius}, nil
	case "cushion":
		return implicit.Cushion{SphereRadius: spec.SphereRadius}, nil
	default:
		return nil, fmt.Errorf("%w: field %q", ErrUnknownType, spec.Type)
	}
}

func orDefault(value, fallback float64) float64 {
	if value == 0 {
		return fallback
	}
	return value
}

func orDefaultInt(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}
