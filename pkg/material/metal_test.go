package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-implicit-raytracer/pkg/core"
)

func TestNewMetal_FuzzClamp(t *testing.T) {
	tests := []struct {
		name         string
		inputFuzz    float64
		expectedFuzz float64
	}{
		{"Valid fuzz 0.0", 0.0, 0.0},
		{"Valid fuzz 0.5", 0.5, 0.5},
		{"Valid fuzz 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
		{"Clamp large positive", 10.0, 1.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzz)
			if metal.Fuzz != tt.expectedFuzz {
				t.Errorf("Expected fuzz %f, got %f", tt.expectedFuzz, metal.Fuzz)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	expected := core.NewVec3(0, -1, 1).Normalize()
	actual := scatter.Scattered.Direction.Normalize()
	if !actual.Equals(expected, 1e-10) {
		t.Errorf("Expected %v, got %v", expected, actual)
	}
	if scatter.Attenuation != albedo {
		t.Errorf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
	}
}

func TestMetal_FuzzBelowSurfaceIsAbsorbed(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.9, 0.9, 0.9), 1.0)

	// Grazing ray; the fixed sample perturbs straight down by the full fuzz
	rayIn := core.NewRay(core.NewVec3(-1, 0, 0.01), core.NewVec3(1, 0, -0.01))
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, 1)}
	sampler := fixedSampler{three: core.NewVec3(1, 0, 0)}

	if _, didScatter := metal.Scatter(rayIn, hit, sampler); didScatter {
		t.Error("Expected ray perturbed below the surface to be absorbed")
	}
}

func TestMetal_ScatteredAlwaysAboveSurface(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.8)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(7)))
	normal := core.NewVec3(0, 1, 0)
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: normal}
	rayIn := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))

	scattered := 0
	for i := 0; i < 500; i++ {
		scatter, ok := metal.Scatter(rayIn, hit, sampler)
		if !ok {
			continue
		}
		scattered++
		if scatter.Scattered.Direction.Dot(normal) <= 0 {
			t.Fatalf("Scattered direction %v is below the surface", scatter.Scattered.Direction)
		}
	}
	if scattered == 0 {
		t.Error("Expected at least some rays to scatter")
	}
}
