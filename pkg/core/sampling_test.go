package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestSamplePointInUnitSphere(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))
	for i := 0; i < 1000; i++ {
		p := SamplePointInUnitSphere(sampler.Get3D())
		if p.Length() > 1.0+1e-12 {
			t.Fatalf("Sample %d outside unit sphere: %v (length %f)", i, p, p.Length())
		}
	}
}

func TestSampleOnUnitSphere(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))
	for i := 0; i < 1000; i++ {
		p := SampleOnUnitSphere(sampler.Get2D())
		if math.Abs(p.Length()-1) > 1e-9 {
			t.Fatalf("Sample %d not on unit sphere: length %f", i, p.Length())
		}
	}
}

func TestSampleCosineHemisphere(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))
	normals := []Vec3{
		NewVec3(0, 1, 0),
		NewVec3(1, 0, 0),
		NewVec3(0, 0, -1),
		NewVec3(1, 2, 3).Normalize(),
	}
	const n = 20000
	for _, normal := range normals {
		sumCos := 0.0
		for i := 0; i < n; i++ {
			d := SampleCosineHemisphere(normal, sampler.Get2D())
			if math.Abs(d.Length()-1) > 1e-9 {
				t.Fatalf("Expected unit direction, got %v (length %f)", d, d.Length())
			}
			cos := d.Dot(normal)
			if cos < -1e-12 {
				t.Fatalf("Direction %v below hemisphere of %v", d, normal)
			}
			sumCos += cos
		}
		// E[cos θ] = 2/3 for a cosine-weighted hemisphere
		if mean := sumCos / n; math.Abs(mean-2.0/3.0) > 0.01 {
			t.Errorf("Normal %v: expected mean cosine 0.667, got %f", normal, mean)
		}
	}
}

func TestSampleCosineHemisphere_CenterIsNormal(t *testing.T) {
	normal := NewVec3(0, 0.6, 0.8)
	if d := SampleCosineHemisphere(normal, NewVec2(0, 0.3)); !d.Equals(normal, 1e-12) {
		t.Errorf("Expected %v, got %v", normal, d)
	}
}
