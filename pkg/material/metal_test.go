package material

import (
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestNewMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name             string
		inputFuzzness    float64
		expectedFuzzness float64
	}{
		{"Valid fuzzness 0.0", 0.0, 0.0},
		{"Valid fuzzness 0.5", 0.5, 0.5},
		{"Valid fuzzness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzzness)
			if metal.Fuzzness != tt.expectedFuzzness {
				t.Errorf("Expected fuzzness %f, got %f", tt.expectedFuzzness, metal.Fuzzness)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := core.NewSeededSampler(42)

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1))
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 0, 1),
		FrontFace: true,
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	expected := core.NewVec3(0, -1, 1).MustNormalize()
	if scatter.Scattered.Direction.Subtract(expected).Length() > 1e-10 {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, scatter.Scattered.Direction)
	}
	if scatter.Attenuation != albedo {
		t.Errorf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
	}
}

func TestMetal_HeadOnMirror(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)
	sampler := core.NewSeededSampler(1)

	rayIn := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -3))
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, -4),
		Normal:    core.NewVec3(0, 0, 1),
		FrontFace: true,
	}

	// Repeated scatters must be identical, no stochastic perturbation
	for i := 0; i < 10; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
		if !didScatter {
			t.Fatal("Metal should scatter a head-on ray")
		}
		if scatter.Scattered.Direction != core.NewVec3(0, 0, 1) {
			t.Fatalf("Expected mirrored direction (0,0,1), got %v", scatter.Scattered.Direction)
		}
		if scatter.Scattered.Origin != hit.Point {
			t.Fatalf("Expected origin %v, got %v", hit.Point, scatter.Scattered.Origin)
		}
	}
}

func TestMetal_FuzzBelowSurfaceIsAbsorbed(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)

	// Grazing ray, reflection is almost tangent to the surface
	rayIn := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0))
	hit := HitRecord{Normal: core.NewVec3(0, 1, 0), FrontFace: true}

	// Sample (0.5, 0, 0.5) maps to the unit vector (0, -1, 0), pushing the reflection down
	sampler := fixedSampler{value: core.NewVec3(0.5, 0, 0.5)}
	if _, didScatter := metal.Scatter(rayIn, hit, sampler); didScatter {
		t.Error("Expected fuzzed reflection below the surface to be absorbed")
	}
}
