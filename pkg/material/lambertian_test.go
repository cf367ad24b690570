package material

import (
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// fixedSampler returns the same values on every call
type fixedSampler struct {
	value core.Vec3
}

func (f fixedSampler) Get1D() float64   { return f.value.X }
func (f fixedSampler) Get2D() core.Vec2 { return core.NewVec2(f.value.X, f.value.Y) }
func (f fixedSampler) Get3D() core.Vec3 { return f.value }

func TestLambertian_Scatter(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.3, 0.3)
	lambertian := NewLambertian(albedo)
	sampler := core.NewSeededSampler(42)

	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		FrontFace: true,
	}
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	for i := 0; i < 1000; i++ {
		scatter, didScatter := lambertian.Scatter(rayIn, hit, sampler)
		if !didScatter {
			t.Fatal("Lambertian should always scatter")
		}
		if scatter.Attenuation != albedo {
			t.Errorf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
		}
		if scatter.Scattered.Origin != hit.Point {
			t.Errorf("Expected scattered origin %v, got %v", hit.Point, scatter.Scattered.Origin)
		}
		if scatter.Scattered.Direction.Dot(hit.Normal) < 0 {
			t.Fatalf("Scattered direction %v points below the surface", scatter.Scattered.Direction)
		}
	}
}

func TestLambertian_DegenerateDirectionFallsBackToNormal(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

	// Sample (0.5, 0, 0.5) maps to the unit vector (0, -1, 0), cancelling the normal
	sampler := fixedSampler{value: core.NewVec3(0.5, 0, 0.5)}
	hit := HitRecord{Normal: core.NewVec3(0, 1, 0), FrontFace: true}

	scatter, didScatter := lambertian.Scatter(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), hit, sampler)
	if !didScatter {
		t.Fatal("Lambertian should always scatter")
	}
	if scatter.Scattered.Direction != hit.Normal {
		t.Errorf("Expected fallback to normal %v, got %v", hit.Normal, scatter.Scattered.Direction)
	}
}
