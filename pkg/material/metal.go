package material

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo   core.Vec3 // Metal color
	Fuzzness float64   // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzzness float64) *Metal {
	// Clamp fuzzness to valid range
	if fuzzness < 0 {
		fuzzness = 0
	}
	if fuzzness > 1 {
		fuzzness = 1
	}

	return &Metal{
		Albedo:   albedo,
		Fuzzness: fuzzness,
	}
}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected, err := core.Reflect(rayIn.Direction, hit.Normal).Normalize()
	if err != nil {
		return ScatterResult{}, false
	}

	if m.Fuzzness > 0 {
		reflected = reflected.Add(core.RandomUnitVector(sampler).Multiply(m.Fuzzness))
	}

	scattered := core.NewRay(hit.Point, reflected)

	// Fuzz can push the reflection below the surface, absorb it
	if scattered.Direction.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Attenuation: m.Albedo,
		Scattered:   scattered,
	}, true
}
