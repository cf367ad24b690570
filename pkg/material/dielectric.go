package material

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Dielectric represents a clear material that refracts and reflects, such as glass or water
type Dielectric struct {
	// Refractive index in vacuum or air, or the ratio of the material's index over
	// the index of the enclosing medium
	RefractionIndex float64
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractionIndex float64) *Dielectric {
	return &Dielectric{RefractionIndex: refractionIndex}
}

// Scatter implements the Material interface for dielectric scattering
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	ratio := d.RefractionIndex
	if hit.FrontFace {
		ratio = 1.0 / d.RefractionIndex
	}

	unitDirection, err := rayIn.Direction.Normalize()
	if err != nil {
		return ScatterResult{}, false
	}

	cosTheta := math.Min(unitDirection.Negate().Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	var direction core.Vec3
	cannotRefract := ratio*sinTheta > 1.0
	if cannotRefract || sampler.Get1D() < Reflectance(cosTheta, ratio) {
		direction = core.Reflect(unitDirection, hit.Normal)
	} else {
		direction = core.Refract(unitDirection, hit.Normal, ratio)
	}

	return ScatterResult{
		Attenuation: core.NewVec3(1.0, 1.0, 1.0),
		Scattered:   core.NewRay(hit.Point, direction),
	}, true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
