package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

const (
	randomGridExtent  = 11  // Small spheres are placed on [-11, 11) in x and z
	smallSphereRadius = 0.2
	diffuseChance     = 0.8
	metalChance       = 0.95 // Cumulative; the remainder is glass
)

// NewRandomScene creates the cover scene: a field of small randomly placed
// spheres with random materials around three large feature spheres.
// The same seed always produces the same scene.
func NewRandomScene(seed int64, cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Width:           1200,
		AspectRatio:     16.0 / 9.0,
		VFov:            20.0,
		LookFrom:        core.NewVec3(13, 2, 3),
		LookAt:          core.NewVec3(0, 0, 0),
		Up:              core.NewVec3(0, 1, 0),
		DefocusAngle:    0.6,
		FocusDistance:   10.0,
		SamplesPerPixel: 500,
		MaxDepth:        50,
	}

	sampler := core.NewSeededSampler(seed)
	shapes := geometry.NewShapeList(
		geometry.MustSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	)

	// Keep small spheres clear of the metal feature sphere
	clearing := core.NewVec3(4, 0.2, 0)

	for a := -randomGridExtent; a < randomGridExtent; a++ {
		for b := -randomGridExtent; b < randomGridExtent; b++ {
			chooseMaterial := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				smallSphereRadius,
				float64(b)+0.9*sampler.Get1D(),
			)

			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var sphereMaterial material.Material
			switch {
			case chooseMaterial < diffuseChance:
				albedo := core.RandomVec3(sampler).MultiplyVec(core.RandomVec3(sampler))
				sphereMaterial = material.NewLambertian(albedo)
			case chooseMaterial < metalChance:
				albedo := core.RandomVec3InRange(sampler, 0.5, 1)
				fuzz := core.RandomInRange(sampler, 0, 0.5)
				sphereMaterial = material.NewMetal(albedo, fuzz)
			default:
				sphereMaterial = material.NewDielectric(1.5)
			}

			shapes.Add(geometry.MustSphere(center, smallSphereRadius, sphereMaterial))
		}
	}

	shapes.Add(
		geometry.MustSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.MustSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.MustSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return &Scene{
		Name:         "random",
		Shapes:       shapes,
		Sky:          renderer.DefaultSky(),
		CameraConfig: applyOverrides(defaultCameraConfig, cameraOverrides),
	}
}
