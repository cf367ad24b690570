package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// NewDefaultScene creates the three-sphere scene: a diffuse blue sphere between
// a hollow glass sphere and a fuzzy gold one, resting on a large yellow ground sphere
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Width:           400,
		AspectRatio:     16.0 / 9.0,
		VFov:            20.0,
		LookFrom:        core.NewVec3(-2, 2, 1),
		LookAt:          core.NewVec3(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
		DefocusAngle:    0.5,
		FocusDistance:   3.4,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	// Create materials
	materialGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	materialLeft := material.NewDielectric(1.5)
	materialBubble := material.NewDielectric(1.0 / 1.5) // Air inside glass
	materialRight := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)

	shapes := geometry.NewShapeList(
		geometry.MustSphere(core.NewVec3(0, -100.5, -1), 100, materialGround),
		geometry.MustSphere(core.NewVec3(0, 0, -1.2), 0.5, materialCenter),
		geometry.MustSphere(core.NewVec3(-1, 0, -1), 0.5, materialLeft),
		geometry.MustSphere(core.NewVec3(-1, 0, -1), 0.4, materialBubble),
		geometry.MustSphere(core.NewVec3(1, 0, -1), 0.5, materialRight),
	)

	return &Scene{
		Name:         "default",
		Shapes:       shapes,
		Sky:          renderer.DefaultSky(),
		CameraConfig: applyOverrides(defaultCameraConfig, cameraOverrides),
	}
}
