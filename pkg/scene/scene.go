package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	Shapes       *geometry.ShapeList // Objects in the scene
	Sky          renderer.SkyGradient
	CameraConfig renderer.CameraConfig
}

// World returns the read-only view the raytracer traces against
func (s *Scene) World() renderer.World {
	return renderer.World{
		Objects: s.Shapes,
		Sky:     s.Sky,
	}
}

// Camera builds the scene camera, applying any non-zero override fields first
func (s *Scene) Camera(cameraOverrides ...renderer.CameraConfig) (*renderer.Camera, error) {
	return renderer.NewCamera(applyOverrides(s.CameraConfig, cameraOverrides))
}

// builtins maps scene names to their constructors. Seeds are only used by
// scenes that generate content randomly.
var builtins = map[string]func(seed int64, cameraOverrides ...renderer.CameraConfig) (*Scene, error){
	"default": func(_ int64, overrides ...renderer.CameraConfig) (*Scene, error) {
		return NewDefaultScene(overrides...), nil
	},
	"random": func(seed int64, overrides ...renderer.CameraConfig) (*Scene, error) {
		return NewRandomScene(seed, overrides...), nil
	},
	"spheregrid": func(_ int64, overrides ...renderer.CameraConfig) (*Scene, error) {
		return NewSphereGridScene(overrides...), nil
	},
}

// Names returns the sorted names of the built-in scenes
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewScene creates a built-in scene by name
func NewScene(name string, seed int64, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	create, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, Names())
	}
	return create(seed, cameraOverrides...)
}

func applyOverrides(config renderer.CameraConfig, cameraOverrides []renderer.CameraConfig) renderer.CameraConfig {
	for _, override := range cameraOverrides {
		config = renderer.MergeCameraConfig(config, override)
	}
	return config
}
