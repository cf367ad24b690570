package scene

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

const testSceneJSON = `{
  "name": "Test Scene",
  "camera": {
    "width": 32,
    "aspect_ratio": 2,
    "vfov": 45,
    "look_from": [0, 0, 0],
    "look_at": [0, 0, -2],
    "samples_per_pixel": 4,
    "max_depth": 8
  },
  "sky": { "top": [0.1, 0.2, 0.3] },
  "materials": {
    "matte": { "type": "lambertian", "albedo": "white" },
    "mirror": { "type": "metal", "albedo": [0.9, 0.9, 0.9], "fuzz": 2 },
    "glass": { "type": "Dielectric", "refraction_index": 1.5 }
  },
  "spheres": [
    { "center": [0, 0, -2], "radius": 0.5, "material": "matte" },
    { "center": [1, 0, -2], "radius": 0.25, "material": "mirror" },
    { "center": [-1, 0, -2], "radius": 0.25, "material": "glass" }
  ]
}`

func TestParseScene(t *testing.T) {
	s, err := ParseScene(strings.NewReader(testSceneJSON))
	if err != nil {
		t.Fatalf("ParseScene() error: %v", err)
	}

	if s.Name != "Test Scene" {
		t.Errorf("Expected name from file, got %q", s.Name)
	}
	if s.Shapes.Len() != 3 {
		t.Fatalf("Expected 3 spheres, got %d", s.Shapes.Len())
	}

	matte := s.Shapes.Shapes[0].(*geometry.Sphere).Material.(*material.Lambertian)
	if matte.Albedo != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected named white albedo, got %v", matte.Albedo)
	}
	mirror := s.Shapes.Shapes[1].(*geometry.Sphere).Material.(*material.Metal)
	if mirror.Fuzzness != 1 {
		t.Errorf("Expected fuzz clamped to 1, got %v", mirror.Fuzzness)
	}
	glass := s.Shapes.Shapes[2].(*geometry.Sphere).Material.(*material.Dielectric)
	if glass.RefractionIndex != 1.5 {
		t.Errorf("Expected refraction index 1.5, got %v", glass.RefractionIndex)
	}

	if s.Sky.Top != core.NewVec3(0.1, 0.2, 0.3) {
		t.Errorf("Expected sky top from file, got %v", s.Sky.Top)
	}
	if s.Sky.Bottom != renderer.DefaultSky().Bottom {
		t.Errorf("Expected default sky bottom, got %v", s.Sky.Bottom)
	}
}

func TestParseScene_Camera(t *testing.T) {
	s, err := ParseScene(strings.NewReader(testSceneJSON))
	if err != nil {
		t.Fatalf("ParseScene() error: %v", err)
	}

	config := s.CameraConfig
	if config.Width != 32 || config.AspectRatio != 2 || config.VFov != 45 {
		t.Errorf("Unexpected camera image settings: %+v", config)
	}
	if config.LookFrom != (core.Vec3{}) || config.LookAt != core.NewVec3(0, 0, -2) {
		t.Errorf("Unexpected camera placement: %+v", config)
	}
	if config.Up != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected default up vector, got %v", config.Up)
	}
	if config.SamplesPerPixel != 4 || config.MaxDepth != 8 {
		t.Errorf("Unexpected sampling settings: %+v", config)
	}

	camera, err := s.Camera()
	if err != nil {
		t.Fatalf("Unexpected camera error: %v", err)
	}
	if camera.Height() != 16 {
		t.Errorf("Expected height 16, got %d", camera.Height())
	}
}

func TestParseScene_LookAtOrigin(t *testing.T) {
	input := `{"camera": {"look_from": [0, 0, 5], "look_at": [0, 0, 0]}}`
	s, err := ParseScene(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseScene() error: %v", err)
	}
	if s.CameraConfig.LookAt != (core.Vec3{}) {
		t.Errorf("Expected look-at at the origin, got %v", s.CameraConfig.LookAt)
	}
	if s.CameraConfig.FocusDistance != 0 {
		t.Errorf("Expected auto focus distance, got %v", s.CameraConfig.FocusDistance)
	}
}

func TestParseScene_NamedColorIsLinear(t *testing.T) {
	input := `{
	  "materials": {"m": {"type": "lambertian", "albedo": "Gray"}},
	  "spheres": [{"center": [0, 0, 0], "radius": 1, "material": "m"}]
	}`
	s, err := ParseScene(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseScene() error: %v", err)
	}

	// CSS gray is 128/255 in sRGB
	albedo := s.Shapes.Shapes[0].(*geometry.Sphere).Material.(*material.Lambertian).Albedo
	expected := math.Pow(128.0/255.0, 2)
	if math.Abs(albedo.X-expected) > 1e-12 || albedo.X != albedo.Y || albedo.Y != albedo.Z {
		t.Errorf("Expected linear gray %v, got %v", expected, albedo)
	}
}

func TestParseScene_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"malformed json", `{"spheres": [`, ""},
		{"unknown field", `{"lights": []}`, "lights"},
		{"unknown material type", `{"materials": {"m": {"type": "plastic"}}}`, "plastic"},
		{"missing albedo", `{"materials": {"m": {"type": "metal"}}}`, "albedo"},
		{"bad refraction index", `{"materials": {"m": {"type": "dielectric"}}}`, "refraction"},
		{"unknown color name", `{"materials": {"m": {"type": "lambertian", "albedo": "notacolor"}}}`, "notacolor"},
		{"short vector", `{"spheres": [{"center": [0, 0], "radius": 1, "material": "m"}]}`, "3 components"},
		{"unknown material reference", `{"spheres": [{"center": [0, 0, 0], "radius": 1, "material": "m"}]}`, "unknown material"},
		{"trailing value", `{"spheres": []} {"garbage": true}`, "after the scene"},
		{"trailing brace", `{"spheres": []}}`, "after the scene"},
		{"refraction index on metal", `{"materials": {"m": {"type": "metal", "albedo": [1, 1, 1], "refraction_index": 1.5}}}`, "refraction_index"},
		{"fuzz on lambertian", `{"materials": {"m": {"type": "lambertian", "albedo": [1, 1, 1], "fuzz": 0.5}}}`, "fuzz"},
		{"albedo on dielectric", `{"materials": {"m": {"type": "dielectric", "albedo": [1, 1, 1], "refraction_index": 1.5}}}`, "albedo"},
		{"negative radius", `{"materials": {"m": {"type": "dielectric", "refraction_index": 1.5}}, "spheres": [{"center": [0, 0, 0], "radius": -1, "material": "m"}]}`, "radius"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene(strings.NewReader(tt.input))
			if !errors.Is(err, ErrInvalidSceneFile) {
				t.Fatalf("Expected ErrInvalidSceneFile, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("Expected error mentioning %q, got %v", tt.message, err)
			}
		})
	}
}

func TestLoadScene(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unnamed-scene.json")
	input := `{"materials": {"m": {"type": "lambertian", "albedo": [0.5, 0.5, 0.5]}},
	  "spheres": [{"center": [0, 0, -1], "radius": 0.5, "material": "m"}]}`
	if err := os.WriteFile(path, []byte(input), 0o644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}

	s, err := LoadScene(path, renderer.CameraConfig{Width: 10})
	if err != nil {
		t.Fatalf("LoadScene() error: %v", err)
	}
	if s.Name != "unnamed-scene" {
		t.Errorf("Expected name from file name, got %q", s.Name)
	}
	if s.CameraConfig.Width != 10 {
		t.Errorf("Expected width override, got %d", s.CameraConfig.Width)
	}
}

func TestLoadScene_MissingFile(t *testing.T) {
	_, err := LoadScene(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestLoadScene_ExampleScenes(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "scenes", "*.json"))
	if err != nil {
		t.Fatalf("Glob error: %v", err)
	}
	for _, path := range files {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := LoadScene(path)
			if err != nil {
				t.Fatalf("LoadScene() error: %v", err)
			}
			if _, err := s.Camera(); err != nil {
				t.Errorf("Invalid camera: %v", err)
			}
		})
	}
}
