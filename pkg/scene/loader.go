package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// ErrInvalidSceneFile is wrapped by every error caused by bad scene file content
var ErrInvalidSceneFile = errors.New("invalid scene file")

// sceneFile is the JSON layout of a scene description
type sceneFile struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Camera      cameraFile              `json:"camera"`
	Sky         *skyFile                `json:"sky"`
	Materials   map[string]materialFile `json:"materials"`
	Spheres     []sphereFile            `json:"spheres"`
}

type cameraFile struct {
	Width           int        `json:"width"`
	AspectRatio     float64    `json:"aspect_ratio"`
	VFov            float64    `json:"vfov"`
	LookFrom        *vec3Value `json:"look_from"`
	LookAt          *vec3Value `json:"look_at"`
	Up              *vec3Value `json:"up"`
	DefocusAngle    float64    `json:"defocus_angle"`
	FocusDistance   float64    `json:"focus_distance"`
	SamplesPerPixel int        `json:"samples_per_pixel"`
	MaxDepth        int        `json:"max_depth"`
}

type skyFile struct {
	Top    *colorValue `json:"top"`
	Bottom *colorValue `json:"bottom"`
}

type materialFile struct {
	Type            string      `json:"type"` // lambertian, metal or dielectric
	Albedo          *colorValue `json:"albedo"`
	Fuzz            float64     `json:"fuzz"`
	RefractionIndex float64     `json:"refraction_index"`
}

type sphereFile struct {
	Center   vec3Value `json:"center"`
	Radius   float64   `json:"radius"`
	Material string    `json:"material"`
}

// vec3Value is a JSON array of exactly three numbers
type vec3Value core.Vec3

func (v *vec3Value) UnmarshalJSON(data []byte) error {
	var components []float64
	if err := json.Unmarshal(data, &components); err != nil {
		return fmt.Errorf("vector must be an array of three numbers: %w", err)
	}
	if len(components) != 3 {
		return fmt.Errorf("vector must have 3 components, got %d", len(components))
	}
	*v = vec3Value(core.NewVec3(components[0], components[1], components[2]))
	return nil
}

// colorValue is either a JSON array of three linear components or a CSS color name.
// Named colors are sRGB and are converted to linear with the renderer's gamma 2 curve.
type colorValue core.Vec3

func (c *colorValue) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		rgba, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return fmt.Errorf("unknown color name %q", name)
		}
		*c = colorValue(core.NewVec3(srgbToLinear(rgba.R), srgbToLinear(rgba.G), srgbToLinear(rgba.B)))
		return nil
	}

	var v vec3Value
	if err := v.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("color must be a name or an array of three numbers: %w", err)
	}
	*c = colorValue(v)
	return nil
}

func srgbToLinear(component uint8) float64 {
	x := float64(component) / 255.0
	return x * x
}

// LoadScene reads a JSON scene description from a file.
// Camera settings the file leaves out take the renderer defaults.
func LoadScene(path string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseScene(file, cameraOverrides...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// ParseScene decodes a JSON scene description
func ParseScene(r io.Reader, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	var file sceneFile
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSceneFile, err)
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected content after the scene object", ErrInvalidSceneFile)
	}

	materials := make(map[string]material.Material, len(file.Materials))
	for name, m := range file.Materials {
		mat, err := m.build()
		if err != nil {
			return nil, fmt.Errorf("%w: material %q: %v", ErrInvalidSceneFile, name, err)
		}
		materials[name] = mat
	}

	shapes := geometry.NewShapeList()
	for i, sf := range file.Spheres {
		mat, ok := materials[sf.Material]
		if !ok {
			return nil, fmt.Errorf("%w: sphere %d: unknown material %q", ErrInvalidSceneFile, i, sf.Material)
		}
		sphere, err := geometry.NewSphere(core.Vec3(sf.Center), sf.Radius, mat)
		if err != nil {
			return nil, fmt.Errorf("%w: sphere %d: %v", ErrInvalidSceneFile, i, err)
		}
		shapes.Add(sphere)
	}

	// Focus on the look-at point unless the file says otherwise
	base := renderer.DefaultCameraConfig()
	base.FocusDistance = 0

	return &Scene{
		Name:         file.Name,
		Shapes:       shapes,
		Sky:          file.Sky.gradient(),
		CameraConfig: applyOverrides(file.Camera.apply(base), cameraOverrides),
	}, nil
}

func (m materialFile) build() (material.Material, error) {
	albedo := func() (core.Vec3, error) {
		if m.Albedo == nil {
			return core.Vec3{}, errors.New("missing albedo")
		}
		return core.Vec3(*m.Albedo), nil
	}

	typeName := strings.ToLower(m.Type)
	if m.Fuzz != 0 && typeName != "metal" {
		return nil, fmt.Errorf("fuzz only applies to metal, not %q", m.Type)
	}
	if m.RefractionIndex != 0 && typeName != "dielectric" {
		return nil, fmt.Errorf("refraction_index only applies to dielectric, not %q", m.Type)
	}
	if m.Albedo != nil && typeName == "dielectric" {
		return nil, errors.New("albedo does not apply to dielectric")
	}

	switch typeName {
	case "lambertian":
		a, err := albedo()
		if err != nil {
			return nil, err
		}
		return material.NewLambertian(a), nil
	case "metal":
		a, err := albedo()
		if err != nil {
			return nil, err
		}
		return material.NewMetal(a, m.Fuzz), nil
	case "dielectric":
		if m.RefractionIndex <= 0 {
			return nil, fmt.Errorf("refraction index must be positive, got %g", m.RefractionIndex)
		}
		return material.NewDielectric(m.RefractionIndex), nil
	default:
		return nil, fmt.Errorf("unknown material type %q", m.Type)
	}
}

// apply sets every field the file specifies on base. Vectors are applied even
// when zero so a file can place the camera or its target at the origin.
func (c cameraFile) apply(base renderer.CameraConfig) renderer.CameraConfig {
	config := renderer.MergeCameraConfig(base, renderer.CameraConfig{
		Width:           c.Width,
		AspectRatio:     c.AspectRatio,
		VFov:            c.VFov,
		DefocusAngle:    c.DefocusAngle,
		FocusDistance:   c.FocusDistance,
		SamplesPerPixel: c.SamplesPerPixel,
		MaxDepth:        c.MaxDepth,
	})
	if c.LookFrom != nil {
		config.LookFrom = core.Vec3(*c.LookFrom)
	}
	if c.LookAt != nil {
		config.LookAt = core.Vec3(*c.LookAt)
	}
	if c.Up != nil {
		config.Up = core.Vec3(*c.Up)
	}
	return config
}

func (s *skyFile) gradient() renderer.SkyGradient {
	sky := renderer.DefaultSky()
	if s == nil {
		return sky
	}
	if s.Top != nil {
		sky.Top = core.Vec3(*s.Top)
	}
	if s.Bottom != nil {
		sky.Bottom = core.Vec3(*s.Bottom)
	}
	return sky
}
