package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// ErrInvalidCameraConfig is returned when a camera configuration cannot produce a view
var ErrInvalidCameraConfig = errors.New("invalid camera config")

// CameraConfig contains all parameters needed to build a camera
type CameraConfig struct {
	Width           int       // Image width in pixels
	AspectRatio     float64   // Width / height
	VFov            float64   // Vertical field of view in degrees
	LookFrom        core.Vec3 // Camera position
	LookAt          core.Vec3 // Point the camera looks at
	Up              core.Vec3 // Up direction hint
	DefocusAngle    float64   // Aperture cone angle in degrees, <= 0 disables depth of field
	FocusDistance   float64   // Distance to the plane of perfect focus, <= 0 uses |LookFrom - LookAt|
	SamplesPerPixel int       // Rays averaged per pixel
	MaxDepth        int       // Maximum ray bounce depth
}

// DefaultCameraConfig returns a small camera at the origin looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Width:           400,
		AspectRatio:     16.0 / 9.0,
		VFov:            90,
		LookFrom:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
		DefocusAngle:    0,
		FocusDistance:   1,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied.
// Zero means "keep the base value", so an override cannot set a field to zero
// or move LookFrom, LookAt or Up to the origin. Pass a negative DefocusAngle to
// disable depth of field, or a negative FocusDistance to restore the automatic
// focus distance. Assign the field on the merged result to place a vector at
// the origin.
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}

	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.LookFrom != zero {
		result.LookFrom = override.LookFrom
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.DefocusAngle != 0 {
		result.DefocusAngle = override.DefocusAngle
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}

	return result
}

// Camera generates rays for rendering. It is immutable once built.
type Camera struct {
	config CameraConfig

	imageWidth  int
	imageHeight int

	center      core.Vec3 // Camera position
	pixel00     core.Vec3 // Center of pixel (0, 0)
	pixelDeltaU core.Vec3 // Offset to the pixel to the right
	pixelDeltaV core.Vec3 // Offset to the pixel below

	u, v, w core.Vec3 // Camera frame basis vectors

	defocusDiskU core.Vec3 // Defocus disk horizontal radius
	defocusDiskV core.Vec3 // Defocus disk vertical radius
}

// NewCamera validates the configuration and derives the camera geometry
func NewCamera(config CameraConfig) (*Camera, error) {
	if config.Width <= 0 {
		return nil, fmt.Errorf("%w: width must be positive, got %d", ErrInvalidCameraConfig, config.Width)
	}
	if !(config.AspectRatio > 0) || math.IsInf(config.AspectRatio, 0) {
		return nil, fmt.Errorf("%w: aspect ratio must be positive, got %v", ErrInvalidCameraConfig, config.AspectRatio)
	}
	if !(config.VFov > 0 && config.VFov < 180) {
		return nil, fmt.Errorf("%w: vertical fov must be in (0, 180), got %v", ErrInvalidCameraConfig, config.VFov)
	}
	if config.SamplesPerPixel <= 0 {
		return nil, fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidCameraConfig, config.SamplesPerPixel)
	}
	if config.MaxDepth < 0 {
		return nil, fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidCameraConfig, config.MaxDepth)
	}

	lookDirection := config.LookFrom.Subtract(config.LookAt)
	w, err := lookDirection.Normalize()
	if err != nil {
		return nil, fmt.Errorf("%w: look-from and look-at coincide: %v", ErrInvalidCameraConfig, err)
	}
	u, err := config.Up.Cross(w).Normalize()
	if err != nil {
		return nil, fmt.Errorf("%w: up direction is parallel to the view direction: %v", ErrInvalidCameraConfig, err)
	}
	v := w.Cross(u)

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = lookDirection.Length()
	}

	imageHeight := int(math.Round(float64(config.Width) / config.AspectRatio))
	if imageHeight < 1 {
		imageHeight = 1
	}

	// Viewport dimensions at the focus plane
	theta := degreesToRadians(config.VFov)
	viewportHeight := 2 * math.Tan(theta/2) * focusDistance
	viewportWidth := viewportHeight * float64(config.Width) / float64(imageHeight)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Negate().Multiply(viewportHeight)

	pixelDeltaU := viewportU.Divide(float64(config.Width))
	pixelDeltaV := viewportV.Divide(float64(imageHeight))

	center := config.LookFrom
	viewportUpperLeft := center.
		Subtract(w.Multiply(focusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00 := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	defocusRadius := focusDistance * math.Tan(degreesToRadians(config.DefocusAngle/2))

	return &Camera{
		config:       config,
		imageWidth:   config.Width,
		imageHeight:  imageHeight,
		center:       center,
		pixel00:      pixel00,
		pixelDeltaU:  pixelDeltaU,
		pixelDeltaV:  pixelDeltaV,
		u:            u,
		v:            v,
		w:            w,
		defocusDiskU: u.Multiply(defocusRadius),
		defocusDiskV: v.Multiply(defocusRadius),
	}, nil
}

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.imageWidth }

// Height returns the image height in pixels
func (c *Camera) Height() int { return c.imageHeight }

// SamplesPerPixel returns the number of samples averaged per pixel
func (c *Camera) SamplesPerPixel() int { return c.config.SamplesPerPixel }

// MaxDepth returns the ray bounce limit
func (c *Camera) MaxDepth() int { return c.config.MaxDepth }

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig { return c.config }

// Forward returns the unit direction the camera looks along
func (c *Camera) Forward() core.Vec3 { return c.w.Negate() }

// GetRay returns a ray through a random point in the square around pixel (i, j),
// starting on the defocus disk when depth of field is enabled
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := sampler.Get2D()
	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X - 0.5)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y - 0.5))

	origin := c.center
	if c.config.DefocusAngle > 0 {
		origin = c.defocusDiskSample(sampler)
	}

	return core.NewRay(origin, pixelSample.Subtract(origin))
}

// defocusDiskSample returns a random point on the camera defocus disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.RandomInUnitDisk(sampler)
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
