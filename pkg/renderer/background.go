package renderer

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// SkyGradient is a vertical gradient background seen by rays that escape the scene
type SkyGradient struct {
	Bottom core.Vec3 // Color looking straight down, blended toward Top at the zenith
	Top    core.Vec3
}

// DefaultSky returns the white to sky-blue gradient
func DefaultSky() SkyGradient {
	return SkyGradient{
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
		Top:    core.NewVec3(0.5, 0.7, 1.0),
	}
}

// Color returns the background color for a ray direction.
// A direction too short to normalize sees black.
func (g SkyGradient) Color(direction core.Vec3) core.Vec3 {
	unitDirection, err := direction.Normalize()
	if err != nil {
		return core.Vec3{}
	}

	// Map y from [-1,1] to [0,1]
	a := 0.5 * (unitDirection.Y + 1.0)

	return g.Bottom.Multiply(1.0 - a).Add(g.Top.Multiply(a))
}
