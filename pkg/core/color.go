package core

import (
	"image/color"
	"math"
)

// ColorIntensity is the range a gamma-corrected channel is clamped to before quantization
var ColorIntensity = Interval{Min: 0.0, Max: 0.999}

// LinearToGamma applies gamma 2 correction to a linear channel value
func LinearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// ToRGBA converts a linear color to an 8-bit RGBA pixel with gamma correction and clamping
func ToRGBA(c Vec3) color.RGBA {
	return color.RGBA{
		R: quantize(c.X),
		G: quantize(c.Y),
		B: quantize(c.Z),
		A: 255,
	}
}

func quantize(linear float64) uint8 {
	return uint8(256 * ColorIntensity.Clamp(LinearToGamma(linear)))
}
