package core

import (
	"errors"
	"math"
)

// degenerateLengthSquared is the squared length below which a vector has no usable direction
const degenerateLengthSquared = 1e-160

// nearZeroTolerance bounds every component of a vector considered zero for scattering
const nearZeroTolerance = 1e-8

// ErrDegenerateVector is returned when normalizing a vector that is too short to have a direction
var ErrDegenerateVector = errors.New("degenerate vector: length is too close to zero")

// Vec3 represents a 3D vector, a point in space or a linear RGB color
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Divide returns the vector divided by a scalar
func (v Vec3) Divide(scalar float64) Vec3 {
	return v.Multiply(1.0 / scalar)
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// MultiplyVec returns component-wise multiplication of two vectors
func (v Vec3) MultiplyVec(other Vec3) Vec3 {
	return Vec3{
		X: v.X * other.X,
		Y: v.Y * other.Y,
		Z: v.Z * other.Z,
	}
}

// Normalize returns a unit vector in the same direction.
// It fails with ErrDegenerateVector instead of producing NaN or Inf components.
func (v Vec3) Normalize() (Vec3, error) {
	lengthSquared := v.LengthSquared()
	if math.IsInf(lengthSquared, 1) {
		// Squaring overflowed; rescale by the largest component first
		largest := math.Max(math.Abs(v.X), math.Max(math.Abs(v.Y), math.Abs(v.Z)))
		v = v.Divide(largest)
		lengthSquared = v.LengthSquared()
	}
	// Also rejects NaN and infinite components
	if !(lengthSquared >= degenerateLengthSquared) {
		return Vec3{}, ErrDegenerateVector
	}
	return v.Divide(math.Sqrt(lengthSquared)), nil
}

// MustNormalize is Normalize for callers that guarantee a non-degenerate vector.
// It panics on a degenerate vector.
func (v Vec3) MustNormalize() Vec3 {
	unit, err := v.Normalize()
	if err != nil {
		panic(err)
	}
	return unit
}

// NearZero reports whether every component is close to zero
func (v Vec3) NearZero() bool {
	return math.Abs(v.X) < nearZeroTolerance &&
		math.Abs(v.Y) < nearZeroTolerance &&
		math.Abs(v.Z) < nearZeroTolerance
}

// Reflect mirrors v about the normal n: r = v - 2*dot(v,n)*n
func Reflect(v, n Vec3) Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Refract bends the unit vector uv through a surface with unit normal n
// using Snell's law, where etaRatio is the ratio of refractive indices η/η'.
func Refract(uv, n Vec3, etaRatio float64) Vec3 {
	cosTheta := math.Min(uv.Negate().Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaRatio)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}
