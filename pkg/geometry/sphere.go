package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

var (
	// ErrInvalidRadius is returned for negative or NaN sphere radii
	ErrInvalidRadius = errors.New("invalid sphere radius")
	// ErrNilMaterial is returned when a shape is created without a material
	ErrNilMaterial = errors.New("shape material is nil")
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere, rejecting radii that would break unit-length normals
func NewSphere(center core.Vec3, radius float64, mat material.Material) (*Sphere, error) {
	if radius < 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}
	if mat == nil {
		return nil, ErrNilMaterial
	}

	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}, nil
}

// MustSphere is NewSphere for literal scene data; it panics on invalid input
func MustSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	sphere, err := NewSphere(center, radius, mat)
	if err != nil {
		panic(err)
	}
	return sphere
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	// A point sphere has no surface to hit
	if s.Radius == 0 {
		return nil, false
	}

	// Vector from ray origin to sphere center
	oc := s.Center.Subtract(ray.Origin)

	// Quadratic with b = -2h: at² - 2ht + c = 0
	a := ray.Direction.LengthSquared()
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (h - sqrtD) / a
	if !rayT.Surrounds(root) {
		root = (h + sqrtD) / a
		if !rayT.Surrounds(root) {
			return nil, false
		}
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	outwardNormal := hitRecord.Point.Subtract(s.Center).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}
