package geometry

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// ShapeList is an ordered collection of shapes that reports the nearest hit.
// It must not be modified while a render is reading it.
type ShapeList struct {
	Shapes []Shape
}

// NewShapeList creates a list holding the given shapes in order
func NewShapeList(shapes ...Shape) *ShapeList {
	return &ShapeList{Shapes: shapes}
}

// Add appends shapes to the list
func (l *ShapeList) Add(shapes ...Shape) {
	l.Shapes = append(l.Shapes, shapes...)
}

// Len returns the number of shapes
func (l *ShapeList) Len() int {
	return len(l.Shapes)
}

// Hit returns the closest intersection across all shapes.
// On equal t the first shape in the list wins.
func (l *ShapeList) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := rayT.Max

	for _, shape := range l.Shapes {
		if hit, isHit := shape.Hit(ray, core.NewInterval(rayT.Min, closestSoFar)); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
