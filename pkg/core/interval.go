package core

import "math"

// Interval is a range of real numbers. Min greater than Max denotes an empty interval.
type Interval struct {
	Min, Max float64
}

var (
	// Empty contains no values
	Empty = Interval{Min: math.Inf(1), Max: math.Inf(-1)}
	// Universe contains every value
	Universe = Interval{Min: math.Inf(-1), Max: math.Inf(1)}
)

// NewInterval creates a new interval
func NewInterval(minVal, maxVal float64) Interval {
	return Interval{Min: minVal, Max: maxVal}
}

// Size returns the length of the interval
func (i Interval) Size() float64 {
	return i.Max - i.Min
}

// Contains reports whether x lies in [Min, Max]
func (i Interval) Contains(x float64) bool {
	return i.Min <= x && x <= i.Max
}

// Surrounds reports whether x lies in (Min, Max)
func (i Interval) Surrounds(x float64) bool {
	return i.Min < x && x < i.Max
}

// Clamp projects x into [Min, Max]
func (i Interval) Clamp(x float64) float64 {
	if x < i.Min {
		return i.Min
	}
	if x > i.Max {
		return i.Max
	}
	return x
}
