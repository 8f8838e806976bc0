package core

import "math"

// Point is a 2D position in the scenario plane, in metres.
type Point struct {
	X float64 `json:"X"`
	Y float64 `json:"Y"`
}

// DistanceTo returns the straight-line distance between two points, in metres.
func (p Point) DistanceTo(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BearingTo returns the angle from p to other in radians, measured
// counter-clockwise from the +x axis, in (-π, π]. For coincident points the
// bearing is undefined; this implementation returns 0 as the documented
// fallback so that callers annotating a plot never see NaN.
func (p Point) BearingTo(other Point) float64 {
	dx := other.X - p.X
	dy := other.Y - p.Y
	if dx == 0 && dy == 0 {
		return 0
	}
	return math.Atan2(dy, dx)
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
