package tracker

import "math"

// Detection represents a candidate marker sighting produced by a vision
// front-end for a single frame.  Detections are ephemeral, the tracker
// copies what it needs during Update and keeps no reference to them.
type Detection struct {
	// X, Y is the blob centroid in pixels
	X, Y float64
	// Circularity is the blob shape quality in the range [0,1], where
	// 1.0 is a perfect circle
	Circularity float64
	// Color is the mean HSV color of the blob, each channel in [0,1]
	Color [3]float64
}

// NewDetection is a constructor function for the Detection struct
func NewDetection(x, y, circularity float64, color [3]float64) Detection {
	return Detection{
		X:           x,
		Y:           y,
		Circularity: circularity,
		Color:       color,
	}
}

// Pos returns the detection centroid as a Vec2
func (d Detection) Pos() Vec2 {
	return Vec2{d.X, d.Y}
}

// valid reports whether the detection carries finite coordinates and an
// in-range circularity.  Malformed detections are dropped individually
// so one bad input cannot corrupt a whole frame's assignment.
func (d Detection) valid() bool {
	if math.IsNaN(d.X) || math.IsInf(d.X, 0) {
		return false
	}

	if math.IsNaN(d.Y) || math.IsInf(d.Y, 0) {
		return false
	}

	if math.IsNaN(d.Circularity) || d.Circularity < 0 || d.Circularity > 1 {
		return false
	}

	return true
}
