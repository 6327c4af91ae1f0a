package tracker

import (
	"errors"
	"math"
)

// ErrDegenerateVector is returned by Normalize when the vector magnitude
// is too close to zero for a direction to be derived
var ErrDegenerateVector = errors.New("cannot normalize degenerate vector")

// degenerateNorm is the magnitude below which a vector is treated as zero
const degenerateNorm = 1e-9

// Vec2 represents a 2D vector, also used for pixel positions
type Vec2 struct {
	X, Y float64
}

// Add returns the vector sum v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns the vector difference v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns the vector scaled by s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Norm returns the Euclidean magnitude of the vector
func (v Vec2) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the Euclidean distance between two positions
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(o.X-v.X, o.Y-v.Y)
}

// DistSquared returns the squared Euclidean distance between two positions
func (v Vec2) DistSquared(o Vec2) float64 {
	dx := o.X - v.X
	dy := o.Y - v.Y
	return dx*dx + dy*dy
}

// Cross returns the z component of the cross product v x o
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Normalize returns the unit vector with the same direction as v.  It
// returns ErrDegenerateVector when the magnitude is (near) zero, which
// happens for points that have been stationary across the whole velocity
// window.  Callers fall back to a proximity search region in that case.
func (v Vec2) Normalize() (Vec2, error) {
	n := v.Norm()

	if n < degenerateNorm {
		return Vec2{}, ErrDegenerateVector
	}

	return Vec2{v.X / n, v.Y / n}, nil
}

// Rotate returns the vector rotated counter-clockwise by theta radians
func (v Vec2) Rotate(theta float64) Vec2 {
	sin, cos := math.Sincos(theta)

	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}
