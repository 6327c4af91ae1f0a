package tracker

import (
	"fmt"
	"math"
)

// Config holds the tracker tunables.  A Config is copied by NewTracker
// and never mutated afterwards, there is no process wide tracker state.
type Config struct {
	// BufferLength is the maximum number of position history entries
	// retained per point, oldest entries are evicted on overflow
	BufferLength int
	// MaxDistance is the fallback search radius in pixels used when a
	// point's velocity is degenerate or its history is too short for a
	// prediction
	MaxDistance float64
	// WindowSize is the number of most recent positions used for
	// velocity averaging
	WindowSize int
	// FrameTimeout is the number of consecutive unmatched frames after
	// which a point is removed from the live set
	FrameTimeout int
	// PointMaxHealth is the health ceiling
	PointMaxHealth int
	// VelocityPredictMinimum is the minimum history length before a
	// prediction is attempted, shorter histories use the fallback
	// search region
	VelocityPredictMinimum int
	// BoundsMultiplier scales the size of the triangular search cone
	BoundsMultiplier float64
	// RotationTheta is the half angle of the search cone in radians
	RotationTheta float64
}

// DefaultConfig returns tracker tunables suited to tracking glove
// markers in 640x480 video at 30 FPS
func DefaultConfig() Config {
	return Config{
		BufferLength:           50,
		MaxDistance:            320,
		WindowSize:             10,
		FrameTimeout:           20,
		PointMaxHealth:         50,
		VelocityPredictMinimum: 2,
		BoundsMultiplier:       20,
		RotationTheta:          math.Pi / 6,
	}
}

// Validate checks the configuration for values the tracker cannot
// operate with.  An invalid Config is a startup error, it is never
// deferred to per frame handling.
func (c Config) Validate() error {

	if c.BufferLength < 2 {
		return fmt.Errorf("BufferLength must be >= 2, got %d", c.BufferLength)
	}

	if c.MaxDistance <= 0 {
		return fmt.Errorf("MaxDistance must be > 0, got %v", c.MaxDistance)
	}

	if c.WindowSize < 2 {
		return fmt.Errorf("WindowSize must be >= 2, got %d", c.WindowSize)
	}

	if c.FrameTimeout <= 0 {
		return fmt.Errorf("FrameTimeout must be > 0, got %d", c.FrameTimeout)
	}

	if c.PointMaxHealth <= 0 {
		return fmt.Errorf("PointMaxHealth must be > 0, got %d", c.PointMaxHealth)
	}

	if c.VelocityPredictMinimum < 2 {
		return fmt.Errorf("VelocityPredictMinimum must be >= 2, got %d",
			c.VelocityPredictMinimum)
	}

	if c.BoundsMultiplier <= 0 {
		return fmt.Errorf("BoundsMultiplier must be > 0, got %v",
			c.BoundsMultiplier)
	}

	if c.RotationTheta <= 0 || c.RotationTheta >= math.Pi/2 {
		return fmt.Errorf("RotationTheta must be in (0, pi/2), got %v",
			c.RotationTheta)
	}

	return nil
}
