package tracker

import (
	"errors"
	"math"
	"testing"
)

// almostEqual checks if two float64 values are approximately equal
func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestVec2Normalize(t *testing.T) {

	v := Vec2{3, 4}

	uv, err := v.Normalize()

	if err != nil {
		t.Fatalf("unexpected error normalizing %v: %v", v, err)
	}

	if !almostEqual(uv.X, 0.6, 1e-12) || !almostEqual(uv.Y, 0.8, 1e-12) {
		t.Errorf("expected unit vector (0.6, 0.8), got %v", uv)
	}

	if !almostEqual(uv.Norm(), 1.0, 1e-12) {
		t.Errorf("expected unit magnitude, got %v", uv.Norm())
	}
}

func TestVec2NormalizeDegenerate(t *testing.T) {

	for _, v := range []Vec2{{}, {1e-12, 0}, {0, -1e-15}} {

		_, err := v.Normalize()

		if !errors.Is(err, ErrDegenerateVector) {
			t.Errorf("expected ErrDegenerateVector for %v, got %v", v, err)
		}
	}
}

func TestVec2Rotate(t *testing.T) {

	v := Vec2{1, 0}

	// quarter turn counter-clockwise
	r := v.Rotate(math.Pi / 2)

	if !almostEqual(r.X, 0, 1e-12) || !almostEqual(r.Y, 1, 1e-12) {
		t.Errorf("expected (0, 1), got %v", r)
	}

	// rotation preserves magnitude
	long := Vec2{-3, 7}
	rot := long.Rotate(1.234)

	if !almostEqual(rot.Norm(), long.Norm(), 1e-9) {
		t.Errorf("rotation changed magnitude from %v to %v",
			long.Norm(), rot.Norm())
	}

	// opposite rotations cancel
	back := rot.Rotate(-1.234)

	if !almostEqual(back.X, long.X, 1e-9) || !almostEqual(back.Y, long.Y, 1e-9) {
		t.Errorf("expected %v after round trip, got %v", long, back)
	}
}

func TestVec2Dist(t *testing.T) {

	a := Vec2{1, 2}
	b := Vec2{4, 6}

	if got := a.Dist(b); !almostEqual(got, 5, 1e-12) {
		t.Errorf("expected distance 5, got %v", got)
	}

	if got := a.DistSquared(b); !almostEqual(got, 25, 1e-12) {
		t.Errorf("expected squared distance 25, got %v", got)
	}
}

func TestVec2Cross(t *testing.T) {

	// right-handed cross of the axes is positive
	if got := (Vec2{1, 0}).Cross(Vec2{0, 1}); !almostEqual(got, 1, 1e-12) {
		t.Errorf("expected cross 1, got %v", got)
	}

	// parallel vectors have zero cross product
	if got := (Vec2{2, 3}).Cross(Vec2{4, 6}); !almostEqual(got, 0, 1e-12) {
		t.Errorf("expected cross 0, got %v", got)
	}
}
