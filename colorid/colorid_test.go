package colorid

import (
	"math"
	"testing"
)

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestFromBGRPrimaries(t *testing.T) {

	cases := []struct {
		name    string
		b, g, r float64
		want    HSV
	}{
		{"red", 0, 0, 255, HSV{0, 1, 1}},
		{"green", 0, 255, 0, HSV{1.0 / 3.0, 1, 1}},
		{"blue", 255, 0, 0, HSV{2.0 / 3.0, 1, 1}},
		{"black", 0, 0, 0, HSV{0, 0, 0}},
		{"white", 255, 255, 255, HSV{0, 0, 0}}, // zero range short circuits
		{"gray half", 128, 128, 128, HSV{0, 0, 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {

			got := FromBGR(tc.b, tc.g, tc.r)

			for i := 0; i < 3; i++ {
				if !almostEqual(got[i], tc.want[i], 1e-9) {
					t.Errorf("channel %d: expected %v, got %v",
						i, tc.want[i], got[i])
				}
			}
		})
	}
}

func TestFromBGRMidtone(t *testing.T) {

	// orange: r=255 g=128 b=0, hue = (128/255)/6 of a turn
	got := FromBGR(0, 128, 255)

	wantHue := (128.0 / 255.0) / 6.0

	if !almostEqual(got[0], wantHue, 1e-9) {
		t.Errorf("expected hue %v, got %v", wantHue, got[0])
	}

	if !almostEqual(got[1], 1, 1e-9) || !almostEqual(got[2], 1, 1e-9) {
		t.Errorf("expected full saturation and value, got %v", got)
	}
}

func TestClassifyNearest(t *testing.T) {

	// palette entries classify as themselves
	for _, name := range Names() {

		got := Classify(palette[name], 0.5)

		if len(got) == 0 || got[0] != name {
			t.Errorf("expected %q to classify as itself, got %v", name, got)
		}
	}

	// saturated bright yellow-ish sample
	got := Classify(HSV{0, 1, 1}, 0)

	if got[0] != "yellow" {
		t.Errorf("expected yellow as nearest, got %v", got)
	}
}

func TestClassifyTolerance(t *testing.T) {

	// far from everything with a tight tolerance
	got := Classify(HSV{0.75, 1, 1}, 0.05)

	if len(got) != 0 {
		t.Errorf("expected no matches within tolerance, got %v", got)
	}

	// no tolerance ranks the whole palette
	all := Classify(HSV{0.75, 1, 1}, 0)

	if len(all) != len(Names()) {
		t.Errorf("expected full ranking, got %d names", len(all))
	}
}

func TestBest(t *testing.T) {

	name, ok := Best(HSV{0.4, 1.0, 0.3})

	if !ok || name != "green" {
		t.Errorf("expected green, got %q ok=%v", name, ok)
	}

	if _, ok := Best(HSV{2.5, 2.5, 2.5}); ok {
		t.Error("expected no match for an out of gamut color")
	}
}

func TestDistanceSquared(t *testing.T) {

	a := HSV{0, 0, 0}
	b := HSV{1, 2, 2}

	if got := DistanceSquared(a, b); !almostEqual(got, 9, 1e-12) {
		t.Errorf("expected 9, got %v", got)
	}

	if got := DistanceSquared(b, b); got != 0 {
		t.Errorf("expected 0 for identical colors, got %v", got)
	}
}
