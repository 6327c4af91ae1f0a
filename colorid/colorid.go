/*
Package colorid classifies marker colors.  The vision front-end reports
each blob's mean color as an HSV triple with all channels normalized to
[0,1] (hue mapped from 0..2pi), this package matches such triples
against a reference palette of the sticker colors in use.
*/
package colorid

import (
	"math"
	"sort"
)

// HSV is a color with hue, saturation and value each in [0,1]
type HSV [3]float64

// palette holds the reference sticker colors, measured under the rig
// lighting rather than their nominal values
var palette = map[string]HSV{
	"blue":   {1.0, 0.0, 0.0},
	"green":  {0.40, 1.00, 0.30},
	"yellow": {0.00, 1.00, 0.60},
	"red":    {0.15, 0.30, 0.60},
	"pink":   {1.00, 0.50, 0.60},
	"white":  {0.50, 0.10, 0.50},
}

// Names returns the palette color names in sorted order
func Names() []string {

	names := make([]string, 0, len(palette))

	for name := range palette {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// FromBGR converts an 8 bit BGR color (as produced by a gocv mean over
// a contour mask) to a normalized HSV triple
func FromBGR(b, g, r float64) HSV {
	return fromUnitRGB(b/255.0, g/255.0, r/255.0)
}

// fromUnitRGB converts unit-range BGR channels to normalized HSV
func fromUnitRGB(b, g, r float64) HSV {

	min := math.Min(r, math.Min(g, b))
	max := math.Max(r, math.Max(g, b))
	rng := max - min

	if max == 0 || rng == 0 {
		return HSV{}
	}

	var hue float64

	switch max {
	case r:
		hue = (g - b) / rng
	case g:
		hue = 2 + (b-r)/rng
	default:
		hue = 4 + (r-g)/rng
	}

	hue *= math.Pi / 3

	if hue < 0 {
		hue += 2 * math.Pi
	}

	return HSV{
		hue / (2 * math.Pi),
		rng / max,
		max,
	}
}

// DistanceSquared returns the squared Euclidean distance between two
// colors
func DistanceSquared(a, b HSV) float64 {
	dh := b[0] - a[0]
	ds := b[1] - a[1]
	dv := b[2] - a[2]
	return dh*dh + ds*ds + dv*dv
}

// Classify returns the palette names within tolerance of the given
// color, nearest first.  Equal distances break ties alphabetically so
// results are reproducible.  A tolerance of zero or less disables the
// cutoff and ranks the whole palette.
func Classify(c HSV, tolerance float64) []string {

	names := Names()

	sort.SliceStable(names, func(i, j int) bool {
		return DistanceSquared(palette[names[i]], c) <
			DistanceSquared(palette[names[j]], c)
	})

	if tolerance <= 0 {
		return names
	}

	matched := names[:0]

	for _, name := range names {
		if DistanceSquared(palette[name], c) <= tolerance {
			matched = append(matched, name)
		}
	}

	return matched
}

// Best returns the nearest palette name within the default tolerance,
// or false when the color matches nothing
func Best(c HSV) (string, bool) {

	names := Classify(c, 0.5)

	if len(names) == 0 {
		return "", false
	}

	return names[0], true
}
