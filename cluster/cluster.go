package cluster

import (
	"sort"

	"github.com/glovevision/markertrack/tracker"
	"gonum.org/v1/gonum/stat"
)

// Cluster is a small group of tracked points, eg the three markers of
// one glove triangle, with its centroid
type Cluster struct {
	// Points are the cluster members
	Points []*tracker.TrackedPoint
	// Center is the centroid of the member positions
	Center tracker.Vec2
}

// Finder groups tracked points into clusters by proximity.  It is
// stateless, call Find on the tracker's output after each pass.
type Finder struct {
	// maxRadius is the maximum distance a member may sit from the
	// cluster centroid
	maxRadius float64
	// maxSize caps the number of members per cluster, zero for no cap
	maxSize int
}

// NewFinder returns a new cluster Finder.  maxRadius is the maximum
// centroid-to-member distance in pixels and maxSize caps cluster
// membership (use 3 for triangle marker groups, 0 for unlimited).
func NewFinder(maxRadius float64, maxSize int) *Finder {
	return &Finder{
		maxRadius: maxRadius,
		maxSize:   maxSize,
	}
}

// pair is a candidate merge of two points
type pair struct {
	a, b   int
	distSq float64
}

// centroid returns the mean position of the given points
func centroid(points []*tracker.TrackedPoint) tracker.Vec2 {

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))

	for i, p := range points {
		pos := p.GetPosition()
		xs[i] = pos.X
		ys[i] = pos.Y
	}

	return tracker.Vec2{
		X: stat.Mean(xs, nil),
		Y: stat.Mean(ys, nil),
	}
}

// fits reports whether every member would remain within maxRadius of
// the centroid formed by members plus the extra point
func (f *Finder) fits(members []*tracker.TrackedPoint, extra *tracker.TrackedPoint) (tracker.Vec2, bool) {

	sim := make([]*tracker.TrackedPoint, 0, len(members)+1)
	sim = append(sim, members...)
	sim = append(sim, extra)

	center := centroid(sim)
	maxSq := f.maxRadius * f.maxRadius

	for _, p := range sim {
		if center.DistSquared(p.GetPosition()) > maxSq {
			return tracker.Vec2{}, false
		}
	}

	return center, true
}

// Find groups the given points into clusters.  Pairs are considered in
// ascending distance order with index tie-breaks, so identical input
// always produces identical clusters.  Points that pair with nothing
// are left out of the result.
func (f *Finder) Find(points []*tracker.TrackedPoint) []*Cluster {

	// pairs further apart than twice the radius can never share a
	// centroid within bounds
	gateSq := (f.maxRadius * 2) * (f.maxRadius * 2)

	var pairs []pair

	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {

			distSq := points[i].GetPosition().DistSquared(points[j].GetPosition())

			if distSq > gateSq {
				continue
			}

			pairs = append(pairs, pair{a: i, b: j, distSq: distSq})
		}
	}

	sort.Slice(pairs, func(x, y int) bool {
		if pairs[x].distSq != pairs[y].distSq {
			return pairs[x].distSq < pairs[y].distSq
		}
		if pairs[x].a != pairs[y].a {
			return pairs[x].a < pairs[y].a
		}
		return pairs[x].b < pairs[y].b
	})

	assigned := make(map[int]*Cluster)
	var clusters []*Cluster

	for _, pr := range pairs {

		ca, aOK := assigned[pr.a]
		cb, bOK := assigned[pr.b]

		switch {
		case aOK && bOK:
			// both already clustered, nothing to merge

		case !aOK && !bOK:
			// distance was already gated, the pair starts a new cluster
			c := &Cluster{
				Points: []*tracker.TrackedPoint{points[pr.a], points[pr.b]},
			}
			c.Center = centroid(c.Points)
			assigned[pr.a] = c
			assigned[pr.b] = c
			clusters = append(clusters, c)

		case aOK:
			f.grow(ca, points[pr.b], pr.b, assigned)

		default:
			f.grow(cb, points[pr.a], pr.a, assigned)
		}
	}

	return clusters
}

// grow adds the point to the cluster if the size cap allows and every
// member stays within radius of the recomputed centroid
func (f *Finder) grow(c *Cluster, p *tracker.TrackedPoint, idx int, assigned map[int]*Cluster) {

	if f.maxSize > 0 && len(c.Points) >= f.maxSize {
		return
	}

	center, ok := f.fits(c.Points, p)

	if !ok {
		return
	}

	c.Points = append(c.Points, p)
	c.Center = center
	assigned[idx] = c
}
