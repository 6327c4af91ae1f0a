package tracker

// searchRegion gates which candidates may be associated with a point
type searchRegion interface {
	contains(pt Vec2) bool
}

// triangleRegion is the probable-motion cone for a moving point.  The
// apex sits behind the predicted position to allow for reversals and
// the two arms open in the direction of travel, widening with speed.
type triangleRegion struct {
	pRev, pCCW, pCW Vec2
}

// circleRegion is the fallback proximity region used when a point is
// stationary or has too little history to predict a direction
type circleRegion struct {
	center Vec2
	radius float64
}

// newTriangleRegion builds the cone for predicted position a, raw
// velocity n and its unit form nUV
func newTriangleRegion(a, n, nUV Vec2, multiplier, theta float64) triangleRegion {

	norm := n.Norm()

	return triangleRegion{
		pRev: a.Sub(nUV.Scale(multiplier)),
		pCCW: a.Add(nUV.Rotate(theta).Scale(multiplier * norm)),
		pCW:  a.Add(nUV.Rotate(-theta).Scale(multiplier * norm)),
	}
}

// edgeSide returns which side of the directed edge a->b the point p
// lies on, zero when exactly on the edge
func edgeSide(p, a, b Vec2) float64 {
	return b.Sub(a).Cross(p.Sub(a))
}

// contains performs a half-plane point-in-triangle test.  Points
// exactly on an edge count as contained, so small-velocity cones do not
// starve valid matches on the boundary.
func (r triangleRegion) contains(pt Vec2) bool {

	d1 := edgeSide(pt, r.pRev, r.pCCW)
	d2 := edgeSide(pt, r.pCCW, r.pCW)
	d3 := edgeSide(pt, r.pCW, r.pRev)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0

	return !(hasNeg && hasPos)
}

// contains reports whether the point lies within the fallback radius,
// boundary inclusive
func (r circleRegion) contains(pt Vec2) bool {
	return r.center.DistSquared(pt) <= r.radius*r.radius
}

// searchRegionFor constructs the search region for a point around its
// predicted position.  Degenerate velocity or insufficient history are
// not errors, both fall back to a fixed radius circle.
func searchRegionFor(p *TrackedPoint, predicted Vec2, cfg *Config) searchRegion {

	v, ok := p.velocity()

	if !ok {
		return circleRegion{center: predicted, radius: cfg.MaxDistance}
	}

	nUV, err := v.Normalize()

	if err != nil {
		// stationary for the whole window, no directional cone exists
		return circleRegion{center: predicted, radius: cfg.MaxDistance}
	}

	return newTriangleRegion(predicted, v, nUV, cfg.BoundsMultiplier,
		cfg.RotationTheta)
}
