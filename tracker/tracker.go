package tracker

import (
	"fmt"
	"log"
)

// costLimit is the assignment cost above which a point/candidate pair
// is never matched.  Pairs outside each other's search region are
// given the large cost so only region-gated pairs fall below the limit.
const costLimit = large / 2

// Tracker maintains a live set of tracked marker points across video
// frames.  Each Update call runs one full association pass: predict,
// gate, globally optimal assignment, lifecycle bookkeeping.  A Tracker
// is single threaded and frame sequential, it exclusively owns its
// point set and must not be shared between goroutines.  Run one
// Tracker per camera.
type Tracker struct {
	// cfg is the immutable tracker configuration
	cfg Config
	// frameID counts Update calls
	frameID int
	// pointIDCount assigns unique point IDs, never reused
	pointIDCount int
	// points is the live set in creation order
	points []*TrackedPoint
}

// NewTracker initializes and returns a new Tracker.  An invalid
// configuration is returned as an error here, never handled per frame.
func NewTracker(cfg Config) (*Tracker, error) {

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tracker config: %w", err)
	}

	return &Tracker{cfg: cfg}, nil
}

// Update runs one association pass over the candidate detections for
// the next frame and returns the resulting live point set.  Candidates
// that match an existing point refresh it, unmatched points age and
// eventually expire, unmatched candidates spawn new points.
func (t *Tracker) Update(dets []Detection) ([]*TrackedPoint, error) {

	t.frameID++

	// drop malformed candidates individually, one bad detection must
	// not abort the frame
	cands := make([]Detection, 0, len(dets))

	for i, d := range dets {
		if !d.valid() {
			log.Printf("tracker: frame %d: dropping malformed detection %d (%v,%v circ=%v)",
				t.frameID, i, d.X, d.Y, d.Circularity)
			continue
		}

		cands = append(cands, d)
	}

	nPoints := len(t.points)
	nCands := len(cands)

	// Step 1: predict each point, build its search region and gate the
	// candidate pairs into a cost matrix of predicted distances.  Rows
	// follow live set creation order and columns candidate input order,
	// which makes equal cost ties resolve the same way on every run.
	var rowTo []int

	if nPoints > 0 && nCands > 0 {

		cost := make([][]float64, nPoints)

		for i, p := range t.points {

			predicted := p.PredictAt(p.framesSinceSeen + 1)
			region := searchRegionFor(p, predicted, &t.cfg)

			cost[i] = make([]float64, nCands)

			for j, c := range cands {
				if region.contains(c.Pos()) {
					cost[i][j] = predicted.Dist(c.Pos())
				} else {
					cost[i][j] = large
				}
			}
		}

		// Step 2: globally minimize total assigned distance
		var err error
		rowTo, _, err = solveAssignment(cost, costLimit)

		if err != nil {
			return nil, fmt.Errorf("frame %d association: %w", t.frameID, err)
		}
	}

	// Step 3: apply matched/missed transitions
	candMatched := make([]bool, nCands)

	for i, p := range t.points {
		if rowTo != nil && rowTo[i] >= 0 {
			p.matched(cands[rowTo[i]])
			candMatched[rowTo[i]] = true
		} else {
			p.missed()
		}
	}

	// Step 4: remove expired points, preserving creation order
	live := t.points[:0]

	for _, p := range t.points {
		if !p.expired() {
			live = append(live, p)
		}
	}

	t.points = live

	// Step 5: spawn new points for unmatched candidates, in input order
	for j, c := range cands {
		if candMatched[j] {
			continue
		}

		t.pointIDCount++
		t.points = append(t.points, newTrackedPoint(t.pointIDCount, c, &t.cfg))
	}

	return t.Points(), nil
}

// Points returns a snapshot slice of the live point set in creation
// order.  The points themselves are still owned by the tracker and are
// mutated by the next Update call.
func (t *Tracker) Points() []*TrackedPoint {
	out := make([]*TrackedPoint, len(t.points))
	copy(out, t.points)
	return out
}

// GetFrameCount returns the number of frames processed so far
func (t *Tracker) GetFrameCount() int {
	return t.frameID
}

// Reset clears the live point set and frame counter.  Point IDs are
// not reused across a reset, ID uniqueness holds for the lifetime of
// the tracker.
func (t *Tracker) Reset() {
	t.frameID = 0
	t.points = nil
}
