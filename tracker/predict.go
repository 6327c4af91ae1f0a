package tracker

import (
	"gonum.org/v1/gonum/stat"
)

// velocity returns the mean per frame displacement over the most recent
// cfg.WindowSize history entries.  Averaging the consecutive deltas
// rather than taking a single endpoint delta smooths detector jitter.
// ok is false when the history is shorter than VelocityPredictMinimum
// and no estimate can be made.
func (p *TrackedPoint) velocity() (Vec2, bool) {

	if len(p.history) < p.cfg.VelocityPredictMinimum {
		return Vec2{}, false
	}

	window := p.history

	if len(window) > p.cfg.WindowSize {
		window = window[len(window)-p.cfg.WindowSize:]
	}

	dxs := make([]float64, 0, len(window)-1)
	dys := make([]float64, 0, len(window)-1)

	for i := 1; i < len(window); i++ {
		dxs = append(dxs, window[i].X-window[i-1].X)
		dys = append(dys, window[i].Y-window[i-1].Y)
	}

	return Vec2{
		X: stat.Mean(dxs, nil),
		Y: stat.Mean(dys, nil),
	}, true
}

// PredictAt returns the predicted position offset frames into the
// future along the line a + t*n, where a is the latest position and n
// the mean velocity.  Points without enough history for a velocity
// estimate predict their current position.
func (p *TrackedPoint) PredictAt(offset int) Vec2 {

	v, ok := p.velocity()

	if !ok {
		return p.GetPosition()
	}

	return p.GetPosition().Add(v.Scale(float64(offset)))
}
