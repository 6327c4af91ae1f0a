package tracker

// healthDecay is how much health an unmatched frame costs.  Decay is
// stronger than growth so a flickering detection cannot keep a stale
// point alive indefinitely.
const healthDecay = 5

// TrackedPoint represents a single marker with a stable identity,
// position history and health lifecycle.  Points are created, mutated
// and removed exclusively by the Tracker that owns them, consumers must
// treat them as read only snapshots between Update calls.
type TrackedPoint struct {
	// id is the unique point ID, assigned at creation and never reused
	id int
	// history holds the most recent matched positions, oldest first,
	// bounded to cfg.BufferLength entries
	history []Vec2
	// health grows by 1 per matched frame up to cfg.PointMaxHealth and
	// decays by healthDecay per unmatched frame
	health int
	// framesSinceSeen counts consecutive unmatched frames
	framesSinceSeen int
	// circularity is the shape quality of the last matched detection
	circularity float64
	// colorWindow holds recent HSV samples for color smoothing, bounded
	// to cfg.WindowSize entries
	colorWindow [][3]float64
	// cfg points at the owning tracker's immutable configuration
	cfg *Config
}

// newTrackedPoint creates a point from a first detection.  New points
// start with zero health and a single entry history.
func newTrackedPoint(id int, det Detection, cfg *Config) *TrackedPoint {

	p := &TrackedPoint{
		id:      id,
		history: make([]Vec2, 0, cfg.BufferLength),
		cfg:     cfg,
	}

	p.matched(det)
	p.health = 0

	return p
}

// matched applies the matched-this-frame transition, position append,
// health growth and quality input refresh
func (p *TrackedPoint) matched(det Detection) {

	p.history = append(p.history, det.Pos())

	if len(p.history) > p.cfg.BufferLength {
		p.history = p.history[1:]
	}

	p.colorWindow = append(p.colorWindow, det.Color)

	if len(p.colorWindow) > p.cfg.WindowSize {
		p.colorWindow = p.colorWindow[1:]
	}

	p.circularity = det.Circularity
	p.framesSinceSeen = 0

	if p.health < p.cfg.PointMaxHealth {
		p.health++
	}
}

// missed applies the not-matched-this-frame transition.  Health has no
// floor, expiry is driven by framesSinceSeen alone.
func (p *TrackedPoint) missed() {
	p.health -= healthDecay
	p.framesSinceSeen++
}

// expired reports whether the point has gone unmatched long enough to
// be removed from the live set
func (p *TrackedPoint) expired() bool {
	return p.framesSinceSeen >= p.cfg.FrameTimeout
}

// GetID returns the unique ID for the point
func (p *TrackedPoint) GetID() int {
	return p.id
}

// GetPosition returns the most recent matched position
func (p *TrackedPoint) GetPosition() Vec2 {
	return p.history[len(p.history)-1]
}

// GetHistory returns a copy of the position history, oldest first
func (p *TrackedPoint) GetHistory() []Vec2 {
	out := make([]Vec2, len(p.history))
	copy(out, p.history)
	return out
}

// GetHealth returns the current point health
func (p *TrackedPoint) GetHealth() int {
	return p.health
}

// GetFramesSinceSeen returns the number of consecutive frames the point
// has gone unmatched, zero when matched this frame
func (p *TrackedPoint) GetFramesSinceSeen() int {
	return p.framesSinceSeen
}

// GetCircularity returns the shape quality of the last matched detection
func (p *TrackedPoint) GetCircularity() float64 {
	return p.circularity
}

// GetQuality returns the derived point quality in [0,1], weighted 75%
// health and 25% shape quality.  Negative health counts as zero.
func (p *TrackedPoint) GetQuality() float64 {

	health := float64(p.health)

	if health < 0 {
		health = 0
	}

	return 0.75*(health/float64(p.cfg.PointMaxHealth)) + 0.25*p.circularity
}

// GetMeanColor returns the mean HSV color over the recent color window
func (p *TrackedPoint) GetMeanColor() [3]float64 {

	var mean [3]float64

	if len(p.colorWindow) == 0 {
		return mean
	}

	for _, c := range p.colorWindow {
		mean[0] += c[0]
		mean[1] += c[1]
		mean[2] += c[2]
	}

	n := float64(len(p.colorWindow))
	mean[0] /= n
	mean[1] /= n
	mean[2] /= n

	return mean
}
