package spawn

import (
	"math"
	"sync"

	"github.com/skyburst-games/popmeta/internal/config"
	"github.com/skyburst-games/popmeta/internal/utils"
)

// Scheduler decides when the next bonus balloon spawns, using a variable-ratio
// schedule: the threshold between bonuses is drawn from a bounded
// pseudo-normal distribution so the interval is unpredictable but never
// degenerate. One instance exists per player session; counters are session
// state and are never persisted.
type Scheduler struct {
	mu  sync.Mutex
	cfg config.SpawnConfig
	rng utils.Rand

	eventsSinceLastBonus int
	nextThreshold        int
	sessionBonusCount    int
}

// NewScheduler draws the initial threshold immediately so the scheduler never
// sits without a pending one.
func NewScheduler(cfg config.SpawnConfig, rng utils.Rand) *Scheduler {
	s := &Scheduler{cfg: cfg, rng: rng}
	s.nextThreshold = s.drawThreshold()
	return s
}

// OnOrdinarySpawn records one ordinary enemy spawn and reports whether the
// bonus threshold has been reached. On a hit the counter resets and a fresh
// threshold is drawn in the same call.
func (s *Scheduler) OnOrdinarySpawn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.eventsSinceLastBonus++
	if s.eventsSinceLastBonus < s.nextThreshold {
		return false
	}

	s.eventsSinceLastBonus = 0
	s.sessionBonusCount++
	s.nextThreshold = s.drawThreshold()
	return true
}

// RecomputeThreshold discards the pending threshold and draws a new one.
func (s *Scheduler) RecomputeThreshold() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextThreshold = s.drawThreshold()
}

// ResetSession clears the session counters at level or session start. The
// pending threshold is redrawn so one session's tail never leaks into the
// next.
func (s *Scheduler) ResetSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eventsSinceLastBonus = 0
	s.sessionBonusCount = 0
	s.nextThreshold = s.drawThreshold()
}

// SessionBonusCount returns how many bonuses have spawned this session.
func (s *Scheduler) SessionBonusCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionBonusCount
}

// NextThreshold returns the pending threshold.
func (s *Scheduler) NextThreshold() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextThreshold
}

// EventsSinceLastBonus returns the current ordinary-spawn counter.
func (s *Scheduler) EventsSinceLastBonus() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eventsSinceLastBonus
}

// drawThreshold samples a normal variate via the Box-Muller transform,
// centers it on the configured average, then clamps to the interval bounds
// and rounds to a whole spawn count. Callers hold the mutex.
func (s *Scheduler) drawThreshold() int {
	// 1 - Float64() keeps u1 in (0, 1] so the log is finite.
	u1 := 1 - s.rng.Float64()
	u2 := s.rng.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

	raw := int(math.Round(s.cfg.AverageInterval + z*s.cfg.Deviation))
	return utils.ClampInt(raw, s.cfg.MinInterval, s.cfg.MaxInterval)
}
