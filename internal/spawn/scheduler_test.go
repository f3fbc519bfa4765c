package spawn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyburst-games/popmeta/internal/config"
	"github.com/skyburst-games/popmeta/internal/utils"
)

func testSpawnConfig() config.SpawnConfig {
	return config.SpawnConfig{AverageInterval: 12, Deviation: 3, MinInterval: 6, MaxInterval: 20}
}

func TestThresholdAlwaysWithinBounds(t *testing.T) {
	configs := []config.SpawnConfig{
		testSpawnConfig(),
		{AverageInterval: 5, Deviation: 10, MinInterval: 2, MaxInterval: 8},
		{AverageInterval: 3, Deviation: 0, MinInterval: 1, MaxInterval: 10},
		{AverageInterval: 50, Deviation: 1, MinInterval: 40, MaxInterval: 60},
	}

	for _, cfg := range configs {
		s := NewScheduler(cfg, utils.NewRand(17))
		for i := 0; i < 10000; i++ {
			threshold := s.NextThreshold()
			assert.GreaterOrEqual(t, threshold, cfg.MinInterval)
			assert.LessOrEqual(t, threshold, cfg.MaxInterval)
			s.RecomputeThreshold()
		}
	}
}

func TestSchedulerAlwaysHasPendingThreshold(t *testing.T) {
	s := NewScheduler(testSpawnConfig(), utils.NewRand(1))
	require.GreaterOrEqual(t, s.NextThreshold(), 1)

	// Drive through several bonus cycles; after each hit a new threshold must
	// already be pending.
	for bonuses := 0; bonuses < 50; {
		if s.OnOrdinarySpawn() {
			bonuses++
			assert.GreaterOrEqual(t, s.NextThreshold(), testSpawnConfig().MinInterval)
			assert.Zero(t, s.EventsSinceLastBonus())
		}
	}
	assert.Equal(t, 50, s.SessionBonusCount())
}

func TestBonusFiresExactlyAtThreshold(t *testing.T) {
	s := NewScheduler(testSpawnConfig(), utils.NewRand(9))
	threshold := s.NextThreshold()

	for i := 0; i < threshold-1; i++ {
		assert.False(t, s.OnOrdinarySpawn())
	}
	assert.True(t, s.OnOrdinarySpawn())
	assert.Equal(t, 1, s.SessionBonusCount())
}

func TestIntervalMeanTracksConfiguredAverage(t *testing.T) {
	cfg := testSpawnConfig()
	s := NewScheduler(cfg, utils.NewRand(23))

	const draws = 20000
	sum := 0
	for i := 0; i < draws; i++ {
		sum += s.NextThreshold()
		s.RecomputeThreshold()
	}

	mean := float64(sum) / draws
	assert.InDelta(t, cfg.AverageInterval, mean, 0.5)
}

func TestResetSessionClearsCounters(t *testing.T) {
	s := NewScheduler(testSpawnConfig(), utils.NewRand(4))
	for s.SessionBonusCount() == 0 {
		s.OnOrdinarySpawn()
	}
	s.OnOrdinarySpawn()
	require.Positive(t, s.EventsSinceLastBonus())

	s.ResetSession()
	assert.Zero(t, s.SessionBonusCount())
	assert.Zero(t, s.EventsSinceLastBonus())
	assert.GreaterOrEqual(t, s.NextThreshold(), testSpawnConfig().MinInterval)
}

func TestZeroDeviationYieldsConstantThreshold(t *testing.T) {
	cfg := config.SpawnConfig{AverageInterval: 8, Deviation: 0, MinInterval: 1, MaxInterval: 20}
	s := NewScheduler(cfg, utils.NewRand(2))

	for i := 0; i < 100; i++ {
		assert.Equal(t, 8, s.NextThreshold())
		s.RecomputeThreshold()
	}
}
