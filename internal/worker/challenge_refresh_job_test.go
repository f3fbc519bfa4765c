package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyburst-games/popmeta/internal/challenge"
	"github.com/skyburst-games/popmeta/internal/config"
	"github.com/skyburst-games/popmeta/internal/domain"
	"github.com/skyburst-games/popmeta/internal/event"
	"github.com/skyburst-games/popmeta/internal/store"
	"github.com/skyburst-games/popmeta/internal/utils"
)

func newChallengeService(t *testing.T) challenge.Service {
	t.Helper()

	cfg := config.ChallengeConfig{
		Templates: []domain.ChallengeTemplate{
			{Key: "pop_5", Name: "Pop 5", Difficulty: domain.DifficultyEasy, Metric: domain.MetricBalloonsPopped, Target: 5, Weight: 10, Reward: domain.ChallengeReward{Coins: 100, XP: 50}},
		},
		SlotDifficulties:  []domain.Difficulty{domain.DifficultyEasy},
		StreakBonusPerDay: 0.1,
		StreakBonusCap:    1.5,
	}
	publisher := event.NewResilientPublisher(event.NewMemoryBus(), event.DefaultResilientConfig(t.TempDir()+"/dead_letters.jsonl"))
	return challenge.NewService(cfg, store.NewMemoryStore(), publisher, utils.NewRand(7))
}

func TestChallengeRefreshJobSweepsActivePlayers(t *testing.T) {
	svc := newChallengeService(t)
	ctx := context.Background()

	day1 := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	_, err := svc.CheckAndRefresh(ctx, "p1", day1)
	require.NoError(t, err)
	_, err = svc.CheckAndRefresh(ctx, "p2", day1)
	require.NoError(t, err)

	job := NewChallengeRefreshJob(svc)
	day2 := time.Date(2026, 5, 2, 0, 0, 5, 0, time.UTC)
	job.clock = func() time.Time { return day2 }

	require.NoError(t, job.Process(ctx))

	for _, playerID := range []string{"p1", "p2"} {
		snap, err := svc.State(ctx, playerID)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC), snap.DayStart, playerID)
	}
}

func TestChallengeRefreshJobNoopWithinSameDay(t *testing.T) {
	svc := newChallengeService(t)
	ctx := context.Background()

	day1 := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	_, err := svc.CheckAndRefresh(ctx, "p1", day1)
	require.NoError(t, err)

	before, err := svc.State(ctx, "p1")
	require.NoError(t, err)

	job := NewChallengeRefreshJob(svc)
	job.clock = func() time.Time { return day1.Add(2 * time.Hour) }
	require.NoError(t, job.Process(ctx))

	after, err := svc.State(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, before.Challenges, after.Challenges)
	assert.Equal(t, before.DayStart, after.DayStart)
}
