package ledger

import (
	"context"

	"github.com/skyburst-games/popmeta/internal/domain"
	"github.com/skyburst-games/popmeta/internal/event"
	"github.com/skyburst-games/popmeta/internal/logger"
)

// CheckAchievements evaluates every locked achievement against the player's
// cumulative statistics. Unlocks are idempotent: once unlocked an achievement
// is never re-evaluated and its reward is granted exactly once.
func (s *service) CheckAchievements(ctx context.Context, playerID string) ([]domain.Achievement, error) {
	agg := s.aggregate(ctx, playerID)
	now := s.clock().UTC()

	agg.mu.Lock()
	var unlocked []domain.Achievement
	for _, ach := range s.cfg.Achievements {
		prog, ok := agg.progress.Achievements[ach.ID]
		if !ok {
			prog = &domain.AchievementProgress{AchievementID: ach.ID}
			agg.progress.Achievements[ach.ID] = prog
		}
		if prog.Unlocked() {
			continue
		}

		prog.Current = agg.progress.Stat(ach.Metric)
		if prog.Current < ach.Target {
			continue
		}

		unlockedAt := now
		prog.UnlockedAt = &unlockedAt
		agg.progress.Coins += ach.RewardCoins
		agg.newAchievements = append(agg.newAchievements, ach)
		unlocked = append(unlocked, ach)
	}

	if len(unlocked) > 0 {
		s.saveProgressLocked(ctx, playerID, agg)
	}
	agg.mu.Unlock()

	log := logger.FromContext(ctx)
	for _, ach := range unlocked {
		s.publisher.PublishWithRetry(ctx, event.NewAchievementUnlockedEvent(playerID, ach))
		log.Info(LogMsgAchievementUnlocked, "player_id", playerID, "achievement_id", ach.ID)
	}

	return unlocked, nil
}

// checkAchievements is the fire-and-forget form used on gameplay paths.
func (s *service) checkAchievements(ctx context.Context, playerID string) {
	if _, err := s.CheckAchievements(ctx, playerID); err != nil {
		logger.FromContext(ctx).Warn("Achievement check failed", "player_id", playerID, "error", err)
	}
}

// NewAchievements returns the unlock queue awaiting UI acknowledgment.
func (s *service) NewAchievements(ctx context.Context, playerID string) ([]domain.Achievement, error) {
	agg := s.aggregate(ctx, playerID)
	agg.mu.Lock()
	defer agg.mu.Unlock()
	return append([]domain.Achievement(nil), agg.newAchievements...), nil
}

// ClearNewAchievements empties the unlock queue once the UI has shown it.
func (s *service) ClearNewAchievements(ctx context.Context, playerID string) error {
	agg := s.aggregate(ctx, playerID)
	agg.mu.Lock()
	defer agg.mu.Unlock()
	agg.newAchievements = nil
	return nil
}
