package ledger

import (
	"context"

	"github.com/skyburst-games/popmeta/internal/domain"
	"github.com/skyburst-games/popmeta/internal/event"
	"github.com/skyburst-games/popmeta/internal/logger"
	"github.com/skyburst-games/popmeta/internal/metrics"
)

func (s *service) StartSession(ctx context.Context, playerID string, level int) error {
	if level < 1 {
		level = 1
	}

	agg := s.aggregate(ctx, playerID)
	agg.mu.Lock()
	defer agg.mu.Unlock()

	agg.session = sessionState{
		active:    true,
		level:     level,
		startedAt: s.clock().UTC(),
		balloons:  make(map[string]domain.MysteryBalloon),
	}
	agg.spawner.ResetSession()

	logger.FromContext(ctx).Info(LogMsgSessionStarted, "player_id", playerID, "level", level)
	return nil
}

// EndSession flushes accumulated playtime into the persisted ledger and
// clears all session scope: balloons, multipliers, bonus counters.
func (s *service) EndSession(ctx context.Context, playerID string) error {
	agg := s.aggregate(ctx, playerID)
	agg.mu.Lock()
	defer agg.mu.Unlock()

	if agg.session.active {
		played := int64(s.clock().UTC().Sub(agg.session.startedAt).Seconds())
		if played > 0 {
			agg.progress.PlaytimeSeconds += played
		}
	}

	agg.session = sessionState{}
	agg.spawner.ResetSession()
	s.saveProgressLocked(ctx, playerID, agg)

	logger.FromContext(ctx).Info(LogMsgSessionEnded, "player_id", playerID)
	return nil
}

func (s *service) OnEnemySpawned(ctx context.Context, playerID string) (*domain.MysteryBalloon, error) {
	agg := s.aggregate(ctx, playerID)

	agg.mu.Lock()
	if !agg.spawner.OnOrdinarySpawn() {
		agg.mu.Unlock()
		return nil, nil
	}

	level := agg.session.level
	if level < 1 {
		level = 1
	}

	balloon := s.sampler.NewBalloon(ctx, level, s.rng.Float64(), s.rng.Float64())
	if agg.session.balloons == nil {
		agg.session.balloons = make(map[string]domain.MysteryBalloon)
	}
	s.pruneBalloonsLocked(agg)
	agg.session.balloons[balloon.ID] = balloon
	agg.mu.Unlock()

	s.publisher.PublishWithRetry(ctx, event.NewBonusSpawnEvent(playerID, balloon))
	logger.FromContext(ctx).Info(LogMsgBonusSpawned,
		"player_id", playerID, "balloon_id", balloon.ID, "reward_type", balloon.Reward.Type, "rarity", balloon.Reward.Rarity)

	return &balloon, nil
}

// pruneBalloonsLocked drops unpopped balloons past their collectible age.
func (s *service) pruneBalloonsLocked(agg *playerAggregate) {
	cutoff := s.clock().UTC().Add(-BalloonMaxAge)
	for id, b := range agg.session.balloons {
		if b.SpawnedAt.Before(cutoff) {
			delete(agg.session.balloons, id)
		}
	}
}

func (s *service) OnBalloonPopped(ctx context.Context, playerID, balloonID string, combo int) (*domain.MysteryReward, error) {
	agg := s.aggregate(ctx, playerID)

	agg.mu.Lock()
	agg.progress.BalloonsPopped++
	if combo > agg.progress.LongestCombo {
		agg.progress.LongestCombo = combo
	}

	var collected *domain.MysteryReward
	if balloonID != "" {
		if b, ok := agg.session.balloons[balloonID]; ok && !b.Popped {
			delete(agg.session.balloons, balloonID)
			r := b.Reward
			collected = &r
		}
	}
	s.saveProgressLocked(ctx, playerID, agg)
	agg.mu.Unlock()

	if collected != nil {
		if err := s.ProcessMysteryReward(ctx, playerID, *collected); err != nil {
			return collected, err
		}
	}

	s.challenges.OnStatChanged(ctx, playerID, domain.MetricBalloonsPopped, 1)
	s.checkAchievements(ctx, playerID)
	return collected, nil
}

func (s *service) OnShot(ctx context.Context, playerID string, hit bool) error {
	agg := s.aggregate(ctx, playerID)

	agg.mu.Lock()
	agg.progress.ShotsFired++
	if hit {
		agg.progress.ShotsHit++
	}
	s.saveProgressLocked(ctx, playerID, agg)
	agg.mu.Unlock()

	s.challenges.OnStatChanged(ctx, playerID, domain.MetricShotsFired, 1)
	if hit {
		s.challenges.OnStatChanged(ctx, playerID, domain.MetricShotsHit, 1)
	}
	s.checkAchievements(ctx, playerID)
	return nil
}

func (s *service) SpendCoins(ctx context.Context, playerID string, amount int) (bool, error) {
	if amount <= 0 {
		return false, nil
	}

	agg := s.aggregate(ctx, playerID)
	agg.mu.Lock()
	defer agg.mu.Unlock()

	if agg.progress.Coins < amount {
		logger.FromContext(ctx).Info(LogMsgInsufficientCoins, "player_id", playerID, "amount", amount, "balance", agg.progress.Coins)
		return false, nil
	}

	agg.progress.Coins -= amount
	metrics.CoinsSpent.Add(float64(amount))
	s.saveProgressLocked(ctx, playerID, agg)

	logger.FromContext(ctx).Info(LogMsgCoinsSpent, "player_id", playerID, "amount", amount, "balance", agg.progress.Coins)
	return true, nil
}
