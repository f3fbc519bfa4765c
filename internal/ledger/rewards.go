package ledger

import (
	"context"
	"time"

	"github.com/skyburst-games/popmeta/internal/domain"
	"github.com/skyburst-games/popmeta/internal/event"
	"github.com/skyburst-games/popmeta/internal/logger"
	"github.com/skyburst-games/popmeta/internal/metrics"
)

// ProcessMysteryReward type-dispatches a sampled reward into the appropriate
// ledger mutation and appends it to the reward history log. Nested boxes
// expand recursively into their leaf rewards.
func (s *service) ProcessMysteryReward(ctx context.Context, playerID string, r domain.MysteryReward) error {
	agg := s.aggregate(ctx, playerID)
	now := s.clock().UTC()

	agg.mu.Lock()
	var changes []tierChange
	isBox := false

	switch r.Type {
	case domain.RewardTypeCoins:
		agg.progress.Coins += r.Amount
		metrics.CoinsGranted.Add(float64(r.Amount))

	case domain.RewardTypeXP:
		changes = s.earnXPLocked(ctx, agg, r.Amount, XPSourceMystery)

	case domain.RewardTypeCosmetic:
		agg.progress.UnlockedCosmetics[r.ItemKey] = true

	case domain.RewardTypeScoreMultiplier:
		// Session scope only; expires at level end.
		agg.session.multipliers = append(agg.session.multipliers, r.Multiplier)

	case domain.RewardTypeMysteryBox:
		// Expansion happens outside the lock; the box itself still counts
		// in the history log.
		isBox = true
	}

	agg.progress.MysteryRewards++
	appendRewardHistory(agg.progress, r, now)
	level := agg.session.level
	s.saveProgressLocked(ctx, playerID, agg)
	agg.mu.Unlock()

	s.publishTierChanges(ctx, playerID, XPSourceMystery, changes)
	s.publisher.PublishWithRetry(ctx, event.NewRewardGrantedEvent(playerID, r))
	logger.FromContext(ctx).Info(LogMsgRewardProcessed,
		"player_id", playerID, "type", r.Type, "rarity", r.Rarity, "amount", r.Amount)

	if isBox {
		if level < 1 {
			level = 1
		}
		for _, leaf := range s.sampler.ExpandBox(ctx, r, level) {
			if err := s.ProcessMysteryReward(ctx, playerID, leaf); err != nil {
				return err
			}
		}
	}

	s.challenges.OnStatChanged(ctx, playerID, domain.MetricMysteryRewards, 1)
	return nil
}

// appendRewardHistory keeps the last RewardHistoryLimit grants.
func appendRewardHistory(p *domain.PlayerProgress, r domain.MysteryReward, now time.Time) {
	p.RewardHistory = append(p.RewardHistory, domain.RewardRecord{
		Type:      r.Type,
		Rarity:    r.Rarity,
		Amount:    r.Amount,
		ItemKey:   r.ItemKey,
		GrantedAt: now,
	})
	if len(p.RewardHistory) > RewardHistoryLimit {
		p.RewardHistory = p.RewardHistory[len(p.RewardHistory)-RewardHistoryLimit:]
	}
}

// ClaimChallengeReward claims through the challenge service and credits the
// returned reward. A nil reward means not claimable; that is not an error.
func (s *service) ClaimChallengeReward(ctx context.Context, playerID, challengeID string) (*domain.ChallengeReward, error) {
	reward, err := s.challenges.ClaimReward(ctx, playerID, challengeID)
	if err != nil || reward == nil {
		return nil, err
	}

	agg := s.aggregate(ctx, playerID)

	agg.mu.Lock()
	agg.progress.Coins += reward.Coins
	changes := s.earnXPLocked(ctx, agg, reward.XP, XPSourceChallenge)
	s.saveProgressLocked(ctx, playerID, agg)
	agg.mu.Unlock()

	s.publishTierChanges(ctx, playerID, XPSourceChallenge, changes)
	logger.FromContext(ctx).Info(LogMsgChallengeRewardApplied,
		"player_id", playerID, "challenge_id", challengeID, "coins", reward.Coins, "xp", reward.XP)

	s.checkAchievements(ctx, playerID)
	return reward, nil
}
