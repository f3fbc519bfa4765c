package ledger

import (
	"context"
	"math"

	"github.com/skyburst-games/popmeta/internal/domain"
	"github.com/skyburst-games/popmeta/internal/event"
	"github.com/skyburst-games/popmeta/internal/logger"
	"github.com/skyburst-games/popmeta/internal/utils"
)

// tierChange records one tier crossing for event publication after unlock.
type tierChange struct {
	oldTier int
	newTier int
}

// XPRequirement returns the XP needed to clear the given tier:
// baseXP * scalingFactor^tier, floored.
func (s *service) XPRequirement(tier int) int {
	return int(math.Floor(float64(s.cfg.BattlePass.BaseXP) * math.Pow(s.cfg.BattlePass.ScalingFactor, float64(tier))))
}

func (s *service) EarnXP(ctx context.Context, playerID string, amount int, source string) error {
	if amount <= 0 {
		return nil
	}

	agg := s.aggregate(ctx, playerID)

	agg.mu.Lock()
	changes := s.earnXPLocked(ctx, agg, amount, source)
	s.saveProgressLocked(ctx, playerID, agg)
	agg.mu.Unlock()

	s.publishTierChanges(ctx, playerID, source, changes)
	return nil
}

// earnXPLocked applies source multipliers and converts XP to tiers with a
// loop: a single large grant can cross several tiers. Excess XP at the
// maximum tier accumulates without converting further. Callers hold the
// aggregate mutex and publish the returned changes after unlocking.
func (s *service) earnXPLocked(ctx context.Context, agg *playerAggregate, amount int, source string) []tierChange {
	multiplier := 1.0
	if m, ok := s.cfg.BattlePass.SourceMultipliers[source]; ok && m > 0 {
		multiplier = m
	}
	adjusted := utils.FloorScale(amount, multiplier)

	bp := &agg.progress.BattlePass
	bp.CurrentXP += adjusted

	var changes []tierChange
	for bp.CurrentTier < s.cfg.BattlePass.MaxTier {
		required := s.XPRequirement(bp.CurrentTier)
		if bp.CurrentXP < required {
			break
		}
		bp.CurrentXP -= required
		bp.CurrentTier++
		changes = append(changes, tierChange{oldTier: bp.CurrentTier - 1, newTier: bp.CurrentTier})
	}

	if len(changes) > 0 {
		logger.FromContext(ctx).Info(LogMsgTierUp,
			"player_id", agg.progress.PlayerID, "tier", bp.CurrentTier, "crossed", len(changes), "source", source)
	}
	return changes
}

func (s *service) publishTierChanges(ctx context.Context, playerID, source string, changes []tierChange) {
	for _, change := range changes {
		s.publisher.PublishWithRetry(ctx, event.NewTierUpEvent(playerID, change.oldTier, change.newTier, source))
	}
}

func (s *service) BattlePass(ctx context.Context, playerID string) (domain.BattlePassProgress, int, error) {
	agg := s.aggregate(ctx, playerID)
	agg.mu.Lock()
	defer agg.mu.Unlock()

	bp := agg.progress.BattlePass
	return bp, s.XPRequirement(bp.CurrentTier), nil
}
