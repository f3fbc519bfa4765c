package ledger

import (
	"context"
	"strconv"
	"strings"

	"github.com/skyburst-games/popmeta/internal/domain"
	"github.com/skyburst-games/popmeta/internal/event"
	"github.com/skyburst-games/popmeta/internal/logger"
)

// thresholdsFor resolves the gold thresholds for a level: explicit config
// first, then the deterministic formula fallback, memoized in an LRU.
func (s *service) thresholdsFor(levelID string) domain.MasteryThresholds {
	if t, ok := s.cfg.Mastery.Levels[levelID]; ok {
		return t
	}
	if t, ok := s.thresholds.Get(levelID); ok {
		return t
	}

	n := levelNumber(levelID)
	t := domain.MasteryThresholds{
		GoldTimeMs:   s.cfg.Mastery.FallbackBaseTimeMs + s.cfg.Mastery.FallbackTimePerLevelMs*n,
		GoldAccuracy: s.cfg.Mastery.FallbackGoldAccuracy,
		GoldStyle:    s.cfg.Mastery.FallbackBaseStyle + s.cfg.Mastery.FallbackStylePerLevel*n,
	}
	s.thresholds.Add(levelID, t)
	return t
}

// levelNumber extracts the trailing ordinal from a level id such as
// "level_12". Ids without one count as level 1.
func levelNumber(levelID string) int {
	i := len(levelID)
	for i > 0 && levelID[i-1] >= '0' && levelID[i-1] <= '9' {
		i--
	}
	n, err := strconv.Atoi(strings.TrimSpace(levelID[i:]))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// RecordLevelCompletion judges a completion against the level's gold
// thresholds, merges best values monotonically, and adds the star delta to
// the lifetime count. Stars come from the best values seen, never a single
// attempt, so they can only accumulate.
func (s *service) RecordLevelCompletion(ctx context.Context, playerID, levelID string, timeMs int, accuracyPct float64, styleScore int) (*domain.LevelMasteryRecord, error) {
	if levelID == "" {
		return nil, domain.ErrInvalidLevelID
	}

	thresholds := s.thresholdsFor(levelID)
	agg := s.aggregate(ctx, playerID)
	now := s.clock().UTC()

	agg.mu.Lock()
	rec, ok := agg.mastery[levelID]
	if !ok {
		rec = &domain.LevelMasteryRecord{LevelID: levelID, FirstCleared: now}
		agg.mastery[levelID] = rec
	}

	rec.Attempts++
	if timeMs > 0 && (rec.BestTimeMs == 0 || timeMs < rec.BestTimeMs) {
		rec.BestTimeMs = timeMs
	}
	if accuracyPct > rec.BestAccuracy {
		rec.BestAccuracy = accuracyPct
	}
	if styleScore > rec.BestStyle {
		rec.BestStyle = styleScore
	}

	rec.TimeStar = rec.BestTimeMs > 0 && rec.BestTimeMs <= thresholds.GoldTimeMs
	rec.AccuracyStar = rec.BestAccuracy >= thresholds.GoldAccuracy
	rec.StyleStar = rec.BestStyle >= thresholds.GoldStyle

	newTotal := 0
	for _, star := range []bool{rec.TimeStar, rec.AccuracyStar, rec.StyleStar} {
		if star {
			newTotal++
		}
	}
	starsDelta := newTotal - rec.TotalStars
	rec.TotalStars = newTotal
	rec.UpdatedAt = now

	agg.progress.LevelsCompleted++
	agg.progress.TotalStars += starsDelta

	xp := s.cfg.BattlePass.CompletionXP + s.cfg.BattlePass.StarXP*starsDelta
	changes := s.earnXPLocked(ctx, agg, xp, XPSourceLevelCompletion)

	// Score multipliers expire at level end.
	agg.session.multipliers = nil

	totalStars := agg.progress.TotalStars
	recCopy := *rec
	s.saveProgressLocked(ctx, playerID, agg)
	s.saveMasteryLocked(ctx, playerID, agg)
	agg.mu.Unlock()

	s.publishTierChanges(ctx, playerID, XPSourceLevelCompletion, changes)
	if starsDelta > 0 {
		s.publisher.PublishWithRetry(ctx, event.NewLevelMasteredEvent(playerID, levelID, starsDelta, totalStars))
	}
	logger.FromContext(ctx).Info(LogMsgLevelCompleted,
		"player_id", playerID, "level_id", levelID, "stars_delta", starsDelta, "total_stars", recCopy.TotalStars)

	s.challenges.OnStatChanged(ctx, playerID, domain.MetricLevelsCompleted, 1)
	if starsDelta > 0 {
		s.challenges.OnStatChanged(ctx, playerID, domain.MetricTotalStars, starsDelta)
	}
	s.checkAchievements(ctx, playerID)

	return &recCopy, nil
}
