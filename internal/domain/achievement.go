package domain

import "time"

// StatMetric names a cumulative player statistic that achievements and
// challenges are measured against.
type StatMetric string

const (
	MetricBalloonsPopped      StatMetric = "balloons_popped"
	MetricShotsHit            StatMetric = "shots_hit"
	MetricShotsFired          StatMetric = "shots_fired"
	MetricLevelsCompleted     StatMetric = "levels_completed"
	MetricTotalStars          StatMetric = "total_stars"
	MetricLongestCombo        StatMetric = "longest_combo"
	MetricChallengesCompleted StatMetric = "challenges_completed"
	MetricMysteryRewards      StatMetric = "mystery_rewards"
)

// Achievement is a static catalog entry. Rewards are fixed at authoring time.
type Achievement struct {
	ID          string     `json:"id" validate:"required"`
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description"`
	Metric      StatMetric `json:"metric" validate:"required"`
	Target      int        `json:"target" validate:"gt=0"`
	RewardCoins int        `json:"reward_coins" validate:"gte=0"`
	RewardScore int        `json:"reward_score" validate:"gte=0"`
}

// AchievementProgress is the mutable per-player record paired with a catalog
// entry. Once UnlockedAt is set the achievement is never re-evaluated.
type AchievementProgress struct {
	AchievementID string     `json:"achievement_id"`
	Current       int        `json:"current"`
	UnlockedAt    *time.Time `json:"unlocked_at,omitempty"`
}

// Unlocked reports whether the achievement has been earned.
func (p AchievementProgress) Unlocked() bool {
	return p.UnlockedAt != nil
}
