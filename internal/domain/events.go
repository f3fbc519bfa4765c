package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "challenge.completed")
const (
	// EventTypeBonusSpawned is published when the variable-ratio scheduler
	// triggers a mystery balloon spawn
	EventTypeBonusSpawned = "bonus.spawned"

	// EventTypeRewardGranted is published after a mystery reward is applied
	// to the ledger
	EventTypeRewardGranted = "reward.granted"

	// EventTypeAchievementUnlocked is published exactly once per achievement
	EventTypeAchievementUnlocked = "achievement.unlocked"

	// EventTypeChallengeCompleted is published on the edge-triggered
	// completion transition of a daily challenge
	EventTypeChallengeCompleted = "challenge.completed"

	// EventTypeChallengeClaimed is published when a challenge reward is claimed
	EventTypeChallengeClaimed = "challenge.claimed"

	// EventTypeChallengesRefreshed is published when a new daily set is generated
	EventTypeChallengesRefreshed = "challenge.refreshed"

	// EventTypeTierUp is published for each battle pass tier crossed
	EventTypeTierUp = "battlepass.tier_up"

	// EventTypeLevelMastered is published when a level completion earns new stars
	EventTypeLevelMastered = "mastery.stars_earned"
)
