package ledger

import "time"

// Cache sizes
const (
	// MaxLivePlayers bounds the number of player aggregates held in memory
	MaxLivePlayers = 1024

	// ThresholdCacheSize bounds the computed mastery threshold cache
	ThresholdCacheSize = 256
)

// RewardHistoryLimit caps the reward history ring kept per player
const RewardHistoryLimit = 100

// BalloonMaxAge is how long an unpopped mystery balloon stays collectible
const BalloonMaxAge = 60 * time.Second

// XP sources, used to look up bonus multipliers
const (
	XPSourceLevelCompletion = "level_completion"
	XPSourceMystery         = "mystery"
	XPSourceChallenge       = "challenge"
)

// Log messages
const (
	LogMsgSessionStarted       = "Session started"
	LogMsgSessionEnded         = "Session ended"
	LogMsgBonusSpawned         = "Bonus balloon spawned"
	LogMsgRewardProcessed      = "Mystery reward processed"
	LogMsgLevelCompleted       = "Level completion recorded"
	LogMsgTierUp               = "Battle pass tier up"
	LogMsgAchievementUnlocked  = "Achievement unlocked"
	LogMsgCoinsSpent           = "Coins spent"
	LogMsgInsufficientCoins    = "Coin spend rejected, insufficient balance"
	LogMsgSlotLoadFailed       = "Failed to load slot, using defaults"
	LogMsgSlotSaveFailed       = "Failed to save slot"
	LogMsgChallengeRewardApplied = "Challenge reward applied"
)
