package config

// Game config file locations, relative to ConfigDir
const (
	DefaultConfigDir = "configs"

	FileRewards      = "rewards.json"
	FileSpawn        = "spawn.json"
	FileChallenges   = "challenges.json"
	FileBattlePass   = "battlepass.json"
	FileMastery      = "mastery.json"
	FileAchievements = "achievements.json"
)

// Storage backend selectors
const (
	StorageBackendMemory   = "memory"
	StorageBackendPostgres = "postgres"
)

// Weight table constraints
const (
	// TypeWeightTotal is the required sum of the reward type probability table
	TypeWeightTotal = 100
)

// Streak bonus defaults, applied when the challenge config omits them.
// The per-day increment and cap are deliberate product constants.
const (
	DefaultStreakBonusPerDay = 0.1
	DefaultStreakBonusCap    = 1.5
)

// Mastery formula fallback defaults, used when a level has no explicit
// thresholds configured
const (
	DefaultFallbackBaseTimeMs     = 30000
	DefaultFallbackTimePerLevelMs = 5000
	DefaultFallbackGoldAccuracy   = 90.0
	DefaultFallbackBaseStyle      = 1000
	DefaultFallbackStylePerLevel  = 250
)

// Box expansion bounds
const (
	DefaultMaxBoxDepth = 3
)
