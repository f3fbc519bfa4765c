package config

import (
	"fmt"
	"path/filepath"

	"github.com/skyburst-games/popmeta/internal/domain"
	"github.com/skyburst-games/popmeta/internal/utils"
)

// RewardTemplate is a catalog entry for the mystery reward sampler.
type RewardTemplate struct {
	Key           string            `json:"key" validate:"required"`
	Type          domain.RewardType `json:"type" validate:"required"`
	Rarity        domain.Rarity     `json:"rarity" validate:"required"`
	Amount        int               `json:"amount" validate:"gte=0"`
	ItemKey       string            `json:"item_key"`
	Multiplier    float64           `json:"multiplier" validate:"gte=0"`
	ScalingFactor float64           `json:"scaling_factor" validate:"gt=0"`
	Announcement  string            `json:"announcement"`
	EffectTag     string            `json:"effect_tag"`
}

// BoxExpansion bounds the number of sub-rewards a mystery box of a given
// rarity expands into.
type BoxExpansion struct {
	MinRewards int `json:"min_rewards" validate:"gte=1"`
	MaxRewards int `json:"max_rewards" validate:"gte=1"`
}

// RewardConfig drives the two-stage weighted sampler.
type RewardConfig struct {
	TypeWeights   map[domain.RewardType]int                   `json:"type_weights" validate:"required"`
	RarityWeights map[domain.RewardType]map[domain.Rarity]int `json:"rarity_weights" validate:"required"`
	LevelFactor   float64                                     `json:"level_factor" validate:"gte=0"`
	Templates     []RewardTemplate                            `json:"templates" validate:"min=1,dive"`
	BoxExpansion  map[domain.Rarity]BoxExpansion              `json:"box_expansion" validate:"required"`
	MaxBoxDepth   int                                         `json:"max_box_depth"`
}

// SpawnConfig bounds the variable-ratio bonus spawn schedule.
type SpawnConfig struct {
	AverageInterval float64 `json:"average_interval" validate:"gt=0"`
	Deviation       float64 `json:"deviation" validate:"gte=0"`
	MinInterval     int     `json:"min_interval" validate:"gte=1"`
	MaxInterval     int     `json:"max_interval" validate:"gte=1"`
}

// ChallengeConfig holds the daily challenge template pool and streak tuning.
type ChallengeConfig struct {
	Templates         []domain.ChallengeTemplate `json:"templates" validate:"min=1,dive"`
	SlotDifficulties  []domain.Difficulty        `json:"slot_difficulties" validate:"min=1"`
	StreakBonusPerDay float64                    `json:"streak_bonus_per_day"`
	StreakBonusCap    float64                    `json:"streak_bonus_cap"`
}

// BattlePassConfig holds seasonal tier progression parameters.
type BattlePassConfig struct {
	BaseXP            int                `json:"base_xp" validate:"gt=0"`
	ScalingFactor     float64            `json:"scaling_factor" validate:"gte=1"`
	MaxTier           int                `json:"max_tier" validate:"gt=0"`
	CompletionXP      int                `json:"completion_xp" validate:"gte=0"`
	StarXP            int                `json:"star_xp" validate:"gte=0"`
	SourceMultipliers map[string]float64 `json:"source_multipliers"`
}

// MasteryConfig holds per-level gold thresholds plus the formula fallback
// parameters used when a level has no explicit entry.
type MasteryConfig struct {
	Levels                 map[string]domain.MasteryThresholds `json:"levels"`
	FallbackBaseTimeMs     int                                 `json:"fallback_base_time_ms"`
	FallbackTimePerLevelMs int                                 `json:"fallback_time_per_level_ms"`
	FallbackGoldAccuracy   float64                             `json:"fallback_gold_accuracy"`
	FallbackBaseStyle      int                                 `json:"fallback_base_style"`
	FallbackStylePerLevel  int                                 `json:"fallback_style_per_level"`
}

// GameConfig is the aggregate of all JSON game configuration files.
type GameConfig struct {
	Rewards      RewardConfig         `json:"rewards"`
	Spawn        SpawnConfig          `json:"spawn"`
	Challenges   ChallengeConfig      `json:"challenges"`
	BattlePass   BattlePassConfig     `json:"battle_pass"`
	Mastery      MasteryConfig        `json:"mastery"`
	Achievements []domain.Achievement `json:"achievements"`
}

// LoadGameConfig reads and validates every game config file under dir.
// Malformed tables are a startup-fatal condition; they are never deferred to
// sample time.
func LoadGameConfig(dir string) (*GameConfig, error) {
	cfg := &GameConfig{}

	files := []struct {
		name   string
		target interface{}
	}{
		{FileRewards, &cfg.Rewards},
		{FileSpawn, &cfg.Spawn},
		{FileChallenges, &cfg.Challenges},
		{FileBattlePass, &cfg.BattlePass},
		{FileMastery, &cfg.Mastery},
		{FileAchievements, &cfg.Achievements},
	}

	for _, f := range files {
		if err := utils.LoadJSON(filepath.Join(dir, f.name), f.target); err != nil {
			return nil, fmt.Errorf("failed to load game config %s: %w", f.name, err)
		}
	}

	cfg.applyDefaults()

	if err := ValidateGameConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	return cfg, nil
}

// applyDefaults fills optional tuning values the config files may omit.
func (c *GameConfig) applyDefaults() {
	if c.Challenges.StreakBonusPerDay == 0 {
		c.Challenges.StreakBonusPerDay = DefaultStreakBonusPerDay
	}
	if c.Challenges.StreakBonusCap == 0 {
		c.Challenges.StreakBonusCap = DefaultStreakBonusCap
	}
	if c.Rewards.MaxBoxDepth == 0 {
		c.Rewards.MaxBoxDepth = DefaultMaxBoxDepth
	}
	if c.Mastery.FallbackBaseTimeMs == 0 {
		c.Mastery.FallbackBaseTimeMs = DefaultFallbackBaseTimeMs
	}
	if c.Mastery.FallbackTimePerLevelMs == 0 {
		c.Mastery.FallbackTimePerLevelMs = DefaultFallbackTimePerLevelMs
	}
	if c.Mastery.FallbackGoldAccuracy == 0 {
		c.Mastery.FallbackGoldAccuracy = DefaultFallbackGoldAccuracy
	}
	if c.Mastery.FallbackBaseStyle == 0 {
		c.Mastery.FallbackBaseStyle = DefaultFallbackBaseStyle
	}
	if c.Mastery.FallbackStylePerLevel == 0 {
		c.Mastery.FallbackStylePerLevel = DefaultFallbackStylePerLevel
	}
}
