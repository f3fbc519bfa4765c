package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/skyburst-games/popmeta/internal/domain"
)

var validate = validator.New()

// ValidateGameConfig checks struct tags plus the weight-table invariants the
// tags cannot express. Any failure here aborts startup.
func ValidateGameConfig(cfg *GameConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("struct validation failed: %w", err)
	}

	if err := validateTypeWeights(cfg.Rewards.TypeWeights); err != nil {
		return err
	}
	if err := validateRarityWeights(cfg.Rewards); err != nil {
		return err
	}
	if err := validateSpawn(cfg.Spawn); err != nil {
		return err
	}
	if err := validateChallenges(cfg.Challenges); err != nil {
		return err
	}
	if err := validateBoxExpansion(cfg.Rewards.BoxExpansion); err != nil {
		return err
	}
	return nil
}

// validateTypeWeights requires every weight positive and the table summing to
// exactly 100.
func validateTypeWeights(weights map[domain.RewardType]int) error {
	if len(weights) == 0 {
		return fmt.Errorf("%w: type weight table is empty", domain.ErrInvalidWeightTable)
	}

	total := 0
	for rewardType, weight := range weights {
		if weight <= 0 {
			return fmt.Errorf("%w: type %q has non-positive weight %d", domain.ErrInvalidWeightTable, rewardType, weight)
		}
		total += weight
	}
	if total != TypeWeightTotal {
		return fmt.Errorf("%w: type weights sum to %d, want %d", domain.ErrInvalidWeightTable, total, TypeWeightTotal)
	}
	return nil
}

// validateRarityWeights requires a non-empty positive table per reward type.
// Rarity tables normalize by their own total, so only positivity is enforced.
func validateRarityWeights(cfg RewardConfig) error {
	for rewardType := range cfg.TypeWeights {
		table, ok := cfg.RarityWeights[rewardType]
		if !ok || len(table) == 0 {
			return fmt.Errorf("%w: missing rarity table for type %q", domain.ErrInvalidWeightTable, rewardType)
		}
		for rarity, weight := range table {
			if weight <= 0 {
				return fmt.Errorf("%w: rarity %q of type %q has non-positive weight %d",
					domain.ErrInvalidWeightTable, rarity, rewardType, weight)
			}
		}
	}
	return nil
}

func validateSpawn(cfg SpawnConfig) error {
	if cfg.MinInterval > cfg.MaxInterval {
		return fmt.Errorf("spawn min_interval %d exceeds max_interval %d", cfg.MinInterval, cfg.MaxInterval)
	}
	if cfg.AverageInterval < float64(cfg.MinInterval) || cfg.AverageInterval > float64(cfg.MaxInterval) {
		return fmt.Errorf("spawn average_interval %.1f outside [%d, %d]",
			cfg.AverageInterval, cfg.MinInterval, cfg.MaxInterval)
	}
	return nil
}

// validateChallenges requires at least one template per configured slot
// difficulty, with positive weights.
func validateChallenges(cfg ChallengeConfig) error {
	byDifficulty := make(map[domain.Difficulty]int)
	for _, tmpl := range cfg.Templates {
		if tmpl.Weight <= 0 {
			return fmt.Errorf("%w: challenge template %q has non-positive weight %d",
				domain.ErrInvalidWeightTable, tmpl.Key, tmpl.Weight)
		}
		byDifficulty[tmpl.Difficulty]++
	}

	for _, difficulty := range cfg.SlotDifficulties {
		if byDifficulty[difficulty] == 0 {
			return fmt.Errorf("no challenge templates for difficulty tier %q", difficulty)
		}
	}

	if cfg.StreakBonusCap < 1 {
		return fmt.Errorf("streak_bonus_cap %.2f must be at least 1", cfg.StreakBonusCap)
	}
	return nil
}

func validateBoxExpansion(expansion map[domain.Rarity]BoxExpansion) error {
	for rarity, bounds := range expansion {
		if bounds.MinRewards > bounds.MaxRewards {
			return fmt.Errorf("box expansion for rarity %q has min %d > max %d",
				rarity, bounds.MinRewards, bounds.MaxRewards)
		}
	}
	return nil
}
