package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyburst-games/popmeta/internal/domain"
)

func baseGameConfig() *GameConfig {
	cfg := &GameConfig{
		Rewards: RewardConfig{
			TypeWeights: map[domain.RewardType]int{
				domain.RewardTypeCoins:           45,
				domain.RewardTypeXP:              25,
				domain.RewardTypeCosmetic:        15,
				domain.RewardTypeScoreMultiplier: 10,
				domain.RewardTypeMysteryBox:      5,
			},
			RarityWeights: map[domain.RewardType]map[domain.Rarity]int{
				domain.RewardTypeCoins:           {domain.RarityCommon: 70, domain.RarityRare: 30},
				domain.RewardTypeXP:              {domain.RarityCommon: 80, domain.RarityRare: 20},
				domain.RewardTypeCosmetic:        {domain.RarityRare: 60, domain.RarityEpic: 40},
				domain.RewardTypeScoreMultiplier: {domain.RarityCommon: 100},
				domain.RewardTypeMysteryBox:      {domain.RarityRare: 75, domain.RarityEpic: 25},
			},
			LevelFactor: 0.1,
			Templates: []RewardTemplate{
				{Key: "coins_small", Type: domain.RewardTypeCoins, Rarity: domain.RarityCommon, Amount: 50, ScalingFactor: 1.0},
				{Key: "xp_small", Type: domain.RewardTypeXP, Rarity: domain.RarityCommon, Amount: 25, ScalingFactor: 1.0},
			},
			BoxExpansion: map[domain.Rarity]BoxExpansion{
				domain.RarityRare: {MinRewards: 2, MaxRewards: 4},
			},
		},
		Spawn: SpawnConfig{AverageInterval: 12, Deviation: 3, MinInterval: 6, MaxInterval: 20},
		Challenges: ChallengeConfig{
			Templates: []domain.ChallengeTemplate{
				{Key: "pop_50", Name: "Pop 50", Difficulty: domain.DifficultyEasy, Metric: domain.MetricBalloonsPopped, Target: 50, Weight: 10, Reward: domain.ChallengeReward{Coins: 100, XP: 50}},
				{Key: "hit_100", Name: "Hit 100", Difficulty: domain.DifficultyMedium, Metric: domain.MetricShotsHit, Target: 100, Weight: 10, Reward: domain.ChallengeReward{Coins: 200, XP: 100}},
				{Key: "stars_3", Name: "Earn stars", Difficulty: domain.DifficultyHard, Metric: domain.MetricTotalStars, Target: 3, Weight: 10, Reward: domain.ChallengeReward{Coins: 400, XP: 200}},
			},
			SlotDifficulties:  []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard},
			StreakBonusPerDay: 0.1,
			StreakBonusCap:    1.5,
		},
		BattlePass: BattlePassConfig{BaseXP: 1000, ScalingFactor: 1.2, MaxTier: 50, CompletionXP: 100, StarXP: 50},
		Mastery:    MasteryConfig{Levels: map[string]domain.MasteryThresholds{}},
		Achievements: []domain.Achievement{
			{ID: "pop_100", Name: "Popper", Metric: domain.MetricBalloonsPopped, Target: 100, RewardCoins: 50},
		},
	}
	cfg.applyDefaults()
	return cfg
}

func TestValidateGameConfigAccepted(t *testing.T) {
	require.NoError(t, ValidateGameConfig(baseGameConfig()))
}

func TestTypeWeightsMustSumToHundred(t *testing.T) {
	cfg := baseGameConfig()
	cfg.Rewards.TypeWeights[domain.RewardTypeCoins] = 50

	err := ValidateGameConfig(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidWeightTable)
	assert.Contains(t, err.Error(), "sum to")
}

func TestNonPositiveTypeWeightRejected(t *testing.T) {
	cfg := baseGameConfig()
	cfg.Rewards.TypeWeights[domain.RewardTypeCoins] = 0
	cfg.Rewards.TypeWeights[domain.RewardTypeXP] = 70

	err := ValidateGameConfig(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidWeightTable)
}

func TestMissingRarityTableRejected(t *testing.T) {
	cfg := baseGameConfig()
	delete(cfg.Rewards.RarityWeights, domain.RewardTypeMysteryBox)

	err := ValidateGameConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing rarity table")
}

func TestNonPositiveRarityWeightRejected(t *testing.T) {
	cfg := baseGameConfig()
	cfg.Rewards.RarityWeights[domain.RewardTypeCoins][domain.RarityRare] = -5

	err := ValidateGameConfig(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidWeightTable)
}

func TestSpawnBoundsValidated(t *testing.T) {
	cfg := baseGameConfig()
	cfg.Spawn.MinInterval = 30

	err := ValidateGameConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min_interval")
}

func TestSpawnAverageOutsideBoundsRejected(t *testing.T) {
	cfg := baseGameConfig()
	cfg.Spawn.AverageInterval = 100

	err := ValidateGameConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "average_interval")
}

func TestMissingDifficultyTierRejected(t *testing.T) {
	cfg := baseGameConfig()
	cfg.Challenges.SlotDifficulties = append(cfg.Challenges.SlotDifficulties, domain.DifficultyExpert)

	err := ValidateGameConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expert")
}

func TestBoxExpansionBoundsValidated(t *testing.T) {
	cfg := baseGameConfig()
	cfg.Rewards.BoxExpansion[domain.RarityRare] = BoxExpansion{MinRewards: 5, MaxRewards: 2}

	err := ValidateGameConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "box expansion")
}

func TestApplyDefaultsFillsStreakTuning(t *testing.T) {
	cfg := baseGameConfig()
	cfg.Challenges.StreakBonusPerDay = 0
	cfg.Challenges.StreakBonusCap = 0
	cfg.applyDefaults()

	assert.Equal(t, DefaultStreakBonusPerDay, cfg.Challenges.StreakBonusPerDay)
	assert.Equal(t, DefaultStreakBonusCap, cfg.Challenges.StreakBonusCap)
}
