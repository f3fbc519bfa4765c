package reward_bench

import (
	"context"
	"testing"

	"github.com/skyburst-games/popmeta/internal/config"
	"github.com/skyburst-games/popmeta/internal/domain"
	"github.com/skyburst-games/popmeta/internal/reward"
	"github.com/skyburst-games/popmeta/internal/utils"
)

// benchRewardConfig mirrors the shipped catalog shape: every reward type has
// a rarity table and at least one template, including nested mystery boxes.
func benchRewardConfig() config.RewardConfig {
	return config.RewardConfig{
		TypeWeights: map[domain.RewardType]int{
			domain.RewardTypeCoins:           40,
			domain.RewardTypeXP:              25,
			domain.RewardTypeScoreMultiplier: 15,
			domain.RewardTypeCosmetic:        10,
			domain.RewardTypeMysteryBox:      10,
		},
		RarityWeights: map[domain.RewardType]map[domain.Rarity]int{
			domain.RewardTypeCoins: {
				domain.RarityCommon:    60,
				domain.RarityRare:      25,
				domain.RarityEpic:      10,
				domain.RarityLegendary: 5,
			},
			domain.RewardTypeXP: {
				domain.RarityCommon: 70,
				domain.RarityRare:   30,
			},
			domain.RewardTypeScoreMultiplier: {
				domain.RarityCommon: 50,
				domain.RarityRare:   35,
				domain.RarityEpic:   15,
			},
			domain.RewardTypeCosmetic: {
				domain.RarityRare:      60,
				domain.RarityEpic:      30,
				domain.RarityLegendary: 10,
			},
			domain.RewardTypeMysteryBox: {
				domain.RarityRare:      70,
				domain.RarityEpic:      25,
				domain.RarityLegendary: 5,
			},
		},
		LevelFactor: 0.05,
		Templates: []config.RewardTemplate{
			{Key: "coins_pouch", Type: domain.RewardTypeCoins, Rarity: domain.RarityCommon, Amount: 100, ScalingFactor: 1.0},
			{Key: "coins_stash", Type: domain.RewardTypeCoins, Rarity: domain.RarityRare, Amount: 250, ScalingFactor: 1.1},
			{Key: "coins_chest", Type: domain.RewardTypeCoins, Rarity: domain.RarityEpic, Amount: 600, ScalingFactor: 1.2},
			{Key: "coins_hoard", Type: domain.RewardTypeCoins, Rarity: domain.RarityLegendary, Amount: 1500, ScalingFactor: 1.3},
			{Key: "xp_spark", Type: domain.RewardTypeXP, Rarity: domain.RarityCommon, Amount: 50, ScalingFactor: 1.0},
			{Key: "xp_surge", Type: domain.RewardTypeXP, Rarity: domain.RarityRare, Amount: 150, ScalingFactor: 1.1},
			{Key: "multiplier_bronze", Type: domain.RewardTypeScoreMultiplier, Rarity: domain.RarityCommon, Multiplier: 1.5, ScalingFactor: 1.0},
			{Key: "multiplier_silver", Type: domain.RewardTypeScoreMultiplier, Rarity: domain.RarityRare, Multiplier: 2.0, ScalingFactor: 1.0},
			{Key: "multiplier_gold", Type: domain.RewardTypeScoreMultiplier, Rarity: domain.RarityEpic, Multiplier: 3.0, ScalingFactor: 1.0},
			{Key: "skin_dart_neon", Type: domain.RewardTypeCosmetic, Rarity: domain.RarityRare, ItemKey: "dart_neon", ScalingFactor: 1.0},
			{Key: "skin_dart_galaxy", Type: domain.RewardTypeCosmetic, Rarity: domain.RarityEpic, ItemKey: "dart_galaxy", ScalingFactor: 1.0},
			{Key: "trail_rainbow", Type: domain.RewardTypeCosmetic, Rarity: domain.RarityLegendary, ItemKey: "trail_rainbow", ScalingFactor: 1.0},
			{Key: "box_rare", Type: domain.RewardTypeMysteryBox, Rarity: domain.RarityRare, ScalingFactor: 1.0},
			{Key: "box_epic", Type: domain.RewardTypeMysteryBox, Rarity: domain.RarityEpic, ScalingFactor: 1.0},
			{Key: "box_legendary", Type: domain.RewardTypeMysteryBox, Rarity: domain.RarityLegendary, ScalingFactor: 1.0},
		},
		BoxExpansion: map[domain.Rarity]config.BoxExpansion{
			domain.RarityRare:      {MinRewards: 2, MaxRewards: 3},
			domain.RarityEpic:      {MinRewards: 3, MaxRewards: 5},
			domain.RarityLegendary: {MinRewards: 4, MaxRewards: 6},
		},
		MaxBoxDepth: 3,
	}
}

func newBenchSampler(b *testing.B) reward.Service {
	b.Helper()
	svc, err := reward.NewService(benchRewardConfig(), utils.NewRand(1))
	if err != nil {
		b.Fatalf("Failed to build sampler: %v", err)
	}
	return svc
}

func BenchmarkSample(b *testing.B) {
	svc := newBenchSampler(b)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		svc.Sample(ctx, 10)
	}
}

func BenchmarkSampleHighLevel(b *testing.B) {
	svc := newBenchSampler(b)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		svc.Sample(ctx, 100)
	}
}

func BenchmarkExpandBox(b *testing.B) {
	svc := newBenchSampler(b)
	ctx := context.Background()
	box := domain.MysteryReward{
		Type:   domain.RewardTypeMysteryBox,
		Rarity: domain.RarityLegendary,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		svc.ExpandBox(ctx, box, 10)
	}
}

func BenchmarkNewBalloon(b *testing.B) {
	svc := newBenchSampler(b)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		svc.NewBalloon(ctx, 10, 0.5, 0.5)
	}
}
