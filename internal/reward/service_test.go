package reward

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyburst-games/popmeta/internal/config"
	"github.com/skyburst-games/popmeta/internal/domain"
	"github.com/skyburst-games/popmeta/internal/utils"
)

func testRewardConfig() config.RewardConfig {
	return config.RewardConfig{
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
		Templates: []config.RewardTemplate{
			{Key: "coins_small", Type: domain.RewardTypeCoins, Rarity: domain.RarityCommon, Amount: 50, ScalingFactor: 1.0},
			{Key: "coins_big", Type: domain.RewardTypeCoins, Rarity: domain.RarityRare, Amount: 200, ScalingFactor: 1.0},
			{Key: "xp_small", Type: domain.RewardTypeXP, Rarity: domain.RarityCommon, Amount: 25, ScalingFactor: 1.0},
			{Key: "xp_big", Type: domain.RewardTypeXP, Rarity: domain.RarityRare, Amount: 100, ScalingFactor: 1.2},
			{Key: "hat_rare", Type: domain.RewardTypeCosmetic, Rarity: domain.RarityRare, ItemKey: "hat_sparkle", ScalingFactor: 1.0},
			{Key: "hat_epic", Type: domain.RewardTypeCosmetic, Rarity: domain.RarityEpic, ItemKey: "hat_golden", ScalingFactor: 1.0},
			{Key: "mult_2x", Type: domain.RewardTypeScoreMultiplier, Rarity: domain.RarityCommon, Multiplier: 2.0, ScalingFactor: 1.0},
			{Key: "box_rare", Type: domain.RewardTypeMysteryBox, Rarity: domain.RarityRare, ItemKey: "box_rare", ScalingFactor: 1.0},
			{Key: "box_epic", Type: domain.RewardTypeMysteryBox, Rarity: domain.RarityEpic, ItemKey: "box_epic", ScalingFactor: 1.0},
		},
		BoxExpansion: map[domain.Rarity]config.BoxExpansion{
			domain.RarityRare: {MinRewards: 2, MaxRewards: 4},
			domain.RarityEpic: {MinRewards: 3, MaxRewards: 4},
		},
		MaxBoxDepth: 3,
	}
}

func TestNewServiceRejectsEmptyCatalog(t *testing.T) {
	cfg := testRewardConfig()
	cfg.Templates = nil

	_, err := NewService(cfg, utils.NewRand(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no templates")
}

func TestNewServiceRejectsNilRandomSource(t *testing.T) {
	_, err := NewService(testRewardConfig(), nil)
	require.Error(t, err)
}

func TestSampleTypeDistributionConverges(t *testing.T) {
	svc, err := NewService(testRewardConfig(), utils.NewRand(42))
	require.NoError(t, err)

	const draws = 100000
	counts := make(map[domain.RewardType]int)
	for i := 0; i < draws; i++ {
		counts[svc.Sample(context.Background(), 1).Type]++
	}

	expected := map[domain.RewardType]float64{
		domain.RewardTypeCoins:           0.45,
		domain.RewardTypeXP:              0.25,
		domain.RewardTypeCosmetic:        0.15,
		domain.RewardTypeScoreMultiplier: 0.10,
		domain.RewardTypeMysteryBox:      0.05,
	}
	for rewardType, want := range expected {
		got := float64(counts[rewardType]) / draws
		assert.InDelta(t, want, got, 0.01, "type %s", rewardType)
	}
}

func TestSampleRarityNormalizesByTableTotal(t *testing.T) {
	svc, err := NewService(testRewardConfig(), utils.NewRand(7))
	require.NoError(t, err)

	const draws = 100000
	rare := 0
	coins := 0
	for i := 0; i < draws; i++ {
		reward := svc.Sample(context.Background(), 1)
		if reward.Type != domain.RewardTypeCoins {
			continue
		}
		coins++
		if reward.Rarity == domain.RarityRare {
			rare++
		}
	}

	require.Greater(t, coins, 0)
	assert.InDelta(t, 0.30, float64(rare)/float64(coins), 0.015)
}

func TestSampleFallsBackToMostCommonType(t *testing.T) {
	cfg := testRewardConfig()
	// Remove the rare coin template so the coins/rare combination has no
	// catalog entry and must fall back.
	templates := cfg.Templates[:0]
	for _, tmpl := range cfg.Templates {
		if tmpl.Key != "coins_big" {
			templates = append(templates, tmpl)
		}
	}
	cfg.Templates = templates

	svc, err := NewService(cfg, utils.NewRand(3))
	require.NoError(t, err)

	const draws = 20000
	coinsCommon := 0
	for i := 0; i < draws; i++ {
		reward := svc.Sample(context.Background(), 1)
		require.NotEmpty(t, reward.Type)
		if reward.Type == domain.RewardTypeCoins {
			require.Equal(t, domain.RarityCommon, reward.Rarity)
			coinsCommon++
		}
	}

	// Without the fallback, coins/common would land at 45% * 70% = 31.5% of
	// draws. The fallback redirects the rare slice too, so the observed rate
	// matches the full 45% type weight.
	assert.InDelta(t, 0.45, float64(coinsCommon)/draws, 0.015)
}

func TestSampleScalesCountableAmountsByLevel(t *testing.T) {
	svc, err := NewService(testRewardConfig(), utils.NewRand(11))
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		reward := svc.Sample(context.Background(), 11)
		switch reward.Type {
		case domain.RewardTypeCoins:
			// level 11 with level_factor 0.1 doubles the base amount
			assert.Contains(t, []int{100, 400}, reward.Amount)
		case domain.RewardTypeXP:
			// xp_big also carries template scaling 1.2: floor(100 * 2.0 * 1.2)
			assert.Contains(t, []int{50, 240}, reward.Amount)
		case domain.RewardTypeCosmetic, domain.RewardTypeScoreMultiplier, domain.RewardTypeMysteryBox:
			assert.Zero(t, reward.Amount)
		}
	}
}

func TestSampleLevelOneIsUnscaled(t *testing.T) {
	svc, err := NewService(testRewardConfig(), utils.NewRand(5))
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		reward := svc.Sample(context.Background(), 1)
		if reward.Type == domain.RewardTypeCoins {
			assert.Contains(t, []int{50, 200}, reward.Amount)
		}
	}
}

func TestExpandBoxProducesLeafRewardsWithinBounds(t *testing.T) {
	svc, err := NewService(testRewardConfig(), utils.NewRand(99))
	require.NoError(t, err)

	box := domain.MysteryReward{Type: domain.RewardTypeMysteryBox, Rarity: domain.RarityRare}
	for i := 0; i < 500; i++ {
		leaves := svc.ExpandBox(context.Background(), box, 1)
		// Nested boxes inflate the leaf count, so only the lower bound holds.
		assert.GreaterOrEqual(t, len(leaves), 2)
		for _, leaf := range leaves {
			assert.NotEqual(t, domain.RewardTypeMysteryBox, leaf.Type)
		}
	}
}

func TestExpandBoxUnknownRarityYieldsSingleReward(t *testing.T) {
	svc, err := NewService(testRewardConfig(), utils.NewRand(13))
	require.NoError(t, err)

	box := domain.MysteryReward{Type: domain.RewardTypeMysteryBox, Rarity: domain.RarityLegendary}
	for i := 0; i < 200; i++ {
		leaves := svc.ExpandBox(context.Background(), box, 1)
		// One draw per unknown-rarity box; a nested box can still fan out.
		assert.GreaterOrEqual(t, len(leaves), 1)
	}
}

func TestNewBalloonCarriesPositionAndReward(t *testing.T) {
	svc, err := NewService(testRewardConfig(), utils.NewRand(21))
	require.NoError(t, err)

	balloon := svc.NewBalloon(context.Background(), 3, 120.5, 48.0)
	assert.NotEmpty(t, balloon.ID)
	assert.NotEmpty(t, balloon.Reward.Type)
	assert.Equal(t, 120.5, balloon.X)
	assert.Equal(t, 48.0, balloon.Y)
	assert.False(t, balloon.Popped)
	assert.False(t, balloon.SpawnedAt.IsZero())
}
