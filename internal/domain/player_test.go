package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerProgressJSONRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := NewPlayerProgress("player-1", now)
	p.BalloonsPopped = 42
	p.Coins = 500
	p.UnlockedCosmetics["skin_red"] = true
	p.UnlockedCosmetics["skin_blue"] = true
	p.ActiveCosmetics["skin_red"] = true
	p.Achievements["ach_pop_10"] = &AchievementProgress{AchievementID: "ach_pop_10", Current: 42}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	// Set fields are flattened to sorted arrays on the wire
	var wire map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &wire))
	unlocked, ok := wire["unlocked_cosmetics"].([]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"skin_blue", "skin_red"}, unlocked)

	var restored PlayerProgress
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, p.BalloonsPopped, restored.BalloonsPopped)
	assert.Equal(t, p.Coins, restored.Coins)
	assert.True(t, restored.UnlockedCosmetics["skin_blue"])
	assert.True(t, restored.ActiveCosmetics["skin_red"])
	assert.Equal(t, 42, restored.Achievements["ach_pop_10"].Current)
}

func TestPlayerProgressUnmarshalEmptySets(t *testing.T) {
	var p PlayerProgress
	require.NoError(t, json.Unmarshal([]byte(`{"player_id":"x"}`), &p))

	assert.NotNil(t, p.UnlockedCosmetics)
	assert.NotNil(t, p.Achievements)
	assert.Empty(t, p.UnlockedCosmetics)
}

func TestStatLookup(t *testing.T) {
	p := NewPlayerProgress("p", time.Now())
	p.BalloonsPopped = 10
	p.ShotsHit = 7
	p.TotalStars = 3
	p.LongestCombo = 15

	tests := []struct {
		metric   StatMetric
		expected int
	}{
		{MetricBalloonsPopped, 10},
		{MetricShotsHit, 7},
		{MetricTotalStars, 3},
		{MetricLongestCombo, 15},
		{MetricShotsFired, 0},
		{StatMetric("unknown"), 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, p.Stat(tt.metric), "metric %s", tt.metric)
	}
}

func TestAchievementProgressUnlocked(t *testing.T) {
	p := AchievementProgress{AchievementID: "a"}
	assert.False(t, p.Unlocked())

	now := time.Now()
	p.UnlockedAt = &now
	assert.True(t, p.Unlocked())
}
