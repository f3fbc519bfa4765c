package domain

import (
	"encoding/json"
	"sort"
	"time"
)

// PlayerProgress is the root aggregate for a player's meta-progression.
// Set-valued fields are held as maps in memory and flattened to sorted arrays
// on the wire so the persisted form stays JSON-friendly.
//
// Invariants: currency balances never go negative, and every active cosmetic
// is also present in the unlocked set.
type PlayerProgress struct {
	PlayerID            string
	BalloonsPopped      int
	ShotsFired          int
	ShotsHit            int
	LevelsCompleted     int
	LongestCombo        int
	TotalStars          int
	PlaytimeSeconds     int64
	MysteryRewards      int
	ChallengesCompleted int

	Coins int
	Gems  int

	UnlockedCosmetics map[string]bool
	ActiveCosmetics   map[string]bool

	Achievements map[string]*AchievementProgress

	BattlePass BattlePassProgress

	RewardHistory []RewardRecord

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPlayerProgress returns a freshly initialized aggregate.
func NewPlayerProgress(playerID string, now time.Time) *PlayerProgress {
	return &PlayerProgress{
		PlayerID:          playerID,
		UnlockedCosmetics: make(map[string]bool),
		ActiveCosmetics:   make(map[string]bool),
		Achievements:      make(map[string]*AchievementProgress),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Stat returns the cumulative value for a metric, for achievement and
// challenge evaluation.
func (p *PlayerProgress) Stat(metric StatMetric) int {
	switch metric {
	case MetricBalloonsPopped:
		return p.BalloonsPopped
	case MetricShotsHit:
		return p.ShotsHit
	case MetricShotsFired:
		return p.ShotsFired
	case MetricLevelsCompleted:
		return p.LevelsCompleted
	case MetricTotalStars:
		return p.TotalStars
	case MetricLongestCombo:
		return p.LongestCombo
	case MetricMysteryRewards:
		return p.MysteryRewards
	case MetricChallengesCompleted:
		return p.ChallengesCompleted
	default:
		return 0
	}
}

// playerProgressJSON is the wire form of PlayerProgress. Sets become arrays.
type playerProgressJSON struct {
	PlayerID            string                          `json:"player_id"`
	BalloonsPopped      int                             `json:"balloons_popped"`
	ShotsFired          int                             `json:"shots_fired"`
	ShotsHit            int                             `json:"shots_hit"`
	LevelsCompleted     int                             `json:"levels_completed"`
	LongestCombo        int                             `json:"longest_combo"`
	TotalStars          int                             `json:"total_stars"`
	PlaytimeSeconds     int64                           `json:"playtime_seconds"`
	MysteryRewards      int                             `json:"mystery_rewards"`
	ChallengesCompleted int                             `json:"challenges_completed"`
	Coins               int                             `json:"coins"`
	Gems                int                             `json:"gems"`
	Unlocked            []string                        `json:"unlocked_cosmetics"`
	Active              []string                        `json:"active_cosmetics"`
	Achievements        map[string]*AchievementProgress `json:"achievements"`
	BattlePass          BattlePassProgress              `json:"battle_pass"`
	RewardHistory       []RewardRecord                  `json:"reward_history"`
	CreatedAt           time.Time                       `json:"created_at"`
	UpdatedAt           time.Time                       `json:"updated_at"`
}

func setToSorted(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sliceToSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

// MarshalJSON flattens set fields to sorted arrays.
func (p *PlayerProgress) MarshalJSON() ([]byte, error) {
	return json.Marshal(playerProgressJSON{
		PlayerID:        p.PlayerID,
		BalloonsPopped:  p.BalloonsPopped,
		ShotsFired:      p.ShotsFired,
		ShotsHit:        p.ShotsHit,
		LevelsCompleted: p.LevelsCompleted,
		LongestCombo:    p.LongestCombo,
		TotalStars:      p.TotalStars,
		PlaytimeSeconds:     p.PlaytimeSeconds,
		MysteryRewards:      p.MysteryRewards,
		ChallengesCompleted: p.ChallengesCompleted,
		Coins:               p.Coins,
		Gems:            p.Gems,
		Unlocked:        setToSorted(p.UnlockedCosmetics),
		Active:          setToSorted(p.ActiveCosmetics),
		Achievements:    p.Achievements,
		BattlePass:      p.BattlePass,
		RewardHistory:   p.RewardHistory,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	})
}

// UnmarshalJSON reconstructs set fields from their array form.
func (p *PlayerProgress) UnmarshalJSON(data []byte) error {
	var wire playerProgressJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	p.PlayerID = wire.PlayerID
	p.BalloonsPopped = wire.BalloonsPopped
	p.ShotsFired = wire.ShotsFired
	p.ShotsHit = wire.ShotsHit
	p.LevelsCompleted = wire.LevelsCompleted
	p.LongestCombo = wire.LongestCombo
	p.TotalStars = wire.TotalStars
	p.PlaytimeSeconds = wire.PlaytimeSeconds
	p.MysteryRewards = wire.MysteryRewards
	p.ChallengesCompleted = wire.ChallengesCompleted
	p.Coins = wire.Coins
	p.Gems = wire.Gems
	p.UnlockedCosmetics = sliceToSet(wire.Unlocked)
	p.ActiveCosmetics = sliceToSet(wire.Active)
	p.Achievements = wire.Achievements
	if p.Achievements == nil {
		p.Achievements = make(map[string]*AchievementProgress)
	}
	p.BattlePass = wire.BattlePass
	p.RewardHistory = wire.RewardHistory
	p.CreatedAt = wire.CreatedAt
	p.UpdatedAt = wire.UpdatedAt
	return nil
}
