package domain

// BattlePassProgress tracks seasonal tier and XP within the current tier.
// Invariant: 0 <= CurrentXP < requirement(CurrentTier), except at the maximum
// tier where excess XP accumulates without converting further.
type BattlePassProgress struct {
	CurrentTier int `json:"current_tier"`
	CurrentXP   int `json:"current_xp"`
}
