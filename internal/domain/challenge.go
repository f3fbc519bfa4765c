package domain

import "time"

// Difficulty is a challenge difficulty tier. The daily set holds exactly one
// challenge per configured tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// ChallengeReward is the base reward for completing a daily challenge.
// The streak bonus is computed on top of it at claim time.
type ChallengeReward struct {
	Coins int `json:"coins" validate:"gte=0"`
	XP    int `json:"xp" validate:"gte=0"`
}

// ChallengeTemplate is an authoring-time entry in the challenge pool.
type ChallengeTemplate struct {
	Key         string          `json:"key" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Difficulty  Difficulty      `json:"difficulty" validate:"required"`
	Metric      StatMetric      `json:"metric" validate:"required"`
	Target      int             `json:"target" validate:"gt=0"`
	Weight      int             `json:"weight" validate:"gt=0"`
	Reward      ChallengeReward `json:"reward"`
}

// DailyChallenge is immutable once generated for a day. The ID encodes the
// day boundary and slot index: daily_{dayStartUnix}_{slot}.
type DailyChallenge struct {
	ID          string          `json:"id"`
	TemplateKey string          `json:"template_key"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Difficulty  Difficulty      `json:"difficulty"`
	Metric      StatMetric      `json:"metric"`
	Target      int             `json:"target"`
	Reward      ChallengeReward `json:"reward"`
	DayStart    time.Time       `json:"day_start"`
	Slot        int             `json:"slot"`
}

// ChallengeProgress is the mutable side of a daily challenge.
// Invariant: Claimed implies Completed.
type ChallengeProgress struct {
	ChallengeID string     `json:"challenge_id"`
	Current     int        `json:"current"`
	Attempts    int        `json:"attempts"`
	Completed   bool       `json:"completed"`
	Claimed     bool       `json:"claimed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ChallengeHistory carries streak state across daily refreshes.
// Invariant: CurrentStreak <= LongestStreak.
type ChallengeHistory struct {
	CurrentStreak    int       `json:"current_streak"`
	LongestStreak    int       `json:"longest_streak"`
	TotalCompleted   int       `json:"total_completed"`
	CompletedIDs     []string  `json:"completed_ids"`
	LastCompletionAt time.Time `json:"last_completion_at"`
}
