package domain

import "time"

// LevelMasteryRecord tracks per-level best results and the three independent
// star flags. Best values only ever improve: BestTimeMs is monotonically
// non-increasing, BestAccuracy and BestStyle monotonically non-decreasing,
// and TotalStars never goes down across attempts.
type LevelMasteryRecord struct {
	LevelID      string    `json:"level_id"`
	BestTimeMs   int       `json:"best_time_ms"`
	BestAccuracy float64   `json:"best_accuracy"`
	BestStyle    int       `json:"best_style"`
	TimeStar     bool      `json:"time_star"`
	AccuracyStar bool      `json:"accuracy_star"`
	StyleStar    bool      `json:"style_star"`
	TotalStars   int       `json:"total_stars"`
	Attempts     int       `json:"attempts"`
	FirstCleared time.Time `json:"first_cleared"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MasteryThresholds are the gold targets a completion is judged against.
type MasteryThresholds struct {
	GoldTimeMs   int     `json:"gold_time_ms" validate:"gt=0"`
	GoldAccuracy float64 `json:"gold_accuracy" validate:"gt=0,lte=100"`
	GoldStyle    int     `json:"gold_style" validate:"gt=0"`
}
