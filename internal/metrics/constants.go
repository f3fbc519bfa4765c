package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameRewardsGranted       = "rewards_granted_total"
	MetricNameBonusSpawns          = "bonus_spawns_total"
	MetricNameChallengesCompleted  = "challenges_completed_total"
	MetricNameChallengesClaimed    = "challenges_claimed_total"
	MetricNameChallengeRefreshes   = "challenge_refreshes_total"
	MetricNameAchievementsUnlocked = "achievements_unlocked_total"
	MetricNameTierUps              = "battlepass_tier_ups_total"
	MetricNameStarsEarned          = "mastery_stars_earned_total"
	MetricNameCoinsGranted         = "coins_granted_total"
	MetricNameCoinsSpent           = "coins_spent_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextRewardsGranted       = "Total number of mystery rewards granted"
	HelpTextBonusSpawns          = "Total number of bonus balloon spawns"
	HelpTextChallengesCompleted  = "Total number of daily challenges completed"
	HelpTextChallengesClaimed    = "Total number of challenge rewards claimed"
	HelpTextChallengeRefreshes   = "Total number of daily challenge set refreshes"
	HelpTextAchievementsUnlocked = "Total number of achievements unlocked"
	HelpTextTierUps              = "Total number of battle pass tiers crossed"
	HelpTextStarsEarned          = "Total number of mastery stars earned"
	HelpTextCoinsGranted         = "Total coins granted to players"
	HelpTextCoinsSpent           = "Total coins spent by players"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelType       = "type"
	LabelRarity     = "rarity"
	LabelDifficulty = "difficulty"
	LabelSource     = "source"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgPayloadDecodeFailed = "Failed to decode event payload for metrics"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
