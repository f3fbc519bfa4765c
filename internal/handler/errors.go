package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Gameplay event error messages
	ErrMsgRecordPopFailed        = "Failed to record balloon pop"
	ErrMsgRecordShotFailed       = "Failed to record shot"
	ErrMsgRecordSpawnFailed      = "Failed to record spawn"
	ErrMsgRecordCompletionFailed = "Failed to record level completion"

	// Session error messages
	ErrMsgStartSessionFailed = "Failed to start session"
	ErrMsgEndSessionFailed   = "Failed to end session"

	// Progression error messages
	ErrMsgGetProgressFailed     = "Failed to retrieve progress"
	ErrMsgGetMasteryFailed      = "Failed to retrieve mastery records"
	ErrMsgGetBattlePassFailed   = "Failed to retrieve battle pass"
	ErrMsgGetAchievementsFailed = "Failed to retrieve achievements"
	ErrMsgAckAchievementsFailed = "Failed to acknowledge achievements"
	ErrMsgSpendCoinsFailed      = "Failed to spend coins"

	// Challenge error messages
	ErrMsgGetChallengesFailed = "Failed to retrieve challenges"
	ErrMsgClaimFailed         = "Failed to claim challenge reward"
)

// Success messages for API responses
const (
	MsgSessionStarted       = "Session started"
	MsgSessionEnded         = "Session ended"
	MsgShotRecorded         = "Shot recorded"
	MsgAchievementsAcked    = "New achievements acknowledged"
	MsgChallengeNotClaimed  = "Challenge is not claimable"
	MsgInsufficientBalance  = "Not enough coins"
)
