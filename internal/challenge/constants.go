package challenge

// Log messages
const (
	LogMsgChallengesGenerated = "Daily challenges generated"
	LogMsgStreakIncremented   = "Challenge streak incremented"
	LogMsgStreakReset         = "Challenge streak reset"
	LogMsgProgressUpdated     = "Challenge progress updated"
	LogMsgChallengeCompleted  = "Challenge completed"
	LogMsgRewardClaimed       = "Challenge reward claimed"
	LogMsgStateLoadFailed     = "Failed to load challenge state, starting fresh"
	LogMsgStateSaveFailed     = "Failed to save challenge state"
)
