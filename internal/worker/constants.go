package worker

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// Log messages for the challenge refresh job
const (
	LogMsgChallengeRefreshStarting  = "Challenge refresh sweep starting"
	LogMsgChallengeRefreshCompleted = "Challenge refresh sweep completed"
	LogMsgChallengeRefreshFailed    = "Challenge refresh failed for player"
)
