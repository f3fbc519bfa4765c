package worker

import (
	"context"
	"time"

	"github.com/skyburst-games/popmeta/internal/challenge"
	"github.com/skyburst-games/popmeta/internal/logger"
)

// ChallengeRefreshJob sweeps all active players and regenerates their daily
// challenge set when the day has rolled over. Players not in memory refresh
// lazily on their next request, so the sweep only covers cached state.
type ChallengeRefreshJob struct {
	challenges challenge.Service
	clock      func() time.Time
}

// NewChallengeRefreshJob creates a refresh job over the challenge service.
func NewChallengeRefreshJob(challenges challenge.Service) *ChallengeRefreshJob {
	return &ChallengeRefreshJob{
		challenges: challenges,
		clock:      time.Now,
	}
}

// Process implements Job.
func (j *ChallengeRefreshJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	now := j.clock().UTC()

	players := j.challenges.ActivePlayers(ctx)
	if len(players) == 0 {
		return nil
	}
	log.Debug(LogMsgChallengeRefreshStarting, "players", len(players))

	refreshed := 0
	for _, playerID := range players {
		ok, err := j.challenges.CheckAndRefresh(ctx, playerID, now)
		if err != nil {
			log.Warn(LogMsgChallengeRefreshFailed, "player_id", playerID, "error", err)
			continue
		}
		if ok {
			refreshed++
		}
	}

	if refreshed > 0 {
		log.Info(LogMsgChallengeRefreshCompleted, "players", len(players), "refreshed", refreshed)
	}
	return nil
}
