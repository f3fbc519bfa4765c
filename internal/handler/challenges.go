package handler

import (
	"net/http"
	"time"

	"github.com/skyburst-games/popmeta/internal/challenge"
	"github.com/skyburst-games/popmeta/internal/ledger"
	"github.com/skyburst-games/popmeta/internal/logger"
)

// HandleGetChallenges handles GET /challenges?player_id=
//
// Reading the challenge list refreshes it first, so a player who opens the
// challenge screen after midnight always sees the new day's set even if the
// background sweep has not reached them yet.
func HandleGetChallenges(svc challenge.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetQueryParam(r, w, "player_id")
		if !ok {
			return
		}

		refreshed, err := svc.CheckAndRefresh(r.Context(), playerID, time.Now())
		if err != nil {
			respondServiceError(w, r, ErrMsgGetChallengesFailed, err)
			return
		}
		if refreshed {
			logger.FromContext(r.Context()).Info("Daily challenges refreshed on read", "player_id", playerID)
		}

		snapshot, err := svc.State(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetChallengesFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: snapshot})
	}
}

// ClaimChallengeRequest claims a completed challenge's reward.
type ClaimChallengeRequest struct {
	PlayerID    string `json:"player_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
	ChallengeID string `json:"challenge_id" validate:"required,max=100"`
}

// ClaimChallengeResponse reports the credited reward, or claimed=false when
// the challenge is not claimable.
type ClaimChallengeResponse struct {
	Claimed bool        `json:"claimed"`
	Reward  interface{} `json:"reward,omitempty"`
	Message string      `json:"message,omitempty"`
}

// HandleClaimChallenge handles POST /challenges/claim. Claims route through
// the ledger so coins and battle pass XP are credited atomically with the
// claim.
func HandleClaimChallenge(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ClaimChallengeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim challenge"); err != nil {
			return
		}

		reward, err := svc.ClaimChallengeReward(r.Context(), req.PlayerID, req.ChallengeID)
		if err != nil {
			respondServiceError(w, r, ErrMsgClaimFailed, err)
			return
		}
		if reward == nil {
			respondJSON(w, http.StatusOK, ClaimChallengeResponse{Claimed: false, Message: MsgChallengeNotClaimed})
			return
		}

		respondJSON(w, http.StatusOK, ClaimChallengeResponse{Claimed: true, Reward: reward})
	}
}
