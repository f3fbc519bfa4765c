package handler

import (
	"net/http"

	"github.com/skyburst-games/popmeta/internal/ledger"
)

// AchievementsResponse lists all achievement progress plus the unlocks
// awaiting UI acknowledgment.
type AchievementsResponse struct {
	Achievements interface{} `json:"achievements"`
	New          interface{} `json:"new,omitempty"`
}

// HandleGetAchievements handles GET /achievements?player_id=
func HandleGetAchievements(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetQueryParam(r, w, "player_id")
		if !ok {
			return
		}

		progress, err := svc.Progress(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetAchievementsFailed, err)
			return
		}
		pending, err := svc.NewAchievements(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetAchievementsFailed, err)
			return
		}

		resp := AchievementsResponse{Achievements: progress.Achievements}
		if len(pending) > 0 {
			resp.New = pending
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

// AckAchievementsRequest clears the new-achievement queue once shown.
type AckAchievementsRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
}

// HandleAckAchievements handles POST /achievements/ack
func HandleAckAchievements(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AckAchievementsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Acknowledge achievements"); err != nil {
			return
		}

		if err := svc.ClearNewAchievements(r.Context(), req.PlayerID); err != nil {
			respondServiceError(w, r, ErrMsgAckAchievementsFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgAchievementsAcked})
	}
}
