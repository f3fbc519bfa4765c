package handler

import (
	"net/http"

	"github.com/skyburst-games/popmeta/internal/ledger"
)

// StartSessionRequest begins a play session at the given level.
type StartSessionRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Level    int    `json:"level" validate:"gte=1"`
}

// HandleStartSession handles POST /session/start
func HandleStartSession(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StartSessionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Start session"); err != nil {
			return
		}

		if err := svc.StartSession(r.Context(), req.PlayerID, req.Level); err != nil {
			respondServiceError(w, r, ErrMsgStartSessionFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSessionStarted})
	}
}

// EndSessionRequest ends the player's active session.
type EndSessionRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
}

// HandleEndSession handles POST /session/end
func HandleEndSession(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EndSessionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "End session"); err != nil {
			return
		}

		if err := svc.EndSession(r.Context(), req.PlayerID); err != nil {
			respondServiceError(w, r, ErrMsgEndSessionFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSessionEnded})
	}
}
