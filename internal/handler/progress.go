package handler

import (
	"net/http"

	"github.com/skyburst-games/popmeta/internal/ledger"
)

// HandleGetProgress handles GET /progress?player_id=
func HandleGetProgress(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetQueryParam(r, w, "player_id")
		if !ok {
			return
		}

		progress, err := svc.Progress(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetProgressFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: progress})
	}
}

// HandleGetMastery handles GET /progress/mastery?player_id=
func HandleGetMastery(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetQueryParam(r, w, "player_id")
		if !ok {
			return
		}

		records, err := svc.MasteryRecords(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetMasteryFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: records})
	}
}

// BattlePassResponse pairs the player's season progress with the XP needed
// to clear the current tier.
type BattlePassResponse struct {
	Progress   interface{} `json:"progress"`
	RequiredXP int         `json:"required_xp"`
}

// HandleGetBattlePass handles GET /battlepass?player_id=
func HandleGetBattlePass(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, ok := GetQueryParam(r, w, "player_id")
		if !ok {
			return
		}

		progress, required, err := svc.BattlePass(r.Context(), playerID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetBattlePassFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, BattlePassResponse{Progress: progress, RequiredXP: required})
	}
}

// SpendCoinsRequest deducts coins from the player's balance.
type SpendCoinsRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Amount   int    `json:"amount" validate:"gt=0"`
}

// SpendCoinsResponse reports whether the spend succeeded.
type SpendCoinsResponse struct {
	Spent   bool   `json:"spent"`
	Message string `json:"message,omitempty"`
}

// HandleSpendCoins handles POST /coins/spend
func HandleSpendCoins(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SpendCoinsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Spend coins"); err != nil {
			return
		}

		ok, err := svc.SpendCoins(r.Context(), req.PlayerID, req.Amount)
		if err != nil {
			respondServiceError(w, r, ErrMsgSpendCoinsFailed, err)
			return
		}
		if !ok {
			respondJSON(w, http.StatusOK, SpendCoinsResponse{Spent: false, Message: MsgInsufficientBalance})
			return
		}

		respondJSON(w, http.StatusOK, SpendCoinsResponse{Spent: true})
	}
}
