package handler

import (
	"net/http"

	"github.com/skyburst-games/popmeta/internal/ledger"
	"github.com/skyburst-games/popmeta/internal/logger"
)

// BalloonPoppedRequest reports a popped balloon. BalloonID is set when the
// pop hit a mystery balloon.
type BalloonPoppedRequest struct {
	PlayerID  string `json:"player_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
	BalloonID string `json:"balloon_id,omitempty" validate:"max=100"`
	Combo     int    `json:"combo" validate:"gte=0"`
}

// BalloonPoppedResponse carries the reward collected from a mystery balloon,
// if any.
type BalloonPoppedResponse struct {
	Reward interface{} `json:"reward,omitempty"`
}

// HandleBalloonPopped handles POST /events/balloon-popped
func HandleBalloonPopped(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BalloonPoppedRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Balloon popped"); err != nil {
			return
		}

		reward, err := svc.OnBalloonPopped(r.Context(), req.PlayerID, req.BalloonID, req.Combo)
		if err != nil {
			respondServiceError(w, r, ErrMsgRecordPopFailed, err)
			return
		}

		resp := BalloonPoppedResponse{}
		if reward != nil {
			resp.Reward = reward
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

// ShotRequest reports one shot fired and whether it hit.
type ShotRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Hit      bool   `json:"hit"`
}

// HandleShot handles POST /events/shot
func HandleShot(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ShotRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Shot"); err != nil {
			return
		}

		if err := svc.OnShot(r.Context(), req.PlayerID, req.Hit); err != nil {
			respondServiceError(w, r, ErrMsgRecordShotFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgShotRecorded})
	}
}

// EnemySpawnedRequest reports one ordinary enemy spawn.
type EnemySpawnedRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
}

// EnemySpawnedResponse carries a mystery balloon when the spawn crossed the
// bonus threshold.
type EnemySpawnedResponse struct {
	Balloon interface{} `json:"balloon,omitempty"`
}

// HandleEnemySpawned handles POST /events/enemy-spawned
func HandleEnemySpawned(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EnemySpawnedRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Enemy spawned"); err != nil {
			return
		}

		balloon, err := svc.OnEnemySpawned(r.Context(), req.PlayerID)
		if err != nil {
			respondServiceError(w, r, ErrMsgRecordSpawnFailed, err)
			return
		}

		resp := EnemySpawnedResponse{}
		if balloon != nil {
			resp.Balloon = balloon
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

// LevelCompletedRequest reports a finished level attempt.
type LevelCompletedRequest struct {
	PlayerID    string  `json:"player_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
	LevelID     string  `json:"level_id" validate:"required,max=100"`
	TimeMs      int     `json:"time_ms" validate:"gt=0"`
	AccuracyPct float64 `json:"accuracy_pct" validate:"gte=0,lte=100"`
	StyleScore  int     `json:"style_score" validate:"gte=0"`
}

// HandleLevelCompleted handles POST /events/level-completed
func HandleLevelCompleted(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LevelCompletedRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Level completed"); err != nil {
			return
		}

		log := logger.FromContext(r.Context())
		log.Debug("Level completed request",
			"player_id", req.PlayerID, "level_id", req.LevelID,
			"time_ms", req.TimeMs, "accuracy_pct", req.AccuracyPct)

		record, err := svc.RecordLevelCompletion(r.Context(), req.PlayerID, req.LevelID, req.TimeMs, req.AccuracyPct, req.StyleScore)
		if err != nil {
			respondServiceError(w, r, ErrMsgRecordCompletionFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: record})
	}
}
