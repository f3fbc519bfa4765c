package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgPlayerNotFound          = "player not found"
	ErrMsgChallengeNotFound       = "challenge not found"
	ErrMsgChallengeNotCompleted   = "challenge not completed"
	ErrMsgChallengeAlreadyClaimed = "challenge reward already claimed"
	ErrMsgInsufficientFunds       = "insufficient funds"
	ErrMsgCosmeticLocked          = "cosmetic is locked"
	ErrMsgSlotNotFound            = "slot not found"
	ErrMsgStorageUnavailable      = "storage unavailable"
	ErrMsgInvalidWeightTable      = "invalid weight table"
	ErrMsgEmptyCatalog            = "reward catalog is empty"
	ErrMsgInvalidLevelID          = "invalid level id"
)

// Domain errors. Player-driven failures (claims, spends) are reported as
// nil/false returns per the error-handling design; these sentinels cover the
// storage and configuration paths.
var (
	ErrPlayerNotFound          = errors.New(ErrMsgPlayerNotFound)
	ErrChallengeNotFound       = errors.New(ErrMsgChallengeNotFound)
	ErrChallengeNotCompleted   = errors.New(ErrMsgChallengeNotCompleted)
	ErrChallengeAlreadyClaimed = errors.New(ErrMsgChallengeAlreadyClaimed)
	ErrInsufficientFunds       = errors.New(ErrMsgInsufficientFunds)
	ErrCosmeticLocked          = errors.New(ErrMsgCosmeticLocked)
	ErrSlotNotFound            = errors.New(ErrMsgSlotNotFound)
	ErrStorageUnavailable      = errors.New(ErrMsgStorageUnavailable)
	ErrInvalidWeightTable      = errors.New(ErrMsgInvalidWeightTable)
	ErrEmptyCatalog            = errors.New(ErrMsgEmptyCatalog)
	ErrInvalidLevelID          = errors.New(ErrMsgInvalidLevelID)
)
