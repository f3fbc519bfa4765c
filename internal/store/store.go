package store

import "context"

// Store persists named per-player slots, each holding one JSON-serialized
// aggregate. Slots are independent: a corrupt or missing slot never affects
// the others.
type Store interface {
	// Get returns the raw slot payload, or domain.ErrSlotNotFound when the
	// player has never saved that slot.
	Get(ctx context.Context, playerID, slot string) ([]byte, error)

	// Put writes the slot payload, replacing any previous value.
	Put(ctx context.Context, playerID, slot string, data []byte) error

	// Close releases underlying resources.
	Close()
}

// Slot names. Each aggregate saves and loads independently.
const (
	SlotPlayerProgress = "player_progress"
	SlotMastery        = "mastery_records"
	SlotBattlePass     = "battle_pass"
	SlotChallenges     = "daily_challenges"
)

// Slots lists every named slot.
var Slots = []string{SlotPlayerProgress, SlotMastery, SlotBattlePass, SlotChallenges}
