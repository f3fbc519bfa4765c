package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/skyburst-games/popmeta/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Typed event payloads for type safety

// BonusSpawnPayloadV1 is published when the variable-ratio scheduler triggers
// a mystery balloon spawn
type BonusSpawnPayloadV1 struct {
	PlayerID   string `json:"player_id"`
	BalloonID  string `json:"balloon_id"`
	RewardType string `json:"reward_type"`
	Rarity     string `json:"rarity"`
	Timestamp  int64  `json:"timestamp"`
}

// RewardGrantedPayloadV1 is published after a mystery reward is applied
type RewardGrantedPayloadV1 struct {
	PlayerID   string `json:"player_id"`
	RewardType string `json:"reward_type"`
	Rarity     string `json:"rarity"`
	Amount     int    `json:"amount,omitempty"`
	ItemKey    string `json:"item_key,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}

// AchievementUnlockedPayloadV1 is published exactly once per achievement unlock
type AchievementUnlockedPayloadV1 struct {
	PlayerID      string `json:"player_id"`
	AchievementID string `json:"achievement_id"`
	Name          string `json:"name"`
	RewardCoins   int    `json:"reward_coins"`
	RewardScore   int    `json:"reward_score"`
	Timestamp     int64  `json:"timestamp"`
}

// ChallengeCompletedPayloadV1 is published on the completion edge of a daily challenge
type ChallengeCompletedPayloadV1 struct {
	PlayerID    string `json:"player_id"`
	ChallengeID string `json:"challenge_id"`
	Difficulty  string `json:"difficulty"`
	Streak      int    `json:"streak"`
	Timestamp   int64  `json:"timestamp"`
}

// ChallengeClaimedPayloadV1 is published when a challenge reward is claimed
type ChallengeClaimedPayloadV1 struct {
	PlayerID    string `json:"player_id"`
	ChallengeID string `json:"challenge_id"`
	Coins       int    `json:"coins"`
	XP          int    `json:"xp"`
	Timestamp   int64  `json:"timestamp"`
}

// ChallengesRefreshedPayloadV1 is published when a new daily set is generated
type ChallengesRefreshedPayloadV1 struct {
	PlayerID  string `json:"player_id"`
	DayStart  int64  `json:"day_start"`
	Count     int    `json:"count"`
	Streak    int    `json:"streak"`
	Timestamp int64  `json:"timestamp"`
}

// LevelMasteredPayloadV1 is published when a level completion earns new stars
type LevelMasteredPayloadV1 struct {
	PlayerID   string `json:"player_id"`
	LevelID    string `json:"level_id"`
	StarsDelta int    `json:"stars_delta"`
	TotalStars int    `json:"total_stars"`
	Timestamp  int64  `json:"timestamp"`
}

// TierUpPayloadV1 is published for each battle pass tier crossed
type TierUpPayloadV1 struct {
	PlayerID string `json:"player_id"`
	OldTier  int    `json:"old_tier"`
	NewTier  int    `json:"new_tier"`
	Source   string `json:"source,omitempty"`
	Timestamp int64 `json:"timestamp"`
}

// Type-safe event constructors

// NewBonusSpawnEvent creates a bonus spawn event
func NewBonusSpawnEvent(playerID string, balloon domain.MysteryBalloon) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeBonusSpawned),
		Payload: BonusSpawnPayloadV1{
			PlayerID:   playerID,
			BalloonID:  balloon.ID,
			RewardType: string(balloon.Reward.Type),
			Rarity:     string(balloon.Reward.Rarity),
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewRewardGrantedEvent creates a reward granted event
func NewRewardGrantedEvent(playerID string, reward domain.MysteryReward) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeRewardGranted),
		Payload: RewardGrantedPayloadV1{
			PlayerID:   playerID,
			RewardType: string(reward.Type),
			Rarity:     string(reward.Rarity),
			Amount:     reward.Amount,
			ItemKey:    reward.ItemKey,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewAchievementUnlockedEvent creates an achievement unlocked event
func NewAchievementUnlockedEvent(playerID string, ach domain.Achievement) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeAchievementUnlocked),
		Payload: AchievementUnlockedPayloadV1{
			PlayerID:      playerID,
			AchievementID: ach.ID,
			Name:          ach.Name,
			RewardCoins:   ach.RewardCoins,
			RewardScore:   ach.RewardScore,
			Timestamp:     time.Now().Unix(),
		},
	}
}

// NewChallengeCompletedEvent creates a challenge completed event
func NewChallengeCompletedEvent(playerID, challengeID string, difficulty domain.Difficulty, streak int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeChallengeCompleted),
		Payload: ChallengeCompletedPayloadV1{
			PlayerID:    playerID,
			ChallengeID: challengeID,
			Difficulty:  string(difficulty),
			Streak:      streak,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewChallengeClaimedEvent creates a challenge claimed event
func NewChallengeClaimedEvent(playerID, challengeID string, reward domain.ChallengeReward) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeChallengeClaimed),
		Payload: ChallengeClaimedPayloadV1{
			PlayerID:    playerID,
			ChallengeID: challengeID,
			Coins:       reward.Coins,
			XP:          reward.XP,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewChallengesRefreshedEvent creates a daily set refresh event
func NewChallengesRefreshedEvent(playerID string, dayStart time.Time, count, streak int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeChallengesRefreshed),
		Payload: ChallengesRefreshedPayloadV1{
			PlayerID:  playerID,
			DayStart:  dayStart.Unix(),
			Count:     count,
			Streak:    streak,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewLevelMasteredEvent creates a stars earned event
func NewLevelMasteredEvent(playerID, levelID string, starsDelta, totalStars int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeLevelMastered),
		Payload: LevelMasteredPayloadV1{
			PlayerID:   playerID,
			LevelID:    levelID,
			StarsDelta: starsDelta,
			TotalStars: totalStars,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewTierUpEvent creates a battle pass tier up event
func NewTierUpEvent(playerID string, oldTier, newTier int, source string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeTierUp),
		Payload: TierUpPayloadV1{
			PlayerID:  playerID,
			OldTier:   oldTier,
			NewTier:   newTier,
			Source:    source,
			Timestamp: time.Now().Unix(),
		},
	}
}

// DecodePayload decodes an event payload into T via type assertion then JSON fallback.
// When events are published via the in-process MemoryBus, the payload is already
// the correct struct; the JSON round-trip handles serialized sources.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
