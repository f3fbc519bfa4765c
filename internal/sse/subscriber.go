package sse

import (
	"context"
	"log/slog"

	"github.com/skyburst-games/popmeta/internal/domain"
	"github.com/skyburst-games/popmeta/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub so game clients
// can react to rewards, spawns, and progression changes in real time.
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers a bridge handler for every streamed event type.
func (s *Subscriber) Subscribe() {
	types := []string{
		domain.EventTypeBonusSpawned,
		domain.EventTypeRewardGranted,
		domain.EventTypeAchievementUnlocked,
		domain.EventTypeChallengeCompleted,
		domain.EventTypeChallengeClaimed,
		domain.EventTypeChallengesRefreshed,
		domain.EventTypeTierUp,
		domain.EventTypeLevelMastered,
	}
	for _, t := range types {
		s.bus.Subscribe(event.Type(t), s.bridge)
	}

	slog.Info("SSE subscriber registered for event types", "types", types)
}

// bridge forwards one bus event to the hub, extracting the player id so
// per-player streams can filter.
func (s *Subscriber) bridge(_ context.Context, evt event.Event) error {
	playerID, err := extractPlayerID(evt)
	if err != nil {
		slog.Warn(LogMsgDecodeError, "event_type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(string(evt.Type), playerID, evt.Payload)
	slog.Debug(LogMsgEventBroadcast, "event_type", evt.Type, "player_id", playerID)
	return nil
}

func extractPlayerID(evt event.Event) (string, error) {
	switch string(evt.Type) {
	case domain.EventTypeBonusSpawned:
		p, err := event.DecodePayload[event.BonusSpawnPayloadV1](evt.Payload)
		return p.PlayerID, err
	case domain.EventTypeRewardGranted:
		p, err := event.DecodePayload[event.RewardGrantedPayloadV1](evt.Payload)
		return p.PlayerID, err
	case domain.EventTypeAchievementUnlocked:
		p, err := event.DecodePayload[event.AchievementUnlockedPayloadV1](evt.Payload)
		return p.PlayerID, err
	case domain.EventTypeChallengeCompleted:
		p, err := event.DecodePayload[event.ChallengeCompletedPayloadV1](evt.Payload)
		return p.PlayerID, err
	case domain.EventTypeChallengeClaimed:
		p, err := event.DecodePayload[event.ChallengeClaimedPayloadV1](evt.Payload)
		return p.PlayerID, err
	case domain.EventTypeChallengesRefreshed:
		p, err := event.DecodePayload[event.ChallengesRefreshedPayloadV1](evt.Payload)
		return p.PlayerID, err
	case domain.EventTypeTierUp:
		p, err := event.DecodePayload[event.TierUpPayloadV1](evt.Payload)
		return p.PlayerID, err
	case domain.EventTypeLevelMastered:
		p, err := event.DecodePayload[event.LevelMasteredPayloadV1](evt.Payload)
		return p.PlayerID, err
	}
	return "", nil
}
