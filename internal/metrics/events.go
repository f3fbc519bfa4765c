package metrics

import (
	"context"

	"github.com/skyburst-games/popmeta/internal/domain"
	"github.com/skyburst-games/popmeta/internal/event"
	"github.com/skyburst-games/popmeta/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		domain.EventTypeBonusSpawned,
		domain.EventTypeRewardGranted,
		domain.EventTypeAchievementUnlocked,
		domain.EventTypeChallengeCompleted,
		domain.EventTypeChallengeClaimed,
		domain.EventTypeChallengesRefreshed,
		domain.EventTypeTierUp,
		domain.EventTypeLevelMastered,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case domain.EventTypeBonusSpawned:
		BonusSpawns.Inc()

	case domain.EventTypeRewardGranted:
		payload, err := event.DecodePayload[event.RewardGrantedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		RewardsGranted.WithLabelValues(payload.RewardType, payload.Rarity).Inc()

	case domain.EventTypeAchievementUnlocked:
		payload, err := event.DecodePayload[event.AchievementUnlockedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		AchievementsUnlocked.Inc()
		CoinsGranted.Add(float64(payload.RewardCoins))

	case domain.EventTypeChallengeCompleted:
		payload, err := event.DecodePayload[event.ChallengeCompletedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		ChallengesCompleted.WithLabelValues(payload.Difficulty).Inc()

	case domain.EventTypeChallengeClaimed:
		payload, err := event.DecodePayload[event.ChallengeClaimedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		ChallengesClaimed.Inc()
		CoinsGranted.Add(float64(payload.Coins))

	case domain.EventTypeChallengesRefreshed:
		ChallengeRefreshes.Inc()

	case domain.EventTypeTierUp:
		TierUps.Inc()

	case domain.EventTypeLevelMastered:
		payload, err := event.DecodePayload[event.LevelMasteredPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		StarsEarned.Add(float64(payload.StarsDelta))
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
