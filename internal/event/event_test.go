package event

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyburst-games/popmeta/internal/domain"
)

func TestMemoryBusPublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()

	var received atomic.Int32
	bus.Subscribe(Type(domain.EventTypeTierUp), func(ctx context.Context, evt Event) error {
		payload, err := DecodePayload[TierUpPayloadV1](evt.Payload)
		require.NoError(t, err)
		assert.Equal(t, "player-1", payload.PlayerID)
		assert.Equal(t, 2, payload.NewTier)
		received.Add(1)
		return nil
	})

	evt := NewTierUpEvent("player-1", 1, 2, "level_completion")
	require.NoError(t, bus.Publish(context.Background(), evt))
	assert.Equal(t, int32(1), received.Load())
}

func TestMemoryBusNoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	err := bus.Publish(context.Background(), NewTierUpEvent("p", 0, 1, ""))
	assert.NoError(t, err)
}

func TestMemoryBusCollectsHandlerErrors(t *testing.T) {
	bus := NewMemoryBus()
	bus.Subscribe("boom", func(ctx context.Context, evt Event) error {
		return errors.New("handler failed")
	})
	bus.Subscribe("boom", func(ctx context.Context, evt Event) error {
		return nil
	})

	err := bus.Publish(context.Background(), Event{Version: EventSchemaVersion, Type: "boom"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler failed")
}

func TestDecodePayloadJSONFallback(t *testing.T) {
	// Simulates a payload that arrived as a generic map (e.g. deserialized)
	raw := map[string]interface{}{
		"player_id": "p1",
		"old_tier":  float64(3),
		"new_tier":  float64(4),
	}

	payload, err := DecodePayload[TierUpPayloadV1](raw)
	require.NoError(t, err)
	assert.Equal(t, "p1", payload.PlayerID)
	assert.Equal(t, 4, payload.NewTier)
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 2 * time.Second
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 1))
	assert.Equal(t, 4*time.Second, CalculateRetryDelay(base, 2))
	assert.Equal(t, 16*time.Second, CalculateRetryDelay(base, 4))
}

func TestResilientPublisherDeliversOnFirstTry(t *testing.T) {
	bus := NewMemoryBus()
	var count atomic.Int32
	bus.Subscribe("ok", func(ctx context.Context, evt Event) error {
		count.Add(1)
		return nil
	})

	pub := NewResilientPublisher(bus, ResilientConfig{MaxRetries: 1, RetryDelay: time.Millisecond, DeadLetterPath: t.TempDir() + "/dead.jsonl"})
	pub.PublishWithRetry(context.Background(), Event{Version: EventSchemaVersion, Type: "ok"})
	pub.Wait()

	assert.Equal(t, int32(1), count.Load())
}

func TestResilientPublisherRetries(t *testing.T) {
	bus := NewMemoryBus()
	var attempts atomic.Int32
	bus.Subscribe("flaky", func(ctx context.Context, evt Event) error {
		if attempts.Add(1) < 2 {
			return errors.New("transient")
		}
		return nil
	})

	pub := NewResilientPublisher(bus, ResilientConfig{MaxRetries: 3, RetryDelay: time.Millisecond, DeadLetterPath: t.TempDir() + "/dead.jsonl"})
	pub.PublishWithRetry(context.Background(), Event{Version: EventSchemaVersion, Type: "flaky"})
	pub.Wait()

	assert.GreaterOrEqual(t, attempts.Load(), int32(2))
}
