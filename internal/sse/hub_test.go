package sse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyburst-games/popmeta/internal/domain"
	"github.com/skyburst-games/popmeta/internal/event"
	"github.com/skyburst-games/popmeta/internal/testing/leaktest"
)

func receiveEvent(t *testing.T, client *Client) Event {
	t.Helper()
	select {
	case evt := <-client.EventChannel:
		return evt
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for SSE event")
		return Event{}
	}
}

func TestHubBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	a := hub.Register("", nil)
	b := hub.Register("", nil)

	hub.Broadcast(domain.EventTypeRewardGranted, "p1", map[string]string{"hello": "world"})

	for _, client := range []*Client{a, b} {
		evt := receiveEvent(t, client)
		assert.Equal(t, domain.EventTypeRewardGranted, evt.Type)
		assert.Equal(t, "p1", evt.PlayerID)
	}
}

func TestHubPlayerFilter(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	mine := hub.Register("p1", nil)
	other := hub.Register("p2", nil)

	hub.Broadcast(domain.EventTypeTierUp, "p1", nil)

	evt := receiveEvent(t, mine)
	assert.Equal(t, "p1", evt.PlayerID)

	select {
	case evt := <-other.EventChannel:
		t.Fatalf("client for p2 received event for %s", evt.PlayerID)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubTypeFilter(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	client := hub.Register("", []string{domain.EventTypeTierUp})

	hub.Broadcast(domain.EventTypeRewardGranted, "p1", nil)
	hub.Broadcast(domain.EventTypeTierUp, "p1", nil)

	evt := receiveEvent(t, client)
	assert.Equal(t, domain.EventTypeTierUp, evt.Type)
}

func TestHubUnregisterClosesChannel(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	client := hub.Register("", nil)
	require.Equal(t, 1, hub.ClientCount())

	hub.Unregister(client.ID)
	assert.Equal(t, 0, hub.ClientCount())

	_, open := <-client.EventChannel
	assert.False(t, open)
}

func TestHubStopReleasesGoroutines(t *testing.T) {
	defer leaktest.Check(t, 0)()

	hub := NewHub()
	hub.Start()
	hub.Register("p1", nil)
	hub.Broadcast(domain.EventTypeRewardGranted, "p1", nil)
	hub.Stop()
}

func TestSubscriberBridgesBusEvents(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	bus := event.NewMemoryBus()
	NewSubscriber(hub, bus).Subscribe()

	client := hub.Register("p1", nil)

	evt := event.NewTierUpEvent("p1", 2, 3, "level_completion")
	require.NoError(t, bus.Publish(context.Background(), evt))

	received := receiveEvent(t, client)
	assert.Equal(t, domain.EventTypeTierUp, received.Type)
	assert.Equal(t, "p1", received.PlayerID)
}

func TestFormatSSEMessage(t *testing.T) {
	msg, err := FormatSSEMessage(Event{ID: "abc", Type: "reward.granted", Timestamp: 1, Payload: nil})
	require.NoError(t, err)
	assert.Contains(t, string(msg), "id: abc\n")
	assert.Contains(t, string(msg), "event: reward.granted\n")
	assert.Contains(t, string(msg), "data: ")
}
