package sse

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is one message sent over an SSE stream.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	PlayerID  string      `json:"player_id,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Client is one connected SSE stream. A client with a non-empty PlayerID
// only receives events for that player; an empty TypeFilter means all types.
type Client struct {
	ID           string
	PlayerID     string
	EventChannel chan Event
	TypeFilter   map[string]bool
}

// Hub fans broadcast events out to connected SSE clients.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client
	incoming chan Event
	shutdown chan struct{}
	wg       sync.WaitGroup
}

// NewHub creates a new SSE Hub
func NewHub() *Hub {
	return &Hub{
		clients:  make(map[string]*Client),
		incoming: make(chan Event, BroadcastBufferSize),
		shutdown: make(chan struct{}),
	}
}

// Start starts the hub's fan-out loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop shuts down the fan-out loop and closes all client channels.
func (h *Hub) Stop() {
	close(h.shutdown)
	h.wg.Wait()

	h.mu.Lock()
	for _, client := range h.clients {
		close(client.EventChannel)
	}
	h.clients = make(map[string]*Client)
	h.mu.Unlock()
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case evt := <-h.incoming:
			h.mu.RLock()
			for _, client := range h.clients {
				if client.PlayerID != "" && evt.PlayerID != "" && client.PlayerID != evt.PlayerID {
					continue
				}
				if client.TypeFilter != nil && !client.TypeFilter[evt.Type] {
					continue
				}
				// Non-blocking send: slow clients drop events rather than
				// stalling the fan-out loop.
				select {
				case client.EventChannel <- evt:
				default:
				}
			}
			h.mu.RUnlock()

		case <-h.shutdown:
			return
		}
	}
}

// Register adds a client. eventTypes narrows the stream to the listed types;
// playerID narrows it to one player's events.
func (h *Hub) Register(playerID string, eventTypes []string) *Client {
	client := &Client{
		ID:           uuid.New().String(),
		PlayerID:     playerID,
		EventChannel: make(chan Event, ClientEventBuffer),
	}
	if len(eventTypes) > 0 {
		client.TypeFilter = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			client.TypeFilter[t] = true
		}
	}

	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()
	return client
}

// Unregister removes a client and closes its channel.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.EventChannel)
		delete(h.clients, clientID)
	}
}

// Broadcast queues an event for fan-out. Drops the event when the hub buffer
// is full.
func (h *Hub) Broadcast(eventType, playerID string, payload interface{}) {
	evt := Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		PlayerID:  playerID,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}

	select {
	case h.incoming <- evt:
	default:
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage formats an SSE event for transmission
func FormatSSEMessage(evt Event) ([]byte, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}

	// SSE format: "id: <id>\nevent: <type>\ndata: <json>\n\n"
	msg := "id: " + evt.ID + "\n"
	msg += "event: " + evt.Type + "\n"
	msg += "data: " + string(data) + "\n\n"

	return []byte(msg), nil
}
