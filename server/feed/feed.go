// Package feed broadcasts scored showdowns to WebSocket subscribers.
package feed

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// Client represents one connected feed subscriber
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

// Hub tracks all feed subscribers and fans scored results out to them
type Hub struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	logger     *slog.Logger
	mutex      sync.RWMutex
}

// NewHub creates a new feed hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		logger:     logger,
	}
}

// Start begins processing subscriber registrations
func (h *Hub) Start() {
	for {
		select {
		case client := <-h.Register:
			h.mutex.Lock()
			h.clients[client.ID] = client
			h.mutex.Unlock()
			h.logger.Debug("feed subscriber registered", "client", client.ID)
		case client := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mutex.Unlock()
			h.logger.Debug("feed subscriber unregistered", "client", client.ID)
		}
	}
}

// Broadcast marshals v as JSON and queues it for every subscriber.
// Subscribers with a full send buffer miss the message rather than block
// the scoring path.
func (h *Hub) Broadcast(v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("feed broadcast marshal failed", "error", err)
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for _, client := range h.clients {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

// Subscribers returns the current subscriber count
func (h *Hub) Subscribers() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
