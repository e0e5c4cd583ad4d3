package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"

	"rollhouse/internal/event"
)

type Hub struct {
	clients map[*websocket.Conn]bool
	mu      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
	}
}

func (h *Hub) Broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		c.WriteMessage(websocket.TextMessage, data)
	}
}

// BroadcastJSON fans a topic-tagged frame out to every client.
func (h *Hub) BroadcastJSON(topic string, payload interface{}) {
	frame, err := json.Marshal(map[string]interface{}{
		"topic": topic,
		"data":  payload,
	})
	if err != nil {
		return
	}
	h.Broadcast(frame)
}

// RegisterConsumers forwards the table's live events to connected
// clients.
func (h *Hub) RegisterConsumers(bus *event.Bus) {
	topics := []string{
		event.EventBetPlaced,
		event.EventRoundOpened,
		event.EventRoundSealed,
		event.EventRoundSettled,
		event.EventClaimPaid,
		event.EventHouseInsolvent,
	}
	for _, topic := range topics {
		t := topic
		bus.Subscribe(t, func(payload interface{}) {
			h.BroadcastJSON(t, payload)
		})
	}
}

func (h *Hub) Handler(c *websocket.Conn) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		c.Close()
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
