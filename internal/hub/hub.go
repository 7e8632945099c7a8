package hub

import (
	"encoding/json"
	"sync"
)

// AllGames is the topic that receives every review event.
const AllGames uint = 0

// EventReviewCreated is sent after a review and its tags are stored.
const EventReviewCreated = "review.created"

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Client is a subscriber's buffered channel; the SSE handler drains it.
type Client chan []byte

// Hub fans review events out to subscribers, grouped by game ID.
type Hub struct {
	topics map[uint]map[Client]bool
	mu     sync.RWMutex
}

// GlobalHub is the hub the HTTP handlers publish to.
var GlobalHub = NewHub()

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		topics: make(map[uint]map[Client]bool),
	}
}

// Subscribe registers client for events about gameID (AllGames for every game).
func (h *Hub) Subscribe(gameID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.topics[gameID]; !ok {
		h.topics[gameID] = make(map[Client]bool)
	}
	h.topics[gameID][client] = true
}

// Unsubscribe removes a client and closes its channel.
func (h *Hub) Unsubscribe(gameID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.topics[gameID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client)
			if len(clients) == 0 {
				delete(h.topics, gameID)
			}
		}
	}
}

// Subscribers returns the number of clients listening on gameID.
func (h *Hub) Subscribers(gameID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[gameID])
}

// Publish sends event to the subscribers of gameID and of AllGames.
func (h *Hub) Publish(gameID uint, event Event) error {
	message, err := json.Marshal(event)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	h.send(AllGames, message)
	if gameID != AllGames {
		h.send(gameID, message)
	}
	return nil
}

// send must be called with the read lock held.
func (h *Hub) send(topic uint, message []byte) {
	for client := range h.topics[topic] {
		// Slow clients miss events rather than block the publisher.
		select {
		case client <- message:
		default:
		}
	}
}
