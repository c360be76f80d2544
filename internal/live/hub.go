// Package live pushes booking events to admins over websockets.
package live

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"sportshub/internal/domain"
)

type EventType string

const (
	BookingCreated   EventType = "booking.created"
	BookingUpdated   EventType = "booking.updated"
	BookingCancelled EventType = "booking.cancelled"
	BookingApproved  EventType = "booking.approved"
	BookingRejected  EventType = "booking.rejected"
)

type Event struct {
	Type    EventType       `json:"type"`
	Booking *domain.Booking `json:"booking"`
	At      time.Time       `json:"at"`
}

const sendBuffer = 32

type client struct {
	userID int64
	send   chan []byte
}

// Hub fans events out to every connected client. One admin may hold several connections.
type Hub struct {
	clients map[*client]struct{}
	mutex   sync.RWMutex
	log     *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		log:     log,
	}
}

func (h *Hub) register(userID int64) *client {
	c := &client{userID: userID, send: make(chan []byte, sendBuffer)}

	h.mutex.Lock()
	h.clients[c] = struct{}{}
	h.mutex.Unlock()
	return c
}

func (h *Hub) unregister(c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Publish delivers e to every client without blocking; clients whose buffer is full are dropped.
func (h *Hub) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	payload, err := json.Marshal(e)
	if err != nil {
		h.log.Error("live: marshal event", zap.String("type", string(e.Type)), zap.Error(err))
		return
	}

	var slow []*client
	h.mutex.RLock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			slow = append(slow, c)
		}
	}
	h.mutex.RUnlock()

	for _, c := range slow {
		h.log.Warn("live: dropping slow client", zap.Int64("user_id", c.userID))
		h.unregister(c)
	}
}

func (h *Hub) Count() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}
