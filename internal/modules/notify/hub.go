// Package notify pushes reservation lifecycle events to connected
// owners over websockets. Delivery is best effort: an offline owner
// simply misses the event, the reservation flow never waits on it.
package notify

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Virgile-Eratel/YDaysM1-api/internal/domain"
)

type Event struct {
	Type          string                   `json:"type"`
	ReservationID int64                    `json:"reservationId"`
	PlaceID       int64                    `json:"placeId"`
	Status        domain.ReservationStatus `json:"status"`
	TotalPrice    float64                  `json:"totalPrice"`
	At            time.Time                `json:"at"`
}

const (
	EventReservationCreated   = "reservation.created"
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationCompleted = "reservation.completed"
	EventReservationCancelled = "reservation.cancelled"
)

type Hub struct {
	connections map[int64]*websocket.Conn
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]*websocket.Conn),
	}
}

func (h *Hub) Register(ownerID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, exists := h.connections[ownerID]; exists && old != nil {
		_ = old.Close()
	}
	h.connections[ownerID] = conn
}

func (h *Hub) Unregister(ownerID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conn, exists := h.connections[ownerID]; exists && conn != nil {
		_ = conn.Close()
		delete(h.connections, ownerID)
	}
}

// Notify sends the event to the owner's connection if one is open.
// Returns false when the owner is offline or the write failed.
func (h *Hub) Notify(ownerID int64, ev Event) bool {
	h.mutex.RLock()
	conn, exists := h.connections[ownerID]
	h.mutex.RUnlock()

	if !exists || conn == nil {
		return false
	}

	if err := conn.WriteJSON(ev); err != nil {
		h.Unregister(ownerID)
		return false
	}
	return true
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, id)
	}
}
