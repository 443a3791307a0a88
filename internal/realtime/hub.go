// Package realtime is an in-process event hub. Connections subscribe to
// named rooms and receive events over buffered channels; a slow consumer
// drops events rather than blocking the publisher.
package realtime

import (
	"fmt"
	"sync"
)

// Event is one published message.
type Event struct {
	Name    string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Subscription is one listener on a set of rooms. Close it when done or the
// hub keeps delivering into its channel.
type Subscription struct {
	C     chan Event
	rooms []string
	hub   *Hub
}

// Close detaches the subscription from all its rooms.
func (s *Subscription) Close() {
	s.hub.unsubscribe(s)
}

// Hub routes events to room subscribers.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Subscription]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{rooms: map[string]map[*Subscription]struct{}{}}
}

// CompanyRoom names the broadcast room of one company.
func CompanyRoom(companyID uint64) string {
	return fmt.Sprintf("company_%d", companyID)
}

// UserRoom names the private delivery room of one user.
func UserRoom(userID uint64) string {
	return fmt.Sprintf("user_%d", userID)
}

// Subscribe attaches a new listener to the given rooms.
func (h *Hub) Subscribe(rooms ...string) *Subscription {
	sub := &Subscription{
		C:     make(chan Event, 16),
		rooms: rooms,
		hub:   h,
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, room := range rooms {
		if h.rooms[room] == nil {
			h.rooms[room] = map[*Subscription]struct{}{}
		}
		h.rooms[room][sub] = struct{}{}
	}
	return sub
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, room := range sub.rooms {
		if subs, ok := h.rooms[room]; ok {
			delete(subs, sub)
			if len(subs) == 0 {
				delete(h.rooms, room)
			}
		}
	}
}

// Publish delivers an event to every subscriber of a room. Full subscriber
// buffers are skipped.
func (h *Hub) Publish(room, event string, payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.rooms[room] {
		select {
		case sub.C <- Event{Name: event, Payload: payload}:
		default:
		}
	}
}

// ToCompany publishes to a company room.
func (h *Hub) ToCompany(companyID uint64, event string, payload interface{}) {
	h.Publish(CompanyRoom(companyID), event, payload)
}

// ToUser publishes to a user room.
func (h *Hub) ToUser(userID uint64, event string, payload interface{}) {
	h.Publish(UserRoom(userID), event, payload)
}
