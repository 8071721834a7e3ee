package services

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/models"
)

// Event is one state-change announcement pushed to connected dashboards.
// Event types mirror the messages the frontend already listens for.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// EventEmitter is the outbound boundary of the booking core. Collaborators
// (UI push, task board, audit log) subscribe on the other side; the core only
// announces, it never waits for consumers.
type EventEmitter interface {
	RoomAvailabilityChanged(roomID uint, available bool)
	BookingEvent(message string, bookingID, roomID uint)
	CheckoutCompleted(roomID uint)
	TaskCreated(task models.StaffTask)
	TaskUpdated(task models.StaffTask)
}

// EventHub fans events out to SSE subscribers. Slow consumers are skipped
// rather than blocking booking commits.
type EventHub struct {
	mu   sync.Mutex
	next int
	subs map[int]chan Event
}

func NewEventHub() *EventHub {
	return &EventHub{subs: make(map[int]chan Event)}
}

// Subscribe registers a listener. The returned cancel func must be called
// when the client disconnects.
func (h *EventHub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	ch := make(chan Event, 16)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (h *EventHub) publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			slog.Warn("event subscriber too slow, dropping event", "subscriber", id, "type", ev.Type)
		}
	}
}

func (h *EventHub) RoomAvailabilityChanged(roomID uint, available bool) {
	h.publish(Event{Type: "RoomUpdated", Payload: map[string]interface{}{
		"roomId":      roomID,
		"isAvailable": available,
	}})
}

func (h *EventHub) BookingEvent(message string, bookingID, roomID uint) {
	h.publish(Event{Type: "ReceiveBookingUpdate", Payload: map[string]interface{}{
		"message":   message,
		"bookingId": bookingID,
		"roomId":    roomID,
	}})
}

func (h *EventHub) CheckoutCompleted(roomID uint) {
	h.publish(Event{Type: "CheckoutCompleted", Payload: map[string]interface{}{
		"roomId":  roomID,
		"message": fmt.Sprintf("Guest checked out from room %d. Cleaning task dispatched.", roomID),
	}})
}

func (h *EventHub) TaskCreated(task models.StaffTask) {
	h.publish(Event{Type: "TaskCreated", Payload: task})
}

func (h *EventHub) TaskUpdated(task models.StaffTask) {
	h.publish(Event{Type: "TaskUpdated", Payload: task})
}

// NopEmitter discards every event.
type NopEmitter struct{}

func (NopEmitter) RoomAvailabilityChanged(uint, bool)   {}
func (NopEmitter) BookingEvent(string, uint, uint)      {}
func (NopEmitter) CheckoutCompleted(uint)               {}
func (NopEmitter) TaskCreated(models.StaffTask)         {}
func (NopEmitter) TaskUpdated(models.StaffTask)         {}
