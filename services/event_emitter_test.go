package services

import (
	"testing"
	"time"
)

func TestEventHubFansOutToSubscribers(t *testing.T) {
	hub := NewEventHub()
	chA, cancelA := hub.Subscribe()
	chB, cancelB := hub.Subscribe()
	defer cancelA()
	defer cancelB()

	hub.RoomAvailabilityChanged(7, false)

	for name, ch := range map[string]<-chan Event{"A": chA, "B": chB} {
		select {
		case ev := <-ch:
			if ev.Type != "RoomUpdated" {
				t.Errorf("subscriber %s: expected RoomUpdated, got %s", name, ev.Type)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %s never received the event", name)
		}
	}
}

func TestEventHubCancelStopsDelivery(t *testing.T) {
	hub := NewEventHub()
	ch, cancel := hub.Subscribe()
	cancel()

	// The channel is closed on cancel; publishing afterwards must not panic.
	hub.CheckoutCompleted(3)

	if _, open := <-ch; open {
		t.Error("expected the subscription channel to be closed")
	}
}

func TestEventHubDropsWhenSubscriberIsFull(t *testing.T) {
	hub := NewEventHub()
	ch, cancel := hub.Subscribe()
	defer cancel()

	// Nobody drains; publishing far past the buffer must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.BookingEvent("update", uint(i), 1)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
	if len(ch) != cap(ch) {
		t.Errorf("expected the buffer to be full, got %d of %d", len(ch), cap(ch))
	}
}
