package events

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHub(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{
		hub:  hub,
		send: make(chan []byte, 1),
	}

	hub.register <- client

	hub.Publish("progress_updated", map[string]int{"chapter_id": 7})

	select {
	case received := <-client.send:
		var event Event
		if err := json.Unmarshal(received, &event); err != nil {
			t.Fatalf("Client received invalid JSON: %v", err)
		}
		if event.Type != "progress_updated" {
			t.Errorf("Client received wrong event type: got %s, want progress_updated", event.Type)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("Client did not receive broadcast message in time")
	}

	hub.unregister <- client
	// Allow the hub to process the unregister message
	time.Sleep(10 * time.Millisecond)

	// The send channel is closed on unregister.
	if _, ok := <-client.send; ok {
		t.Fatal("Expected send channel to be closed after unregistration")
	}
}

func TestPublishDropsSlowConsumers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	slow := &Client{hub: hub, send: make(chan []byte)} // unbuffered, never read
	hub.register <- slow

	hub.Publish("one", nil)
	hub.Publish("two", nil)

	// The hub must stay responsive even though the client never reads.
	done := make(chan struct{})
	go func() {
		probe := &Client{hub: hub, send: make(chan []byte, 1)}
		hub.register <- probe
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Hub blocked on a slow consumer")
	}
}
