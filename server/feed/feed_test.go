package feed

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := newTestHub()
	go hub.Start()

	client := &Client{ID: "c1", Send: make(chan []byte, 1)}
	hub.Register <- client

	require.Eventually(t, func() bool {
		return hub.Subscribers() == 1
	}, time.Second, 10*time.Millisecond)

	hub.Broadcast(map[string]string{"outcome": "first"})

	select {
	case payload := <-client.Send:
		assert.JSONEq(t, `{"outcome":"first"}`, string(payload))
	case <-time.After(time.Second):
		t.Fatal("expected a broadcast payload")
	}
}

func TestHub_SlowSubscriberMissesInsteadOfBlocking(t *testing.T) {
	hub := newTestHub()
	go hub.Start()

	// Buffer of one: the second broadcast must be dropped, not block
	client := &Client{ID: "c1", Send: make(chan []byte, 1)}
	hub.Register <- client

	require.Eventually(t, func() bool {
		return hub.Subscribers() == 1
	}, time.Second, 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		hub.Broadcast("one")
		hub.Broadcast("two")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a slow subscriber")
	}

	assert.Len(t, client.Send, 1)
}

func TestHub_Unregister(t *testing.T) {
	hub := newTestHub()
	go hub.Start()

	client := &Client{ID: "c1", Send: make(chan []byte, 1)}
	hub.Register <- client
	require.Eventually(t, func() bool {
		return hub.Subscribers() == 1
	}, time.Second, 10*time.Millisecond)

	hub.Unregister <- client
	require.Eventually(t, func() bool {
		return hub.Subscribers() == 0
	}, time.Second, 10*time.Millisecond)

	// Send channel is closed on unregister
	_, open := <-client.Send
	assert.False(t, open)
}
