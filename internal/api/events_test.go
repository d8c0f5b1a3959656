package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ideaforge/domain/core"
)

func clientCount(h *EventHub, id core.SessionID) int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients[id])
}

func waitForClients(t *testing.T, h *EventHub, id core.SessionID, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if clientCount(h, id) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Expected %d clients for session %s, got %d", want, id, clientCount(h, id))
}

// TestHandleSSEUnregistersOnDisconnect tests that a client's hub entry is
// removed when its request context ends, even while the unregister channel
// is under load.
func TestHandleSSEUnregistersOnDisconnect(t *testing.T) {
	hub := NewEventHub(nil)
	sessionID := core.SessionID("s1")

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/events?session_id=s1", nil).WithContext(ctx)

	done := make(chan struct{})
	go func() {
		hub.HandleSSE(httptest.NewRecorder(), req)
		close(done)
	}()

	waitForClients(t, hub, sessionID, 1)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Handler did not return after disconnect")
	}

	waitForClients(t, hub, sessionID, 0)
}
