package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"ideaforge/domain/core"
	"ideaforge/domain/ideation"
	"ideaforge/internal"
)

// IterationEvent is one progress event streamed to SSE subscribers.
type IterationEvent struct {
	SessionID core.SessionID         `json:"session_id"`
	EventType string                 `json:"event_type"` // iteration_started | frontier_updated | run_completed
	Sequence  int                    `json:"sequence"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp core.Timestamp         `json:"timestamp"`
}

type sseClient struct {
	sessionID core.SessionID
	channel   chan IterationEvent
}

// EventHub fans iteration events out to connected SSE clients, keyed by
// session. Slow clients drop events rather than stall the broadcaster.
type EventHub struct {
	clients    map[core.SessionID]map[chan IterationEvent]bool
	clientsMu  sync.RWMutex
	register   chan sseClient
	unregister chan sseClient
	broadcast  chan IterationEvent
	log        *internal.Logger
}

// NewEventHub creates a hub and starts its dispatch loop
func NewEventHub(log *internal.Logger) *EventHub {
	if log == nil {
		log = internal.DefaultLogger
	}
	hub := &EventHub{
		clients:    make(map[core.SessionID]map[chan IterationEvent]bool),
		register:   make(chan sseClient, 10),
		unregister: make(chan sseClient, 10),
		broadcast:  make(chan IterationEvent, 100),
		log:        log,
	}
	go hub.run()
	return hub
}

func (h *EventHub) run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			if h.clients[client.sessionID] == nil {
				h.clients[client.sessionID] = make(map[chan IterationEvent]bool)
			}
			h.clients[client.sessionID][client.channel] = true
			h.clientsMu.Unlock()

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if clients, exists := h.clients[client.sessionID]; exists {
				delete(clients, client.channel)
				close(client.channel)
				if len(clients) == 0 {
					delete(h.clients, client.sessionID)
				}
			}
			h.clientsMu.Unlock()

		case event := <-h.broadcast:
			h.clientsMu.RLock()
			for clientChan := range h.clients[event.SessionID] {
				select {
				case clientChan <- event:
				default:
					h.log.Warn("sse client channel full for session %s, skipping event", event.SessionID)
				}
			}
			h.clientsMu.RUnlock()
		}
	}
}

// IterationCompleted publishes a frontier update for a finished iteration
func (h *EventHub) IterationCompleted(sessionID core.SessionID, sequence int, result ideation.ParetoResult) {
	h.Broadcast(IterationEvent{
		SessionID: sessionID,
		EventType: "frontier_updated",
		Sequence:  sequence,
		Data: map[string]interface{}{
			"attempted":     result.Stats.Attempted,
			"frontier_size": result.Stats.FrontierSize,
			"mean_novelty":  result.Stats.MeanNovelty,
			"mean_utility":  result.Stats.MeanUtility,
		},
		Timestamp: core.Now(),
	})
}

// Broadcast sends an event to all clients listening to its session
func (h *EventHub) Broadcast(event IterationEvent) {
	select {
	case h.broadcast <- event:
	default:
		h.log.Warn("sse broadcast channel full, dropping event %s", event.EventType)
	}
}

// HandleSSE streams a session's iteration events until the client leaves
func (h *EventHub) HandleSSE(w http.ResponseWriter, r *http.Request) {
	sessionID := core.SessionID(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		http.Error(w, `{"error":"session_id parameter required"}`, http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, `{"error":"streaming not supported"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientChan := make(chan IterationEvent, 10)
	client := sseClient{sessionID: sessionID, channel: clientChan}

	select {
	case h.register <- client:
	default:
		http.Error(w, `{"error":"event hub registration failed"}`, http.StatusServiceUnavailable)
		return
	}
	// The hub goroutine always drains unregister, so a blocking send
	// cannot deadlock and never leaks the client entry.
	defer func() {
		h.unregister <- client
	}()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-clientChan:
			if !ok {
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				h.log.Warn("sse marshal failed: %v", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.EventType, payload)
			flusher.Flush()
		}
	}
}
