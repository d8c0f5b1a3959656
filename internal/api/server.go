package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ideaforge/domain/core"
	"ideaforge/internal"
	"ideaforge/ports"
)

// Server exposes read-only session and iteration data plus the SSE event
// stream. Runs are driven from the CLI; the HTTP surface only observes them.
type Server struct {
	router     *chi.Mux
	sessions   ports.SessionRepository
	iterations ports.IterationRepository
	hub        *EventHub
	log        *internal.Logger
}

// NewServer creates the API server and mounts its routes
func NewServer(sessions ports.SessionRepository, iterations ports.IterationRepository, hub *EventHub, log *internal.Logger) *Server {
	if log == nil {
		log = internal.DefaultLogger
	}
	s := &Server{
		router:     chi.NewRouter(),
		sessions:   sessions,
		iterations: iterations,
		hub:        hub,
		log:        log,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Hub returns the event hub so the engine side can publish into it
func (s *Server) Hub() *EventHub {
	return s.hub
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Get("/api/sessions", s.handleListSessions)
	s.router.Get("/api/sessions/{id}", s.handleGetSession)
	s.router.Get("/api/sessions/{id}/iterations", s.handleListIterations)
	s.router.Get("/api/sessions/{id}/frontier", s.handleGetFrontier)
	s.router.Get("/api/iterations/{id}", s.handleGetIteration)

	s.router.Get("/api/events", s.hub.HandleSSE)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.sessions.List(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := core.SessionID(chi.URLParam(r, "id"))
	session, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleListIterations(w http.ResponseWriter, r *http.Request) {
	id := core.SessionID(chi.URLParam(r, "id"))
	records, err := s.iterations.ListBySession(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, records)
}

// handleGetFrontier returns the latest iteration's ranked frontier
func (s *Server) handleGetFrontier(w http.ResponseWriter, r *http.Request) {
	id := core.SessionID(chi.URLParam(r, "id"))
	records, err := s.iterations.ListBySession(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if len(records) == 0 {
		s.respondJSON(w, http.StatusOK, map[string]interface{}{
			"session_id": id,
			"frontier":   []interface{}{},
		})
		return
	}
	last := records[len(records)-1]
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"session_id": id,
		"sequence":   last.Sequence,
		"frontier":   last.Result.Frontier,
		"stats":      last.Result.Stats,
	})
}

func (s *Server) handleGetIteration(w http.ResponseWriter, r *http.Request) {
	id := core.IterationID(chi.URLParam(r, "id"))
	rec, err := s.iterations.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, rec)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("write response: %v", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if core.IsNotFoundError(err) {
		status = http.StatusNotFound
	}
	s.log.Error("request failed: %v", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
