// Package server provides the HTTP surface: health, scores, the live MJPEG
// preview, and the gesture-event WebSocket feed.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/darriusnjh/KIRKIFY/internal/capture"
	"github.com/darriusnjh/KIRKIFY/internal/store"
)

// Config holds the server configuration. Nil fields disable the routes that
// need them.
type Config struct {
	StaticDir string
	Store     *store.Store
	Camera    capture.Camera
	Events    *EventHub
}

// Server is the HTTP handler for the application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		s.mux.HandleFunc("/api/scores", s.handleScores)
		s.mux.HandleFunc("/api/sessions", s.handleSessions)
	}

	if s.config.Camera != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Camera))
	}

	if s.config.Events != nil {
		s.mux.Handle("/api/events", s.config.Events)
	}

	if s.config.StaticDir != "" {
		s.mux.Handle("/", http.FileServer(http.Dir(s.config.StaticDir)))
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	})
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	scores, err := s.config.Store.Scores().List()
	if err != nil {
		http.Error(w, "Failed to load scores", http.StatusInternalServerError)
		return
	}

	type scoreJSON struct {
		Mode       string    `json:"mode"`
		Player     string    `json:"player"`
		Score      int       `json:"score"`
		AchievedAt time.Time `json:"achieved_at"`
	}
	out := make([]scoreJSON, 0, len(scores))
	for _, hs := range scores {
		out = append(out, scoreJSON{
			Mode:       hs.Mode,
			Player:     hs.Player,
			Score:      hs.Score,
			AchievedAt: hs.AchievedAt,
		})
	}

	writeJSON(w, out)
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 200 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	sessions, err := s.config.Store.Sessions().Recent(limit)
	if err != nil {
		http.Error(w, "Failed to load sessions", http.StatusInternalServerError)
		return
	}

	type sessionJSON struct {
		ID         string    `json:"id"`
		Mode       string    `json:"mode"`
		Score      int       `json:"score"`
		Gestures   int       `json:"gestures"`
		DurationMS int64     `json:"duration_ms"`
		StartedAt  time.Time `json:"started_at"`
		EndedAt    time.Time `json:"ended_at"`
	}
	out := make([]sessionJSON, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, sessionJSON{
			ID:         sess.ID,
			Mode:       sess.Mode,
			Score:      sess.Score,
			Gestures:   sess.Gestures,
			DurationMS: sess.DurationMS,
			StartedAt:  sess.StartedAt,
			EndedAt:    sess.EndedAt,
		})
	}

	writeJSON(w, out)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
