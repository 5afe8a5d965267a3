// Package server provides the HTTP surface of the mudra gesture
// control system: configuration APIs, the camera preview stream and
// the live event feed.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/server/api"
	"github.com/ayusman/mudra/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Camera    capture.Camera

	// OnConfigChange is invoked after a binding or setting mutation so
	// the pipeline can reload its policy table and thresholds.
	OnConfigChange func()
}

// Server is the HTTP server for the mudra application.
type Server struct {
	config Config
	mux    *http.ServeMux
	feed   *FeedHandler
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		feed:   NewFeedHandler(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// Feed returns the live event feed so the pipeline can publish into it.
func (s *Server) Feed() *FeedHandler {
	return s.feed
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register configuration APIs if Store is configured
	if s.config.Store != nil {
		bindingHandler := api.NewBindingHandler(s.config.Store, s.config.OnConfigChange)
		s.mux.Handle("/api/bindings", bindingHandler)
		s.mux.Handle("/api/bindings/", bindingHandler)

		settingsHandler := api.NewSettingsHandler(s.config.Store, s.config.OnConfigChange)
		s.mux.Handle("/api/settings", settingsHandler)
	}

	// Register camera preview endpoint if Camera is configured
	if s.config.Camera != nil {
		streamHandler := NewStreamHandler(s.config.Camera)
		s.mux.Handle("/api/stream", streamHandler)
	}

	// Live feedback feed is always available; it just idles until the
	// pipeline publishes.
	s.mux.Handle("/api/feed", s.feed)

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
