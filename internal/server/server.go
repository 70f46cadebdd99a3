// Package server provides the HTTP server for the Lexicam word-learning service.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/lexicam/internal/capture"
	"github.com/ayusman/lexicam/internal/server/api"
	"github.com/ayusman/lexicam/internal/store"
)

// DetectionSource is the detection controller surface the server uses: the
// API control surface plus access to the live camera for streaming.
type DetectionSource interface {
	api.DetectionService
	Camera() capture.Camera
}

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Detection DetectionSource
}

// Server represents the HTTP server for the Lexicam application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		categoryHandler := api.NewCategoryHandler(s.config.Store)
		s.mux.Handle("/api/categories", categoryHandler)
		s.mux.Handle("/api/categories/", categoryHandler)

		flashcardHandler := api.NewFlashcardHandler(s.config.Store)
		s.mux.Handle("/api/flashcards", flashcardHandler)
		s.mux.Handle("/api/flashcards/", flashcardHandler)
	}

	if s.config.Detection != nil {
		detectionHandler := api.NewDetectionHandler(s.config.Detection)
		s.mux.Handle("/api/detection", detectionHandler)
		s.mux.Handle("/api/detection/", detectionHandler)

		streamHandler := NewStreamHandler(s.config.Detection)
		s.mux.Handle("/api/stream", streamHandler)

		detectionsHandler := NewDetectionsHandler(s.config.Detection)
		s.mux.Handle("/api/detections", detectionsHandler)
	}

	if s.config.Store != nil && s.config.Detection != nil {
		settingsHandler := api.NewSettingsHandler(s.config.Store, s.config.Detection)
		s.mux.Handle("/api/settings", settingsHandler)
	}

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
