package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/lexicam/internal/detect"
)

// DetectionService is the surface of the detection controller the API
// depends on. Tests substitute a stub.
type DetectionService interface {
	Start(categoryID string) error
	Stop()
	SwitchCategory(categoryID string) error
	State() detect.State
	SetSetting(key string, value bool) error
}

// DetectionHandler handles HTTP requests controlling the detection session.
type DetectionHandler struct {
	service DetectionService
}

// NewDetectionHandler creates a new DetectionHandler for the given service.
func NewDetectionHandler(service DetectionService) *DetectionHandler {
	return &DetectionHandler{service: service}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *DetectionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/detection, /api/detection/start,
	// /api/detection/stop or /api/detection/category
	path := strings.TrimPrefix(r.URL.Path, "/api/detection")
	path = strings.TrimPrefix(path, "/")

	switch path {
	case "":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.state(w, r)
	case "start":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.start(w, r)
	case "stop":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.stop(w, r)
	case "category":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.switchCategory(w, r)
	default:
		http.NotFound(w, r)
	}
}

type sessionRequest struct {
	CategoryID string `json:"categoryId"`
}

// state handles GET /api/detection and returns the controller snapshot.
func (h *DetectionHandler) state(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.State())
}

// start handles POST /api/detection/start and begins a detection session.
// An absent categoryId starts an unscoped session on the default model.
func (h *DetectionHandler) start(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.service.Start(req.CategoryID); err != nil {
		switch {
		case errors.Is(err, detect.ErrDetectionDisabled):
			writeError(w, http.StatusConflict, "Camera detection is disabled")
		case errors.Is(err, detect.ErrAlreadyRunning):
			writeError(w, http.StatusConflict, "A detection session is already running")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to start detection")
		}
		return
	}

	writeJSON(w, http.StatusOK, h.service.State())
}

// stop handles POST /api/detection/stop and ends the active session.
func (h *DetectionHandler) stop(w http.ResponseWriter, r *http.Request) {
	h.service.Stop()
	writeJSON(w, http.StatusOK, h.service.State())
}

// switchCategory handles POST /api/detection/category and restarts the
// session on a new category.
func (h *DetectionHandler) switchCategory(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.service.SwitchCategory(req.CategoryID); err != nil {
		if errors.Is(err, detect.ErrDetectionDisabled) {
			writeError(w, http.StatusConflict, "Camera detection is disabled")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to switch category")
		return
	}

	writeJSON(w, http.StatusOK, h.service.State())
}
