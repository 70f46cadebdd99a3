package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/lexicam/internal/store"
)

// SettingsHandler handles HTTP requests for settings flags. Writes go
// through the detection service so side effects (stopping the session,
// flipping the camera) are applied.
type SettingsHandler struct {
	store   *store.Store
	service DetectionService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(s *store.Store, service DetectionService) *SettingsHandler {
	return &SettingsHandler{store: s, service: service}
}

type updateSettingRequest struct {
	Key   string `json:"key"`
	Value bool   `json:"value"`
}

// ServeHTTP implements the http.Handler interface.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// list handles GET /api/settings and returns every flag with its value.
func (h *SettingsHandler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Settings().All())
}

// update handles PUT /api/settings and sets a single flag.
func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !store.KnownSetting(req.Key) {
		writeError(w, http.StatusBadRequest, "Unknown setting")
		return
	}

	if err := h.service.SetSetting(req.Key, req.Value); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update setting")
		return
	}

	writeJSON(w, http.StatusOK, h.store.Settings().All())
}
