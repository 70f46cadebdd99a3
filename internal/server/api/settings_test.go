package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ayusman/lexicam/internal/store"
)

func TestSettingsHandler_List(t *testing.T) {
	s := newTestStore(t)
	h := NewSettingsHandler(s, newStubService())

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var settings map[string]bool
	if err := json.NewDecoder(rec.Body).Decode(&settings); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !settings[store.SettingSoundEnabled] {
		t.Error("sound should default to enabled")
	}
	if settings[store.SettingCameraFlipped] {
		t.Error("camera flipped should default to off")
	}
}

func TestSettingsHandler_Update(t *testing.T) {
	s := newTestStore(t)
	svc := newStubService()
	h := NewSettingsHandler(s, svc)

	body := `{"key": "sound_enabled", "value": false}`
	req := httptest.NewRequest(http.MethodPut, "/api/settings", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	// The write goes through the detection service so side effects apply
	if v, ok := svc.settings[store.SettingSoundEnabled]; !ok || v {
		t.Errorf("service settings = %v, want sound_enabled=false recorded", svc.settings)
	}
}

func TestSettingsHandler_Update_UnknownKey(t *testing.T) {
	h := NewSettingsHandler(newTestStore(t), newStubService())

	body := `{"key": "volume", "value": true}`
	req := httptest.NewRequest(http.MethodPut, "/api/settings", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestSettingsHandler_MethodNotAllowed(t *testing.T) {
	h := NewSettingsHandler(newTestStore(t), newStubService())

	req := httptest.NewRequest(http.MethodDelete, "/api/settings", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
