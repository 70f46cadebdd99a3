package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ayusman/lexicam/internal/detect"
)

// stubDetectionService records calls and returns canned responses.
type stubDetectionService struct {
	mu        sync.Mutex
	startErr  error
	started   []string
	stops     int
	switched  []string
	settings  map[string]bool
	state     detect.State
	settByKey error
}

func newStubService() *stubDetectionService {
	return &stubDetectionService{
		settings: make(map[string]bool),
		state:    detect.State{Status: detect.StatusIdle},
	}
}

func (s *stubDetectionService) Start(categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.startErr != nil {
		return s.startErr
	}
	s.started = append(s.started, categoryID)
	s.state = detect.State{Status: detect.StatusActive, ActiveCategory: categoryID}
	return nil
}

func (s *stubDetectionService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stops++
	s.state = detect.State{Status: detect.StatusIdle}
}

func (s *stubDetectionService) SwitchCategory(categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.switched = append(s.switched, categoryID)
	s.state = detect.State{Status: detect.StatusActive, ActiveCategory: categoryID}
	return nil
}

func (s *stubDetectionService) State() detect.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *stubDetectionService) SetSetting(key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settByKey != nil {
		return s.settByKey
	}
	s.settings[key] = value
	return nil
}

func TestDetectionHandler_State(t *testing.T) {
	svc := newStubService()
	svc.state = detect.State{
		Status:         detect.StatusActive,
		ActiveCategory: "animals",
		Results:        detect.Results{Objects: []string{"Cat"}},
	}
	h := NewDetectionHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/detection", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var state detect.State
	if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if state.Status != detect.StatusActive || state.ActiveCategory != "animals" {
		t.Errorf("state = %+v, want active animals session", state)
	}
	if len(state.Results.Objects) != 1 || state.Results.Objects[0] != "Cat" {
		t.Errorf("results = %+v, want [Cat]", state.Results)
	}
}

func TestDetectionHandler_Start(t *testing.T) {
	svc := newStubService()
	h := NewDetectionHandler(svc)

	body := `{"categoryId": "animals"}`
	req := httptest.NewRequest(http.MethodPost, "/api/detection/start", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if len(svc.started) != 1 || svc.started[0] != "animals" {
		t.Errorf("started = %v, want [animals]", svc.started)
	}
}

func TestDetectionHandler_Start_NoCategory(t *testing.T) {
	svc := newStubService()
	h := NewDetectionHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/detection/start", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	// An absent category starts a session on the default model.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if len(svc.started) != 1 || svc.started[0] != "" {
		t.Errorf("started = %v, want one unscoped session", svc.started)
	}
}

func TestDetectionHandler_Start_Disabled(t *testing.T) {
	svc := newStubService()
	svc.startErr = detect.ErrDetectionDisabled
	h := NewDetectionHandler(svc)

	body := `{"categoryId": "animals"}`
	req := httptest.NewRequest(http.MethodPost, "/api/detection/start", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestDetectionHandler_Start_AlreadyRunning(t *testing.T) {
	svc := newStubService()
	svc.startErr = detect.ErrAlreadyRunning
	h := NewDetectionHandler(svc)

	body := `{"categoryId": "animals"}`
	req := httptest.NewRequest(http.MethodPost, "/api/detection/start", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestDetectionHandler_Stop(t *testing.T) {
	svc := newStubService()
	h := NewDetectionHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/detection/stop", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if svc.stops != 1 {
		t.Errorf("stops = %d, want 1", svc.stops)
	}
}

func TestDetectionHandler_SwitchCategory(t *testing.T) {
	svc := newStubService()
	h := NewDetectionHandler(svc)

	body := `{"categoryId": "shapes"}`
	req := httptest.NewRequest(http.MethodPost, "/api/detection/category", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if len(svc.switched) != 1 || svc.switched[0] != "shapes" {
		t.Errorf("switched = %v, want [shapes]", svc.switched)
	}
}

func TestDetectionHandler_MethodNotAllowed(t *testing.T) {
	h := NewDetectionHandler(newStubService())

	req := httptest.NewRequest(http.MethodPost, "/api/detection", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestDetectionHandler_UnknownPath(t *testing.T) {
	h := NewDetectionHandler(newStubService())

	req := httptest.NewRequest(http.MethodPost, "/api/detection/reboot", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
