package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/lexicam/internal/capture"
	"github.com/ayusman/lexicam/internal/detect"
	"github.com/ayusman/lexicam/internal/feedback"
	"github.com/ayusman/lexicam/internal/model"
	"github.com/ayusman/lexicam/internal/recognize"
	"github.com/ayusman/lexicam/internal/server"
	"github.com/ayusman/lexicam/internal/store"
	"github.com/ayusman/lexicam/internal/vocab"
)

// stubCamera serves blank frames without real capture hardware.
type stubCamera struct {
	open bool
}

func (c *stubCamera) Open() error  { c.open = true; return nil }
func (c *stubCamera) Close() error { c.open = false; return nil }
func (c *stubCamera) IsOpen() bool { return c.open }

func (c *stubCamera) ReadFrame() (*gocv.Mat, error) {
	if !c.open {
		return nil, capture.ErrCameraNotOpen
	}
	frame := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
	return &frame, nil
}

func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "data.db")

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	if err := s.Seed(); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	synth := &feedback.RecorderSynthesizer{}
	player := &feedback.RecorderPlayer{}
	dispatcher := feedback.NewDispatcher(synth, player, s.Settings())
	dispatcher.SetStagger(time.Millisecond)

	controller := detect.New(detect.Config{
		Store:     s,
		Loader:    model.NewLoader(model.NewMockRuntime()),
		Interval:  10 * time.Millisecond,
		Announcer: dispatcher,
		NewCamera: func(deviceID int) capture.Camera { return &stubCamera{} },
		Recognizers: func(m model.Model, idx *vocab.Index, scope string) []recognize.Recognizer {
			return []recognize.Recognizer{
				&recognize.StaticRecognizer{Modality: "objects", Tokens: []string{"Cat"}},
			}
		},
	})
	defer controller.Stop()

	srv := server.New(server.Config{Store: s, Detection: controller})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	t.Run("SeededCatalog", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/categories")
		if err != nil {
			t.Fatalf("list categories error = %v", err)
		}
		defer resp.Body.Close()

		var listed struct {
			Categories []struct {
				ID string `json:"id"`
			} `json:"categories"`
		}
		json.NewDecoder(resp.Body).Decode(&listed)
		if len(listed.Categories) != 4 {
			t.Fatalf("len(categories) = %d, want 4", len(listed.Categories))
		}
	})

	t.Run("StartDetection", func(t *testing.T) {
		resp, err := client.Post(
			ts.URL+"/api/detection/start",
			"application/json",
			bytes.NewBufferString(`{"categoryId": "animals"}`),
		)
		if err != nil {
			t.Fatalf("start detection error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
	})

	t.Run("ResultsPublished", func(t *testing.T) {
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			resp, err := client.Get(ts.URL + "/api/detection")
			if err != nil {
				t.Fatalf("get state error = %v", err)
			}

			var state detect.State
			json.NewDecoder(resp.Body).Decode(&state)
			resp.Body.Close()

			if len(state.Results.Objects) == 1 && state.Results.Objects[0] == "Cat" {
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
		t.Fatal("detection results never appeared in state")
	})

	t.Run("Announced", func(t *testing.T) {
		// The seeded Cat card carries a recorded clip, so playback is
		// preferred over synthesis.
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			if len(player.Played())+len(synth.Spoken()) > 0 {
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
		t.Fatal("recognized word was never announced")
	})

	t.Run("DisableDetectionStopsSession", func(t *testing.T) {
		req, _ := http.NewRequest(
			http.MethodPut,
			ts.URL+"/api/settings",
			bytes.NewBufferString(`{"key": "camera_detection_enabled", "value": false}`),
		)
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("update setting error = %v", err)
		}
		resp.Body.Close()

		resp, err = client.Get(ts.URL + "/api/detection")
		if err != nil {
			t.Fatalf("get state error = %v", err)
		}
		defer resp.Body.Close()

		var state detect.State
		json.NewDecoder(resp.Body).Decode(&state)
		if state.Status != detect.StatusIdle {
			t.Errorf("status = %v, want idle after disabling detection", state.Status)
		}
	})
}
