// Package detect orchestrates the camera detection loop: frame sampling,
// concurrent recognition, result publication and audio feedback.
package detect

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/lexicam/internal/capture"
	"github.com/ayusman/lexicam/internal/model"
	"github.com/ayusman/lexicam/internal/recognize"
	"github.com/ayusman/lexicam/internal/store"
	"github.com/ayusman/lexicam/internal/vocab"
)

// DefaultInterval is the frame sampling period.
const DefaultInterval = 2500 * time.Millisecond

var (
	// ErrDetectionDisabled is returned when a session is requested while
	// the camera detection setting is off.
	ErrDetectionDisabled = errors.New("camera detection is disabled")

	// ErrAlreadyRunning is returned when a session is requested while one
	// is already active.
	ErrAlreadyRunning = errors.New("detection session already running")

	// ErrSessionSuperseded is returned when a session is stopped before it
	// finishes starting.
	ErrSessionSuperseded = errors.New("detection session superseded")
)

// Status is the lifecycle state of the detection controller.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusLoading  Status = "loading"
	StatusActive   Status = "active"
	StatusStopping Status = "stopping"
)

// Results holds the most recent recognition outcome, one slice per modality.
type Results struct {
	Objects []string `json:"objects"`
	Text    []string `json:"text"`
	Codes   []string `json:"codes"`
}

// State is a snapshot of the controller for API consumers.
type State struct {
	Status         Status  `json:"status"`
	ModelLoading   bool    `json:"modelLoading"`
	ActiveCategory string  `json:"activeCategory"`
	Results        Results `json:"results"`
	FramesSkipped  int     `json:"framesSkipped"`
}

// Announcer receives recognized vocabulary for audio feedback.
type Announcer interface {
	Announce(tokens []string, idx *vocab.Index)
	ResetCooldown()
	CancelPending()
}

// Config holds configuration options for the detection controller.
type Config struct {
	Store  *store.Store
	Loader *model.Loader

	// Interval between sampled frames; DefaultInterval when zero.
	Interval time.Duration

	// FrontCameraID and RearCameraID select the capture device; the
	// camera-flipped setting decides which one a session opens.
	FrontCameraID int
	RearCameraID  int

	// NewCamera builds a camera for a device ID. Defaults to
	// capture.NewCamera; tests substitute fakes here.
	NewCamera func(deviceID int) capture.Camera

	// OCR and Decoder back the text and code recognizers. Either may be
	// nil, which disables that modality.
	OCR     recognize.OCREngine
	Decoder recognize.CodeDecoder

	Announcer Announcer

	// SceneThreshold tunes the scene change detector; zero uses the
	// default.
	SceneThreshold float64

	// Recognizers overrides the recognizer set for a session. Used by
	// tests to substitute stubs.
	Recognizers func(m model.Model, idx *vocab.Index, scope string) []recognize.Recognizer
}

// Controller owns the detection session lifecycle. A session binds a camera,
// a vocabulary index and a set of recognizers to a periodic sampling loop.
// At most one session is active at a time, and only one tick is ever in
// flight: the loop goroutine joins all recognizers before the next frame.
type Controller struct {
	cfg Config

	mu            sync.RWMutex
	status        Status
	generation    uint64
	category      string
	camera        capture.Camera
	scene         *capture.SceneChangeDetector
	recognizers   []recognize.Recognizer
	index         *vocab.Index
	results       Results
	framesSkipped int
	stopCh        chan struct{}
	done          chan struct{}
}

// New creates a detection controller. No session is started.
func New(cfg Config) *Controller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.NewCamera == nil {
		cfg.NewCamera = capture.NewCamera
	}
	return &Controller{
		cfg:    cfg,
		status: StatusIdle,
	}
}

// Start begins a detection session for the given category. It loads the
// category's recognition model, opens the camera and starts the sampling
// loop. An empty categoryID starts an unscoped session on the default model.
// A model that fails to load degrades the session to text and code
// recognition instead of failing it.
func (c *Controller) Start(categoryID string) error {
	settings := c.cfg.Store.Settings()
	if !settings.CameraDetectionEnabled() {
		return ErrDetectionDisabled
	}

	c.mu.Lock()
	if c.status != StatusIdle {
		c.mu.Unlock()
		return ErrAlreadyRunning
	}
	c.status = StatusLoading
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	var modelRef string
	if categoryID != "" {
		category, err := c.cfg.Store.Categories().GetByID(categoryID)
		if err != nil {
			c.abortStart(gen)
			return fmt.Errorf("resolving category %q: %w", categoryID, err)
		}
		modelRef = category.ModelURL
	}

	var m model.Model
	if c.cfg.Loader != nil {
		var err error
		m, err = c.cfg.Loader.Load(modelRef)
		if err != nil {
			// Degrade instead of failing: text and code recognition
			// still work without an object model.
			log.Printf("model load failed for category %q, continuing without object recognition: %v", categoryID, err)
			m = nil
		}
	}

	index, err := c.buildIndex()
	if err != nil {
		c.abortStart(gen)
		return fmt.Errorf("building vocabulary index: %w", err)
	}

	deviceID := c.cfg.FrontCameraID
	if settings.CameraFlipped() {
		deviceID = c.cfg.RearCameraID
	}
	camera := c.cfg.NewCamera(deviceID)
	if err := camera.Open(); err != nil {
		c.abortStart(gen)
		return fmt.Errorf("opening camera %d: %w", deviceID, err)
	}

	recognizers := c.buildRecognizers(m, index, categoryID)

	c.mu.Lock()
	if c.generation != gen {
		c.mu.Unlock()
		camera.Close()
		return ErrSessionSuperseded
	}
	c.status = StatusActive
	c.category = categoryID
	c.camera = camera
	c.scene = capture.NewSceneChangeDetector(c.cfg.SceneThreshold)
	c.recognizers = recognizers
	c.index = index
	c.results = Results{}
	c.framesSkipped = 0
	c.stopCh = make(chan struct{})
	c.done = make(chan struct{})
	stopCh, done := c.stopCh, c.done
	c.mu.Unlock()

	go c.run(gen, stopCh, done)

	log.Printf("detection session started for category %q on camera %d", categoryID, deviceID)
	return nil
}

// abortStart returns the controller to idle after a failed start, unless the
// session was superseded in the meantime.
func (c *Controller) abortStart(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation == gen && c.status == StatusLoading {
		c.status = StatusIdle
	}
}

// buildIndex loads the whole flashcard catalog into a vocabulary index.
// Indexing every card keeps card references resolvable across categories;
// the per-session scope narrows matching to the active category.
func (c *Controller) buildIndex() (*vocab.Index, error) {
	cards, err := c.cfg.Store.Flashcards().List()
	if err != nil {
		return nil, err
	}

	items := make([]vocab.Item, len(cards))
	for i, f := range cards {
		items[i] = vocab.Item{
			ID:            f.ID,
			Name:          f.Title,
			Pronunciation: f.Pronunciation,
			AudioRef:      f.SoundURL,
			CategoryID:    f.CategoryID,
		}
	}
	return vocab.NewIndex(items), nil
}

func (c *Controller) buildRecognizers(m model.Model, index *vocab.Index, scope string) []recognize.Recognizer {
	if c.cfg.Recognizers != nil {
		return c.cfg.Recognizers(m, index, scope)
	}

	settings := c.cfg.Store.Settings()
	recognizers := []recognize.Recognizer{
		recognize.NewObjectRecognizer(m),
	}
	if c.cfg.OCR != nil {
		recognizers = append(recognizers,
			recognize.NewTextRecognizer(c.cfg.OCR, index, scope, settings.OCREnabled))
	}
	if c.cfg.Decoder != nil {
		recognizers = append(recognizers,
			recognize.NewCodeRecognizer(c.cfg.Decoder, index, scope, settings.QREnabled))
	}
	return recognizers
}

// run is the session loop. Ticks are strictly sequential: a tick joins every
// recognizer before the loop can take the next frame.
func (c *Controller) run(gen uint64, stopCh, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(c.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			c.tick(gen)
		}
	}
}

// tick samples one frame, fans it out to all recognizers concurrently and
// publishes the joined results. A frame that cannot be read is counted as
// skipped, which distinguishes capture trouble from a frame where nothing
// was recognized.
func (c *Controller) tick(gen uint64) {
	c.mu.RLock()
	camera := c.camera
	scene := c.scene
	recognizers := c.recognizers
	index := c.index
	c.mu.RUnlock()

	if camera == nil {
		return
	}

	frame, err := camera.ReadFrame()
	if err != nil {
		c.mu.Lock()
		if c.generation == gen {
			c.framesSkipped++
		}
		c.mu.Unlock()
		return
	}

	if scene != nil {
		if changed, _ := scene.Changed(frame); changed && c.cfg.Announcer != nil {
			// A new scene may legitimately show words spoken moments ago.
			c.cfg.Announcer.ResetCooldown()
		}
	}

	results := c.recognizeFrame(frame, recognizers)
	frame.Close()

	c.mu.Lock()
	if c.generation != gen {
		// The session was stopped or replaced while this frame was in
		// flight; its results no longer apply.
		c.mu.Unlock()
		return
	}
	c.results = results
	c.mu.Unlock()

	if c.cfg.Announcer != nil {
		tokens := union(results.Objects, results.Text, results.Codes)
		if len(tokens) > 0 {
			c.cfg.Announcer.Announce(tokens, index)
		}
	}
}

// recognizeFrame runs every recognizer against the frame concurrently and
// joins them all before returning.
func (c *Controller) recognizeFrame(frame *gocv.Mat, recognizers []recognize.Recognizer) Results {
	type outcome struct {
		name   string
		tokens []string
	}

	outcomes := make([]outcome, len(recognizers))
	var wg sync.WaitGroup
	for i, r := range recognizers {
		wg.Add(1)
		go func(i int, r recognize.Recognizer) {
			defer wg.Done()
			outcomes[i] = outcome{name: r.Name(), tokens: r.Detect(frame)}
		}(i, r)
	}
	wg.Wait()

	var results Results
	for _, o := range outcomes {
		switch o.name {
		case "text":
			results.Text = append(results.Text, o.tokens...)
		case "codes":
			results.Codes = append(results.Codes, o.tokens...)
		default:
			results.Objects = append(results.Objects, o.tokens...)
		}
	}
	return results
}

// Stop ends the active session and releases its resources. Safe to call in
// any state; stopping an idle controller is a no-op.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.status == StatusIdle {
		c.mu.Unlock()
		return
	}

	c.status = StatusStopping
	c.generation++
	stopCh, done := c.stopCh, c.done
	camera, scene := c.camera, c.scene
	c.stopCh, c.done = nil, nil
	c.camera, c.scene = nil, nil
	c.recognizers = nil
	c.index = nil
	c.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
		<-done
	}

	if camera != nil {
		if err := camera.Close(); err != nil {
			log.Printf("error closing camera: %v", err)
		}
	}
	if scene != nil {
		scene.Close()
	}
	if c.cfg.Loader != nil {
		c.cfg.Loader.Invalidate()
	}
	if c.cfg.Announcer != nil {
		c.cfg.Announcer.CancelPending()
	}

	c.mu.Lock()
	c.status = StatusIdle
	c.category = ""
	c.results = Results{}
	c.mu.Unlock()

	log.Println("detection session stopped")
}

// SwitchCategory stops the active session and starts a new one for the given
// category, forcing a model reload.
func (c *Controller) SwitchCategory(categoryID string) error {
	c.Stop()
	return c.Start(categoryID)
}

// SetSetting persists a settings flag and applies its side effects: turning
// camera detection off stops the active session, and flipping the camera
// restarts it on the other device.
func (c *Controller) SetSetting(key string, value bool) error {
	if !store.KnownSetting(key) {
		return fmt.Errorf("unknown setting %q", key)
	}

	settings := c.cfg.Store.Settings()
	if err := settings.SetBool(key, value); err != nil {
		return err
	}

	switch key {
	case store.SettingCameraDetectionEnabled:
		if !value {
			c.Stop()
		}
	case store.SettingCameraFlipped:
		c.mu.RLock()
		category := c.category
		active := c.status == StatusActive || c.status == StatusLoading
		c.mu.RUnlock()
		if active {
			c.Stop()
			return c.Start(category)
		}
	}
	return nil
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	loading := false
	if c.cfg.Loader != nil {
		loading = c.cfg.Loader.Loading()
	}

	return State{
		Status:         c.status,
		ModelLoading:   loading,
		ActiveCategory: c.category,
		Results: Results{
			Objects: append([]string(nil), c.results.Objects...),
			Text:    append([]string(nil), c.results.Text...),
			Codes:   append([]string(nil), c.results.Codes...),
		},
		FramesSkipped: c.framesSkipped,
	}
}

// Camera returns the active session's camera, or nil when no session runs.
// The live frame stream reads from it between detection ticks.
func (c *Controller) Camera() capture.Camera {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.camera
}

// union joins token slices preserving order, dropping duplicates.
func union(slices ...[]string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, tokens := range slices {
		for _, t := range tokens {
			if seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
