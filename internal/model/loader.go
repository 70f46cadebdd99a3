package model

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Loader caches the active recognition model so that at most one model is
// resident at a time. A cached model is reused while the requested ref
// matches; a different ref (or an Invalidate) forces a reload.
type Loader struct {
	runtime Runtime
	loading atomic.Bool

	mu        sync.Mutex
	model     Model
	activeRef string
	loaded    bool
}

// NewLoader creates a Loader over the given runtime.
func NewLoader(runtime Runtime) *Loader {
	return &Loader{runtime: runtime}
}

// Load returns the model for ref, reusing the cached one when it already
// matches (including the "empty ref = default model" case). Loads are
// serialized; the slow path may block on network I/O.
func (l *Loader) Load(ref string) (Model, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded && l.activeRef == ref {
		return l.model, nil
	}

	// A different model was cached; drop it before loading the new one.
	l.dropLocked()

	l.loading.Store(true)
	m, err := l.runtime.LoadModel(ref)
	l.loading.Store(false)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoModel, err)
	}

	l.model = m
	l.activeRef = ref
	l.loaded = true
	return m, nil
}

// Invalidate drops the cached model, forcing the next Load to reacquire.
// Called when the session's category changes and when a session fully stops.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dropLocked()
}

func (l *Loader) dropLocked() {
	if l.model != nil {
		l.model.Close()
	}
	l.model = nil
	l.activeRef = ""
	l.loaded = false
}

// Loading reports whether a load is currently in progress.
func (l *Loader) Loading() bool {
	return l.loading.Load()
}

// ActiveRef returns the ref of the cached model and whether one is cached.
func (l *Loader) ActiveRef() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.activeRef, l.loaded
}
