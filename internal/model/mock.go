package model

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockModel is a test implementation of the Model interface.
// It allows tests to control prediction results.
type MockModel struct {
	mu     sync.Mutex
	preds  []Prediction
	err    error
	closed bool
}

// NewMockModel creates a MockModel returning the given predictions.
func NewMockModel(preds ...Prediction) *MockModel {
	return &MockModel{preds: preds}
}

// SetPredictions sets the predictions returned by Predict.
func (m *MockModel) SetPredictions(preds []Prediction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.preds = preds
}

// SetError sets the error returned by Predict.
func (m *MockModel) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Predict returns the pre-configured predictions or error.
func (m *MockModel) Predict(frame *gocv.Mat) ([]Prediction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.preds, nil
}

// Close marks the model closed.
func (m *MockModel) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (m *MockModel) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// MockRuntime is a test Runtime that records load requests and serves
// pre-registered models.
type MockRuntime struct {
	mu     sync.Mutex
	models map[string]*MockModel
	err    error
	loads  []string
}

// NewMockRuntime creates an empty MockRuntime.
func NewMockRuntime() *MockRuntime {
	return &MockRuntime{models: make(map[string]*MockModel)}
}

// Register associates a model with a ref. An empty ref registers the default.
func (r *MockRuntime) Register(ref string, m *MockModel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[ref] = m
}

// SetError makes every subsequent LoadModel fail.
func (r *MockRuntime) SetError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// LoadModel records the request and returns the registered model.
func (r *MockRuntime) LoadModel(ref string) (Model, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.loads = append(r.loads, ref)
	if r.err != nil {
		return nil, r.err
	}
	if m, ok := r.models[ref]; ok {
		return m, nil
	}
	m := NewMockModel()
	r.models[ref] = m
	return m, nil
}

// Loads returns the refs requested so far, in order.
func (r *MockRuntime) Loads() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.loads))
	copy(out, r.loads)
	return out
}
