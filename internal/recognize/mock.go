package recognize

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockOCREngine is a test implementation of OCREngine.
type MockOCREngine struct {
	mu   sync.Mutex
	text string
	err  error
}

// SetText sets the text returned by Recognize.
func (m *MockOCREngine) SetText(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
}

// SetError sets the error returned by Recognize.
func (m *MockOCREngine) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockOCREngine) Recognize(png []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, m.err
}

func (m *MockOCREngine) Close() error { return nil }

// MockCodeDecoder is a test implementation of CodeDecoder.
type MockCodeDecoder struct {
	mu      sync.Mutex
	payload string
	err     error
}

// SetPayload sets the payload returned by Decode.
func (m *MockCodeDecoder) SetPayload(payload string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = payload
}

// SetError sets the error returned by Decode.
func (m *MockCodeDecoder) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockCodeDecoder) Decode(frame *gocv.Mat) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.payload, m.err
}

func (m *MockCodeDecoder) Close() error { return nil }

// StaticRecognizer is a test Recognizer returning fixed tokens.
type StaticRecognizer struct {
	Modality string
	Tokens   []string
}

func (s *StaticRecognizer) Name() string { return s.Modality }

func (s *StaticRecognizer) Detect(frame *gocv.Mat) []string { return s.Tokens }
