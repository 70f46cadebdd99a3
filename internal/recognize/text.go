package recognize

import (
	"log"
	"strings"
	"unicode"

	"github.com/ayusman/lexicam/internal/vocab"
	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// minTokenLen is the shortest OCR token worth matching; shorter fragments are
// almost always recognition noise.
const minTokenLen = 3

// OCREngine extracts text from an encoded still image.
type OCREngine interface {
	Recognize(png []byte) (string, error)
	Close() error
}

// TesseractEngine is the gosseract-backed OCREngine.
type TesseractEngine struct {
	client *gosseract.Client
}

// NewTesseractEngine creates an OCR engine for the given language ("eng" by
// default).
func NewTesseractEngine(language string) (*TesseractEngine, error) {
	if language == "" {
		language = "eng"
	}

	client := gosseract.NewClient()
	if err := client.SetLanguage(language); err != nil {
		client.Close()
		return nil, err
	}
	if err := client.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		client.Close()
		return nil, err
	}

	return &TesseractEngine{client: client}, nil
}

// Recognize runs OCR over a PNG-encoded image.
func (e *TesseractEngine) Recognize(png []byte) (string, error) {
	if err := e.client.SetImageFromBytes(png); err != nil {
		return "", err
	}
	return e.client.Text()
}

// Close releases the Tesseract client.
func (e *TesseractEngine) Close() error {
	return e.client.Close()
}

// TextRecognizer rasterizes frames and matches OCR output against vocabulary
// titles. It is gated by the OCR setting: when disabled it returns the empty
// set regardless of frame content.
type TextRecognizer struct {
	engine  OCREngine
	index   *vocab.Index
	scope   string
	enabled func() bool
}

// NewTextRecognizer creates a text adapter. enabled is consulted on every
// tick so a settings toggle takes effect immediately.
func NewTextRecognizer(engine OCREngine, index *vocab.Index, scope string, enabled func() bool) *TextRecognizer {
	return &TextRecognizer{engine: engine, index: index, scope: scope, enabled: enabled}
}

func (r *TextRecognizer) Name() string { return "text" }

// Detect OCRs the frame and keeps the tokens that resolve to known
// vocabulary titles.
func (r *TextRecognizer) Detect(frame *gocv.Mat) []string {
	if r.engine == nil || !r.enabled() {
		return nil
	}
	if frame == nil || frame.Empty() {
		return nil
	}

	buf, err := gocv.IMEncode(".png", *frame)
	if err != nil {
		log.Printf("text recognition: encode frame: %v", err)
		return nil
	}
	defer buf.Close()

	text, err := r.engine.Recognize(buf.GetBytes())
	if err != nil {
		log.Printf("text recognition failed: %v", err)
		return nil
	}

	return r.matchTokens(text)
}

// matchTokens splits OCR output into whitespace-delimited tokens, discards
// short or non-alphabetic ones, and keeps only known vocabulary titles.
func (r *TextRecognizer) matchTokens(text string) []string {
	var tokens []string
	for _, raw := range strings.Fields(text) {
		if len(raw) < minTokenLen || !isAlphabetic(raw) {
			continue
		}
		if it, ok := r.index.Lookup(raw, r.scope); ok {
			tokens = append(tokens, it.Name)
		}
	}
	return dedupe(tokens)
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
