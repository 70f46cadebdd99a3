package recognize

import (
	"strings"

	"github.com/ayusman/lexicam/internal/vocab"
	"gocv.io/x/gocv"
)

// cardRefScheme prefixes structured QR payloads that point at a flashcard
// directly: "lexicam:<categoryID>/<flashcardID>".
const cardRefScheme = "lexicam:"

// CodeDecoder extracts a machine-readable code payload from a frame.
// An empty payload means no code was present; that is not an error.
type CodeDecoder interface {
	Decode(frame *gocv.Mat) (string, error)
	Close() error
}

// QRDecoder is the gocv-backed CodeDecoder.
type QRDecoder struct {
	detector gocv.QRCodeDetector
}

// NewQRDecoder creates a QR code decoder.
func NewQRDecoder() *QRDecoder {
	return &QRDecoder{detector: gocv.NewQRCodeDetector()}
}

// Decode attempts to find and decode one QR code in the frame.
func (d *QRDecoder) Decode(frame *gocv.Mat) (string, error) {
	points := gocv.NewMat()
	defer points.Close()
	straight := gocv.NewMat()
	defer straight.Close()

	return d.detector.DetectAndDecode(*frame, &points, &straight), nil
}

// Close releases the underlying detector.
func (d *QRDecoder) Close() error {
	return d.detector.Close()
}

// CodeRecognizer decodes QR/barcodes and resolves their payloads against the
// vocabulary. Gated by the QR setting.
type CodeRecognizer struct {
	decoder CodeDecoder
	index   *vocab.Index
	scope   string
	enabled func() bool
}

// NewCodeRecognizer creates a QR/code adapter.
func NewCodeRecognizer(decoder CodeDecoder, index *vocab.Index, scope string, enabled func() bool) *CodeRecognizer {
	return &CodeRecognizer{decoder: decoder, index: index, scope: scope, enabled: enabled}
}

func (r *CodeRecognizer) Name() string { return "codes" }

// Detect decodes a code from the frame and resolves the payload. A structured
// card reference resolves by ID; any other payload falls back to substring
// matching against vocabulary titles. Absence of a code is an empty result.
func (r *CodeRecognizer) Detect(frame *gocv.Mat) []string {
	if r.decoder == nil || !r.enabled() {
		return nil
	}
	if frame == nil || frame.Empty() {
		return nil
	}

	payload, err := r.decoder.Decode(frame)
	if err != nil || payload == "" {
		return nil
	}

	if _, itemID, ok := ParseCardRef(payload); ok {
		if it, found := r.index.ByID(itemID); found {
			return []string{it.Name}
		}
		return nil
	}

	return r.substringMatch(payload)
}

// substringMatch returns every vocabulary title contained in the payload,
// case-insensitively.
func (r *CodeRecognizer) substringMatch(payload string) []string {
	lower := strings.ToLower(payload)

	var tokens []string
	for _, name := range r.index.Names() {
		if !strings.Contains(lower, strings.ToLower(name)) {
			continue
		}
		if _, ok := r.index.Lookup(name, r.scope); ok {
			tokens = append(tokens, name)
		}
	}
	return dedupe(tokens)
}

// ParseCardRef parses a structured "lexicam:<categoryID>/<flashcardID>"
// payload. ok is false for any other payload shape.
func ParseCardRef(payload string) (categoryID, flashcardID string, ok bool) {
	if !strings.HasPrefix(payload, cardRefScheme) {
		return "", "", false
	}

	rest := strings.TrimPrefix(payload, cardRefScheme)
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}

	return parts[0], parts[1], true
}
