package recognize

import (
	"log"

	"github.com/ayusman/lexicam/internal/model"
	"github.com/ayusman/lexicam/internal/vocab"
	"gocv.io/x/gocv"
)

// MinObjectScore is the confidence cutoff for object predictions. The
// comparison is strict: a prediction scoring exactly at the cutoff is dropped.
const MinObjectScore = 0.5

// ObjectRecognizer runs frames through the loaded recognition model and maps
// predicted class labels onto vocabulary tokens.
type ObjectRecognizer struct {
	model    model.Model
	minScore float64
}

// NewObjectRecognizer creates an object adapter over the given model. A nil
// model is allowed and yields empty results, so a failed model load degrades
// detection instead of blocking the session.
func NewObjectRecognizer(m model.Model) *ObjectRecognizer {
	return &ObjectRecognizer{model: m, minScore: MinObjectScore}
}

func (r *ObjectRecognizer) Name() string { return "objects" }

// Detect keeps predictions strictly above the confidence cutoff, translates
// each class label through the vocabulary reverse map, and unions the tokens.
func (r *ObjectRecognizer) Detect(frame *gocv.Mat) []string {
	if r.model == nil {
		return nil
	}

	preds, err := r.model.Predict(frame)
	if err != nil {
		log.Printf("object recognition failed: %v", err)
		return nil
	}

	var tokens []string
	for _, p := range preds {
		if p.Score <= r.minScore {
			continue
		}
		tokens = append(tokens, vocab.ReverseMapClassLabel(p.Label)...)
	}

	return dedupe(tokens)
}
