// Package recognize provides the per-modality recognition adapters that turn
// a raw camera frame into vocabulary token candidates.
package recognize

import "gocv.io/x/gocv"

// Recognizer is one detection modality over a single frame. Implementations
// absorb their own failures: a transient decode or inference error yields an
// empty set for that frame, never an error to the caller.
type Recognizer interface {
	// Name identifies the modality ("objects", "text", "codes").
	Name() string

	// Detect returns the vocabulary token candidates found in the frame,
	// de-duplicated, in discovery order.
	Detect(frame *gocv.Mat) []string
}

// dedupe keeps the first occurrence of each token, case preserved.
func dedupe(tokens []string) []string {
	if len(tokens) < 2 {
		return tokens
	}
	seen := make(map[string]bool, len(tokens))
	out := tokens[:0]
	for _, t := range tokens {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
