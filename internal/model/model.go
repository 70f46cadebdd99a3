// Package model provides loading and caching of object recognition models.
package model

import (
	"errors"

	"gocv.io/x/gocv"
)

// ErrNoModel is returned when no model could be loaded. Callers are expected
// to degrade to empty detection results rather than retry in a tight loop.
var ErrNoModel = errors.New("no model available")

// Prediction is a single class prediction from a model run over one frame.
type Prediction struct {
	Label string
	Score float64
}

// Model runs inference over a single video frame.
type Model interface {
	// Predict returns class predictions for the frame, unordered.
	Predict(frame *gocv.Mat) ([]Prediction, error)

	// Close releases any resources held by the model.
	Close() error
}

// Runtime materializes a Model from a model reference. An empty ref selects
// the runtime's default general-purpose model.
type Runtime interface {
	LoadModel(ref string) (Model, error)
}
