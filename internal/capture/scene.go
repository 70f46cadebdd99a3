package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// SceneChangeDetector reports when the camera view has changed enough to be
// considered a new scene, using frame differencing with Gaussian blur for
// noise reduction. A child pointing the camera at a new card or object is a
// scene change; small jitters from a handheld device are not.
type SceneChangeDetector struct {
	threshold   float64
	prevGray    gocv.Mat
	initialized bool
	mu          sync.Mutex
}

const (
	// sceneBlurSize is the kernel size for Gaussian blur (21x21)
	sceneBlurSize = 21
	// sceneDiffThreshold is the binary threshold for difference detection
	sceneDiffThreshold = 25
	// DefaultSceneThreshold is the percentage of pixels that must change
	// before a frame counts as a new scene.
	DefaultSceneThreshold = 20.0
)

// NewSceneChangeDetector creates a detector with the given threshold.
// The threshold is the percentage of pixels that must change; values at or
// below zero fall back to the default.
func NewSceneChangeDetector(threshold float64) *SceneChangeDetector {
	if threshold <= 0 {
		threshold = DefaultSceneThreshold
	}
	return &SceneChangeDetector{
		threshold: threshold,
		prevGray:  gocv.NewMat(),
	}
}

// Changed analyzes a frame against the previous one and reports whether the
// scene has changed, along with the percentage of pixels that differed.
//
// Algorithm:
// 1. Convert frame to grayscale
// 2. Apply Gaussian blur (21x21) to reduce noise
// 3. If first frame, store as baseline and return false
// 4. Calculate absolute difference with previous frame
// 5. Threshold the difference
// 6. Count non-zero pixels / total pixels = changePercent
// 7. Return changePercent > threshold
func (d *SceneChangeDetector) Changed(frame *gocv.Mat) (bool, float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: sceneBlurSize, Y: sceneBlurSize}, 0, 0, gocv.BorderDefault)

	// First frame becomes the baseline
	if !d.initialized {
		blurred.CopyTo(&d.prevGray)
		d.initialized = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, d.prevGray, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, sceneDiffThreshold, 255, gocv.ThresholdBinary)

	nonZero := gocv.CountNonZero(thresh)
	totalPixels := thresh.Rows() * thresh.Cols()

	changePercent := float64(nonZero) / float64(totalPixels) * 100.0

	blurred.CopyTo(&d.prevGray)

	return changePercent > d.threshold, changePercent
}

// Reset clears the detector state so the next frame becomes a fresh baseline.
func (d *SceneChangeDetector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.prevGray.Empty() {
		d.prevGray.Close()
		d.prevGray = gocv.NewMat()
	}
	d.initialized = false
}

// Close releases resources used by the detector.
func (d *SceneChangeDetector) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.prevGray.Empty() {
		d.prevGray.Close()
		d.prevGray = gocv.NewMat()
	}
	d.initialized = false
}

// SetThreshold sets the scene change threshold as a percentage of changed
// pixels. Values less than or equal to 0 are ignored.
func (d *SceneChangeDetector) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.threshold = threshold
}
