package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gocv.io/x/gocv"
)

// DNN input geometry for SSD-style detection models.
const (
	dnnInputSize  = 300
	dnnScale      = 1.0 / 127.5
	dnnMeanValue  = 127.5
	dnnMaxResults = 20
)

// DNNRuntime loads SSD-style detection models through the OpenCV DNN module.
// Model refs are either local file paths or HTTP(S) URLs; downloaded models
// are cached on disk keyed by URL hash so a category switch back and forth
// does not re-download.
type DNNRuntime struct {
	// DefaultModel is the model used when the ref is empty.
	DefaultModel string
	// CacheDir receives downloaded model files.
	CacheDir string
	// Client is used for downloads; http.DefaultClient when nil.
	Client *http.Client
}

// LoadModel resolves ref to a local model file and reads it into a DNN net.
func (r *DNNRuntime) LoadModel(ref string) (Model, error) {
	if ref == "" {
		ref = r.DefaultModel
	}
	if ref == "" {
		return nil, fmt.Errorf("no model ref and no default model configured")
	}

	path := ref
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		p, err := r.fetch(ref)
		if err != nil {
			return nil, fmt.Errorf("fetch model %s: %w", ref, err)
		}
		path = p
	}

	net := gocv.ReadNet(path, "")
	if net.Empty() {
		net.Close()
		return nil, fmt.Errorf("read model %s: empty network", path)
	}

	return &dnnModel{net: net}, nil
}

// fetch downloads url into the cache dir, reusing an existing copy.
func (r *DNNRuntime) fetch(url string) (string, error) {
	sum := sha256.Sum256([]byte(url))
	name := hex.EncodeToString(sum[:8]) + filepath.Ext(url)
	path := filepath.Join(r.CacheDir, name)

	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.MkdirAll(r.CacheDir, 0755); err != nil {
		return "", err
	}

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	tmp, err := os.CreateTemp(r.CacheDir, "model-*.part")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return path, nil
}

// dnnModel wraps a gocv DNN net. Predict is serialized; the net is not safe
// for concurrent forward passes.
type dnnModel struct {
	mu     sync.Mutex
	net    gocv.Net
	closed bool
}

// Predict runs the frame through the network and decodes SSD detection
// output rows ([imageID, classID, score, x1, y1, x2, y2]).
func (m *dnnModel) Predict(frame *gocv.Mat) ([]Prediction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, fmt.Errorf("model is closed")
	}
	if frame == nil || frame.Empty() {
		return nil, fmt.Errorf("empty frame")
	}

	blob := gocv.BlobFromImage(*frame, dnnScale,
		image.Pt(dnnInputSize, dnnInputSize),
		gocv.NewScalar(dnnMeanValue, dnnMeanValue, dnnMeanValue, 0),
		true, false)
	defer blob.Close()

	m.net.SetInput(blob, "")
	out := m.net.Forward("")
	defer out.Close()

	detections := out.Total() / 7
	if detections > dnnMaxResults {
		detections = dnnMaxResults
	}

	preds := make([]Prediction, 0, detections)
	for i := 0; i < detections; i++ {
		classID := int(out.GetFloatAt(0, i*7+1))
		score := float64(out.GetFloatAt(0, i*7+2))
		preds = append(preds, Prediction{
			Label: cocoClassName(classID),
			Score: score,
		})
	}

	return preds, nil
}

func (m *dnnModel) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	return m.net.Close()
}

// cocoClassNames is the 91-entry COCO class list used by the SSD models this
// runtime loads. Gaps in the original label map are empty strings.
var cocoClassNames = []string{
	"", "person", "bicycle", "car", "motorcycle", "airplane", "bus", "train",
	"truck", "boat", "traffic light", "fire hydrant", "", "stop sign",
	"parking meter", "bench", "bird", "cat", "dog", "horse", "sheep", "cow",
	"elephant", "bear", "zebra", "giraffe", "", "backpack", "umbrella", "",
	"", "handbag", "tie", "suitcase", "frisbee", "skis", "snowboard",
	"sports ball", "kite", "baseball bat", "baseball glove", "skateboard",
	"surfboard", "tennis racket", "bottle", "", "wine glass", "cup", "fork",
	"knife", "spoon", "bowl", "banana", "apple", "sandwich", "orange",
	"broccoli", "carrot", "hot dog", "pizza", "donut", "cake", "chair",
	"couch", "potted plant", "bed", "", "dining table", "", "", "toilet", "",
	"tv", "laptop", "mouse", "remote", "keyboard", "cell phone", "microwave",
	"oven", "toaster", "sink", "refrigerator", "", "book", "clock", "vase",
	"scissors", "teddy bear", "hair drier", "toothbrush",
}

func cocoClassName(id int) string {
	if id < 0 || id >= len(cocoClassNames) {
		return ""
	}
	return cocoClassNames[id]
}
