package vocab

import "strings"

// classLabelMap translates the object model's native class vocabulary (COCO
// classes) into domain vocabulary tokens. It is static configuration: labels
// without an entry map to nothing, and that is the common case.
//
// A single class may fan out to several tokens (e.g. "bird" covers the duck
// card), and several classes may share a token.
var classLabelMap = map[string][]string{
	"cat":           {"cat"},
	"dog":           {"dog"},
	"cow":           {"cow"},
	"bird":          {"duck"},
	"horse":         {"horse"},
	"sheep":         {"sheep"},
	"elephant":      {"elephant"},
	"apple":         {"apple", "red"},
	"banana":        {"banana", "yellow"},
	"orange":        {"orange"},
	"sports ball":   {"circle", "ball"},
	"frisbee":       {"circle"},
	"clock":         {"circle"},
	"book":          {"square", "book"},
	"tv":            {"square"},
	"laptop":        {"square"},
	"kite":          {"triangle"},
	"pizza":         {"triangle"},
	"umbrella":      {"umbrella"},
	"car":           {"car"},
	"bicycle":       {"bicycle"},
	"airplane":      {"airplane"},
	"teddy bear":    {"bear"},
	"potted plant":  {"green"},
	"broccoli":      {"green"},
	"fire hydrant":  {"red"},
	"stop sign":     {"red"},
	"cup":           {"cup"},
	"bottle":        {"bottle"},
	"chair":         {"chair"},
	"spoon":         {"spoon"},
	"fork":          {"fork"},
	"scissors":      {"scissors"},
	"toothbrush":    {"toothbrush"},
	"cell phone":    {"phone"},
	"traffic light": {"light"},
}

// ReverseMapClassLabel translates a recognizer class label into zero or more
// vocabulary tokens. Unmapped labels yield nil.
func ReverseMapClassLabel(label string) []string {
	return classLabelMap[strings.ToLower(strings.TrimSpace(label))]
}
