package scan

import (
	"strings"

	"github.com/ecovolt/ewaste-backend/internal/vision"
)

// ewasteKeywords is the fixed vocabulary that marks an annotation as
// electronic waste. Matching is case-insensitive substring containment,
// checked against labels first, then objects, then the text block.
var ewasteKeywords = []string{
	"electronic", "computer", "device", "circuit", "phone", "laptop",
	"battery", "cable", "charger", "adapter", "television", "monitor",
	"screen", "keyboard", "mouse", "printer", "camera", "appliance",
	"gadget", "microchip", "pcb", "motherboard", "processor", "hard drive",
	"ssd", "ram", "memory",
}

// confidenceKeywords select the labels whose scores are averaged into the
// positive-classification confidence.
var confidenceKeywords = []string{"electronic", "device", "computer", "circuit"}

const (
	// defaultConfidence is reported when no label carries a confidence
	// keyword but the item still classified as e-waste.
	defaultConfidence = 70.0

	// confidenceCap bounds reported confidence; the classifier never claims
	// near-certainty.
	confidenceCap = 95.0
)

// Classify returns whether the annotated item is e-waste and, if so, a
// confidence percentage in [0, 95]. A negative classification always carries
// confidence 0.
func Classify(set vision.AnnotationSet) (bool, float64) {
	if !matchesAnyKeyword(set) {
		return false, 0
	}
	return true, confidence(set.Labels)
}

func matchesAnyKeyword(set vision.AnnotationSet) bool {
	for _, l := range set.Labels {
		if containsKeyword(l.Description) {
			return true
		}
	}
	for _, o := range set.Objects {
		if containsKeyword(o.Name) {
			return true
		}
	}
	return containsKeyword(set.Text)
}

func containsKeyword(s string) bool {
	lower := strings.ToLower(s)
	for _, kw := range ewasteKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func confidence(labels []vision.Label) float64 {
	var sum float64
	var n int
	for _, l := range labels {
		desc := strings.ToLower(l.Description)
		for _, kw := range confidenceKeywords {
			if strings.Contains(desc, kw) {
				sum += l.Score
				n++
				break
			}
		}
	}
	if n == 0 {
		return defaultConfidence
	}
	avg := sum / float64(n)
	if avg > confidenceCap {
		return confidenceCap
	}
	return avg
}
