package vision

import (
	"math"
	"strings"
)

// Normalize converts a raw annotation response into an AnnotationSet. It is
// total: a nil response or any combination of absent fields degrades to empty
// defaults, never an error. Fractional scores become percentages rounded to
// one decimal place.
func Normalize(raw *RawResponse) AnnotationSet {
	set := AnnotationSet{
		Labels:  []Label{},
		Objects: []Object{},
		Text:    "",
	}
	if raw == nil {
		return set
	}

	for _, l := range raw.LabelAnnotations {
		set.Labels = append(set.Labels, Label{
			Description: l.Description,
			Score:       toPercent(l.Score),
		})
	}
	for _, o := range raw.LocalizedObjectAnnotations {
		set.Objects = append(set.Objects, Object{
			Name:       o.Name,
			Confidence: toPercent(o.Score),
		})
	}

	if len(raw.TextAnnotations) > 0 {
		blocks := make([]string, 0, len(raw.TextAnnotations))
		for _, t := range raw.TextAnnotations {
			blocks = append(blocks, t.Description)
		}
		set.Text = strings.Join(blocks, "\n")
	}

	return set
}

// toPercent converts a fractional score to a percentage with one decimal of
// precision. Upstream scores are assumed to already be in [0.0, 1.0]; they
// are not re-clamped here.
func toPercent(score float64) float64 {
	return math.Round(score*1000) / 10
}
