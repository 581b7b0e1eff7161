package vision

import "context"

// Label is one relevance-ordered label annotation. After normalization the
// score is a percentage in [0, 100] with one decimal of precision.
type Label struct {
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// Object is one localized object annotation.
type Object struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// AnnotationSet is the normalized output of an image annotation call.
type AnnotationSet struct {
	Labels  []Label  `json:"labels"`
	Objects []Object `json:"objects"`
	Text    string   `json:"text"`
}

// RawResponse mirrors the annotation response shape of the image service.
// Any of the fields may be absent; Normalize degrades each to an empty
// default.
type RawResponse struct {
	LabelAnnotations           []RawEntity `json:"labelAnnotations"`
	LocalizedObjectAnnotations []RawObject `json:"localizedObjectAnnotations"`
	TextAnnotations            []RawText   `json:"textAnnotations"`
}

// RawEntity is a label annotation as returned by the service, with a
// fractional score in [0.0, 1.0].
type RawEntity struct {
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// RawObject is a localized object annotation with a fractional score.
type RawObject struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// RawText is one detected text block.
type RawText struct {
	Description string `json:"description"`
}

// Annotator produces raw annotations for an image. Failures are surfaced to
// the caller; there is no silent fallback at this boundary.
type Annotator interface {
	Annotate(ctx context.Context, imageData []byte) (*RawResponse, error)
}
