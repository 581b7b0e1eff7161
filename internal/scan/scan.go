// Package scan implements the device condition and disposal inference
// pipeline: image annotations in, e-waste determination, device profile and
// ranked disposal suggestions out. Every stage is a pure function with
// first-match-wins rule tables; evaluation order is part of the contract.
package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/ecovolt/ewaste-backend/internal/vision"
	"github.com/rs/zerolog/log"
)

// Result is the full outcome of one scan.
type Result struct {
	IsEwaste    bool                 `json:"isEwaste"`
	Confidence  float64              `json:"confidence"`
	Profile     Profile              `json:"profile"`
	Suggestions []Suggestion         `json:"suggestions"`
	Annotations vision.AnnotationSet `json:"annotations"`
}

// Service composes the annotation gateway with the inference stages.
type Service struct {
	annotator vision.Annotator
	now       func() time.Time
}

// NewService builds the pipeline around an annotator. The clock defaults to
// time.Now and is injectable for tests via WithClock.
func NewService(annotator vision.Annotator) *Service {
	return &Service{annotator: annotator, now: time.Now}
}

// WithClock overrides the clock used for age inference.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Scan annotates the image and runs the inference stages. An annotation
// gateway failure is surfaced to the caller; everything downstream of a
// successful annotation call cannot fail.
func (s *Service) Scan(ctx context.Context, imageData []byte) (*Result, error) {
	raw, err := s.annotator.Annotate(ctx, imageData)
	if err != nil {
		return nil, fmt.Errorf("image annotation failed: %w", err)
	}

	set := vision.Normalize(raw)
	isEwaste, conf := Classify(set)
	profile := ExtractProfile(set, s.now())
	suggestions := Suggest(profile, set.Labels)

	log.Info().
		Bool("isEwaste", isEwaste).
		Float64("confidence", conf).
		Str("deviceType", profile.Type).
		Str("condition", profile.Condition).
		Int("suggestions", len(suggestions)).
		Msg("scan completed")

	return &Result{
		IsEwaste:    isEwaste,
		Confidence:  conf,
		Profile:     profile,
		Suggestions: suggestions,
		Annotations: set,
	}, nil
}
