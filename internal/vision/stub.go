package vision

import (
	"context"
	"time"
)

// StubAnnotator returns a fixed annotation response after an artificial
// delay, standing in for the real image service in development and tests.
// Selected with VISION_PROVIDER=stub.
type StubAnnotator struct {
	// Delay simulates network latency. Zero means respond immediately.
	Delay time.Duration
}

// stubResponse describes a used laptop. Deterministic so test expectations
// can be written against it.
var stubResponse = RawResponse{
	LabelAnnotations: []RawEntity{
		{Description: "Laptop", Score: 0.96},
		{Description: "Electronic device", Score: 0.93},
		{Description: "Computer hardware", Score: 0.88},
		{Description: "Personal computer", Score: 0.81},
		{Description: "Used", Score: 0.64},
	},
	LocalizedObjectAnnotations: []RawObject{
		{Name: "Laptop", Score: 0.91},
		{Name: "Computer keyboard", Score: 0.77},
	},
	TextAnnotations: []RawText{
		{Description: "Dell\nModel XPS-13\n2019"},
	},
}

func (s *StubAnnotator) Annotate(ctx context.Context, imageData []byte) (*RawResponse, error) {
	if s.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.Delay):
		}
	}
	resp := stubResponse
	return &resp, nil
}
