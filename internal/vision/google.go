package vision

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const defaultVisionBaseURL = "https://vision.googleapis.com"

// GoogleAnnotator calls the Google Cloud Vision images:annotate endpoint.
type GoogleAnnotator struct {
	httpClient *resty.Client
	apiKey     string
}

type GoogleOpts struct {
	BaseURL string // defaults to the public endpoint; overridable for tests
	APIKey  string
}

func NewGoogleAnnotator(opts GoogleOpts) *GoogleAnnotator {
	baseURL := defaultVisionBaseURL
	if opts.BaseURL != "" {
		baseURL = opts.BaseURL
	}
	return &GoogleAnnotator{
		httpClient: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Accept", "application/json"),
		apiKey: opts.APIKey,
	}
}

type annotateRequest struct {
	Requests []annotateRequestEntry `json:"requests"`
}

type annotateRequestEntry struct {
	Image    annotateImage     `json:"image"`
	Features []annotateFeature `json:"features"`
}

type annotateImage struct {
	Content string `json:"content"`
}

type annotateFeature struct {
	Type       string `json:"type"`
	MaxResults int    `json:"maxResults,omitempty"`
}

type annotateResponse struct {
	Responses []annotateResponseEntry `json:"responses"`
}

type annotateResponseEntry struct {
	RawResponse
	Error *annotateError `json:"error"`
}

type annotateError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Annotate sends the image for label, object and text detection. Failures
// are returned to the caller; this gateway never falls back silently.
func (g *GoogleAnnotator) Annotate(ctx context.Context, imageData []byte) (*RawResponse, error) {
	body := annotateRequest{
		Requests: []annotateRequestEntry{
			{
				Image: annotateImage{Content: base64.StdEncoding.EncodeToString(imageData)},
				Features: []annotateFeature{
					{Type: "LABEL_DETECTION", MaxResults: 10},
					{Type: "OBJECT_LOCALIZATION", MaxResults: 10},
					{Type: "TEXT_DETECTION"},
				},
			},
		},
	}

	result := &annotateResponse{}
	res, err := g.httpClient.NewRequest().
		SetContext(ctx).
		SetQueryParam("key", g.apiKey).
		SetBody(body).
		SetResult(result).
		Post("/v1/images:annotate")
	if err != nil {
		return nil, fmt.Errorf("vision request failed: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("vision request failed: %s %s (status: %d)", res.Request.Method, res.Request.URL, res.StatusCode())
	}
	if len(result.Responses) == 0 {
		return nil, fmt.Errorf("vision response contained no annotations")
	}
	entry := result.Responses[0]
	if entry.Error != nil {
		return nil, fmt.Errorf("vision annotation error: %s (code %d)", entry.Error.Message, entry.Error.Code)
	}

	log.Debug().
		Int("labels", len(entry.LabelAnnotations)).
		Int("objects", len(entry.LocalizedObjectAnnotations)).
		Int("textBlocks", len(entry.TextAnnotations)).
		Msg("image annotated")

	return &entry.RawResponse, nil
}
