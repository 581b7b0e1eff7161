// Package geo wraps the external geocoding service behind a small interface
// so callers can decide their own failure policy.
package geo

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultGeocoderBaseURL = "https://maps.googleapis.com"

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Result is one resolved address.
type Result struct {
	Coordinates
	FormattedAddress string `json:"formattedAddress"`
}

// Geocoder resolves a free-text address to coordinates. A failed resolution
// is an error; fallback behavior (if any) belongs to the caller, not here.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Result, error)
}

// Client is the HTTP geocoding gateway.
type Client struct {
	httpClient *resty.Client
	apiKey     string
}

type ClientOpts struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration // per-request; defaults to 10s
}

func NewClient(opts ClientOpts) *Client {
	baseURL := defaultGeocoderBaseURL
	if opts.BaseURL != "" {
		baseURL = opts.BaseURL
	}
	timeout := 10 * time.Second
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	return &Client{
		httpClient: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
		apiKey: opts.APIKey,
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location Coordinates `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (c *Client) Geocode(ctx context.Context, address string) (*Result, error) {
	result := &geocodeResponse{}
	res, err := c.httpClient.NewRequest().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"address": address,
			"key":     c.apiKey,
		}).
		SetResult(result).
		Get("/maps/api/geocode/json")
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("geocode request failed: %s %s (status: %d)", res.Request.Method, res.Request.URL, res.StatusCode())
	}
	if result.Status != "OK" || len(result.Results) == 0 {
		return nil, fmt.Errorf("no geocoding result for %q (status: %s)", address, result.Status)
	}

	first := result.Results[0]
	return &Result{
		Coordinates:      first.Geometry.Location,
		FormattedAddress: first.FormattedAddress,
	}, nil
}
