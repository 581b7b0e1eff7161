// Package assist wraps the Gemini API for the recycling chat assistant and
// corporate compliance report generation.
package assist

import (
	"context"
	"fmt"

	"github.com/ecovolt/ewaste-backend/internal/scan"
	"github.com/lithammer/dedent"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

const geminiModel = "gemini-2.5-flash"

// FallbackReply is returned to the user when the upstream chat service
// fails. The failure itself is logged, not surfaced.
const FallbackReply = "Sorry, I'm having trouble answering right now. Please try again in a moment."

var chatSystemPrompt = dedent.Dedent(`
	You are a helpful assistant for an e-waste collection platform. Users are
	individuals, informal collectors, recyclers and corporate accounts.

	Answer questions about electronic waste: how to dispose of devices safely,
	what can be recycled, refurbished or donated, data wiping before disposal,
	and how scheduled pickups work.

	Keep answers short and practical. If a question is unrelated to e-waste or
	recycling, politely steer the conversation back.`)

var complianceReportPrompt = dedent.Dedent(`
	Write a short e-waste recycling compliance summary for a corporate account.

	Devices processed this period:
	%s

	The summary should cover: total devices, how many were recycled versus
	refurbished or donated, and one sentence on environmental impact. Use
	plain prose, no markdown headings.`)

// Client is the Gemini-backed assistant.
type Client struct {
	client *genai.Client
}

// NewClient creates the assistant. The API key comes from configuration, not
// the process environment.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{client: client}, nil
}

// Chat answers a single user message. Upstream failures are returned as
// errors; the HTTP layer substitutes FallbackReply.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(chatSystemPrompt, genai.RoleUser),
		genai.NewContentFromText(message, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, geminiModel, contents, nil)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty chat completion response")
	}

	logUsage("chat", result)
	return result.Text(), nil
}

// ReportEntry is one device line in a compliance report request.
type ReportEntry struct {
	Profile  scan.Profile `json:"profile"`
	Quantity int          `json:"quantity"`
	Action   string       `json:"action"`
}

// ComplianceReport generates a recycling compliance summary for a corporate
// account from its processed-device inventory.
func (c *Client) ComplianceReport(ctx context.Context, entries []ReportEntry) (string, error) {
	if len(entries) == 0 {
		return "", fmt.Errorf("no devices to report on")
	}

	var inventory string
	for _, e := range entries {
		inventory += fmt.Sprintf("- %dx %s (%s, condition: %s) -> %s\n",
			e.Quantity, e.Profile.Type, e.Profile.Brand, e.Profile.Condition, e.Action)
	}

	prompt := fmt.Sprintf(complianceReportPrompt, inventory)
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, geminiModel, contents, nil)
	if err != nil {
		return "", fmt.Errorf("compliance report generation failed: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty compliance report response")
	}

	logUsage("complianceReport", result)
	return result.Text(), nil
}

func logUsage(op string, result *genai.GenerateContentResponse) {
	if result.UsageMetadata == nil {
		return
	}
	log.Info().
		Str("op", op).
		Str("model", geminiModel).
		Int64("inputTokens", int64(result.UsageMetadata.PromptTokenCount)).
		Int64("outputTokens", int64(result.UsageMetadata.CandidatesTokenCount)).
		Msg("gemini request completed")
}
