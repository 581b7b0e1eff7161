package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ecovolt/ewaste-backend/internal/assist"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/rs/zerolog/log"
)

// Assistant is the slice of the Gemini client the handlers need, so tests
// can substitute a fake.
type Assistant interface {
	Chat(ctx context.Context, message string) (string, error)
	ComplianceReport(ctx context.Context, entries []assist.ReportEntry) (string, error)
}

type AssistDeps struct {
	Assistant Assistant
}

type chatRequest struct {
	Message string `json:"message"`
}

type complianceRequest struct {
	Entries []assist.ReportEntry `json:"entries"`
}

// RegisterAssist mounts the chat and report endpoints. Chat degrades to a
// fixed apology on upstream failure; report generation surfaces the failure
// since a canned compliance report would be worse than none.
func RegisterAssist(r chi.Router, d AssistDeps) {
	r.Post("/v1/assist/chat", func(w http.ResponseWriter, req *http.Request) {
		var body chatRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, req, http.StatusBadRequest, "invalid_json", err.Error())
			return
		}
		if body.Message == "" {
			writeError(w, req, http.StatusBadRequest, "missing_message", "message field is required")
			return
		}

		reply, err := d.Assistant.Chat(req.Context(), body.Message)
		if err != nil {
			log.Warn().Err(err).Msg("chat completion failed, using fallback reply")
			reply = assist.FallbackReply
		}
		render.JSON(w, req, map[string]string{"reply": reply})
	})

	r.Post("/v1/reports/compliance", func(w http.ResponseWriter, req *http.Request) {
		var body complianceRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, req, http.StatusBadRequest, "invalid_json", err.Error())
			return
		}
		if len(body.Entries) == 0 {
			writeError(w, req, http.StatusBadRequest, "missing_entries", "at least one device entry is required")
			return
		}

		report, err := d.Assistant.ComplianceReport(req.Context(), body.Entries)
		if err != nil {
			log.Error().Err(err).Msg("compliance report generation failed")
			writeError(w, req, http.StatusBadGateway, "report_failed", "report generation is unavailable, please retry")
			return
		}
		render.JSON(w, req, map[string]string{"report": report})
	})
}
