package httpapi

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ecovolt/ewaste-backend/internal/scan"
	"github.com/ecovolt/ewaste-backend/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/rs/zerolog/log"
)

type ScanDeps struct {
	Scanner *scan.Service
	Store   storage.Store
}

type scanRequest struct {
	Image string `json:"image"` // base64-encoded image bytes
}

// RegisterScan mounts the waste-scanning endpoint. An annotation service
// failure is surfaced as a 502 so the client can offer a retry; it is never
// papered over with fallback data.
func RegisterScan(r chi.Router, d ScanDeps) {
	r.Post("/v1/scan", func(w http.ResponseWriter, req *http.Request) {
		var body scanRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, req, http.StatusBadRequest, "invalid_json", err.Error())
			return
		}
		if body.Image == "" {
			writeError(w, req, http.StatusBadRequest, "missing_image", "image field is required")
			return
		}
		imageData, err := base64.StdEncoding.DecodeString(body.Image)
		if err != nil {
			writeError(w, req, http.StatusBadRequest, "invalid_image", "image must be base64-encoded")
			return
		}

		result, err := d.Scanner.Scan(req.Context(), imageData)
		if err != nil {
			log.Error().Err(err).Msg("scan failed")
			writeError(w, req, http.StatusBadGateway, "annotation_failed", "image analysis is unavailable, please retry")
			return
		}

		if d.Store != nil {
			rec := &storage.ScanRecord{
				IsEwaste:   result.IsEwaste,
				Confidence: result.Confidence,
				DeviceType: result.Profile.Type,
				Brand:      result.Profile.Brand,
				Condition:  result.Profile.Condition,
				CreatedAt:  time.Now(),
			}
			if err := d.Store.SaveScan(rec); err != nil {
				// History is best effort; the scan result is still returned.
				log.Warn().Err(err).Msg("failed to record scan history")
			}
		}

		render.JSON(w, req, result)
	})

	r.Get("/v1/scans", func(w http.ResponseWriter, req *http.Request) {
		if d.Store == nil {
			render.JSON(w, req, []storage.ScanRecord{})
			return
		}
		records, err := d.Store.RecentScans(50)
		if err != nil {
			writeError(w, req, http.StatusInternalServerError, "storage_error", err.Error())
			return
		}
		if records == nil {
			records = []storage.ScanRecord{}
		}
		render.JSON(w, req, records)
	})
}
