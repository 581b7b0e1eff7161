package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ecovolt/ewaste-backend/internal/geo"
	"github.com/ecovolt/ewaste-backend/internal/pickup"
	"github.com/ecovolt/ewaste-backend/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
)

// resolveTimeout bounds the whole fetch-and-geocode round trip, mirroring
// the position-acquisition timeout the dashboard uses on its side.
const resolveTimeout = 15 * time.Second

type PickupDeps struct {
	Store    storage.Store
	Resolver *pickup.Resolver
}

type createPickupRequest struct {
	Address          string  `json:"address"`
	CustomerName     string  `json:"customerName"`
	ContactPhone     string  `json:"contactPhone"`
	Items            string  `json:"items"`
	ScheduledTime    string  `json:"scheduledTime"`
	EstimatedEarning float64 `json:"estimatedEarning"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type matchRequest struct {
	Lat       float64           `json:"lat"`
	Lng       float64           `json:"lng"`
	Locations []pickup.Location `json:"locations"`
}

// RegisterPickups mounts the collection-job endpoints.
func RegisterPickups(r chi.Router, d PickupDeps) {
	// Open jobs with all addresses geocoded concurrently. Per-address
	// geocoding failures degrade to jittered fallback coordinates inside the
	// resolver; this endpoint never partially fails.
	r.Get("/v1/pickups", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), resolveTimeout)
		defer cancel()

		records, err := d.Store.ListPickupsByStatus(pickup.StatusPending)
		if err != nil {
			writeError(w, req, http.StatusInternalServerError, "storage_error", err.Error())
			return
		}

		jobs := make([]pickup.Location, 0, len(records))
		for _, rec := range records {
			jobs = append(jobs, pickup.Location{
				ID:               rec.ID,
				Address:          rec.Address,
				CustomerName:     rec.CustomerName,
				Items:            rec.Items,
				ScheduledTime:    rec.ScheduledTime,
				EstimatedEarning: rec.EstimatedEarning,
				Status:           rec.Status,
			})
		}

		render.JSON(w, req, d.Resolver.ResolveAll(ctx, jobs))
	})

	r.Post("/v1/pickups", func(w http.ResponseWriter, req *http.Request) {
		var body createPickupRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, req, http.StatusBadRequest, "invalid_json", err.Error())
			return
		}
		if body.Address == "" || body.CustomerName == "" {
			writeError(w, req, http.StatusBadRequest, "missing_fields", "address and customerName are required")
			return
		}

		rec := &storage.PickupRecord{
			ID:               uuid.NewString(),
			Address:          body.Address,
			CustomerName:     body.CustomerName,
			ContactPhone:     body.ContactPhone,
			Items:            body.Items,
			ScheduledTime:    body.ScheduledTime,
			EstimatedEarning: body.EstimatedEarning,
			Status:           pickup.StatusPending,
			CreatedAt:        time.Now(),
		}
		if err := d.Store.SavePickup(rec); err != nil {
			writeError(w, req, http.StatusInternalServerError, "storage_error", err.Error())
			return
		}

		render.Status(req, http.StatusCreated)
		render.JSON(w, req, map[string]string{"id": rec.ID})
	})

	r.Post("/v1/pickups/{id}/status", func(w http.ResponseWriter, req *http.Request) {
		var body updateStatusRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, req, http.StatusBadRequest, "invalid_json", err.Error())
			return
		}
		switch body.Status {
		case pickup.StatusPending, pickup.StatusAccepted, pickup.StatusCompleted:
		default:
			writeError(w, req, http.StatusBadRequest, "invalid_status", "status must be pending, accepted or completed")
			return
		}

		id := chi.URLParam(req, "id")
		if err := d.Store.UpdatePickupStatus(id, body.Status); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeError(w, req, http.StatusNotFound, "not_found", "no such pickup")
				return
			}
			writeError(w, req, http.StatusInternalServerError, "storage_error", err.Error())
			return
		}
		render.JSON(w, req, map[string]string{"id": id, "status": body.Status})
	})

	// Map-click selection. No match is an ordinary empty result.
	r.Post("/v1/pickups/match", func(w http.ResponseWriter, req *http.Request) {
		var body matchRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, req, http.StatusBadRequest, "invalid_json", err.Error())
			return
		}

		click := geo.Coordinates{Lat: body.Lat, Lng: body.Lng}
		if matched, ok := pickup.Match(click, body.Locations); ok {
			render.JSON(w, req, map[string]any{"match": matched})
			return
		}
		render.JSON(w, req, map[string]any{"match": nil})
	})
}
