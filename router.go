package main

import (
	"net/http"
	"time"

	"github.com/ecovolt/ewaste-backend/internal/httpapi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"
)

func buildRouter(scanDeps httpapi.ScanDeps, pickupDeps httpapi.PickupDeps, assistDeps httpapi.AssistDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(httprate.LimitByIP(100, 1*time.Minute)) // protect upstream quota
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"ok":true}`)) })

	httpapi.RegisterScan(r, scanDeps)
	httpapi.RegisterPickups(r, pickupDeps)
	httpapi.RegisterAssist(r, assistDeps)

	return r
}
