// Package httpapi holds the JSON handlers for the dashboard-facing API.
package httpapi

import (
	"net/http"

	"github.com/go-chi/render"
)

func writeError(w http.ResponseWriter, req *http.Request, status int, code, detail string) {
	render.Status(req, status)
	render.JSON(w, req, map[string]string{"error": code, "detail": detail})
}
