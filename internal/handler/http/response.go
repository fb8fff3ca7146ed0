package http

import (
	"net/http"

	"github.com/go-chi/render"
)

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	render.Status(r, statusCode)
	render.JSON(w, r, data)
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	respondJSON(w, r, statusCode, ErrorResponse{Error: message})
}
