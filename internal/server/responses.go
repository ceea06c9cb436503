package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Field  string            `json:"field,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status string `json:"status"`
}

// User-facing error messages
const (
	ErrMsgInvalidRequest = "Invalid request body"
	ErrMsgValidation     = "Request validation failed"
	ErrMsgUnknownSite    = "No adapter registered for this site"
	ErrMsgUnknownCatalog = "No processor registered for this catalog file"
	ErrMsgMalformed      = "The document does not match the site's export format"
	ErrMsgEmpty          = "The case has no items"
	ErrMsgInvalidRange   = "The generator input is out of range"
	ErrMsgInternal       = "Something went wrong"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// HandleHealthz provides a basic liveness check
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
