package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tallyhq/tally/internal/service"
)

// errorResponse is the JSON error body: {"detail": "..."}.
type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// writeDomainError maps service errors to HTTP statuses: validation
// failures are 400, unknown user references are 404, anything else 500.
func writeDomainError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, validationErr.Message)
		return
	}

	var notFoundErr *service.NotFoundError
	if errors.As(err, &notFoundErr) {
		writeError(w, http.StatusNotFound, notFoundErr.Error())
		return
	}

	slog.Error("Unhandled service error", "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}
