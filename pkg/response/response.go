// Package response provides the JSON envelope helpers used by every handler.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/petermazzocco/movie-catalog-api/internal/apperrors"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Body is a JSON object merged into the envelope next to "status".
type Body map[string]any

// JSON writes body with "status":"success" unless the body sets its own.
func JSON(w http.ResponseWriter, status int, body Body) {
	if body == nil {
		body = Body{}
	}
	if _, ok := body["status"]; !ok {
		body["status"] = StatusSuccess
	}
	write(w, status, body)
}

// NoContent sends a 204 with no body.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error maps err to its status and writes the error envelope. Internal
// causes are logged and replaced by a generic message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.Status(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	write(w, status, Body{"status": StatusError, "error": apperrors.Message(err)})
}

func write(w http.ResponseWriter, status int, body Body) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encode response", slog.String("error", err.Error()))
	}
}
