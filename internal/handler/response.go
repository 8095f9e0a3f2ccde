package handler

// RESPONSE HELPERS:
// Every handler writes through writeJSON/writeError so the API has one
// success shape and one error shape:
//
//	{"error": "missing required fields: title, tag"}
//
// The frontend reads `error` directly and shows it to the user.

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/sakif/sweet-memories/internal/apperror"
)

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// OKResponse acknowledges an operation that has nothing else to return.
type OKResponse struct {
	OK bool `json:"ok"`
}

// writeJSON sends data with the given status. Headers and status must be
// written before the body; after the first Write they are fixed.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already out; all that is left is to log it.
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeError maps a domain error to its HTTP status.
//
// The service layer returns apperror kinds; this is the only place that
// knows they become 400/404/413/500. Configuration and dependency errors
// carry their message to the client as is. Anything untyped is a bug and
// gets a generic message.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		slog.Error("unhandled error", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperror.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, apperror.ErrConfiguration), errors.Is(err, apperror.ErrDependency):
		status = http.StatusInternalServerError
	}

	writeJSON(w, status, ErrorResponse{Error: appErr.Message})
}

// decodeJSON reads the request body into dst.
//
// An empty body decodes as {} so optional-field endpoints behave like the
// fields were omitted. A body cut off by the size limit is reported as
// ErrTooLarge rather than as malformed JSON.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apperror.TooLarge(maxErr.Limit)
	}
	return apperror.ValidationFailed("body", "invalid JSON body")
}
