// Package handler contains the HTTP handlers for the API.
//
// A handler parses the request, calls one service method, and writes the
// result. Business rules live in the service layer; HTTP status codes live
// here (see writeError).
package handler

import (
	"log/slog"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/sweet-memories/internal/service"
)

// MemoryHandler serves /api/memories.
type MemoryHandler struct {
	svc    *service.MemoryService
	logger *slog.Logger
}

func NewMemoryHandler(svc *service.MemoryService, logger *slog.Logger) *MemoryHandler {
	return &MemoryHandler{svc: svc, logger: logger}
}

// HandleList returns every memory.
//
// HTTP: GET /api/memories
func (h *MemoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	memories, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, memories)
}

// HandleCreate creates a memory, uploading its image first if one is sent.
//
// HTTP: POST /api/memories
// REQUEST BODY: {"title","date","description","tag","image"?}
func (h *MemoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.CreateMemoryInput
	if err := decodeJSON(r, &in); err != nil {
		h.logger.Warn("invalid memory request body", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	memory, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, memory)
}

type favoriteRequest struct {
	Favorite any `json:"favorite"`
}

// HandleSetFavorite sets the favorite flag.
//
// HTTP: PATCH /api/memories/{id}
// REQUEST BODY: {"favorite": <any>}, coerced with truthy().
func (h *MemoryHandler) HandleSetFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req favoriteRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warn("invalid favorite request body", slog.String("id", id), slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	memory, err := h.svc.SetFavorite(r.Context(), id, truthy(req.Favorite))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, memory)
}

// HandleDelete removes a memory.
//
// HTTP: DELETE /api/memories/{id}
func (h *MemoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, OKResponse{OK: true})
}

// truthy coerces a decoded JSON value to a boolean. Absent and null are
// false, as are false, 0 and "". Every other value, including empty arrays
// and objects, is true.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case string:
		return x != ""
	default:
		return true
	}
}
