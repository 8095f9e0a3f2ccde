package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/sweet-memories/internal/service"
)

// GuestbookHandler serves /api/guestbook.
type GuestbookHandler struct {
	svc    *service.GuestbookService
	logger *slog.Logger
}

func NewGuestbookHandler(svc *service.GuestbookService, logger *slog.Logger) *GuestbookHandler {
	return &GuestbookHandler{svc: svc, logger: logger}
}

// HTTP: GET /api/guestbook
func (h *GuestbookHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HTTP: POST /api/guestbook
// REQUEST BODY: {"name","message"}
func (h *GuestbookHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.CreateEntryInput
	if err := decodeJSON(r, &in); err != nil {
		h.logger.Warn("invalid guestbook request body", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	entry, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}
