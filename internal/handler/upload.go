package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/sweet-memories/internal/service"
)

// UploadHandler serves the standalone image upload endpoints.
type UploadHandler struct {
	svc    *service.UploadService
	logger *slog.Logger
}

func NewUploadHandler(svc *service.UploadService, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{svc: svc, logger: logger}
}

type uploadRequest struct {
	Image  string `json:"image"`
	Folder string `json:"folder"`
}

type folderUploadRequest struct {
	Image    string `json:"image"`
	FolderID string `json:"folderId"`
}

// HandleUpload uploads an image to the requested folder (default
// sweet_memories).
//
// HTTP: POST /api/upload
// RESPONSE: {"url","public_id","width","height"}
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warn("invalid upload request body", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	asset, err := h.svc.Upload(r.Context(), req.Image, req.Folder)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

// HandleFolderUpload uploads an image into a gallery folder.
//
// HTTP: POST /api/folder-upload
func (h *UploadHandler) HandleFolderUpload(w http.ResponseWriter, r *http.Request) {
	var req folderUploadRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warn("invalid folder upload request body", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	asset, err := h.svc.UploadToGallery(r.Context(), req.Image, req.FolderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}
