package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sakif/sweet-memories/internal/apperror"
	"github.com/sakif/sweet-memories/internal/media"
)

// UploadService forwards standalone image uploads to the media store.
type UploadService struct {
	media  media.Store
	logger *slog.Logger
}

// NewUploadService creates an UploadService. A nil store means the media
// service is not configured.
func NewUploadService(store media.Store, logger *slog.Logger) *UploadService {
	return &UploadService{media: store, logger: logger}
}

// Upload stores image under folder, or under the root folder when folder is
// empty.
func (s *UploadService) Upload(ctx context.Context, image, folder string) (*media.Asset, error) {
	return s.upload(ctx, image, media.UploadFolder(folder))
}

// UploadToGallery stores image under the gallery folder, nested by folderID
// when one is given.
func (s *UploadService) UploadToGallery(ctx context.Context, image, folderID string) (*media.Asset, error) {
	return s.upload(ctx, image, media.GalleryFolderFor(folderID))
}

// upload checks configuration before the payload, so an unconfigured
// deployment reports that regardless of what the client sent.
func (s *UploadService) upload(ctx context.Context, image, folder string) (*media.Asset, error) {
	if s.media == nil {
		return nil, apperror.NotConfigured("cloudinary is not configured")
	}
	if strings.TrimSpace(image) == "" {
		return nil, apperror.ValidationFailed("image", "no image provided")
	}
	if err := validateImage(image); err != nil {
		return nil, err
	}

	asset, err := s.media.Upload(ctx, image, folder)
	if err != nil {
		s.logger.Error("upload failed",
			slog.String("folder", folder),
			slog.String("error", err.Error()),
		)
		return nil, apperror.DependencyFailed("upload failed", err)
	}

	s.logger.Info("image uploaded",
		slog.String("folder", folder),
		slog.String("public_id", asset.PublicID),
	)
	return asset, nil
}
