package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/sakif/sweet-memories/internal/apperror"
	"github.com/sakif/sweet-memories/internal/media"
	"github.com/sakif/sweet-memories/internal/model"
	"github.com/sakif/sweet-memories/internal/repository"
)

// DefaultAssetCleanupTimeout bounds a best-effort media destroy.
const DefaultAssetCleanupTimeout = 30 * time.Second

// CreateMemoryInput is what a client sends to create a memory. Image is an
// optional encoded payload (data URI or URL) to upload first.
type CreateMemoryInput struct {
	Title       string `json:"title" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Description string `json:"description" validate:"required"`
	Tag         string `json:"tag" validate:"required"`
	Image       string `json:"image"`
}

// MemoryService handles business logic for memories.
//
// media is nil when the media service is not configured. Every path that
// needs it checks first and fails with a configuration error instead.
type MemoryService struct {
	repo   repository.MemoryRepository
	media  media.Store
	logger *slog.Logger

	now            func() time.Time
	cleanupTimeout time.Duration

	// mu orders cleanups.Add against Wait. Once draining is set no new
	// destroy is scheduled.
	mu       sync.Mutex
	draining bool
	cleanups sync.WaitGroup
}

// NewMemoryService creates a MemoryService. Pass a nil media.Store when the
// media service is unconfigured.
func NewMemoryService(repo repository.MemoryRepository, store media.Store, logger *slog.Logger) *MemoryService {
	return &MemoryService{
		repo:           repo,
		media:          store,
		logger:         logger,
		now:            time.Now,
		cleanupTimeout: DefaultAssetCleanupTimeout,
	}
}

// Create validates the input, uploads the image if one was sent, then
// inserts the record.
//
// The upload happens before the insert, so a failed upload leaves nothing
// behind in the store. The reverse (upload succeeded, insert failed) leaves
// an orphaned asset, which is logged.
func (s *MemoryService) Create(ctx context.Context, in CreateMemoryInput) (*model.Memory, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Date = strings.TrimSpace(in.Date)
	in.Description = strings.TrimSpace(in.Description)
	in.Tag = strings.TrimSpace(in.Tag)

	if err := validateInput(in); err != nil {
		return nil, err
	}

	memory := &model.Memory{
		Title:       in.Title,
		Date:        in.Date,
		Description: in.Description,
		Tag:         in.Tag,
		Favorite:    false,
		CreatedAt:   s.now().UTC().Truncate(time.Millisecond),
	}

	if in.Image != "" {
		if s.media == nil {
			return nil, apperror.NotConfigured("cloudinary is not configured")
		}
		if err := validateImage(in.Image); err != nil {
			return nil, err
		}
		asset, err := s.media.Upload(ctx, in.Image, media.MemoriesFolder)
		if err != nil {
			s.logger.Error("memory image upload failed", slog.String("error", err.Error()))
			return nil, apperror.DependencyFailed("failed to create memory", err)
		}
		memory.Image = &asset.URL
		memory.CloudinaryID = &asset.PublicID
	}

	if err := s.repo.CreateMemory(ctx, memory); err != nil {
		if memory.HasAsset() {
			s.logger.Warn("uploaded image orphaned by failed insert",
				slog.String("public_id", *memory.CloudinaryID),
			)
		}
		return nil, passThrough(s.logger, "failed to create memory", err)
	}

	s.logger.Info("memory created",
		slog.String("id", memory.ID),
		slog.Bool("has_image", memory.HasAsset()),
	)
	return memory, nil
}

// List returns every memory, newest date first.
func (s *MemoryService) List(ctx context.Context) ([]model.Memory, error) {
	memories, err := s.repo.ListMemories(ctx)
	if err != nil {
		return nil, passThrough(s.logger, "failed to list memories", err)
	}
	return memories, nil
}

// SetFavorite updates the favorite flag and returns the record as stored
// afterwards. An unknown id is a not-found error rather than a null body.
func (s *MemoryService) SetFavorite(ctx context.Context, id string, favorite bool) (*model.Memory, error) {
	id = strings.TrimSpace(id)

	if err := s.repo.SetFavorite(ctx, id, favorite); err != nil {
		return nil, passThrough(s.logger, "failed to update memory", err)
	}

	memory, err := s.repo.GetMemory(ctx, id)
	if err != nil {
		return nil, passThrough(s.logger, "failed to update memory", err)
	}
	return memory, nil
}

// Delete removes the record, then schedules removal of its hosted image.
//
// The record delete is authoritative. The asset destroy is fire-and-forget:
// it runs detached from the request with its own timeout, and a failure is
// logged and otherwise ignored. An orphaned asset is an accepted leak.
func (s *MemoryService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)

	memory, err := s.repo.GetMemory(ctx, id)
	if err != nil {
		return passThrough(s.logger, "failed to delete memory", err)
	}

	if err := s.repo.DeleteMemory(ctx, id); err != nil {
		return passThrough(s.logger, "failed to delete memory", err)
	}

	s.logger.Info("memory deleted", slog.String("id", id))

	if memory.HasAsset() && s.media != nil {
		s.discardAsset(context.WithoutCancel(ctx), *memory.CloudinaryID)
	}
	return nil
}

// discardAsset destroys a hosted asset in the background. After Wait has
// been called the asset is left behind and logged instead.
func (s *MemoryService) discardAsset(ctx context.Context, publicID string) {
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()
		s.logger.Warn("media asset left behind: shutting down",
			slog.String("public_id", publicID),
		)
		return
	}
	s.cleanups.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.cleanups.Done()

		ctx, cancel := context.WithTimeout(ctx, s.cleanupTimeout)
		defer cancel()

		if err := s.media.Destroy(ctx, publicID); err != nil {
			s.logger.Warn("media asset left behind after memory delete",
				slog.String("public_id", publicID),
				slog.String("error", err.Error()),
			)
			return
		}
		s.logger.Debug("media asset destroyed", slog.String("public_id", publicID))
	}()
}

// Wait stops scheduling asset destroys and blocks until the ones already
// scheduled have finished. Deletes that race with or follow it still remove
// the record; only the destroy is skipped.
func (s *MemoryService) Wait() {
	s.mu.Lock()
	s.draining = true
	s.mu.Unlock()

	s.cleanups.Wait()
}
