package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/sweet-memories/internal/model"
	"github.com/sakif/sweet-memories/internal/repository"
)

type CreateEntryInput struct {
	Name    string `json:"name" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// GuestbookService handles guestbook entries. Entries are create-only.
type GuestbookService struct {
	repo   repository.GuestbookRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewGuestbookService(repo repository.GuestbookRepository, logger *slog.Logger) *GuestbookService {
	return &GuestbookService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Create validates and stores a new entry.
func (s *GuestbookService) Create(ctx context.Context, in CreateEntryInput) (*model.GuestbookEntry, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Message = strings.TrimSpace(in.Message)

	if err := validateInput(in); err != nil {
		return nil, err
	}

	entry := &model.GuestbookEntry{
		Name:      in.Name,
		Message:   in.Message,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.repo.CreateEntry(ctx, entry); err != nil {
		return nil, passThrough(s.logger, "failed to create guestbook entry", err)
	}

	s.logger.Info("guestbook entry created", slog.String("id", entry.ID))
	return entry, nil
}

// List returns every entry, newest first.
func (s *GuestbookService) List(ctx context.Context) ([]model.GuestbookEntry, error) {
	entries, err := s.repo.ListEntries(ctx)
	if err != nil {
		return nil, passThrough(s.logger, "failed to list guestbook entries", err)
	}
	return entries, nil
}
