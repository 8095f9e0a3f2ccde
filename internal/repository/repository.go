// Package repository declares the Document Store contract.
//
// Services depend on these interfaces only. Two backends implement them:
// repository/mongo (production) and repository/sqlite (embedded, used for
// local runs and tests).
//
// IDENTIFIERS:
// Each backend owns its identifier encoding (Mongo ObjectID hex, xid for
// SQLite). Methods taking an id must reject a malformed encoding with
// apperror.ValidationFailed before querying, and report a well-formed but
// absent id with apperror.NotFound.
package repository

import (
	"context"

	"github.com/sakif/sweet-memories/internal/model"
)

type MemoryRepository interface {
	// CreateMemory assigns memory.ID and persists the record as given.
	CreateMemory(ctx context.Context, memory *model.Memory) error
	// ListMemories returns all memories by date desc, then createdAt desc.
	ListMemories(ctx context.Context) ([]model.Memory, error)
	GetMemory(ctx context.Context, id string) (*model.Memory, error)
	// SetFavorite updates only the favorite flag.
	SetFavorite(ctx context.Context, id string, favorite bool) error
	DeleteMemory(ctx context.Context, id string) error
}

type GuestbookRepository interface {
	CreateEntry(ctx context.Context, entry *model.GuestbookEntry) error
	// ListEntries returns all entries, newest first.
	ListEntries(ctx context.Context) ([]model.GuestbookEntry, error)
}

// Pinger is a lightweight liveness probe against the store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store is everything a backend provides. The server wires one Store into
// every service.
type Store interface {
	MemoryRepository
	GuestbookRepository
	Pinger
	Close(ctx context.Context) error
}
