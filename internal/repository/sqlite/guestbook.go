package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/sweet-memories/internal/model"
)

// CreateEntry inserts a guestbook entry and sets entry.ID.
func (db *DB) CreateEntry(ctx context.Context, entry *model.GuestbookEntry) error {
	entry.ID = xid.New().String()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO guestbook_entries (id, name, message, created_at)
		 VALUES (?, ?, ?, ?)`,
		entry.ID,
		entry.Name,
		entry.Message,
		entry.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating guestbook entry: %w", err)
	}

	return nil
}

// ListEntries returns every entry, newest first.
func (db *DB) ListEntries(ctx context.Context) ([]model.GuestbookEntry, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, message, created_at
		 FROM guestbook_entries
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing guestbook entries: %w", err)
	}
	defer rows.Close()

	entries := []model.GuestbookEntry{}
	for rows.Next() {
		var (
			e         model.GuestbookEntry
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning guestbook row: %w", err)
		}
		e.CreatedAt = time.UnixMilli(createdAt).UTC()
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating guestbook entries: %w", err)
	}

	return entries, nil
}
