package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/sweet-memories/internal/apperror"
	"github.com/sakif/sweet-memories/internal/model"
)

const memoryColumns = `id, title, date, description, tag, image, cloudinary_id, favorite, created_at`

// CreateMemory inserts a new memory.
//
// xid IDs are 20 URL-safe characters and sort by creation time. The
// caller's struct is modified in place so it carries the new ID.
func (db *DB) CreateMemory(ctx context.Context, memory *model.Memory) error {
	memory.ID = xid.New().String()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO memories (`+memoryColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		memory.ID,
		memory.Title,
		memory.Date,
		memory.Description,
		memory.Tag,
		nullString(memory.Image),
		nullString(memory.CloudinaryID),
		memory.Favorite,
		memory.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating memory: %w", err)
	}

	return nil
}

// ListMemories returns every memory, newest date first. Equal dates fall
// back to creation time, newest first.
func (db *DB) ListMemories(ctx context.Context) ([]model.Memory, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+memoryColumns+`
		 FROM memories
		 ORDER BY date DESC, created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing memories: %w", err)
	}
	defer rows.Close()

	memories := []model.Memory{}
	for rows.Next() {
		m, err := scanMemory(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning memory row: %w", err)
		}
		memories = append(memories, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating memories: %w", err)
	}

	return memories, nil
}

// GetMemory fetches a memory by ID.
// sql.ErrNoRows is translated to apperror.NotFound.
func (db *DB) GetMemory(ctx context.Context, id string) (*model.Memory, error) {
	key, err := parseID("memory", id)
	if err != nil {
		return nil, err
	}

	row := db.conn.QueryRowContext(ctx,
		`SELECT `+memoryColumns+` FROM memories WHERE id = ?`,
		key,
	)
	m, err := scanMemory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("memory", id)
		}
		return nil, fmt.Errorf("sqlite: getting memory %s: %w", id, err)
	}

	return m, nil
}

// SetFavorite flips the favorite flag. RowsAffected()==0 means the ID
// matched nothing.
func (db *DB) SetFavorite(ctx context.Context, id string, favorite bool) error {
	key, err := parseID("memory", id)
	if err != nil {
		return err
	}

	result, err := db.conn.ExecContext(ctx,
		`UPDATE memories SET favorite = ? WHERE id = ?`,
		favorite,
		key,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating memory %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("memory", id)
	}

	return nil
}

// DeleteMemory removes a memory by ID.
func (db *DB) DeleteMemory(ctx context.Context, id string) error {
	key, err := parseID("memory", id)
	if err != nil {
		return err
	}

	result, err := db.conn.ExecContext(ctx, `DELETE FROM memories WHERE id = ?`, key)
	if err != nil {
		return fmt.Errorf("sqlite: deleting memory %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("memory", id)
	}

	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMemory(s rowScanner) (*model.Memory, error) {
	var (
		m            model.Memory
		image        sql.NullString
		cloudinaryID sql.NullString
		createdAt    int64
	)
	if err := s.Scan(
		&m.ID, &m.Title, &m.Date, &m.Description, &m.Tag,
		&image, &cloudinaryID, &m.Favorite, &createdAt,
	); err != nil {
		return nil, err
	}

	m.Image = stringPtr(image)
	m.CloudinaryID = stringPtr(cloudinaryID)
	m.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &m, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
