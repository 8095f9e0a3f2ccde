package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/xid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/sweet-memories/internal/apperror"
	"github.com/sakif/sweet-memories/internal/model"
)

// TESTING WITH IN-MEMORY SQLITE:
// ":memory:" gives every test a fresh, isolated database that disappears
// when the connection closes.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close(context.Background()) })
	return db
}

func createTestMemory(t *testing.T, db *DB, title, date string, createdAt time.Time) *model.Memory {
	t.Helper()
	m := &model.Memory{
		Title:       title,
		Date:        date,
		Description: "desc",
		Tag:         "tag",
		CreatedAt:   createdAt,
	}
	if err := db.CreateMemory(context.Background(), m); err != nil {
		t.Fatalf("failed to create test memory: %v", err)
	}
	return m
}

func TestCreateMemory(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().UTC().Truncate(time.Millisecond)

	m := createTestMemory(t, db, "A", "2024-01-01", now)
	require.NotEmpty(t, m.ID)

	found, err := db.GetMemory(context.Background(), m.ID)
	require.NoError(t, err)

	assert.Equal(t, "A", found.Title)
	assert.Equal(t, "2024-01-01", found.Date)
	assert.False(t, found.Favorite)
	assert.Nil(t, found.Image)
	assert.Nil(t, found.CloudinaryID)
	assert.True(t, now.Equal(found.CreatedAt), "CreatedAt = %v, want %v", found.CreatedAt, now)
}

func TestCreateMemory_WithAsset(t *testing.T) {
	db := newTestDB(t)
	url := "https://res.cloudinary.com/demo/image/upload/v1/sweet_memories/memories/x.jpg"
	publicID := "sweet_memories/memories/x"

	m := &model.Memory{
		Title: "B", Date: "2024-02-02", Description: "d", Tag: "t",
		Image: &url, CloudinaryID: &publicID,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.CreateMemory(context.Background(), m))

	found, err := db.GetMemory(context.Background(), m.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Image)
	require.NotNil(t, found.CloudinaryID)
	assert.Equal(t, url, *found.Image)
	assert.Equal(t, publicID, *found.CloudinaryID)
	assert.True(t, found.HasAsset())
}

func TestListMemories_Order(t *testing.T) {
	db := newTestDB(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	older := createTestMemory(t, db, "older date", "2023-06-01", base.Add(time.Hour))
	sameDateFirst := createTestMemory(t, db, "same date, created first", "2024-01-01", base)
	sameDateSecond := createTestMemory(t, db, "same date, created second", "2024-01-01", base.Add(time.Minute))

	memories, err := db.ListMemories(context.Background())
	require.NoError(t, err)
	require.Len(t, memories, 3)

	assert.Equal(t, sameDateSecond.ID, memories[0].ID)
	assert.Equal(t, sameDateFirst.ID, memories[1].ID)
	assert.Equal(t, older.ID, memories[2].ID)
}

func TestListMemories_Empty(t *testing.T) {
	db := newTestDB(t)

	memories, err := db.ListMemories(context.Background())
	require.NoError(t, err)

	// An empty slice, not nil, so the handler encodes [] rather than null.
	assert.NotNil(t, memories)
	assert.Empty(t, memories)
}

func TestGetMemory_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetMemory(context.Background(), xid.New().String())
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetMemory() error = %v, want ErrNotFound", err)
	}
}

func TestGetMemory_MalformedID(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetMemory(context.Background(), "not-an-id")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("GetMemory() error = %v, want ErrValidation", err)
	}
}

func TestSetFavorite(t *testing.T) {
	db := newTestDB(t)
	m := createTestMemory(t, db, "fav", "2024-01-01", time.Now().UTC())
	ctx := context.Background()

	require.NoError(t, db.SetFavorite(ctx, m.ID, true))
	found, err := db.GetMemory(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, found.Favorite)

	require.NoError(t, db.SetFavorite(ctx, m.ID, false))
	found, err = db.GetMemory(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, found.Favorite)
	assert.Equal(t, "fav", found.Title)
}

func TestSetFavorite_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.SetFavorite(context.Background(), xid.New().String(), true)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteMemory(t *testing.T) {
	db := newTestDB(t)
	m := createTestMemory(t, db, "bye", "2024-01-01", time.Now().UTC())
	ctx := context.Background()

	require.NoError(t, db.DeleteMemory(ctx, m.ID))

	_, err := db.GetMemory(ctx, m.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	// Deleting again reports not found instead of silently succeeding.
	assert.ErrorIs(t, db.DeleteMemory(ctx, m.ID), apperror.ErrNotFound)
}

func TestDeleteMemory_MalformedID(t *testing.T) {
	db := newTestDB(t)
	assert.ErrorIs(t, db.DeleteMemory(context.Background(), "%%%"), apperror.ErrValidation)
}

func TestPing(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, db.Ping(context.Background()))
}
