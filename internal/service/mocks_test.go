package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/sakif/sweet-memories/internal/apperror"
	"github.com/sakif/sweet-memories/internal/media"
	"github.com/sakif/sweet-memories/internal/model"
)

// =========================================================================
// MOCK STORE
// =========================================================================
//
// mockStore implements both repository interfaces in memory. IDs look like
// "mock-1"; anything that does not start with "mock-" is treated as a
// malformed id, the way a real backend rejects a bad encoding.

type mockStore struct {
	mu        sync.Mutex
	memories  map[string]*model.Memory
	entries   []model.GuestbookEntry
	nextID    int
	failWith  error // when set, every call returns this error
	deletes   int
	favorites int
}

func newMockStore() *mockStore {
	return &mockStore{memories: make(map[string]*model.Memory)}
}

func (m *mockStore) checkID(id string) error {
	if len(id) < 5 || id[:5] != "mock-" {
		return apperror.ValidationFailed("id", "invalid memory id")
	}
	return nil
}

func (m *mockStore) CreateMemory(_ context.Context, memory *model.Memory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.nextID++
	memory.ID = fmt.Sprintf("mock-%d", m.nextID)
	stored := *memory
	m.memories[memory.ID] = &stored
	return nil
}

func (m *mockStore) ListMemories(_ context.Context) ([]model.Memory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := make([]model.Memory, 0, len(m.memories))
	for _, mem := range m.memories {
		out = append(out, *mem)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *mockStore) GetMemory(_ context.Context, id string) (*model.Memory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkID(id); err != nil {
		return nil, err
	}
	if m.failWith != nil {
		return nil, m.failWith
	}
	mem, ok := m.memories[id]
	if !ok {
		return nil, apperror.NotFound("memory", id)
	}
	result := *mem
	return &result, nil
}

func (m *mockStore) SetFavorite(_ context.Context, id string, favorite bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkID(id); err != nil {
		return err
	}
	if m.failWith != nil {
		return m.failWith
	}
	mem, ok := m.memories[id]
	if !ok {
		return apperror.NotFound("memory", id)
	}
	m.favorites++
	mem.Favorite = favorite
	return nil
}

func (m *mockStore) DeleteMemory(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkID(id); err != nil {
		return err
	}
	if _, ok := m.memories[id]; !ok {
		return apperror.NotFound("memory", id)
	}
	m.deletes++
	delete(m.memories, id)
	return nil
}

func (m *mockStore) CreateEntry(_ context.Context, entry *model.GuestbookEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.nextID++
	entry.ID = fmt.Sprintf("mock-%d", m.nextID)
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockStore) ListEntries(_ context.Context) ([]model.GuestbookEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := append([]model.GuestbookEntry{}, m.entries...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockStore) Ping(_ context.Context) error {
	return m.failWith
}

func (m *mockStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.memories)
}

// =========================================================================
// MOCK MEDIA STORE
// =========================================================================

type mockMedia struct {
	mu         sync.Mutex
	uploadErr  error
	destroyErr error
	folders    []string
	destroyed  []string
	destroyCtx error // ctx.Err() observed by Destroy
}

func (m *mockMedia) Upload(_ context.Context, payload, folder string) (*media.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.folders = append(m.folders, folder)
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	return &media.Asset{
		URL:      "https://res.cloudinary.com/demo/image/upload/" + folder + "/img.png",
		PublicID: folder + "/img",
		Width:    100,
		Height:   50,
	}, nil
}

func (m *mockMedia) Destroy(ctx context.Context, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.destroyed = append(m.destroyed, publicID)
	m.destroyCtx = ctx.Err()
	return m.destroyErr
}

// =========================================================================
// TEST HELPERS
// =========================================================================

var errStoreDown = errors.New("server selection error: context deadline exceeded")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fixedClock returns a clock that advances by one second per call, so
// records created in sequence get distinct, predictable timestamps.
func fixedClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(time.Second)
		return t
	}
}

// newTestMemoryService wires a MemoryService to mocks. Pass nil media to
// simulate an unconfigured media service.
func newTestMemoryService(t *testing.T, md *mockMedia) (*MemoryService, *mockStore) {
	t.Helper()
	store := newMockStore()
	var ms media.Store
	if md != nil {
		ms = md
	}
	svc := NewMemoryService(store, ms, testLogger())
	svc.now = fixedClock(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	return svc, store
}
