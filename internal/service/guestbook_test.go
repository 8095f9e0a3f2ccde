package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sakif/sweet-memories/internal/apperror"
)

func newTestGuestbookService(t *testing.T) (*GuestbookService, *mockStore) {
	t.Helper()
	store := newMockStore()
	svc := NewGuestbookService(store, testLogger())
	svc.now = fixedClock(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	return svc, store
}

func TestGuestbookCreate_Success(t *testing.T) {
	svc, _ := newTestGuestbookService(t)

	entry, err := svc.Create(context.Background(), CreateEntryInput{Name: " Ann ", Message: "hello"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if entry.ID == "" {
		t.Error("expected entry to have an ID")
	}
	if entry.Name != "Ann" {
		t.Errorf("Name = %q, want %q", entry.Name, "Ann")
	}
	if entry.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestGuestbookCreate_EmptyFields(t *testing.T) {
	tests := []struct {
		name string
		in   CreateEntryInput
	}{
		{name: "empty name", in: CreateEntryInput{Message: "hi"}},
		{name: "empty message", in: CreateEntryInput{Name: "Ann"}},
		{name: "blank message", in: CreateEntryInput{Name: "Ann", Message: "  "}},
		{name: "both empty", in: CreateEntryInput{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestGuestbookService(t)

			_, err := svc.Create(context.Background(), tt.in)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Fatalf("Create() error = %v, want ErrValidation", err)
			}
			if len(store.entries) != 0 {
				t.Errorf("stored entries = %d, want 0", len(store.entries))
			}
		})
	}
}

func TestGuestbookList_NewestFirst(t *testing.T) {
	svc, _ := newTestGuestbookService(t)
	ctx := context.Background()

	svc.Create(ctx, CreateEntryInput{Name: "first", Message: "m"})
	svc.Create(ctx, CreateEntryInput{Name: "second", Message: "m"})

	entries, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 2 || entries[0].Name != "second" {
		t.Errorf("List() = %+v, want second first", entries)
	}
}

func TestGuestbookList_StoreFailure(t *testing.T) {
	svc, store := newTestGuestbookService(t)
	store.failWith = errStoreDown

	_, err := svc.List(context.Background())
	if !errors.Is(err, apperror.ErrDependency) {
		t.Errorf("List() error = %v, want ErrDependency", err)
	}
}
