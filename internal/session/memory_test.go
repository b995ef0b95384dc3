package session

import (
	"context"
	"testing"
	"time"

	"github.com/stocksuperhero/dashboard/internal/model"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	s := &model.Session{
		ID:      "abc",
		KeyID:   7,
		Filters: model.NewFilterState([]string{"Tech"}, nil, nil),
	}
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil || got.KeyID != 7 || !got.Filters.Equal(s.Filters) {
		t.Fatalf("Get() = %+v, want %+v", got, s)
	}

	if err := store.Delete(ctx, "abc"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got, _ := store.Get(ctx, "abc"); got != nil {
		t.Errorf("expected nil after delete, got %+v", got)
	}
}

func TestMemoryStoreIsolatesSessions(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	a := &model.Session{ID: "a", Filters: model.NewFilterState([]string{"Tech"}, nil, nil)}
	b := &model.Session{ID: "b", Filters: model.NewFilterState(nil, nil, []string{"Low"})}
	_ = store.Save(ctx, a)
	_ = store.Save(ctx, b)

	// mutating the caller's copy must not leak into the store
	a.Filters.Sectors[0] = "Energy"

	gotA, _ := store.Get(ctx, "a")
	gotB, _ := store.Get(ctx, "b")
	if gotA.Filters.Sectors[0] != "Tech" {
		t.Errorf("session a sectors = %v, want [Tech]", gotA.Filters.Sectors)
	}
	if len(gotB.Filters.Sectors) != 0 || gotB.Filters.ClassificationTags[0] != "Low" {
		t.Errorf("session b filters = %+v", gotB.Filters)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_ = store.Save(ctx, &model.Session{ID: "x"})

	now = now.Add(30 * time.Second)
	if got, _ := store.Get(ctx, "x"); got == nil {
		t.Fatal("session expired too early")
	}

	now = now.Add(2 * time.Minute)
	if got, _ := store.Get(ctx, "x"); got != nil {
		t.Errorf("expected expired session, got %+v", got)
	}
}
