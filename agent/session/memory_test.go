package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	state := NewState("mem-1", time.Now())
	state.AppendUser("minha internet caiu")
	state.AppendAssistant("vou verificar", "technical_agent")

	if err := store.Save(context.Background(), state); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Mutating the saved pointer must not leak into the store.
	state.AppendUser("e agora?")

	loaded, err := store.Load(context.Background(), "mem-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded.History) != 2 {
		t.Fatalf("Load().History length = %d, want 2", len(loaded.History))
	}
	if loaded.History[1].Content != "vou verificar" {
		t.Fatalf("Load().History[1].Content = %q", loaded.History[1].Content)
	}
}

func TestMemoryStoreMissingSession(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	_, err := store.Load(context.Background(), "nope")
	if !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("Load() error = %v, want ErrStateNotFound", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := base
	store := NewMemoryStore(
		WithMemoryTTL(30*time.Minute),
		WithClock(func() time.Time { return current }),
	)

	if err := store.Save(context.Background(), NewState("ttl-1", base)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	current = base.Add(29 * time.Minute)
	if _, err := store.Load(context.Background(), "ttl-1"); err != nil {
		t.Fatalf("Load() before expiry error = %v", err)
	}

	current = base.Add(31 * time.Minute)
	_, err := store.Load(context.Background(), "ttl-1")
	if !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("Load() after expiry error = %v, want ErrStateNotFound", err)
	}
}

func TestMemoryStoreSaveResetsTTL(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := base
	store := NewMemoryStore(
		WithMemoryTTL(30*time.Minute),
		WithClock(func() time.Time { return current }),
	)

	state := NewState("ttl-2", base)
	if err := store.Save(context.Background(), state); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	current = base.Add(20 * time.Minute)
	if err := store.Save(context.Background(), state); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	current = base.Add(45 * time.Minute)
	if _, err := store.Load(context.Background(), "ttl-2"); err != nil {
		t.Fatalf("Load() after refreshed TTL error = %v", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	if err := store.Save(context.Background(), NewState("del-1", time.Now())); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Delete(context.Background(), "del-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Load(context.Background(), "del-1"); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("Load() after delete error = %v, want ErrStateNotFound", err)
	}
}
