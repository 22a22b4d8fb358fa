package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newBoltStore(t *testing.T) Store {
	t.Helper()
	store, err := OpenBoltStore(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("open bolt store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newRedisStore(t *testing.T) Store {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return NewRedisStore(client, "")
}

// Every store backend honors the same contract: one entry, ErrNoEntry when
// absent, Clear idempotent.
func TestStoreContract(t *testing.T) {
	backends := []struct {
		name string
		make func(t *testing.T) Store
	}{
		{"memory", func(*testing.T) Store { return NewMemoryStore() }},
		{"bolt", newBoltStore},
		{"redis", newRedisStore},
	}

	for _, backend := range backends {
		t.Run(backend.name, func(t *testing.T) {
			ctx := context.Background()
			store := backend.make(t)

			if _, err := store.Load(ctx); !errors.Is(err, ErrNoEntry) {
				t.Fatalf("expected ErrNoEntry on fresh store, got %v", err)
			}

			entry := []byte(`{"id":"u1","email":"almaz@example.org"}`)
			if err := store.Save(ctx, entry); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, err := store.Load(ctx)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if string(got) != string(entry) {
				t.Fatalf("expected %s, got %s", entry, got)
			}

			// Save overwrites.
			updated := []byte(`{"id":"u1","email":"new@example.org"}`)
			if err := store.Save(ctx, updated); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, err = store.Load(ctx)
			if err != nil || string(got) != string(updated) {
				t.Fatalf("expected overwritten entry, got %s (%v)", got, err)
			}

			if err := store.Clear(ctx); err != nil {
				t.Fatalf("clear: %v", err)
			}
			if _, err := store.Load(ctx); !errors.Is(err, ErrNoEntry) {
				t.Fatalf("expected ErrNoEntry after clear, got %v", err)
			}
			// Clearing an absent entry is not an error.
			if err := store.Clear(ctx); err != nil {
				t.Fatalf("re-clear: %v", err)
			}
		})
	}
}

func TestBoltStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := OpenBoltStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Save(ctx, []byte("entry")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenBoltStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Load(ctx)
	if err != nil || string(got) != "entry" {
		t.Fatalf("expected entry to survive reopen, got %s (%v)", got, err)
	}
}

func TestMemoryStoreCopiesEntry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	entry := []byte("original")
	if err := store.Save(ctx, entry); err != nil {
		t.Fatalf("save: %v", err)
	}
	entry[0] = 'X'

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != "original" {
		t.Fatalf("store must not alias caller buffers, got %s", got)
	}
}
