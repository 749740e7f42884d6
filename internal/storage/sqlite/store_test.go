package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "nested", "humidor.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGetSetOverwrite(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	if _, found, err := store.Get(ctx, "cigars"); err != nil || found {
		t.Fatalf("expected absent key, got found=%v err=%v", found, err)
	}

	if err := store.Set(ctx, "cigars", `[{"id":"1"}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set(ctx, "cigars", `[]`); err != nil {
		t.Fatalf("Set (overwrite) failed: %v", err)
	}

	value, found, err := store.Get(ctx, "cigars")
	if err != nil || !found {
		t.Fatalf("Get failed: found=%v err=%v", found, err)
	}
	if value != "[]" {
		t.Errorf("expected overwritten value [], got %q", value)
	}
}

func TestMultiRemove(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	for _, key := range []string{"cigars", "journal_entries", "premium_mode"} {
		if err := store.Set(ctx, key, "true"); err != nil {
			t.Fatalf("Set %s failed: %v", key, err)
		}
	}

	if err := store.MultiRemove(ctx, "cigars", "premium_mode", "never_written"); err != nil {
		t.Fatalf("MultiRemove failed: %v", err)
	}

	for key, wantFound := range map[string]bool{"cigars": false, "premium_mode": false, "journal_entries": true} {
		_, found, err := store.Get(ctx, key)
		if err != nil {
			t.Fatalf("Get %s failed: %v", key, err)
		}
		if found != wantFound {
			t.Errorf("key %s: expected found=%v, got %v", key, wantFound, found)
		}
	}

	if err := store.MultiRemove(ctx); err != nil {
		t.Errorf("MultiRemove with no keys should be a no-op, got %v", err)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "humidor.db")

	first := NewStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := first.Set(ctx, "free_humidifier_claimed", "true"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second := NewStore(path)
	if err := second.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer second.Close()

	value, found, err := second.Get(ctx, "free_humidifier_claimed")
	if err != nil || !found || value != "true" {
		t.Errorf("expected persisted true, got %q found=%v err=%v", value, found, err)
	}

	current, latest, err := second.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if current != latest || current == 0 {
		t.Errorf("expected migrated schema, got current=%d latest=%d", current, latest)
	}
}

func TestLoadUninitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestClosedStoreErrors(t *testing.T) {
	ctx := context.Background()
	store := NewStore(filepath.Join(t.TempDir(), "humidor.db"))

	if _, _, err := store.Get(ctx, "cigars"); err == nil {
		t.Error("Get on unopened store should fail")
	}
	if err := store.Set(ctx, "cigars", "[]"); err == nil {
		t.Error("Set on unopened store should fail")
	}
	if err := store.MultiRemove(ctx, "cigars"); err == nil {
		t.Error("MultiRemove on unopened store should fail")
	}
}

func TestCanceledContext(t *testing.T) {
	store := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.Set(ctx, "cigars", "[]"); err == nil {
		t.Error("Set with canceled context should fail")
	}
}
