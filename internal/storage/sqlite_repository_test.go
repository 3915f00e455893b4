package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "questd-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestKVPutGetDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if err := repo.Put(ctx, "questd_points", "10"); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := repo.Get(ctx, "questd_points")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "10" {
		t.Fatalf("unexpected value: %q", got)
	}

	if err := repo.Put(ctx, "questd_points", "25"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, err = repo.Get(ctx, "questd_points")
	if err != nil {
		t.Fatalf("get after upsert: %v", err)
	}
	if got != "25" {
		t.Fatalf("expected upserted value, got %q", got)
	}

	if err := repo.Delete(ctx, "questd_points"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = repo.Get(ctx, "questd_points")
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if err := repo.Delete(ctx, "questd_points"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got: %v", err)
	}
}

func TestKVListKeysByPrefix(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	fixed := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	for _, key := range []string{
		"questd_quests_2026-02-09",
		"questd_quests_2026-02-08",
		"questd_questsX2026",
		"questd_points",
	} {
		if err := repo.Put(ctx, key, "{}"); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}

	list, err := repo.ListKeys(ctx, "questd_quests_")
	if err != nil {
		t.Fatalf("list keys: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 entries (underscore must not act as wildcard), got %#v", list)
	}
	if list[0].Key != "questd_quests_2026-02-08" || list[1].Key != "questd_quests_2026-02-09" {
		t.Fatalf("unexpected ordering: %#v", list)
	}
	if !list[0].UpdatedAt.Equal(fixed) {
		t.Fatalf("unexpected updated_at: %s", list[0].UpdatedAt)
	}

	all, err := repo.ListKeys(ctx, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(all))
	}
}

func TestMemoryRepositoryMatchesSQLiteSemantics(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	if _, err := repo.Get(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Put(ctx, "questd_streak", "3"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Put(ctx, "questd_points", "7"); err != nil {
		t.Fatalf("put: %v", err)
	}
	list, err := repo.ListKeys(ctx, "questd_")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Key != "questd_points" {
		t.Fatalf("unexpected list: %#v", list)
	}
	if err := repo.Delete(ctx, "questd_streak"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "questd_streak"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
