package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestRepo(t *testing.T) *SnapshotRepository {
	t.Helper()
	repo, err := NewSnapshotRepository(filepath.Join(t.TempDir(), "kassenbuch.db"))
	if err != nil {
		t.Fatalf("NewSnapshotRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSaveLoadRoundtrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, KeyProfile, []byte(`{"currentBalance":{"cents":500000}}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := repo.Load(ctx, KeyProfile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatalf("expected snapshot to exist")
	}
	if string(got) != `{"currentBalance":{"cents":500000}}` {
		t.Fatalf("unexpected blob: %s", got)
	}
}

func TestLoadAbsentKey(t *testing.T) {
	repo := newTestRepo(t)

	got, ok, err := repo.Load(context.Background(), KeyTransactions)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok || got != nil {
		t.Fatalf("absent key should report (nil, false), got (%v, %v)", got, ok)
	}
}

func TestSaveOverwrites(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, KeyTransactions, []byte(`[]`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Save(ctx, KeyTransactions, []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}

	got, ok, err := repo.Load(ctx, KeyTransactions)
	if err != nil || !ok {
		t.Fatalf("Load: %v, ok=%v", err, ok)
	}
	if string(got) != `[{"id":"a"}]` {
		t.Fatalf("overwrite not applied: %s", got)
	}
}
