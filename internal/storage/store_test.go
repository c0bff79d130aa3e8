package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"ltask/internal/config"
)

// storeContract runs the behavior every Store must share.
func storeContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "tasks"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing key, got %v", err)
	}

	if err := s.Set(ctx, "tasks", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := s.Get(ctx, "tasks")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[{"id":"1"}]` {
		t.Errorf("expected stored value, got %q", got)
	}

	// Overwrite is total, not a merge.
	if err := s.Set(ctx, "tasks", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err = s.Get(ctx, "tasks")
	if err != nil {
		t.Fatalf("get after overwrite: %v", err)
	}
	if string(got) != `[]` {
		t.Errorf("expected overwritten value, got %q", got)
	}

	if _, err := s.Get(ctx, "other"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected keys to be independent, got %v", err)
	}
}

func TestFileStore_Contract(t *testing.T) {
	s := NewFileStore(t.TempDir(), zerolog.Nop())
	defer s.Close()
	storeContract(t, s)
}

func TestFileStore_FileModeAndNoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir, zerolog.Nop())

	if err := s.Set(context.Background(), "tasks", []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "tasks.json"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only tasks.json in dir, got %d entries", len(entries))
	}
}

func TestSQLiteStore_Contract(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "ltask.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	storeContract(t, s)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ltask.db")
	ctx := context.Background()

	s, err := OpenSQLite(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set(ctx, "tasks", []byte(`[{"id":"9"}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenSQLite(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, "tasks")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[{"id":"9"}]` {
		t.Errorf("expected persisted value, got %q", got)
	}
}

func TestOpen_SelectsBackend(t *testing.T) {
	cfg := &config.Config{
		Dir:      filepath.Join(t.TempDir(), "nested"),
		Settings: config.DefaultSettings(),
	}

	s, err := Open(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("open file backend: %v", err)
	}
	if _, ok := s.(*FileStore); !ok {
		t.Errorf("expected *FileStore, got %T", s)
	}
	s.Close()

	cfg.Settings.Storage.Backend = config.BackendSQLite
	s, err = Open(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("open sqlite backend: %v", err)
	}
	if _, ok := s.(*SQLiteStore); !ok {
		t.Errorf("expected *SQLiteStore, got %T", s)
	}
	s.Close()

	cfg.Settings.Storage.Backend = "redis"
	if _, err := Open(cfg, zerolog.Nop()); err == nil {
		t.Error("expected error for unknown backend")
	}
}
