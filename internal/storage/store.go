// Package storage provides the key-value store that keeps the task collection
// across restarts. A value is always written whole; there are no partial
// updates.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"ltask/internal/config"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("key not found")

// Store is a named-key value store.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases resources held by the store.
	Close() error
}

// Open creates the store selected by cfg.Settings.Storage.Backend.
// The config directory is created if needed.
func Open(cfg *config.Config, logger zerolog.Logger) (Store, error) {
	if err := cfg.EnsureDir(); err != nil {
		return nil, fmt.Errorf("creating %s: %w", cfg.Dir, err)
	}

	switch cfg.Settings.Storage.Backend {
	case config.BackendFile, "":
		return NewFileStore(cfg.Dir, logger), nil
	case config.BackendSQLite:
		return OpenSQLite(cfg.DatabasePath(), logger)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Settings.Storage.Backend)
	}
}
