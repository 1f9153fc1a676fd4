// Package storage holds the durable key/value backends behind output.Storage.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"ishakiro/internal/ports/output"
)

// Backend names accepted by Open.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Store is a Storage that owns resources.
type Store interface {
	output.Storage
	Close() error
}

var (
	_ Store = (*Memory)(nil)
	_ Store = (*File)(nil)
	_ Store = (*SQLite)(nil)
	_ Store = (*Postgres)(nil)
)

// Options selects and locates a backend.
type Options struct {
	Backend     string
	FilePath    string
	SQLitePath  string
	DatabaseURL string
}

// Open returns the backend named by opts.Backend.
func Open(ctx context.Context, opts Options, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch opts.Backend {
	case BackendFile, "":
		return OpenFile(opts.FilePath)
	case BackendSQLite:
		return OpenSQLite(ctx, opts.SQLitePath, logger)
	case BackendPostgres:
		return OpenPostgres(ctx, opts.DatabaseURL, logger)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", opts.Backend)
	}
}
