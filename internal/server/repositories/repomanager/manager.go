// Package repomanager builds the repositories for the configured storage
// backend and owns the underlying connection.
package repomanager

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/diary/internal/server/repositories/entries"
	"github.com/dmitrijs2005/diary/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Entries() entries.Repository
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
	// Close releases the connection pool.
	Close(ctx context.Context) error
}

// MemoryDSN selects the in-process backend.
const MemoryDSN = "memory"

// New picks the backend from the DSN scheme.
func New(ctx context.Context, dsn, dbName string) (RepositoryManager, error) {
	switch {
	case dsn == MemoryDSN:
		return NewMemoryRepositoryManager(), nil
	case strings.HasPrefix(dsn, "mongodb://"), strings.HasPrefix(dsn, "mongodb+srv://"):
		m, err := NewMongoRepositoryManager(ctx, dsn, dbName)
		if err != nil {
			return nil, err
		}
		return m, nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		m, err := NewPostgresRepositoryManager(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported database DSN scheme: %q", dsn)
	}
}
