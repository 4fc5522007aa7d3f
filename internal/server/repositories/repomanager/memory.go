package repomanager

import (
	"context"

	"github.com/dmitrijs2005/diary/internal/server/repositories/entries"
	"github.com/dmitrijs2005/diary/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory. Data is lost
// on restart.
type MemoryRepositoryManager struct {
	users   *users.MemoryRepository
	entries *entries.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:   users.NewMemoryRepository(),
		entries: entries.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Users() users.Repository         { return m.users }
func (m *MemoryRepositoryManager) Entries() entries.Repository     { return m.entries }
func (m *MemoryRepositoryManager) Ping(ctx context.Context) error  { return ctx.Err() }
func (m *MemoryRepositoryManager) Close(ctx context.Context) error { return nil }
