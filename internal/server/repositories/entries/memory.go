package entries

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/diary/internal/common"
	"github.com/dmitrijs2005/diary/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps entries in a slice, which preserves insertion order.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries []models.Entry
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) List(ctx context.Context, limit int) ([]*models.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := min(limit, len(r.entries))
	result := make([]*models.Entry, 0, n)
	for i := 0; i < n; i++ {
		e := r.entries[i]
		result = append(result, &e)
	}
	return result, nil
}

func (r *MemoryRepository) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = uuid.NewString()
	r.entries = append(r.entries, *entry)
	return entry, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id string, patch *models.EntryPatch) (*models.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, common.ErrorNotFound
	}
	patch.Apply(&r.entries[i])
	e := r.entries[i]
	return &e, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return common.ErrorNotFound
	}
	r.entries = append(r.entries[:i], r.entries[i+1:]...)
	return nil
}

// indexOf must be called with mu held.
func (r *MemoryRepository) indexOf(id string) int {
	for i := range r.entries {
		if r.entries[i].ID == id {
			return i
		}
	}
	return -1
}
