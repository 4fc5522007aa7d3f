// Package entries stores diary entries. Entries are not tied to users.
package entries

import (
	"context"

	"github.com/dmitrijs2005/diary/internal/server/models"
)

type Repository interface {
	// List returns at most limit entries in insertion order.
	List(ctx context.Context, limit int) ([]*models.Entry, error)
	// Create stores entry and fills in its ID.
	Create(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	// Update applies the non-nil fields of patch and returns the stored
	// entry. Unknown or malformed ids yield common.ErrorNotFound.
	Update(ctx context.Context, id string, patch *models.EntryPatch) (*models.Entry, error)
	// Delete removes the entry or returns common.ErrorNotFound.
	Delete(ctx context.Context, id string) error
}
