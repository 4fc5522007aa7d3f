package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/diary/internal/common"
	"github.com/dmitrijs2005/diary/internal/logging"
	"github.com/dmitrijs2005/diary/internal/server/models"
	"github.com/dmitrijs2005/diary/internal/server/repositories/repomanager"
)

// EntryService implements diary CRUD on top of the entries repository.
type EntryService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

// NewEntryService wires an EntryService to the repositories of m.
func NewEntryService(m repomanager.RepositoryManager, l logging.Logger) *EntryService {
	return &EntryService{
		repomanager: m,
		logger:      l.With("module", "entry_service"),
	}
}

// List returns up to common.DiaryListLimit entries in insertion order.
func (s *EntryService) List(ctx context.Context) ([]*models.Entry, error) {
	items, err := s.repomanager.Entries().List(ctx, common.DiaryListLimit)
	if err != nil {
		return nil, s.internal(ctx, "listing entries", err)
	}
	return items, nil
}

// Create stores a new entry. All five fields must be present in the input,
// though any of them may be an empty string.
func (s *EntryService) Create(ctx context.Context, in *models.EntryPatch) (*models.Entry, error) {
	if in == nil || in.Title == nil || in.Writer == nil || in.Date == nil || in.Text == nil || in.Image == nil {
		return nil, common.ErrorValidation
	}

	e := &models.Entry{}
	in.Apply(e)

	created, err := s.repomanager.Entries().Create(ctx, e)
	if err != nil {
		return nil, s.internal(ctx, "creating entry", err)
	}
	return created, nil
}

// Update changes only the fields present in patch.
func (s *EntryService) Update(ctx context.Context, id string, patch *models.EntryPatch) (*models.Entry, error) {
	updated, err := s.repomanager.Entries().Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, s.internal(ctx, "updating entry", err)
	}
	return updated, nil
}

// Delete removes the entry with id, or returns common.ErrorNotFound.
func (s *EntryService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.Entries().Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return s.internal(ctx, "deleting entry", err)
	}
	return nil
}

func (s *EntryService) internal(ctx context.Context, msg string, err error) error {
	s.logger.Error(ctx, msg, "error", err)
	return common.ErrorInternal
}
