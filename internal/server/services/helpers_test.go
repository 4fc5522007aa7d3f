package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/diary/internal/server/models"
	"github.com/dmitrijs2005/diary/internal/server/repositories/entries"
	"github.com/dmitrijs2005/diary/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

type failingUsersRepo struct{ err error }

func (f *failingUsersRepo) Create(context.Context, *models.User) (*models.User, error) {
	return nil, f.err
}

func (f *failingUsersRepo) GetUserByLogin(context.Context, string) (*models.User, error) {
	return nil, f.err
}

type failingEntriesRepo struct{ err error }

func (f *failingEntriesRepo) List(context.Context, int) ([]*models.Entry, error) { return nil, f.err }

func (f *failingEntriesRepo) Create(context.Context, *models.Entry) (*models.Entry, error) {
	return nil, f.err
}

func (f *failingEntriesRepo) Update(context.Context, string, *models.EntryPatch) (*models.Entry, error) {
	return nil, f.err
}

func (f *failingEntriesRepo) Delete(context.Context, string) error { return f.err }

type fakeRepoManager struct {
	u users.Repository
	e entries.Repository
}

func (m *fakeRepoManager) Users() users.Repository         { return m.u }
func (m *fakeRepoManager) Entries() entries.Repository     { return m.e }
func (m *fakeRepoManager) Ping(ctx context.Context) error  { return nil }
func (m *fakeRepoManager) Close(ctx context.Context) error { return nil }

func strPtr(s string) *string { return &s }
