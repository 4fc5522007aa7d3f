package services

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/diary/internal/client/client"
	"github.com/dmitrijs2005/diary/internal/client/models"
	"github.com/dmitrijs2005/diary/internal/common"
	"github.com/dmitrijs2005/diary/internal/netx"
)

// uploadTimeout bounds a single image upload to object storage.
const uploadTimeout = time.Minute

// EntryService covers diary operations of the CLI. Requests carry the saved
// token when there is one; servers that leave the diary open accept them
// without it.
type EntryService interface {
	List(ctx context.Context) ([]models.Entry, error)
	Add(ctx context.Context, in models.EntryInput) (*models.Entry, error)
	Edit(ctx context.Context, id string, in models.EntryInput) (*models.Entry, error)
	Delete(ctx context.Context, id string) error
	NewImageUpload(ctx context.Context) (*models.ImageUpload, error)
	UploadImage(ctx context.Context, data []byte) (string, error)
	ImageURL(ctx context.Context, key string) (string, error)
}

type entryService struct {
	client  client.Client
	store   SessionStore
	storage *http.Client
}

func NewEntryService(c client.Client, s SessionStore) EntryService {
	return &entryService{client: c, store: s, storage: &http.Client{Timeout: uploadTimeout}}
}

func (s *entryService) List(ctx context.Context) ([]models.Entry, error) {
	token, err := currentToken(ctx, s.store)
	if err != nil {
		return nil, err
	}
	entries, err := s.client.ListEntries(ctx, token)
	return entries, dropExpired(ctx, s.store, err)
}

// Add requires every field, matching the server's create contract.
func (s *entryService) Add(ctx context.Context, in models.EntryInput) (*models.Entry, error) {
	if in.Title == nil || in.Writer == nil || in.Date == nil || in.Text == nil || in.Image == nil {
		return nil, common.ErrorValidation
	}
	token, err := currentToken(ctx, s.store)
	if err != nil {
		return nil, err
	}
	e, err := s.client.CreateEntry(ctx, token, in)
	return e, dropExpired(ctx, s.store, err)
}

func (s *entryService) Edit(ctx context.Context, id string, in models.EntryInput) (*models.Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, common.ErrorValidation
	}
	token, err := currentToken(ctx, s.store)
	if err != nil {
		return nil, err
	}
	e, err := s.client.UpdateEntry(ctx, token, id, in)
	return e, dropExpired(ctx, s.store, err)
}

func (s *entryService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return common.ErrorValidation
	}
	token, err := currentToken(ctx, s.store)
	if err != nil {
		return err
	}
	return dropExpired(ctx, s.store, s.client.DeleteEntry(ctx, token, id))
}

func (s *entryService) NewImageUpload(ctx context.Context) (*models.ImageUpload, error) {
	token, err := currentToken(ctx, s.store)
	if err != nil {
		return nil, err
	}
	up, err := s.client.NewImageUpload(ctx, token)
	return up, dropExpired(ctx, s.store, err)
}

// UploadImage presigns an upload and sends data straight to object storage.
// It returns the storage key to put into an entry's image field.
func (s *entryService) UploadImage(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", common.ErrorValidation
	}
	up, err := s.NewImageUpload(ctx)
	if err != nil {
		return "", err
	}
	if err := netx.PutPresigned(ctx, s.storage, up.UploadURL, data, http.DetectContentType(data)); err != nil {
		return "", err
	}
	return up.Key, nil
}

func (s *entryService) ImageURL(ctx context.Context, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", common.ErrorValidation
	}
	token, err := currentToken(ctx, s.store)
	if err != nil {
		return "", err
	}
	u, err := s.client.ImageURL(ctx, token, key)
	return u, dropExpired(ctx, s.store, err)
}
