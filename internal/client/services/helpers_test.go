package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/diary/internal/client/client"
	"github.com/dmitrijs2005/diary/internal/client/models"
	"github.com/dmitrijs2005/diary/internal/client/session"
)

var errBoom = errors.New("boom")

func sp(s string) *string { return &s }

type memStore struct {
	sess    *session.Session
	loadErr error
	saveErr error
	cleared bool
}

func (m *memStore) Save(_ context.Context, s session.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.sess = &s
	return nil
}

func (m *memStore) Load(context.Context) (*session.Session, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.sess == nil {
		return nil, session.ErrNoSession
	}
	s := *m.sess
	return &s, nil
}

func (m *memStore) Clear(context.Context) error {
	m.cleared = true
	m.sess = nil
	return nil
}

// fakeClient records the token of the last call and returns preset values.
type fakeClient struct {
	client.Client

	lastToken string
	lastID    string
	lastInput models.EntryInput

	pingErr  error
	regErr   error
	token    *models.Token
	loginErr error
	user     *models.User
	meErr    error
	entries  []models.Entry
	entry    *models.Entry
	err      error
	upload   *models.ImageUpload
	url      string
}

func (f *fakeClient) Ping(context.Context) error { return f.pingErr }

func (f *fakeClient) Register(context.Context, string, []byte) error { return f.regErr }

func (f *fakeClient) Login(context.Context, string, []byte) (*models.Token, error) {
	return f.token, f.loginErr
}

func (f *fakeClient) Me(_ context.Context, token string) (*models.User, error) {
	f.lastToken = token
	return f.user, f.meErr
}

func (f *fakeClient) ListEntries(_ context.Context, token string) ([]models.Entry, error) {
	f.lastToken = token
	return f.entries, f.err
}

func (f *fakeClient) CreateEntry(_ context.Context, token string, in models.EntryInput) (*models.Entry, error) {
	f.lastToken, f.lastInput = token, in
	return f.entry, f.err
}

func (f *fakeClient) UpdateEntry(_ context.Context, token, id string, in models.EntryInput) (*models.Entry, error) {
	f.lastToken, f.lastID, f.lastInput = token, id, in
	return f.entry, f.err
}

func (f *fakeClient) DeleteEntry(_ context.Context, token, id string) error {
	f.lastToken, f.lastID = token, id
	return f.err
}

func (f *fakeClient) NewImageUpload(_ context.Context, token string) (*models.ImageUpload, error) {
	f.lastToken = token
	return f.upload, f.err
}

func (f *fakeClient) ImageURL(_ context.Context, token, key string) (string, error) {
	f.lastToken, f.lastID = token, key
	return f.url, f.err
}
