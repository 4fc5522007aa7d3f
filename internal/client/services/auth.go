// Package services contains the application services of the diary CLI: they
// combine the HTTP client with the locally saved session.
package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/diary/internal/client/client"
	"github.com/dmitrijs2005/diary/internal/client/models"
	"github.com/dmitrijs2005/diary/internal/client/session"
	"github.com/dmitrijs2005/diary/internal/common"
)

// SessionStore is the part of session.Store the services use.
type SessionStore interface {
	Save(ctx context.Context, s session.Session) error
	Load(ctx context.Context) (*session.Session, error)
	Clear(ctx context.Context) error
}

// AuthService covers account operations of the CLI.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*session.Session, error)
	Me(ctx context.Context) (*models.User, error)
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  SessionStore
}

func NewAuthService(c client.Client, s SessionStore) AuthService {
	return &authService{client: c, store: s}
}

func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	return a.client.Register(ctx, username, password)
}

// Login exchanges the credentials for a token and saves it.
func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	t, err := a.client.Login(ctx, username, password)
	if err != nil {
		return err
	}
	return a.store.Save(ctx, session.Session{UserName: username, AccessToken: t.AccessToken})
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}

// Current returns the saved session, or session.ErrNoSession.
func (a *authService) Current(ctx context.Context) (*session.Session, error) {
	return a.store.Load(ctx)
}

func (a *authService) Me(ctx context.Context) (*models.User, error) {
	token, err := currentToken(ctx, a.store)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, common.ErrorUnauthorized
	}
	u, err := a.client.Me(ctx, token)
	return u, dropExpired(ctx, a.store, err)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// currentToken returns the saved token, or "" when nobody is logged in.
func currentToken(ctx context.Context, store SessionStore) (string, error) {
	s, err := store.Load(ctx)
	if errors.Is(err, session.ErrNoSession) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return s.AccessToken, nil
}

// dropExpired clears the saved session when the server rejected its token,
// and passes err through.
func dropExpired(ctx context.Context, store SessionStore, err error) error {
	if errors.Is(err, common.ErrorUnauthorized) {
		_ = store.Clear(ctx)
	}
	return err
}
