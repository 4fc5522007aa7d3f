// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, and bearer token
// verification.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/diary/internal/common"
	"github.com/dmitrijs2005/diary/internal/logging"
	"github.com/dmitrijs2005/diary/internal/server/auth"
	"github.com/dmitrijs2005/diary/internal/server/config"
	"github.com/dmitrijs2005/diary/internal/server/models"
	"github.com/dmitrijs2005/diary/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - Register: create users with a bcrypt password hash
// - Login: verify credentials and mint an access token
// - Authenticate: resolve a bearer token back to its user
type UserService struct {
	repomanager                 repomanager.RepositoryManager
	logger                      logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	bcryptCost                  int

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(m repomanager.RepositoryManager, cfg *config.Config, l logging.Logger) *UserService {
	return &UserService{
		repomanager:                 m,
		logger:                      l.With("module", "user_service"),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		bcryptCost:                  cfg.BcryptCost,
	}
}

// Register creates a new user. The username is taken verbatim; uniqueness is
// left to the repository, so concurrent registrations of one name yield
// exactly one success and common.ErrorAlreadyExists for the rest. Passwords
// over auth.MaxPasswordLength bytes are a validation error.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, common.ErrorValidation
	}
	if len(password) > auth.MaxPasswordLength {
		return nil, fmt.Errorf("%w: %w", common.ErrorValidation, auth.ErrPasswordTooLong)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		s.logger.Error(ctx, "hashing password", "error", err)
		return nil, common.ErrorInternal
	}

	u, err := s.repomanager.Users().Create(ctx, &models.User{UserName: username, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		s.logger.Error(ctx, "creating user", "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user registered", "username", username)
	return u, nil
}

// Login verifies the password and returns a bearer token. Unknown users and
// wrong passwords both yield common.ErrorUnauthorized, and both pay for one
// bcrypt comparison.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.Token, error) {
	user, err := s.repomanager.Users().GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_, _ = auth.ComparePassword(s.getDummyHash(), password)
			return nil, common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "loading user", "error", err)
		return nil, common.ErrorInternal
	}

	ok, err := auth.ComparePassword(user.PasswordHash, password)
	if err != nil {
		s.logger.Error(ctx, "comparing password", "username", username, "error", err)
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.UserName, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		s.logger.Error(ctx, "signing token", "error", err)
		return nil, common.ErrorInternal
	}

	return &models.Token{AccessToken: token, TokenType: common.TokenType}, nil
}

// Authenticate resolves a bearer token to its user. Every token problem is
// reported as common.ErrorUnauthorized; the actual reason only goes to the
// debug log. A valid token for a user that no longer exists yields
// common.ErrorNotFound.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	username, err := auth.GetSubjectFromToken(token, s.jwtSecret)
	if err != nil {
		s.logger.Debug(ctx, "token rejected", "reason", err)
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repomanager.Users().GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "loading user", "error", err)
		return nil, common.ErrorInternal
	}
	return user, nil
}

func (s *UserService) getDummyHash() string {
	s.dummyOnce.Do(func() {
		h, err := auth.HashPassword("dummy-password-for-timing", s.bcryptCost)
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}
