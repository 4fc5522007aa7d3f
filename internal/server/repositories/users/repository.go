// Package users stores user credentials. Username uniqueness is enforced by
// each backend itself, so Create is the only place ErrorAlreadyExists comes from.
package users

import (
	"context"

	"github.com/dmitrijs2005/diary/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills in ID and CreatedAt. A taken username
	// yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByLogin returns common.ErrorNotFound when no such user exists.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}
