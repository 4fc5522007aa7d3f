// Package common defines shared constants and sentinel errors used across
// the diary server and its CLI client. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal        = errors.New("internal error")
	ErrorUnauthorized    = errors.New("unauthorized")
	ErrorValidation      = errors.New("validation error")
	ErrorRateLimited     = errors.New("too many requests")
	ErrorStorageDisabled = errors.New("storage disabled")

	// Token errors. These never reach HTTP callers directly; the user service
	// folds both into ErrorUnauthorized.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
