package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/diary/internal/common"
)

// ErrUnavailable reports that the server could not be reached at all.
var ErrUnavailable = errors.New("server unavailable")

// APIError is a non-2xx response. It unwraps to the common sentinel that
// matches its status, so callers can use errors.Is(err, common.ErrorNotFound).
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Detail)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest:
		return common.ErrorAlreadyExists
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusUnprocessableEntity:
		return common.ErrorValidation
	case http.StatusTooManyRequests:
		return common.ErrorRateLimited
	case http.StatusServiceUnavailable:
		return common.ErrorStorageDisabled
	default:
		return common.ErrorInternal
	}
}
