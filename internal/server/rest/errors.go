package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/diary/internal/common"
	"github.com/gin-gonic/gin"
)

const (
	detailBadCredentials   = "Incorrect username or password"
	detailBadToken         = "Invalid or expired token"
	detailNotAuthenticated = "Not authenticated"
	detailUserExists       = "Username already registered"
	detailPasswordTooLong  = "Password must be at most 72 bytes"
	detailUserNotFound     = "User not found"
	detailEntryNotFound    = "Entry not found"
)

var errorStatuses = []struct {
	err    error
	status int
	detail string
}{
	{common.ErrorAlreadyExists, http.StatusBadRequest, "Already exists"},
	{common.ErrorUnauthorized, http.StatusUnauthorized, detailNotAuthenticated},
	{common.ErrorNotFound, http.StatusNotFound, "Not found"},
	{common.ErrorValidation, http.StatusUnprocessableEntity, "Invalid request"},
	{common.ErrorRateLimited, http.StatusTooManyRequests, "Too many login attempts, try again later"},
	{common.ErrorStorageDisabled, http.StatusServiceUnavailable, "Image storage is not configured"},
}

// respondError writes {"detail": ...} and aborts the chain. 401 responses
// also advertise the bearer scheme.
func respondError(c *gin.Context, status int, detail string) {
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}

// handleServiceError maps a service sentinel to its status code. A non-empty
// detail replaces the default message.
func handleServiceError(c *gin.Context, err error, detail string) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			if detail == "" {
				detail = e.detail
			}
			respondError(c, e.status, detail)
			return
		}
	}
	respondError(c, http.StatusInternalServerError, "Internal server error")
}
