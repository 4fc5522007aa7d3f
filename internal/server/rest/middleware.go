package rest

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/diary/internal/common"
	"github.com/dmitrijs2005/diary/internal/server/models"
	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

// bearerAuth resolves the Authorization header to a user and stores it in
// the gin context under userContextKey.
func (s *Server) bearerAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader(common.AuthorizationHeaderName))
		if !ok {
			respondError(c, http.StatusUnauthorized, detailNotAuthenticated)
			return
		}

		user, err := s.users.Authenticate(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, common.ErrorUnauthorized):
				handleServiceError(c, err, detailBadToken)
			case errors.Is(err, common.ErrorNotFound):
				handleServiceError(c, err, detailUserNotFound)
			default:
				handleServiceError(c, err, "")
			}
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// loginRateLimit counts /token calls per client IP and username. A limiter
// failure lets the request through so that a Redis outage does not lock
// everybody out.
func (s *Server) loginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := s.limiter.Allow(c.Request.Context(), loginKey(c))
		if err != nil {
			s.logger.Error(c.Request.Context(), "rate limiter", "error", err)
			c.Next()
			return
		}
		if !ok {
			handleServiceError(c, common.ErrorRateLimited, "")
			return
		}
		c.Next()
	}
}

// loginKey scopes login attempts to one client address and one username.
// The address comes from c.ClientIP, which only honours forwarding headers
// from trusted proxies.
func loginKey(c *gin.Context) string {
	return c.ClientIP() + "|" + c.PostForm("username")
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}
