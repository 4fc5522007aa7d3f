package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/diary/internal/common"
	"github.com/dmitrijs2005/diary/internal/server/auth"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "username and password are required")
		return
	}

	if _, err := s.users.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			handleServiceError(c, err, detailUserExists)
		case errors.Is(err, auth.ErrPasswordTooLong):
			handleServiceError(c, err, detailPasswordTooLong)
		default:
			handleServiceError(c, err, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User registered successfully"})
}

// token implements the OAuth2 password grant: form fields username and
// password in, bearer token out.
func (s *Server) token(c *gin.Context) {
	username, okUser := c.GetPostForm("username")
	password, okPass := c.GetPostForm("password")
	if !okUser || !okPass {
		respondError(c, http.StatusUnprocessableEntity, "username and password form fields are required")
		return
	}

	tok, err := s.users.Login(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			handleServiceError(c, err, detailBadCredentials)
			return
		}
		handleServiceError(c, err, "")
		return
	}

	if err := s.limiter.Reset(c.Request.Context(), loginKey(c)); err != nil {
		s.logger.Warn(c.Request.Context(), "rate limiter reset", "error", err)
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: tok.AccessToken, TokenType: tok.TokenType})
}

func (s *Server) me(c *gin.Context) {
	u := currentUser(c)
	if u == nil {
		respondError(c, http.StatusUnauthorized, detailNotAuthenticated)
		return
	}
	c.JSON(http.StatusOK, userResponse{ID: u.ID, Username: u.UserName, CreatedAt: u.CreatedAt})
}
