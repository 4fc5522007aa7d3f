// Package rest exposes the diary API over HTTP using gin.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/diary/internal/logging"
	"github.com/dmitrijs2005/diary/internal/server/images"
	"github.com/dmitrijs2005/diary/internal/server/ratelimit"
	"github.com/dmitrijs2005/diary/internal/server/services"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// Pinger is anything whose liveness /healthz can report.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	address        string
	engine         *gin.Engine
	logger         logging.Logger
	users          *services.UserService
	entries        *services.EntryService
	images         *images.Service
	limiter        ratelimit.Limiter
	store          Pinger
	protectDiary   bool
	trustedProxies []string
}

// Options carries the collaborators of a Server. TrustedProxies lists the
// proxies whose forwarding headers are honoured; nil trusts none.
type Options struct {
	Address        string
	Users          *services.UserService
	Entries        *services.EntryService
	Images         *images.Service
	Limiter        ratelimit.Limiter
	Store          Pinger
	ProtectDiary   bool
	TrustedProxies []string
}

func NewServer(l logging.Logger, o Options) *Server {
	limiter := o.Limiter
	if limiter == nil {
		limiter = ratelimit.Noop{}
	}

	s := &Server{
		address:        o.Address,
		logger:         l.With("module", "rest_server"),
		users:          o.Users,
		entries:        o.Entries,
		images:         o.Images,
		limiter:        limiter,
		store:          o.Store,
		protectDiary:   o.ProtectDiary,
		trustedProxies: o.TrustedProxies,
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(s.trustedProxies); err != nil {
		s.logger.Error(context.Background(), "invalid trusted proxies, trusting none", "error", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery(), s.accessLog())

	r.GET("/healthz", s.healthz)

	r.POST("/register", s.register)
	r.POST("/token", s.loginRateLimit(), s.token)
	r.GET("/users/me", s.bearerAuth(), s.me)

	diary := r.Group("/api/diary")
	if s.protectDiary {
		diary.Use(s.bearerAuth())
	}
	diary.GET("", s.listEntries)
	diary.POST("", s.createEntry)
	diary.PUT("/:id", s.updateEntry)
	diary.DELETE("/:id", s.deleteEntry)
	diary.POST("/images", s.presignUpload)
	diary.GET("/images/url", s.presignDownload)

	return r
}

// Handler returns the HTTP handler; handy for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
