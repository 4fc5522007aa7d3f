// Package server initializes and runs the diary server: it opens the
// configured store, builds the services, runs the REST API and the gRPC
// health service, and tears everything down on shutdown.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/diary/internal/logging"
	"github.com/dmitrijs2005/diary/internal/server/config"
	"github.com/dmitrijs2005/diary/internal/server/images"
	"github.com/dmitrijs2005/diary/internal/server/ratelimit"
	"github.com/dmitrijs2005/diary/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/diary/internal/server/rest"
	"github.com/dmitrijs2005/diary/internal/server/services"
	"github.com/gin-gonic/gin"

	gs "github.com/dmitrijs2005/diary/internal/server/grpc"
)

const closeTimeout = 5 * time.Second

type App struct {
	config       *config.Config
	logger       logging.Logger
	repomanager  repomanager.RepositoryManager
	limiter      ratelimit.Limiter
	userService  *services.UserService
	entryService *services.EntryService
	imageService *images.Service
}

// newRepoManager and newLimiter are seams for tests.
var (
	newRepoManager = repomanager.New
	newLimiter     = func(ctx context.Context, url string, max int, window time.Duration) (ratelimit.Limiter, error) {
		return ratelimit.NewFromURL(ctx, url, max, window)
	}
)

func NewApp(ctx context.Context, c *config.Config, out io.Writer) (*App, error) {

	logger := logging.NewJSONLogger(out, c.LogLevel)

	if logging.ParseLevel(c.LogLevel) > logging.ParseLevel("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	rm, err := newRepoManager(ctx, c.DatabaseDSN, c.DatabaseName)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	var limiter ratelimit.Limiter = ratelimit.Noop{}
	if c.RedisURL != "" {
		limiter, err = newLimiter(ctx, c.RedisURL, c.LoginAttempts, c.LoginWindow)
		if err != nil {
			_ = rm.Close(ctx)
			return nil, fmt.Errorf("rate limiter init error: %w", err)
		}
	}

	return &App{
		config:       c,
		logger:       logger,
		repomanager:  rm,
		limiter:      limiter,
		userService:  services.NewUserService(rm, c, logger),
		entryService: services.NewEntryService(rm, logger),
		imageService: images.NewService(c, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startRESTServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewServer(app.logger, rest.Options{
		Address:        app.config.EndpointAddrHTTP,
		Users:          app.userService,
		Entries:        app.entryService,
		Images:         app.imageService,
		Limiter:        app.limiter,
		Store:          app.repomanager,
		ProtectDiary:   app.config.ProtectDiary,
		TrustedProxies: app.config.TrustedProxies,
	})

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.repomanager)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a termination signal arrives, ctx is cancelled or one of
// the servers fails, and then releases the store and limiter connections.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startRESTServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.close()
}

func (app *App) close() {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	if err := app.limiter.Close(); err != nil {
		app.logger.Error(ctx, "closing rate limiter", "error", err)
	}
	if err := app.repomanager.Close(ctx); err != nil {
		app.logger.Error(ctx, "closing store", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
