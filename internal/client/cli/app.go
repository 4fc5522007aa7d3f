package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/diary/internal/client/client"
	"github.com/dmitrijs2005/diary/internal/client/config"
	"github.com/dmitrijs2005/diary/internal/client/services"
	"github.com/dmitrijs2005/diary/internal/client/session"
	"github.com/dmitrijs2005/diary/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// pingTimeout bounds a single reachability probe.
const pingTimeout = 3 * time.Second

type App struct {
	config       *config.Config
	logger       logging.Logger
	authService  services.AuthService
	entryService services.EntryService
	closeStore   func() error
	reader       *bufio.Reader
	out          io.Writer

	mu       sync.Mutex
	userName string
	mode     Mode
}

// NewApp opens the session database and builds the services for cfg.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, "info").With("module", "cli")

	db, err := session.OpenDatabase(ctx, cfg.SessionDB)
	if err != nil {
		return nil, fmt.Errorf("error initializing session database: %w", err)
	}
	store := session.NewStore(db)

	apiClient, err := client.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &App{
		config:       cfg,
		logger:       logger,
		authService:  services.NewAuthService(apiClient, store),
		entryService: services.NewEntryService(apiClient, store),
		closeStore:   store.Close,
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
	}, nil
}

// Run restores a saved login, starts the reachability watcher and serves the
// REPL on stdin until exit or ctx cancellation.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer func() {
		if a.closeStore != nil {
			_ = a.closeStore()
		}
	}()

	printlnFn("Welcome to the diary CLI (type 'help' for commands)")
	a.restoreSession(ctx)
	a.checkOnline(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) restoreSession(ctx context.Context) {
	s, err := a.authService.Current(ctx)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			a.logger.Warn(ctx, "could not read saved session", "error", err)
		}
		return
	}
	a.setUserName(s.UserName)
}

func (a *App) setUserName(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userName = name
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userName != ""
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

// getStatus renders the prompt prefix, e.g. "(alice online)".
func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.mode != "" {
		s += string(a.mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.authService.Ping(pctx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// StartOnlineStatusWatcher probes the server every interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// report prints a command failure in user terms.
func (a *App) report(err error) error {
	fmt.Fprintln(a.out, "Error:", describe(err))
	return err
}
