package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/diary/internal/client/client"
	"github.com/dmitrijs2005/diary/internal/client/config"
	"github.com/dmitrijs2005/diary/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatus(t *testing.T) {
	a, _ := newTestApp(nil, nil, "")
	assert.Equal(t, "", a.getStatus())

	a.setUserName("alice")
	assert.Equal(t, "(alice )", a.getStatus())

	a.setMode(context.Background(), ModeOnline)
	assert.Equal(t, "(alice online)", a.getStatus())

	a.setUserName("")
	a.setMode(context.Background(), ModeOffline)
	assert.Equal(t, "(offline)", a.getStatus())
}

func TestRestoreSession(t *testing.T) {
	ctx := context.Background()

	a, _ := newTestApp(&fakeAuth{current: &session.Session{UserName: "alice", AccessToken: "t"}}, nil, "")
	a.restoreSession(ctx)
	assert.True(t, a.isLoggedIn())

	a, _ = newTestApp(&fakeAuth{}, nil, "")
	a.restoreSession(ctx)
	assert.False(t, a.isLoggedIn())

	a, _ = newTestApp(&fakeAuth{currentErr: errBoom}, nil, "")
	a.restoreSession(ctx)
	assert.False(t, a.isLoggedIn())
}

func TestCheckOnline(t *testing.T) {
	as := &fakeAuth{}
	a, _ := newTestApp(as, nil, "")

	a.checkOnline(context.Background())
	assert.Equal(t, "(online)", a.getStatus())

	as.pingErr = client.ErrUnavailable
	a.checkOnline(context.Background())
	assert.Equal(t, "(offline)", a.getStatus())
}

func TestStartOnlineStatusWatcher(t *testing.T) {
	as := &fakeAuth{}
	a, _ := newTestApp(as, nil, "")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.StartOnlineStatusWatcher(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return as.pings.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	a.StartOnlineStatusWatcher(context.Background(), 0)
}

func TestRun_ExitsOnQuit(t *testing.T) {
	silencePrintln(t)
	as := &fakeAuth{current: &session.Session{UserName: "alice", AccessToken: "t"}}
	a, _ := newTestApp(as, nil, "quit\n")
	closed := false
	a.closeStore = func() error { closed = true; return nil }
	a.config.OnlineCheckInterval = time.Hour

	a.Run(context.Background())

	assert.True(t, closed)
	assert.True(t, a.isLoggedIn())
	assert.GreaterOrEqual(t, as.pings.Load(), int32(1))
}

func TestNewApp(t *testing.T) {
	cfg := &config.Config{
		ServerURL:      "http://127.0.0.1:1",
		SessionDB:      filepath.Join(t.TempDir(), "s.db"),
		RequestTimeout: time.Second,
	}

	a, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, a.authService)
	require.NoError(t, a.closeStore())

	cfg.ServerURL = "ftp://nope"
	_, err = NewApp(context.Background(), cfg)
	require.Error(t, err)

	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	cfg.ServerURL = "http://127.0.0.1:1"
	cfg.SessionDB = filepath.Join(blocker, "s.db")
	_, err = NewApp(context.Background(), cfg)
	require.Error(t, err)
}
