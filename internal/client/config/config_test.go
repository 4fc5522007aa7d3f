package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://127.0.0.1:8000", c.ServerURL)
	assert.Equal(t, "diary_session.db", c.SessionDB)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
}

func TestLoadConfig_NoArgsKeepsDefaults(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = []string{"diarycli"}

	cfg := LoadConfig()
	require.NotNil(t, cfg)
	if diff := cmp.Diff(defaults(), *cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	path := filepath.Join(t.TempDir(), "cli.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_url":"http://json:1","session_db":"json.db"}`), 0o600))

	os.Args = []string{"diarycli", "-c", path, "-a", "http://flag:2"}

	cfg := LoadConfig()
	assert.Equal(t, "http://flag:2", cfg.ServerURL)
	assert.Equal(t, "json.db", cfg.SessionDB)
}
