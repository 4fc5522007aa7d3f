package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/diary/internal/flagx"
	"github.com/dmitrijs2005/diary/internal/timex"
)

// JsonConfig is the on-disk shape of the CLI configuration. Absent fields
// keep their current value.
type JsonConfig struct {
	ServerURL           *string         `json:"server_url"`
	SessionDB           *string         `json:"session_db"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
}

// parseJson overlays cfg with the file named by -c or -config. Read and
// decode failures panic.
func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}
	loadJSONFile(cfg, path)
}

func loadJSONFile(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.SessionDB != nil {
		cfg.SessionDB = *jc.SessionDB
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
}
