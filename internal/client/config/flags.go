package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/diary/internal/flagx"
)

var clientFlags = []string{"-a", "-f", "-t", "-i"}

// parseFlags overrides cfg with the short flags listed in the package doc.
// Arguments meant for other parsers (such as -c) are filtered out first.
func parseFlags(cfg *Config) {
	parseArgs(cfg, os.Args[1:])
}

func parseArgs(cfg *Config, raw []string) {
	args := flagx.FilterArgs(raw, clientFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the diary server")
	fs.StringVar(&cfg.SessionDB, "f", cfg.SessionDB, "path of the local session database")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
}
