package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/diary/internal/flagx"
)

var serverFlags = []string{"-a", "-m", "-d", "-n", "-s", "-t", "-k", "-v", "-r", "-l", "-w", "-x", "-u", "-p", "-b", "-g", "-e", "-o"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   REST API bind address (e.g., ":8000")
//	-m string   gRPC health service bind address
//	-d string   database DSN (mongodb://, postgres:// or "memory")
//	-n string   MongoDB database name
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-k int      bcrypt cost
//	-v string   log level
//	-r string   Redis URL for login rate limiting
//	-l int      login attempts per window
//	-w int      login window, minutes
//	-x          require a bearer token for diary routes
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-o string   comma-separated trusted proxy addresses or CIDRs
//
// -t and -w only override the configured durations when given.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags, "-x")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run REST API")
	fs.StringVar(&config.EndpointAddrGRPC, "m", config.EndpointAddrGRPC, "address and port to run gRPC health service")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.DatabaseName, "n", config.DatabaseName, "database name")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")
	fs.StringVar(&config.RedisURL, "r", config.RedisURL, "redis URL for login rate limiting")
	fs.IntVar(&config.LoginAttempts, "l", config.LoginAttempts, "login attempts per window")

	loginWindow := fs.Int("w", int(config.LoginWindow.Minutes()), "login window (in minutes)")

	fs.BoolVar(&config.ProtectDiary, "x", config.ProtectDiary, "require bearer token for diary routes")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	trustedProxies := fs.String("o", strings.Join(config.TrustedProxies, ","), "trusted proxies (comma-separated)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		case "w":
			config.LoginWindow = time.Duration(*loginWindow) * time.Minute
		case "o":
			config.TrustedProxies = splitList(*trustedProxies)
		}
	})
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
