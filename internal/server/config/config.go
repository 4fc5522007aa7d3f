// Package config handles configuration for the diary server, including
// defaults, JSON overlay, and command-line flags.
package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime settings for the diary server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the public REST API.
//   - EndpointAddrGRPC: bind address for the gRPC health service.
//   - DatabaseDSN: store location; "mongodb://..." (default), "postgres://..." or "memory".
//   - DatabaseName: MongoDB database holding the users and diary collections.
//   - SecretKey: HMAC secret for signing access tokens (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: access token TTL.
//   - BcryptCost: work factor for password hashes.
//   - LogLevel: debug, info, warn or error.
//   - RedisURL: login rate limiter backend; empty disables rate limiting.
//   - LoginAttempts / LoginWindow: allowed /token calls per client within the window.
//   - ProtectDiary: require a bearer token on /api/diary routes.
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint: diary image
//     storage; an empty bucket disables the image endpoints.
//   - TrustedProxies: proxies whose X-Forwarded-For is believed when resolving the
//     client address; empty means the socket peer is the client.
type Config struct {
	EndpointAddrHTTP            string
	EndpointAddrGRPC            string
	DatabaseDSN                 string
	DatabaseName                string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	BcryptCost                  int
	LogLevel                    string
	RedisURL                    string
	LoginAttempts               int
	LoginWindow                 time.Duration
	ProtectDiary                bool
	S3RootUser                  string
	S3RootPassword              string
	S3Bucket                    string
	S3Region                    string
	S3BaseEndpoint              string
	TrustedProxies              []string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8000"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = "mongodb://localhost:27017"
	c.DatabaseName = "diary"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 30 * time.Minute
	c.BcryptCost = bcrypt.DefaultCost
	c.LogLevel = "info"
	c.RedisURL = ""
	c.LoginAttempts = 5
	c.LoginWindow = 1 * time.Minute
	c.ProtectDiary = false
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "diary"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.TrustedProxies = nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
