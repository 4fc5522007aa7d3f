package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/diary/internal/flagx"
	"github.com/dmitrijs2005/diary/internal/timex"
)

// JsonConfig mirrors Config for JSON files. Durations use timex.Duration so
// "30m" and raw nanoseconds both work. Pointer fields distinguish "absent"
// from a zero value, so a partial file only overrides what it names.
type JsonConfig struct {
	EndpointAddrHTTP            *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC            *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	DatabaseName                *string         `json:"database_name"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	BcryptCost                  *int            `json:"bcrypt_cost"`
	LogLevel                    *string         `json:"log_level"`
	RedisURL                    *string         `json:"redis_url"`
	LoginAttempts               *int            `json:"login_attempts"`
	LoginWindow                 *timex.Duration `json:"login_window"`
	ProtectDiary                *bool           `json:"protect_diary"`
	S3RootUser                  *string         `json:"s3_root_user"`
	S3RootPassword              *string         `json:"s3_root_password"`
	S3Bucket                    *string         `json:"s3_bucket"`
	S3Region                    *string         `json:"s3_region"`
	S3BaseEndpoint              *string         `json:"s3_base_endpoint"`
	TrustedProxies              []string        `json:"trusted_proxies"`
}

// parseJson loads configuration values from the JSON file named by the -c or
// -config flag into config. Without the flag nothing happens. An unreadable
// file or invalid JSON panics, the same as a bad command-line flag.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.DatabaseName, c.DatabaseName)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.RedisURL, c.RedisURL)
	if c.LoginAttempts != nil {
		config.LoginAttempts = *c.LoginAttempts
	}
	if c.LoginWindow != nil {
		config.LoginWindow = c.LoginWindow.Duration
	}
	if c.ProtectDiary != nil {
		config.ProtectDiary = *c.ProtectDiary
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	if c.TrustedProxies != nil {
		config.TrustedProxies = c.TrustedProxies
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
