// Package config loads runtime configuration for the diary CLI.
//
// Sources are applied in order, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. An optional JSON file named by -c or -config.
//  3. Command-line flags.
//
// Supported flags
//
//	-a string   base URL of the diary HTTP server
//	-f string   path of the local session database
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:8000",
//	  "session_db": "diary_session.db",
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s"
//	}
package config
