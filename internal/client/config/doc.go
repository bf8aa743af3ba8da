// Package config loads runtime configuration for the GophDrive terminal
// client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment, optionally seeded from a .env file (GOPHDRIVE_SERVER_URL,
//     GOPHDRIVE_SESSION_DIR, GOPHDRIVE_CLIENT_LOG_LEVEL, ...).
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the GophDrive API
//	-i int      online status check interval (seconds)
//	-s string   directory holding the local session database
//
// # JSON schema
//
// Durations accept strings like "3s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "online_check_interval": "3s",
//	  "progress_reset_delay": "2s"
//	}
package config
