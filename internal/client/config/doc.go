// Package config loads runtime configuration for the locator console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. LOCATOR_* environment variables.
//  4. Command-line flags.
//
// Supported flags
//
//	-a string   API base URL
//	-d string   local database path
//	-l string   log level
//	-t int      request timeout (seconds)
//
// # JSON schema
//
// Durations may be strings like "10s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8080/",
//	  "db_path": "data/locator.db",
//	  "log_level": "debug",
//	  "request_timeout": "5s",
//	  "page_limit": 50
//	}
//
// # Environment
//
//	LOCATOR_API_BASE_URL, LOCATOR_DB_PATH, LOCATOR_LOG_LEVEL,
//	LOCATOR_REQUEST_TIMEOUT (e.g. "5s"), LOCATOR_PAGE_LIMIT
package config
