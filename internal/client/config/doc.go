// Package config loads runtime configuration for the gynecare CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file (-e/-env, else ./.env when present) and GYNECARE_* variables.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the consultation API
//	-d string   path of the local session database
//	-l string   log level (debug, info, warn, error)
//
// Environment
//
//	GYNECARE_API_URL, GYNECARE_CLIENT_ID, GYNECARE_CLIENT_SECRET,
//	GYNECARE_SESSION_DB, GYNECARE_LOG_LEVEL
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:8000",
//	  "client_id": "...",
//	  "client_secret": "...",
//	  "session_db_path": "gynecare.db",
//	  "log_level": "info"
//	}
//
// The OAuth client id and secret have no defaults and no flags; they come from
// the environment or the JSON file only.
package config
