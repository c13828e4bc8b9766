// Package config loads runtime configuration for the tasktracker CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory, then TASKTRACKER_* environment
//     variables (see parseEnv).
//  3. Optional JSON file selected via -c or -config (see parseJson).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   backing store driver: memory, sqlite, postgres, redis, s3
//	-f string   SQLite database file
//	-dsn string PostgreSQL DSN
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
//	{
//	  "store_driver": "sqlite",
//	  "sqlite_path": "tasktracker.db",
//	  "log_format": "text",
//	  "log_level": "info",
//	  "seed": true,
//	  "shutdown_timeout": "5s"
//	}
//
// Invalid values panic, as they can only come from the operator.
package config
