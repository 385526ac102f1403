// Package config loads runtime configuration for the Exam Oracle CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment (see parseEnv): an optional dotenv file (-env-file, or
//     ./.env when present) loaded with godotenv, then ORACLE_* variables
//     and GEMINI_API_KEY.
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string      SQLite database file
//	-m             keep all records in memory (nothing survives exit)
//	-k string      Gemini API key
//	-model string  Gemini model name
//	-t int         model request timeout (seconds)
//	-q int         questions per generated quiz
//	-s int         quiz time allowance per question (seconds)
//	-r int         quiz attempts kept per user
//	-l string      log level (debug, info, warn, error)
//	-log-format    log format (text or json)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "90s" or
// integer nanoseconds:
//
//	{
//	  "store_dsn": "oracle.db",
//	  "gemini_model": "gemini-2.5-pro",
//	  "request_timeout": "2m",
//	  "session_ttl": "720h",
//	  "history_retention": 20
//	}
package config
