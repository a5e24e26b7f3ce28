// Package config loads runtime configuration for the LoanDesk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file (-env, default ".env") and the process environment:
//     LOANDESK_API_URL, LOANDESK_DB, LOANDESK_TIMEOUT, LOANDESK_LOG_LEVEL.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL
//	-d string   session database path
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:5000",
//	  "database_path": "/home/me/.config/loandesk/session.db",
//	  "request_timeout": "15s",
//	  "resend_cooldown": 60,
//	  "cooldown_tick": "1s",
//	  "log_level": "info"
//	}
package config
