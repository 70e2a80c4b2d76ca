// Package config loads runtime configuration for the users console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables prefixed USERSADMIN_.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the users API
//	-t int      per-request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-s int      initial page size (5, 10 or 20)
//	-j string   journal database path ("" disables the journal)
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "3s" or integer
// nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:8080",
//	  "api_token": "eyJhbGciOi...",
//	  "request_timeout": "10s",
//	  "online_check_interval": "5s",
//	  "page_size": 10,
//	  "journal_path": "/home/me/.config/usersadmin/journal.db",
//	  "lang": "en",
//	  "color": true,
//	  "log_level": "warn"
//	}
//
// # Environment
//
//	USERSADMIN_API_URL, USERSADMIN_API_TOKEN, USERSADMIN_REQUEST_TIMEOUT,
//	USERSADMIN_ONLINE_CHECK_INTERVAL, USERSADMIN_PAGE_SIZE,
//	USERSADMIN_JOURNAL_PATH, USERSADMIN_LANG, USERSADMIN_COLOR,
//	USERSADMIN_LOG_LEVEL
//
// The API token is deliberately not accepted as a flag so it does not end up
// in shell history or process listings.
package config
