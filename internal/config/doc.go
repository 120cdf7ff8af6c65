// Package config loads the tubeclone client configuration.
//
// # Discovery
//
//  1. If a path is given, use it
//  2. Otherwise use ~/.config/tubeclone/config.toml
//  3. A missing file is not an error; defaults apply
//  4. Empty or zero keys fall back to their defaults
//
// # Keys
//
//	api_base = "http://127.0.0.1:5328"   # remote API probed and fetched from
//	upload_base = ""                     # defaults to api_base
//	health_interval_seconds = 30         # passive health check cadence
//	error_hold_seconds = 3               # how long a failed retry stays visible
//	request_timeout_seconds = 5
//	log_dir = "~/.local/state/tubeclone"
//	log_level = "info"
//	theme = ""                           # overrides the saved preference
//
// Tilde expansion is applied to log_dir. Load rejects base URLs that are not
// absolute http(s) URLs and negative durations.
package config
