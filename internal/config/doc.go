// Package config handles configuration loading for tymex-console.
//
// # Overview
//
// Configuration is loaded from a YAML or TOML file with environment
// variable expansion. Every value has a default, so a missing file is not
// an error.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from TYMEX_CONFIG environment variable
//  2. $XDG_CONFIG_HOME/tymex/console.yaml
//  3. ~/.config/tymex/console.yaml
//
// A file ending in .toml is parsed as TOML; anything else as YAML.
//
// # Environment Variables
//
// A .env file in the same directory as the config file is loaded first.
// Variables already present in the environment win. Values can then
// reference them:
//
//	auth:
//	  session_secret: "${TYMEX_SESSION_SECRET}"
//
// Syntax: ${VAR_NAME}. Unset variables expand to an empty string.
//
// # Configuration Sections
//
//	server:
//	  http_addr: "localhost:8080"
//	  secure_cookies: false
//
//	database:
//	  driver: "sqlite"     # sqlite (pure Go) or sqlite3 (cgo)
//	  path: ":memory:"     # audit ledger; a file path persists it
//
//	auth:
//	  session_secret: "${TYMEX_SESSION_SECRET}"  # random per process when empty
//
//	session:
//	  ttl: "24h"
//
//	workspaces:
//	  idle_ttl: "30m"          # consoles unused this long are dropped
//	  sweep_interval: "1m"
//	  submit_token_ttl: "10m"  # window in which a form token is single-use
//
//	screens:
//	  channel_permissions:
//	    scope_set: "access"      # custom / allowed / not_allowed
//	  user_permissions:
//	    scope_set: "capability"  # Browser Web / Catch up / Look up
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
//	metrics:
//	  enabled: false
//	  path: "/metrics"
//
// Durations use time.ParseDuration syntax.
package config
