// ABOUTME: Configuration loading and parsing for tymex-console
// ABOUTME: Supports YAML or TOML files with .env loading, ${VAR} expansion and duration parsing

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/2389/tymex-console/internal/schema"
)

// Config represents the complete tymex-console configuration
type Config struct {
	Server     ServerConfig     `yaml:"server" toml:"server"`
	Database   DatabaseConfig   `yaml:"database" toml:"database"`
	Auth       AuthConfig       `yaml:"auth" toml:"auth"`
	Session    SessionConfig    `yaml:"session" toml:"session"`
	Workspaces WorkspacesConfig `yaml:"workspaces" toml:"workspaces"`
	Screens    ScreensConfig    `yaml:"screens" toml:"screens"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics" toml:"metrics"`
}

// ServerConfig holds the HTTP listener configuration
type ServerConfig struct {
	HTTPAddr      string `yaml:"http_addr" toml:"http_addr"`
	SecureCookies bool   `yaml:"secure_cookies" toml:"secure_cookies"`
}

// DatabaseConfig selects the audit ledger driver and location
type DatabaseConfig struct {
	Driver string `yaml:"driver" toml:"driver"` // "sqlite" (modernc) or "sqlite3" (cgo)
	Path   string `yaml:"path" toml:"path"`     // ":memory:" keeps the ledger in memory
}

// AuthConfig holds session signing configuration
type AuthConfig struct {
	SessionSecret string `yaml:"session_secret" toml:"session_secret"`
}

// SessionConfig holds login session lifetime
type SessionConfig struct {
	TTL    time.Duration `yaml:"-" toml:"-"`
	TTLRaw string        `yaml:"ttl" toml:"ttl"`
}

// WorkspacesConfig holds per-browser console lifetime settings
type WorkspacesConfig struct {
	IdleTTL        time.Duration `yaml:"-" toml:"-"`
	SweepInterval  time.Duration `yaml:"-" toml:"-"`
	SubmitTokenTTL time.Duration `yaml:"-" toml:"-"`

	// Raw string values for unmarshaling
	IdleTTLRaw        string `yaml:"idle_ttl" toml:"idle_ttl"`
	SweepIntervalRaw  string `yaml:"sweep_interval" toml:"sweep_interval"`
	SubmitTokenTTLRaw string `yaml:"submit_token_ttl" toml:"submit_token_ttl"`
}

// ScreensConfig holds per-screen options
type ScreensConfig struct {
	ChannelPermissions ScreenConfig `yaml:"channel_permissions" toml:"channel_permissions"`
	UserPermissions    ScreenConfig `yaml:"user_permissions" toml:"user_permissions"`
}

// ScreenConfig selects the scope enumeration a permission screen uses
type ScreenConfig struct {
	ScopeSet string `yaml:"scope_set" toml:"scope_set"` // "access" or "capability"
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// MetricsConfig holds metrics endpoint configuration
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Path    string `yaml:"path" toml:"path"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{
		Server:   ServerConfig{HTTPAddr: "localhost:8080"},
		Database: DatabaseConfig{Driver: "sqlite", Path: ":memory:"},
		Session:  SessionConfig{TTLRaw: "24h"},
		Workspaces: WorkspacesConfig{
			IdleTTLRaw:        "30m",
			SweepIntervalRaw:  "1m",
			SubmitTokenTTLRaw: "10m",
		},
		Screens: ScreensConfig{
			ChannelPermissions: ScreenConfig{ScopeSet: schema.ScopeSetAccess},
			UserPermissions:    ScreenConfig{ScopeSet: schema.ScopeSetCapability},
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Metrics: MetricsConfig{Enabled: false, Path: "/metrics"},
	}
	// Defaults always parse.
	_ = parseDurations(cfg)
	return cfg
}

// Load reads a configuration file from the given path and returns a parsed Config.
// A .env file beside the config is loaded first without overriding variables
// already set. Environment variables in the format ${VAR_NAME} are expanded.
// Files ending in .toml are parsed as TOML, anything else as YAML. Values
// absent from the file keep their defaults, and a missing file yields Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}

	expandedData := expandEnvVars(string(data))

	cfg := Default()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(expandedData, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	} else if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := parseDurations(cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}

	switch c.Database.Driver {
	case "sqlite", "sqlite3":
	default:
		return fmt.Errorf("database.driver must be sqlite or sqlite3, got %q", c.Database.Driver)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}
	if c.Workspaces.IdleTTL <= 0 {
		return fmt.Errorf("workspaces.idle_ttl must be positive")
	}
	if c.Workspaces.SweepInterval <= 0 {
		return fmt.Errorf("workspaces.sweep_interval must be positive")
	}
	if c.Workspaces.SubmitTokenTTL <= 0 {
		return fmt.Errorf("workspaces.submit_token_ttl must be positive")
	}

	if _, err := schema.ScopeSet(c.Screens.ChannelPermissions.ScopeSet); err != nil {
		return fmt.Errorf("screens.channel_permissions.scope_set: %w", err)
	}
	if _, err := schema.ScopeSet(c.Screens.UserPermissions.ScopeSet); err != nil {
		return fmt.Errorf("screens.user_permissions.scope_set: %w", err)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with /")
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	fields := []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"session.ttl", cfg.Session.TTLRaw, &cfg.Session.TTL},
		{"workspaces.idle_ttl", cfg.Workspaces.IdleTTLRaw, &cfg.Workspaces.IdleTTL},
		{"workspaces.sweep_interval", cfg.Workspaces.SweepIntervalRaw, &cfg.Workspaces.SweepInterval},
		{"workspaces.submit_token_ttl", cfg.Workspaces.SubmitTokenTTLRaw, &cfg.Workspaces.SubmitTokenTTL},
	}

	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		d, err := time.ParseDuration(f.raw)
		if err != nil {
			return fmt.Errorf("parsing %s %q: %w", f.name, f.raw, err)
		}
		*f.dst = d
	}
	return nil
}

// Marshal renders cfg as YAML, the format written by the init command.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
