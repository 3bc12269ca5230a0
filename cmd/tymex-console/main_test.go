// ABOUTME: Tests for the console binary's subcommands and log handler
// ABOUTME: Runs show and init against temp config paths with colour disabled

package main

import (
	"bufio"
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/tymex-console/internal/config"
)

func noColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("TYMEX_CONFIG", "/etc/tymex.yaml")
	assert.Equal(t, "/etc/tymex.yaml", getConfigPath())

	t.Setenv("TYMEX_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "tymex", "console.yaml"), getConfigPath())
}

func TestRunShow(t *testing.T) {
	noColor(t)
	t.Setenv("TYMEX_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	t.Run("filtered permissions", func(t *testing.T) {
		var out bytes.Buffer
		err := runShow(context.Background(), []string{"channel-permissions", "--agent", "GoTeddy"}, &out)
		require.NoError(t, err)

		text := out.String()
		assert.Contains(t, text, "Channel Permissions")
		assert.Contains(t, text, "#general")
		assert.NotContains(t, text, "#dev-team")
	})

	t.Run("search", func(t *testing.T) {
		var out bytes.Buffer
		err := runShow(context.Background(), []string{"user-management", "--search", "WILSON"}, &out)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Sarah Wilson")
		assert.NotContains(t, out.String(), "Jane Smith")
	})

	t.Run("dashboard", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runShow(context.Background(), []string{"web-dashboard"}, &out))
		assert.Contains(t, out.String(), "Tymee Crystal")
	})

	t.Run("unknown screen", func(t *testing.T) {
		var out bytes.Buffer
		err := runShow(context.Background(), []string{"settings"}, &out)
		assert.Error(t, err)
	})

	t.Run("missing screen", func(t *testing.T) {
		var out bytes.Buffer
		err := runShow(context.Background(), nil, &out)
		assert.ErrorContains(t, err, "usage")
	})
}

func TestInitConfigWritesLoadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tymex", "console.yaml")
	answers := strings.Join([]string{
		"",             // path
		"0.0.0.0:9000", // http addr
		"",             // secure cookies
		"",             // driver
		"",             // db path
		"fixed-secret", // session secret
		"",             // session ttl
		"15m",          // idle ttl
		"capability",   // channel scopes
		"",             // user scopes
		"debug",        // level
		"json",         // format
		"y",            // metrics
	}, "\n") + "\n"

	var out bytes.Buffer
	require.NoError(t, initConfig(bufio.NewReader(strings.NewReader(answers)), &out, path))
	assert.Contains(t, out.String(), "Config written to "+path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.HTTPAddr)
	assert.Equal(t, "fixed-secret", cfg.Auth.SessionSecret)
	assert.Equal(t, 15*time.Minute, cfg.Workspaces.IdleTTL)
	assert.Equal(t, "capability", cfg.Screens.ChannelPermissions.ScopeSet)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Metrics.Enabled)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestInitConfigKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  http_addr: \"keep:1\"\n"), 0644))

	var out bytes.Buffer
	require.NoError(t, initConfig(bufio.NewReader(strings.NewReader("\nno\n")), &out, path))
	assert.Contains(t, out.String(), "Aborted.")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "keep:1")
}

func TestColorHandler(t *testing.T) {
	noColor(t)
	var out bytes.Buffer
	logger := slog.New(newLogHandler(config.LoggingConfig{Level: "info", Format: "text"}, &out))

	logger.With("component", "admin").Info("routes registered", "count", 3)
	logger.Debug("hidden")

	line := out.String()
	assert.Regexp(t, `^\d{2}:\d{2}:\d{2} INF routes registered component=admin count=3\n$`, line)
}

func TestJSONHandler(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(newLogHandler(config.LoggingConfig{Level: "debug", Format: "json"}, &out))

	logger.Debug("draft rejected", "screen", "user-permissions")

	assert.Contains(t, out.String(), `"msg":"draft rejected"`)
	assert.Contains(t, out.String(), `"screen":"user-permissions"`)
}
