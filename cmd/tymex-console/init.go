// ABOUTME: Interactive config writer for the init subcommand
// ABOUTME: Prompts for each section and writes YAML validated by the config package

package main

import (
	"bufio"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/2389/tymex-console/internal/config"
)

func runInit() error {
	return initConfig(bufio.NewReader(os.Stdin), os.Stdout, getConfigPath())
}

// initConfig asks for each setting on in, reading answers from in and
// writing prompts to out. Empty answers take the default.
func initConfig(in *bufio.Reader, out io.Writer, defaultPath string) error {
	fmt.Fprintln(out, "tymex-console configuration setup")
	fmt.Fprintln(out, "=================================")
	fmt.Fprintln(out)

	p := func(question, defaultVal string) string {
		return prompt(in, out, question, defaultVal)
	}

	outputFile := p("Config file path", defaultPath)

	if _, err := os.Stat(outputFile); err == nil {
		if !isYes(p("File exists. Overwrite?", "no")) {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	cfg := config.Default()

	fmt.Fprintln(out, "\n--- Server Configuration ---")
	cfg.Server.HTTPAddr = p("HTTP address", cfg.Server.HTTPAddr)
	cfg.Server.SecureCookies = isYes(p("Serving over HTTPS (secure cookies)?", "no"))

	fmt.Fprintln(out, "\n--- Audit Log ---")
	cfg.Database.Driver = p("SQLite driver (sqlite/sqlite3)", cfg.Database.Driver)
	cfg.Database.Path = p("Database path (:memory: to keep in memory)", cfg.Database.Path)

	fmt.Fprintln(out, "\n--- Sessions ---")
	secret, err := randomSecret()
	if err != nil {
		return err
	}
	cfg.Auth.SessionSecret = p("Session secret", secret)
	cfg.Session.TTLRaw = p("Session lifetime", cfg.Session.TTLRaw)
	cfg.Workspaces.IdleTTLRaw = p("Idle workspace lifetime", cfg.Workspaces.IdleTTLRaw)

	fmt.Fprintln(out, "\n--- Screens ---")
	cfg.Screens.ChannelPermissions.ScopeSet = p("Channel permission scopes (access/capability)", cfg.Screens.ChannelPermissions.ScopeSet)
	cfg.Screens.UserPermissions.ScopeSet = p("User permission scopes (access/capability)", cfg.Screens.UserPermissions.ScopeSet)

	fmt.Fprintln(out, "\n--- Logging Configuration ---")
	cfg.Logging.Level = p("Log level (debug/info/warn/error)", cfg.Logging.Level)
	cfg.Logging.Format = p("Log format (text/json)", cfg.Logging.Format)

	fmt.Fprintln(out, "\n--- Metrics ---")
	cfg.Metrics.Enabled = isYes(p("Expose Prometheus metrics?", "no"))

	data, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	var content strings.Builder
	content.WriteString("# tymex-console configuration\n")
	content.WriteString("# Generated by tymex-console init\n\n")
	content.Write(data)

	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(outputFile, []byte(content.String()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	// Catch bad answers now rather than at serve time.
	if _, err := config.Load(outputFile); err != nil {
		return fmt.Errorf("written config is invalid, edit %s: %w", outputFile, err)
	}

	fmt.Fprintf(out, "\nConfig written to %s\n", outputFile)
	fmt.Fprintln(out, "\nTo start the server:")
	fmt.Fprintln(out, "  tymex-console serve")
	return nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating session secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func isYes(s string) bool {
	s = strings.ToLower(s)
	return s == "yes" || s == "y"
}

func prompt(reader *bufio.Reader, out io.Writer, question, defaultVal string) string {
	if defaultVal != "" {
		fmt.Fprintf(out, "%s [%s]: ", question, defaultVal)
	} else {
		fmt.Fprintf(out, "%s: ", question)
	}

	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		// On EOF or error, return default
		fmt.Fprintln(out)
		return defaultVal
	}
	input = strings.TrimSpace(input)

	if input == "" {
		return defaultVal
	}
	return input
}
