// ABOUTME: Entry point for the tymex-console admin server
// ABOUTME: Dispatches serve, init, health and show subcommands

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/2389/tymex-console/internal/config"
	"github.com/2389/tymex-console/internal/dedupe"
	"github.com/2389/tymex-console/internal/metrics"
	"github.com/2389/tymex-console/internal/schema"
	"github.com/2389/tymex-console/internal/screens"
	"github.com/2389/tymex-console/internal/session"
	"github.com/2389/tymex-console/internal/store"
	"github.com/2389/tymex-console/internal/webadmin"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
 _                                                          _
| |_ _   _ _ __ ___   _____  __      ___ ___  _ __  ___  ___ | | ___
| __| | | | '_ ' _ \ / _ \ \/ /____ / __/ _ \| '_ \/ __|/ _ \| |/ _ \
| |_| |_| | | | | | |  __/>  <_____| (_| (_) | | | \__ \ (_) | |  __/
 \__|\__, |_| |_| |_|\___/_/\_\     \___\___/|_| |_|___/\___/|_|\___|
     |___/
`

// Submit tokens remembered at once; older ones are dropped first.
const submitGuardSize = 10000

// getConfigPath returns the path to the console config file.
// Priority: TYMEX_CONFIG env var > XDG_CONFIG_HOME/tymex/console.yaml > ~/.config/tymex/console.yaml
func getConfigPath() string {
	if envPath := os.Getenv("TYMEX_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "console.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "tymex", "console.yaml")
}

func printUsage() {
	fmt.Println("Usage: tymex-console <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  serve                                  Start the web console")
	fmt.Println("  init                                   Create a new config file interactively")
	fmt.Println("  health                                 Check console health")
	fmt.Println("  show <screen> [--agent A] [--search S] Print a screen's seeded table")
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit()
	case "health":
		err = runHealth(ctx)
	case "show":
		err = runShow(ctx, os.Args[2:], os.Stdout)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	green.Print("    ▶ ")
	fmt.Printf("Config:    %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:      http://%s\n", cfg.Server.HTTPAddr)
	green.Print("    ▶ ")
	fmt.Printf("Audit:     %s (%s)", cfg.Database.Path, cfg.Database.Driver)
	if cfg.Database.Path == store.MemoryPath {
		yellow.Print(" [not persisted]")
	}
	fmt.Println()
	if cfg.Metrics.Enabled {
		green.Print("    ▶ ")
		fmt.Printf("Metrics:   %s\n", cfg.Metrics.Path)
	}
	fmt.Println()

	logger.Info("starting tymex-console",
		"config", configPath,
		"http_addr", cfg.Server.HTTPAddr,
		"database", cfg.Database.Path,
	)

	handler, cleanup, err := buildServer(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildServer wires the audit store, metrics, screens, workspaces and web
// routes from cfg. cleanup releases everything it opened.
func buildServer(ctx context.Context, cfg *config.Config) (http.Handler, func(), error) {
	auditStore, err := store.OpenSQLiteStore(cfg.Database.Driver, cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening audit store: %w", err)
	}

	env, err := newEnv(cfg)
	if err != nil {
		auditStore.Close()
		return nil, nil, err
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}
	env.Observer = screens.NewRecorder(auditStore, m, session.Actor)

	sessions, err := session.NewManager(cfg.Auth.SessionSecret, cfg.Session.TTL, cfg.Server.SecureCookies)
	if err != nil {
		auditStore.Close()
		return nil, nil, fmt.Errorf("creating session manager: %w", err)
	}

	workspaces := screens.NewWorkspaces(env, cfg.Workspaces.IdleTTL)
	runCtx, stop := context.WithCancel(ctx)
	go workspaces.Run(runCtx, cfg.Workspaces.SweepInterval)

	guard := dedupe.New(cfg.Workspaces.SubmitTokenTTL, submitGuardSize, cfg.Workspaces.SweepInterval)

	admin := webadmin.New(sessions, workspaces, auditStore, guard, m, webadmin.Config{
		SecureCookies: cfg.Server.SecureCookies,
		MetricsPath:   cfg.Metrics.Path,
	})

	cleanup := func() {
		stop()
		guard.Close()
		if err := auditStore.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "closing audit store: %v\n", err)
		}
	}
	return admin.Handler(), cleanup, nil
}

// newEnv loads the seed data and applies the configured scope sets
func newEnv(cfg *config.Config) (*screens.Env, error) {
	seeds, err := screens.LoadSeeds()
	if err != nil {
		return nil, fmt.Errorf("loading seed data: %w", err)
	}

	env := screens.NewEnv(seeds)
	if env.ChannelScopes, err = schema.ScopeSet(cfg.Screens.ChannelPermissions.ScopeSet); err != nil {
		return nil, err
	}
	if env.UserScopes, err = schema.ScopeSet(cfg.Screens.UserPermissions.ScopeSet); err != nil {
		return nil, err
	}
	return env, nil
}

func runHealth(ctx context.Context) error {
	configPath := getConfigPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	url := fmt.Sprintf("http://%s/health", cfg.Server.HTTPAddr)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}

	fmt.Println("healthy")
	return nil
}
