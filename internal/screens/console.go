// ABOUTME: Console holds one browser workspace's active navigation and mounted screen
// ABOUTME: Workspaces keys consoles by cookie id and evicts idle ones

package screens

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Console is the per-workspace screen host. Events are serialized so a
// screen only ever sees one mutation at a time.
type Console struct {
	mu     sync.Mutex
	env    *Env
	active Navigation
	screen Screen
}

// NewConsole mounts the dashboard.
func NewConsole(ctx context.Context, env *Env) (*Console, error) {
	c := &Console{env: env}
	if err := c.selectLocked(ctx, NavDashboard); err != nil {
		return nil, err
	}
	return c, nil
}

// With selects nav and runs fn against its screen while holding the
// console lock. Selecting a different item remounts it with fresh seed
// data; reselecting the active item keeps its state.
func (c *Console) With(ctx context.Context, nav Navigation, fn func(Screen) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.selectLocked(ctx, nav); err != nil {
		return err
	}
	return fn(c.screen)
}

// Active returns the selected navigation item.
func (c *Console) Active() Navigation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

func (c *Console) selectLocked(ctx context.Context, nav Navigation) error {
	if c.screen != nil && c.active == nav {
		return nil
	}
	scr, err := c.env.Mount(ctx, nav)
	if err != nil {
		return err
	}
	c.active = nav
	c.screen = scr
	return nil
}

type workspace struct {
	console  *Console
	lastSeen time.Time
}

// Workspaces is a registry of consoles keyed by workspace id.
type Workspaces struct {
	mu      sync.Mutex
	env     *Env
	idleTTL time.Duration
	now     func() time.Time
	items   map[string]*workspace
	logger  *slog.Logger
}

// NewWorkspaces creates an empty registry. Consoles unused for idleTTL are
// dropped by Sweep.
func NewWorkspaces(env *Env, idleTTL time.Duration) *Workspaces {
	return &Workspaces{
		env:     env,
		idleTTL: idleTTL,
		now:     time.Now,
		items:   make(map[string]*workspace),
		logger:  slog.Default().With("component", "workspaces"),
	}
}

// Get returns the console for id, creating a new workspace when id is
// unknown. The returned id is the one the caller should keep using.
func (w *Workspaces) Get(ctx context.Context, id string) (string, *Console, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ws, ok := w.items[id]; ok && id != "" {
		ws.lastSeen = w.now()
		return id, ws.console, nil
	}

	c, err := NewConsole(ctx, w.env)
	if err != nil {
		return "", nil, err
	}
	id = uuid.NewString()
	w.items[id] = &workspace{console: c, lastSeen: w.now()}
	w.logger.Debug("workspace created", "workspace", id)
	return id, c, nil
}

// Len returns the number of live workspaces.
func (w *Workspaces) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}

// Sweep drops idle workspaces and returns how many were removed.
func (w *Workspaces) Sweep() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	cutoff := w.now().Add(-w.idleTTL)
	removed := 0
	for id, ws := range w.items {
		if ws.lastSeen.Before(cutoff) {
			delete(w.items, id)
			removed++
		}
	}
	if removed > 0 {
		w.logger.Debug("evicted idle workspaces", "count", removed)
	}
	return removed
}

// Run sweeps periodically until ctx is done.
func (w *Workspaces) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Sweep()
		}
	}
}
