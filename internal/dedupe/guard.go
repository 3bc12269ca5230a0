// ABOUTME: Thread-safe TTL guard that lets each form submission token through once
// ABOUTME: Protects dialog submits and row actions from double-clicks and replays

package dedupe

import (
	"container/list"
	"sync"
	"time"
)

type claim struct {
	at      time.Time
	element *list.Element
}

// Guard remembers claimed keys for a TTL, holding at most maxSize of them.
// The oldest claim is dropped first when full.
type Guard struct {
	mu      sync.Mutex
	claims  map[string]*claim
	order   *list.List // oldest at front
	ttl     time.Duration
	maxSize int
	now     func() time.Time
	done    chan struct{}
	closed  bool
}

// New creates a Guard and starts a goroutine that drops expired claims
// every interval until Close.
func New(ttl time.Duration, maxSize int, interval time.Duration) *Guard {
	g := &Guard{
		claims:  make(map[string]*claim),
		order:   list.New(),
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go g.sweepLoop(interval)
	return g
}

// Claim reports whether key is new. The first call for a key within the
// TTL returns true and records it; later calls return false.
func (g *Guard) Claim(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if c, ok := g.claims[key]; ok {
		if now.Sub(c.at) < g.ttl {
			return false
		}
		c.at = now
		g.order.MoveToBack(c.element)
		return true
	}

	if len(g.claims) >= g.maxSize {
		g.dropOldest()
	}
	g.claims[key] = &claim{at: now, element: g.order.PushBack(key)}
	return true
}

// Claimed reports whether key holds an unexpired claim.
func (g *Guard) Claimed(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.claims[key]
	return ok && g.now().Sub(c.at) < g.ttl
}

// Len returns the number of claims held, expired or not.
func (g *Guard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.claims)
}

func (g *Guard) dropOldest() {
	front := g.order.Front()
	if front == nil {
		return
	}
	key, _ := front.Value.(string)
	g.order.Remove(front)
	delete(g.claims, key)
}

func (g *Guard) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			g.sweep()
		case <-g.done:
			return
		}
	}
}

func (g *Guard) sweep() {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for key, c := range g.claims {
		if now.Sub(c.at) >= g.ttl {
			g.order.Remove(c.element)
			delete(g.claims, key)
		}
	}
}

// Close stops the sweep goroutine. It is safe to call multiple times.
func (g *Guard) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.closed {
		close(g.done)
		g.closed = true
	}
}
