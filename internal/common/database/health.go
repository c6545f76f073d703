package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// Health tracks the dependencies the readiness probe checks.
type Health struct {
	mu     sync.RWMutex
	checks map[string]Pinger
}

func NewHealth() *Health {
	return &Health{checks: make(map[string]Pinger)}
}

func (h *Health) Register(name string, p Pinger) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = p
}

// Check pings every registered dependency and joins the failures.
func (h *Health) Check(ctx context.Context) error {
	h.mu.RLock()
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	h.mu.RUnlock()
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		h.mu.RLock()
		p := h.checks[name]
		h.mu.RUnlock()
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
