package server

import (
	"context"
	"log/slog"
	"net"
	"time"
)

const (
	defaultAddress           = ":8080"
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// Hook runs at startup or shutdown.
type Hook func(ctx context.Context) error

// Option configures the server runtime.
type Option func(*config)

type config struct {
	address         string
	listener        net.Listener
	logger          *slog.Logger
	shutdownTimeout time.Duration
	startupHooks    []Hook
	shutdownHooks   []Hook
}

// WithAddress sets the listen address. Defaults to ":8080".
func WithAddress(addr string) Option {
	return func(c *config) {
		if addr != "" {
			c.address = addr
		}
	}
}

// WithListener serves on ln instead of listening on the address.
func WithListener(ln net.Listener) Option {
	return func(c *config) {
		c.listener = ln
	}
}

// WithLogger sets the runtime logger.
// If nil, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithShutdownTimeout bounds the graceful shutdown, hooks included.
// Defaults to 30 seconds.
func WithShutdownTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// WithStartupHook registers a function that runs before the server accepts
// requests. A failing hook aborts Run.
func WithStartupHook(fn Hook) Option {
	return func(c *config) {
		if fn != nil {
			c.startupHooks = append(c.startupHooks, fn)
		}
	}
}

// WithShutdownHook registers a cleanup function to run after the server has
// drained. Hooks are called in the order they were registered and receive a
// context with the shutdown timeout.
//
// Example:
//
//	server.WithShutdownHook(db.Shutdown(pool))
func WithShutdownHook(fn Hook) Option {
	return func(c *config) {
		if fn != nil {
			c.shutdownHooks = append(c.shutdownHooks, fn)
		}
	}
}
