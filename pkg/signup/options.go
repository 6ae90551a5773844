package signup

import (
	"log/slog"
	"time"
)

// DefaultTimeout bounds each identity provider call.
const DefaultTimeout = 30 * time.Second

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger used for transitions and failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTimeout sets the deadline for each identity provider call. Zero or a
// negative value disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		c.timeout = d
	}
}
