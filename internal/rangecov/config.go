package rangecov

import "runtime"

// Config holds the tunable parameters for MergeProcesses. The zero value
// is not meaningful on its own; use newConfig(opts...) to build one with
// defaults applied.
type Config struct {
	maxWorkers int
}

// Option adjusts a Config. Zero or more Options can be passed to
// MergeProcesses.
type Option func(*Config)

// WithMaxWorkers bounds how many per-URL script merges MergeProcesses runs
// concurrently. Values <= 0 are ignored, leaving the default (GOMAXPROCS)
// in place.
func WithMaxWorkers(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.maxWorkers = n
		}
	}
}

func newConfig(opts ...Option) *Config {
	cfg := &Config{maxWorkers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
