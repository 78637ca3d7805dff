package executor

import (
	"io"
	"log/slog"

	"go.lepak.sg/taskengine/lru"
)

// Option configures an Executor at construction time, following the
// functional-options pattern used elsewhere in the corpus for
// configuring a concurrent executor (max workers, observers, and the
// like): each Option mutates a private config struct that New applies
// defaults to before any caller-supplied Option runs.
type Option func(*config)

type config struct {
	label         string
	logger        *slog.Logger
	memoCacheSize int
}

func defaultConfig() config {
	return config{
		logger:        slog.Default(),
		memoCacheSize: lru.DefaultCacheMax,
	}
}

// WithLogger sets the *slog.Logger the Executor uses to report the
// outcome of each task it runs: completed (at Debug) and failed (at
// Warn). Submissions and cancellations are not logged. The default is
// slog.Default(); a nil logger discards all output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger == nil {
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		c.logger = logger
	}
}

// WithLabel sets a name for the Executor itself, included as an
// "executor" attribute on every log line it emits. Useful when a
// process runs more than one Executor.
func WithLabel(label string) Option {
	return func(c *config) {
		c.label = label
	}
}

// WithMemoCacheSize sets the capacity of the cache backing
// InvokeMemoized. Values <= 0 fall back to lru.DefaultCacheMax.
func WithMemoCacheSize(n int) Option {
	return func(c *config) {
		c.memoCacheSize = n
	}
}
