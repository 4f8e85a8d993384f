package taskman

import (
	"time"

	"github.com/ygrebnov/errorc"

	"taskman/metrics"
)

// config holds Manager configuration.
type config struct {
	// WorkerCount is the number of worker goroutines to spawn.
	// Negative means "use the platform core count"; zero disables workers
	// entirely and makes Submit run tasks synchronously on the caller.
	// Default: -1 (core count).
	WorkerCount int

	// PollInterval is the sleep between checks in Wait and Cancel.
	// Default: 1ms.
	PollInterval time.Duration

	// Metrics receives pool instrumentation. Default: metrics.NewNoop().
	Metrics metrics.Provider

	// PanicHandler is invoked with an ErrTaskPanicked-wrapped error when a
	// task panics. The worker that ran the task stays alive either way.
	// Default: nil (panic is counted and dropped).
	PanicHandler func(error)
}

// defaultConfig centralizes default values for config.
func defaultConfig() config {
	return config{
		WorkerCount:  -1, // platform core count
		PollInterval: time.Millisecond,
		Metrics:      metrics.NewNoop(),
		PanicHandler: nil,
	}
}

// validateConfig performs lightweight invariants checks.
func validateConfig(cfg *config) error {
	if cfg.PollInterval <= 0 {
		return errorc.With(ErrInvalidConfig, errorc.String("", "poll interval must be positive"))
	}
	if cfg.Metrics == nil {
		return errorc.With(ErrInvalidConfig, errorc.String("", "metrics provider must not be nil"))
	}
	return nil
}

// Option configures a Manager. Use New(opts...) to construct one.
// An Option returns an error on invalid input instead of panicking.
type Option func(*config) error

// WithWorkerCount sets the initial number of workers. Negative values select
// the platform core count; zero selects synchronous direct-call mode.
func WithWorkerCount(n int) Option {
	return func(cfg *config) error { cfg.WorkerCount = n; return nil }
}

// WithPollInterval sets the sleep between checks in Wait and Cancel (must be > 0).
func WithPollInterval(d time.Duration) Option {
	return func(cfg *config) error {
		if d <= 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithPollInterval requires d > 0"))
		}
		cfg.PollInterval = d
		return nil
	}
}

// WithMetrics sets the metrics provider recording pool instrumentation.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMetrics requires a non-nil provider"))
		}
		cfg.Metrics = p
		return nil
	}
}

// WithPanicHandler sets the callback receiving task panics, wrapped with
// ErrTaskPanicked. The handler runs on the worker goroutine that executed
// the task.
func WithPanicHandler(fn func(error)) Option {
	return func(cfg *config) error {
		if fn == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithPanicHandler requires a non-nil handler"))
		}
		cfg.PanicHandler = fn
		return nil
	}
}
