package netgen

import (
	"time"

	"go.uber.org/zap"
)

// Progress is reported periodically during a run.
type Progress struct {
	Species   int
	Reactions int
	Iteration int
	Elapsed   time.Duration
	HeapBytes uint64
}

// Option configures a Generator via functional arguments.
type Option func(*Options)

// Options holds the limits, collaborators and callbacks of a Generator.
type Options struct {
	Config Config

	// Logger receives structured run logs. Defaults to zap.NewNop().
	Logger *zap.Logger

	// Progress, if set, is called every ProgressEvery iterations and once at
	// the end of a successful run.
	Progress      func(Progress)
	ProgressEvery int

	// Warnings, if set, receives rate-limited warnings.
	Warnings func(Warning)

	// Metrics, if set, is updated during the run.
	Metrics *Metrics
}

// DefaultOptions returns the default limits, a no-op logger and no callbacks.
func DefaultOptions() Options {
	return Options{
		Config:        DefaultConfig(),
		Logger:        zap.NewNop(),
		ProgressEvery: 10,
	}
}

// WithConfig replaces all limits at once.
func WithConfig(c Config) Option {
	return func(o *Options) { o.Config = c }
}

// WithMaxSpecies sets Config.MaxSpecies.
func WithMaxSpecies(n int) Option {
	return func(o *Options) { o.Config.MaxSpecies = n }
}

// WithMaxReactions sets Config.MaxReactions.
func WithMaxReactions(n int) Option {
	return func(o *Options) { o.Config.MaxReactions = n }
}

// WithMaxIterations sets Config.MaxIterations.
func WithMaxIterations(n int) Option {
	return func(o *Options) { o.Config.MaxIterations = n }
}

// WithMaxAgg sets Config.MaxAgg.
func WithMaxAgg(n int) Option {
	return func(o *Options) { o.Config.MaxAgg = n }
}

// WithMaxStoich sets Config.MaxStoich.
func WithMaxStoich(n int) Option {
	return func(o *Options) { o.Config.MaxStoich = n }
}

// WithCheckInterval sets Config.CheckInterval.
func WithCheckInterval(n int) Option {
	return func(o *Options) { o.Config.CheckInterval = n }
}

// WithMemoryLimit sets Config.MemoryLimit in bytes; 0 disables the check.
func WithMemoryLimit(bytes uint64) Option {
	return func(o *Options) { o.Config.MemoryLimit = bytes }
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithProgress registers a progress callback invoked every `every`
// iterations (values below 1 keep the default of 10).
func WithProgress(fn func(Progress), every int) Option {
	return func(o *Options) {
		o.Progress = fn
		if every > 0 {
			o.ProgressEvery = every
		}
	}
}

// WithWarnings registers the warning callback.
func WithWarnings(fn func(Warning)) Option {
	return func(o *Options) { o.Warnings = fn }
}

// WithMetrics attaches a metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) { o.Metrics = m }
}
