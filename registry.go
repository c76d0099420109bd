package microlog

import (
	"io"
	"sync"
	"time"

	"github.com/trickstertwo/xclock"
)

// Registry is a name -> Logger cache the host application constructs once
// and injects wherever loggers are needed. Each name resolves to a single
// shared instance for the registry's lifetime; entries are never removed.
// The empty string is an ordinary key like any other.
//
// Lookups are safe for concurrent use. The loggers themselves are not; see
// the package comment.
type Registry struct {
	mu      sync.Mutex
	loggers map[string]*Logger

	defaultHandler Handler
	warnw          io.Writer
	clock          xclock.Clock
	epoch          time.Time
	loggerLevel    Level
}

// Option configures a Registry at construction.
type Option func(*Registry)

// WithClock sets the clock used to timestamp records. Defaults to the
// package-level xclock default.
func WithClock(c xclock.Clock) Option {
	return func(r *Registry) { r.clock = c }
}

// WithDefaultHandler replaces the process-wide fallback handler that
// receives records no attached handler emitted. Pass nil to disable the
// fallback entirely; loggers without handlers then drop records after a
// one-time advisory.
func WithDefaultHandler(h Handler) Option {
	return func(r *Registry) { r.defaultHandler = h }
}

// WithWarnWriter redirects the no-handler advisory, normally written to
// standard error.
func WithWarnWriter(w io.Writer) Option {
	return func(r *Registry) { r.warnw = w }
}

// WithLoggerLevel sets the threshold new loggers start with; WARNING when
// unset.
func WithLoggerLevel(level Level) Option {
	return func(r *Registry) { r.loggerLevel = level }
}

// NewRegistry builds a registry. By default records fall back to a stream
// handler on standard error, and new loggers start at WARNING. The epoch
// for record timestamps is captured here, on the configured clock.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		loggers:        make(map[string]*Logger),
		defaultHandler: NewStreamHandler(nil),
		loggerLevel:    WARNING,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.clock != nil {
		r.epoch = r.clock.Now()
	} else {
		r.epoch = xclock.Now()
	}
	return r
}

// GetLogger returns the logger registered under name, creating it on first
// lookup. Two calls with the same name always yield the identical instance.
func (r *Registry) GetLogger(name string) *Logger {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.loggers[name]; ok {
		return l
	}
	l := &Logger{
		name:           name,
		level:          r.loggerLevel,
		defaultHandler: r.defaultHandler,
		warnw:          r.warnw,
		clock:          r.clock,
		epoch:          r.epoch,
	}
	r.loggers[name] = l
	return l
}
