// Package microlog is a minimal logging facility for resource-constrained
// hosts: named loggers with severity thresholds fan records out to handlers
// (console stream, file, rotating file, remote publish), each with its own
// formatter and secondary level filter. Loggers are flat and independently
// configured; there is no namespace hierarchy, propagation, or background
// delivery. Nothing in this package locks: a host that shares a Logger or
// Handler across goroutines must serialize access itself.
package microlog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/trickstertwo/xclock"
	"go.uber.org/multierr"
)

// Logger is a named dispatch point: it filters by its threshold, builds a
// record, and fans it out to its handlers in attachment order. Obtain shared
// instances through a Registry, or construct standalone ones with NewLogger.
type Logger struct {
	name     string
	level    Level
	handlers []Handler
	warned   bool

	// Injected by the owning Registry; zero values fall back to the
	// package defaults (no fallback handler, stderr advisories, xclock).
	defaultHandler Handler
	warnw          io.Writer
	clock          xclock.Clock
	epoch          time.Time
}

// NewLogger constructs a standalone logger with the default WARNING
// threshold and no handlers. Most hosts want Registry.GetLogger instead so
// repeated lookups share one instance.
func NewLogger(name string) *Logger {
	return &Logger{name: name, level: WARNING, epoch: xclock.Now()}
}

func (l *Logger) Name() string { return l.name }

// SetLevel sets the logging cutoff: records below it are dropped before any
// handler is consulted.
func (l *Logger) SetLevel(level Level) { l.level = level }

// EffectiveLevel returns the current cutoff.
func (l *Logger) EffectiveLevel() Level { return l.level }

// AddHandler appends a handler to the fan-out list. Attachment order is
// delivery order, and the same handler may be attached more than once (or to
// several loggers at once).
func (l *Logger) AddHandler(h Handler) { l.handlers = append(l.handlers, h) }

// RemoveHandler detaches the first occurrence of h, if any.
func (l *Logger) RemoveHandler(h Handler) {
	for i, cur := range l.handlers {
		if cur == h {
			l.handlers = append(l.handlers[:i], l.handlers[i+1:]...)
			return
		}
	}
}

func (l *Logger) HasHandlers() bool { return len(l.handlers) > 0 }

func (l *Logger) now() time.Time {
	if l.clock != nil {
		return l.clock.Now()
	}
	return xclock.Now()
}

func (l *Logger) warnStream() io.Writer {
	if l.warnw != nil {
		return l.warnw
	}
	return os.Stderr
}

// Log builds a record at the given level and dispatches it. A template/
// argument mismatch surfaces as *FormatError; handler sink failures come
// back combined, with every handler still having been given its chance.
func (l *Logger) Log(level Level, template string, args ...any) error {
	when := l.now()
	rec, err := newRecord(l.name, level, when.Sub(l.epoch), when, template, args)
	if err != nil {
		return err
	}
	return l.handle(rec)
}

// handle dispatches one record. With no handlers attached and no default
// handler configured it writes a one-time advisory per logger and drops the
// record; otherwise handlers past both the logger threshold and their own
// level emit in attachment order. When none was consulted, the default
// handler serves as fallback so records are not lost solely for lack of
// attached handlers.
func (l *Logger) handle(rec Record) error {
	if l.defaultHandler == nil && !l.HasHandlers() {
		if !l.warned {
			fmt.Fprintf(l.warnStream(), "microlog: logger %q has no handlers and no default handler\n", l.name)
			l.warned = true
		}
		return nil
	}
	if rec.Level < l.level {
		return nil
	}
	var errs error
	emitted := false
	for _, h := range l.handlers {
		if rec.Level >= h.Level() {
			emitted = true
			// A failing handler must not starve the rest of the list.
			errs = multierr.Append(errs, h.Emit(rec))
		}
	}
	if !emitted && l.defaultHandler != nil && rec.Level >= l.defaultHandler.Level() {
		errs = multierr.Append(errs, l.defaultHandler.Emit(rec))
	}
	return errs
}

func (l *Logger) Debug(template string, args ...any) error {
	return l.Log(DEBUG, template, args...)
}

func (l *Logger) Info(template string, args ...any) error {
	return l.Log(INFO, template, args...)
}

func (l *Logger) Warning(template string, args ...any) error {
	return l.Log(WARNING, template, args...)
}

func (l *Logger) Error(template string, args ...any) error {
	return l.Log(ERROR, template, args...)
}

func (l *Logger) Critical(template string, args ...any) error {
	return l.Log(CRITICAL, template, args...)
}

// Exception logs err at ERROR level as "<type>: <message>", followed by a
// stack trace indented two spaces per line when err carries one (pkg/errors
// WithStack/Wrap). Errors without a trace log type and message only.
func (l *Logger) Exception(err error) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf("%T: %v", err, err)
	if tb := stackLines(err); tb != "" {
		msg += "\n" + tb
	}
	// The rendered message is passed as a bare template so '%' in err text
	// stays literal.
	return l.Log(ERROR, msg)
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

type causer interface {
	Cause() error
}

// stackLines extracts the innermost pkg/errors stack trace from err's cause
// chain and renders it with a two-space indent per line.
func stackLines(err error) string {
	var st errors.StackTrace
	for e := err; e != nil; {
		if t, ok := e.(stackTracer); ok {
			st = t.StackTrace()
		}
		c, ok := e.(causer)
		if !ok {
			break
		}
		e = c.Cause()
	}
	if len(st) == 0 {
		return ""
	}
	var b strings.Builder
	for _, frame := range st {
		text := strings.TrimRight(fmt.Sprintf("%+v", frame), "\n")
		for _, line := range strings.Split(text, "\n") {
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString("  ")
			b.WriteString(strings.TrimPrefix(line, "\t"))
		}
	}
	return b.String()
}
