package microlog

// Handler is a delivery target for log records (Strategy). Emit is a silent
// no-op for records below the handler's own level; otherwise the record is
// rendered through the handler's formatter and written to its sink. Sink I/O
// failures are returned; formatting never fails.
//
// A handler may be attached to any number of loggers at once. Handlers are
// not safe for concurrent use; callers sharing one across goroutines must
// serialize access.
type Handler interface {
	Emit(rec Record) error
	Flush() error
	SetLevel(level Level)
	Level() Level
	SetFormatter(f Formatter)
}

// core carries the state every handler variant shares: the own-level
// secondary filter and the formatter. Concrete handlers embed it.
type core struct {
	level     Level
	formatter Formatter
}

func (c *core) SetLevel(level Level) { c.level = level }

func (c *core) Level() Level { return c.level }

func (c *core) SetFormatter(f Formatter) { c.formatter = f }

func (c *core) format(rec Record) string {
	if c.formatter == nil {
		return DefaultFormatter{}.Format(rec)
	}
	return c.formatter.Format(rec)
}
