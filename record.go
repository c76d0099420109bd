package microlog

import (
	"fmt"
	"strings"
	"time"
)

// Record holds the contents of a single log call. It is built once per call,
// handed to handlers in order, and never retained afterwards. Treat it as
// immutable.
type Record struct {
	Name      string
	Level     Level
	LevelName string
	Message   string

	// Created is the elapsed time since the owning logger's epoch, read from
	// its clock. Records therefore order monotonically even if the wall
	// clock is adjusted mid-run. When is the wall reading for display.
	Created time.Duration
	When    time.Time

	// Args are the raw arguments the message was interpolated from.
	Args []any
}

// newRecord interpolates template with args (fmt verbs, positional). With no
// args the template passes through verbatim, so literal '%' characters are
// safe. A verb/argument mismatch is a programmer error and surfaces as a
// *FormatError rather than being written out.
func newRecord(name string, level Level, created time.Duration, when time.Time, template string, args []any) (Record, error) {
	msg := template
	if len(args) > 0 {
		msg = fmt.Sprintf(template, args...)
		// fmt flags mismatches inline with "%!" markers instead of failing.
		if strings.Contains(msg, "%!") {
			return Record{}, &FormatError{Template: template, Rendered: msg}
		}
	}
	return Record{
		Name:      name,
		Level:     level,
		LevelName: LevelName(level),
		Message:   msg,
		Created:   created,
		When:      when,
		Args:      args,
	}, nil
}
