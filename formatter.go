package microlog

import (
	"strconv"
	"strings"
)

// Formatter renders a record into displayable text (Strategy). Format must
// be pure: no side effects, deterministic for a fixed record, and it never
// fails for a well-formed record.
type Formatter interface {
	Format(rec Record) string
}

// FormatterFunc adapter.
type FormatterFunc func(Record) string

func (f FormatterFunc) Format(rec Record) string { return f(rec) }

// DefaultFormatter produces "<created seconds, 3 decimals>: <LEVEL> - <msg>",
// the compact layout suited to a serial console.
type DefaultFormatter struct{}

func (DefaultFormatter) Format(rec Record) string {
	var b strings.Builder
	b.Grow(len(rec.Message) + 32)
	b.WriteString(strconv.FormatFloat(rec.Created.Seconds(), 'f', 3, 64))
	b.WriteString(": ")
	b.WriteString(rec.LevelName)
	b.WriteString(" - ")
	b.WriteString(rec.Message)
	return b.String()
}

// asctimeLayout renders {asctime} as "2006/01/02 15:04:05".
const asctimeLayout = "2006/01/02 15:04:05"

// TemplateFormatter renders records through a template with named fields:
// {asctime}, {levelname}, {message}, {name} and {created}. Defaults supplies
// extra substitutions merged under the per-record fields; placeholders known
// to neither are left verbatim.
type TemplateFormatter struct {
	Template string
	Defaults map[string]string
}

func NewTemplateFormatter(template string, defaults map[string]string) *TemplateFormatter {
	return &TemplateFormatter{Template: template, Defaults: defaults}
}

func (f *TemplateFormatter) Format(rec Record) string {
	// Record fields listed first so they win over same-named defaults.
	pairs := []string{
		"{asctime}", rec.When.Format(asctimeLayout),
		"{levelname}", rec.LevelName,
		"{message}", rec.Message,
		"{name}", rec.Name,
		"{created}", strconv.FormatFloat(rec.Created.Seconds(), 'f', 3, 64),
	}
	for k, v := range f.Defaults {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(f.Template)
}
