package microlog

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// StreamHandler writes formatted records to a generic writable sink,
// standard error by default. A configurable terminator is appended to each
// record, and any newlines embedded in the formatted message are normalized
// to it.
type StreamHandler struct {
	core
	w          io.Writer
	terminator string
}

// NewStreamHandler wraps w; a nil writer falls back to os.Stderr.
func NewStreamHandler(w io.Writer) *StreamHandler {
	if w == nil {
		w = os.Stderr
	}
	return &StreamHandler{w: w, terminator: "\n"}
}

// SetTerminator replaces the line terminator appended after each record.
func (h *StreamHandler) SetTerminator(t string) { h.terminator = t }

func (h *StreamHandler) Emit(rec Record) error {
	if rec.Level < h.level {
		return nil
	}
	return h.write(h.format(rec))
}

func (h *StreamHandler) write(line string) error {
	if _, err := io.WriteString(h.w, normalizeNewlines(line, h.terminator)+h.terminator); err != nil {
		return errors.Wrap(err, "microlog: stream write")
	}
	return nil
}

// Flush drains the sink when it offers a Flush or Sync capability; a plain
// writer is a no-op.
func (h *StreamHandler) Flush() error {
	switch s := h.w.(type) {
	case interface{ Flush() error }:
		return errors.Wrap(s.Flush(), "microlog: stream flush")
	case interface{ Sync() error }:
		return errors.Wrap(s.Sync(), "microlog: stream sync")
	}
	return nil
}

func normalizeNewlines(s, terminator string) string {
	if !strings.ContainsRune(s, '\n') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if terminator == "\n" {
		return s
	}
	return strings.ReplaceAll(s, "\n", terminator)
}
