package microlog

import (
	"os"

	"github.com/pkg/errors"
)

// FileMode selects how a file-backed handler opens its log file.
type FileMode string

const (
	// ModeAppend opens the file for appending, creating it if absent.
	ModeAppend FileMode = "a"
	// ModeTruncate opens the file truncated, creating it if absent.
	ModeTruncate FileMode = "w"
)

func openLogFile(path string, mode FileMode) (*os.File, error) {
	flag := os.O_WRONLY | os.O_CREATE
	switch mode {
	case ModeAppend:
		flag |= os.O_APPEND
	case ModeTruncate:
		flag |= os.O_TRUNC
	default:
		return nil, errors.Wrapf(ErrReadOnlyMode, "mode %q", string(mode))
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "microlog: open log file %s", path)
	}
	return f, nil
}

// FileHandler appends formatted records to a log file, typically on
// removable storage. Every emit is followed by a sync: crash diagnostics are
// rare and must survive sudden power loss, so durability wins over
// throughput. The terminator defaults to "\r\n".
type FileHandler struct {
	StreamHandler
	file *os.File
	path string
	mode FileMode
}

// NewFileHandler opens path in the given mode. Read-only or unknown modes
// are rejected.
func NewFileHandler(path string, mode FileMode) (*FileHandler, error) {
	f, err := openLogFile(path, mode)
	if err != nil {
		return nil, err
	}
	h := &FileHandler{file: f, path: path, mode: mode}
	h.w = f
	h.terminator = "\r\n"
	return h, nil
}

func (h *FileHandler) Emit(rec Record) error {
	if rec.Level < h.level {
		return nil
	}
	if err := h.write(h.format(rec)); err != nil {
		return err
	}
	return h.Flush()
}

func (h *FileHandler) Flush() error {
	return errors.Wrapf(h.file.Sync(), "microlog: sync %s", h.path)
}

// Close flushes and closes the underlying file. The handler must not be
// used afterwards.
func (h *FileHandler) Close() error {
	if err := h.file.Sync(); err != nil {
		return errors.Wrapf(err, "microlog: sync %s", h.path)
	}
	return errors.Wrapf(h.file.Close(), "microlog: close %s", h.path)
}
