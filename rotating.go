package microlog

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// RotatingFileHandler is a FileHandler that rolls the log over once it
// reaches maxBytes, keeping up to backupCount archived generations named
// {path}.1 (newest) through {path}.{backupCount} (oldest). The oldest
// generation is deleted on each rollover, so the on-disk footprint settles
// at maxBytes * (backupCount + 1). A maxBytes or backupCount of zero
// disables rotation entirely.
type RotatingFileHandler struct {
	*FileHandler
	maxBytes    int64
	backupCount int
}

func NewRotatingFileHandler(path string, mode FileMode, maxBytes int64, backupCount int) (*RotatingFileHandler, error) {
	if maxBytes < 0 {
		return nil, errors.Errorf("microlog: negative max bytes %d", maxBytes)
	}
	if backupCount < 0 {
		return nil, errors.Errorf("microlog: negative backup count %d", backupCount)
	}
	fh, err := NewFileHandler(path, mode)
	if err != nil {
		return nil, err
	}
	return &RotatingFileHandler{FileHandler: fh, maxBytes: maxBytes, backupCount: backupCount}, nil
}

func (h *RotatingFileHandler) Emit(rec Record) error {
	if rec.Level < h.level {
		return nil
	}
	if err := h.rolloverIfNeeded(); err != nil {
		return err
	}
	return h.FileHandler.Emit(rec)
}

// rolloverIfNeeded syncs the active file and checks its size on disk. The
// size is read fresh each time rather than cached; an absent file counts as
// empty.
func (h *RotatingFileHandler) rolloverIfNeeded() error {
	if h.maxBytes <= 0 || h.backupCount <= 0 {
		return nil
	}
	if err := h.file.Sync(); err != nil {
		return errors.Wrapf(err, "microlog: sync %s", h.path)
	}
	fi, err := os.Stat(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "microlog: stat %s", h.path)
	}
	if fi.Size() < h.maxBytes {
		return nil
	}
	return h.doRollover()
}

func (h *RotatingFileHandler) backupName(i int) string {
	return h.path + "." + strconv.Itoa(i)
}

// doRollover archives the active file and reopens a fresh one in the
// handler's original mode. The oldest backup is deleted first, then each
// surviving generation shifts one slot down before the active file becomes
// {path}.1. A missing source along the way is benign; any other I/O failure
// aborts the rollover.
func (h *RotatingFileHandler) doRollover() error {
	if err := h.file.Close(); err != nil {
		return errors.Wrapf(err, "microlog: close %s", h.path)
	}
	for i := h.backupCount; i >= 1; i-- {
		if i == h.backupCount {
			if err := os.Remove(h.backupName(i)); err != nil && !os.IsNotExist(err) {
				return errors.Wrapf(err, "microlog: remove %s", h.backupName(i))
			}
			continue
		}
		if err := os.Rename(h.backupName(i), h.backupName(i+1)); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "microlog: rename %s", h.backupName(i))
		}
	}
	if err := os.Rename(h.path, h.backupName(1)); err != nil {
		return errors.Wrapf(err, "microlog: rename %s", h.path)
	}
	f, err := openLogFile(h.path, h.mode)
	if err != nil {
		return err
	}
	h.file = f
	h.w = f
	return nil
}
