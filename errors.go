package microlog

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrReadOnlyMode is returned when a file-backed handler is constructed with
// a mode that cannot be written to.
var ErrReadOnlyMode = errors.New("microlog: file handler requires a writable mode")

// FormatError reports a mismatch between a message template and its
// arguments. It carries fmt's rendered error markers so the caller can see
// exactly which verb failed.
type FormatError struct {
	Template string
	Rendered string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("microlog: bad message template %q: %s", e.Template, e.Rendered)
}
