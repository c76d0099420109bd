package microlog

import (
	"bytes"
	"strings"
	"testing"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trickstertwo/xclock"
	"github.com/trickstertwo/xclock/adapter/frozen"
)

// seqHandler appends its id to a shared slice on every admitted record, to
// observe fan-out order.
type seqHandler struct {
	core
	id  string
	out *[]string
}

func (h *seqHandler) Emit(rec Record) error {
	if rec.Level < h.level {
		return nil
	}
	*h.out = append(*h.out, h.id)
	return nil
}

func (h *seqHandler) Flush() error { return nil }

// failingHandler always fails its sink write.
type failingHandler struct {
	core
}

func (h *failingHandler) Emit(Record) error { return pkgerrors.New("sink failed") }

func (h *failingHandler) Flush() error { return nil }

func TestLoggerThresholdAndHandlerLevel(t *testing.T) {
	// Freeze time for a deterministic formatted line.
	old := xclock.Default()
	defer xclock.SetDefault(old)
	xclock.SetDefault(frozen.New(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))

	var buf bytes.Buffer
	logger := NewLogger("app")
	logger.SetLevel(INFO)
	logger.AddHandler(NewStreamHandler(&buf))

	require.NoError(t, logger.Debug("x"))
	assert.Zero(t, buf.Len(), "below-threshold record must not reach any handler")

	require.NoError(t, logger.Info("y"))
	assert.Equal(t, "0.000: INFO - y\n", buf.String())
}

func TestHandlerLevelFiltersIndependently(t *testing.T) {
	t.Parallel()

	logger := NewLogger("app")
	logger.SetLevel(DEBUG)

	mem := NewMemoryHandler()
	mem.SetLevel(ERROR)
	logger.AddHandler(mem)

	require.NoError(t, logger.Warning("admitted by logger, not by handler"))
	assert.Empty(t, mem.Records())

	require.NoError(t, logger.Error("admitted by both"))
	require.Len(t, mem.Records(), 1)
	assert.Equal(t, ERROR, mem.Records()[0].Level)
	require.Len(t, mem.Lines(), 1)
	assert.Contains(t, mem.Lines()[0], "ERROR - admitted by both")

	mem.Reset()
	assert.Empty(t, mem.Records())
}

func TestFanOutOrderFollowsAttachment(t *testing.T) {
	t.Parallel()

	logger := NewLogger("app")
	logger.SetLevel(DEBUG)

	var order []string
	a := &seqHandler{id: "a", out: &order}
	b := &seqHandler{id: "b", out: &order}
	logger.AddHandler(a)
	logger.AddHandler(b)
	logger.AddHandler(a) // duplicates are permitted

	require.NoError(t, logger.Info("one"))
	assert.Equal(t, []string{"a", "b", "a"}, order)

	// Removing detaches the first occurrence only.
	order = nil
	logger.RemoveHandler(a)
	require.NoError(t, logger.Info("two"))
	assert.Equal(t, []string{"b", "a"}, order)
}

func TestNoHandlerAdvisoryOnce(t *testing.T) {
	t.Parallel()

	var warn bytes.Buffer
	logger := NewLogger("lonely")
	logger.warnw = &warn

	require.NoError(t, logger.Error("first"))
	require.NoError(t, logger.Error("second"))
	require.NoError(t, logger.Error("third"))

	assert.Equal(t, 1, strings.Count(warn.String(), "\n"), "advisory must appear exactly once")
	assert.Contains(t, warn.String(), `"lonely"`)
}

func TestDefaultHandlerFallback(t *testing.T) {
	t.Parallel()

	fallback := NewMemoryHandler()
	logger := NewLogger("app")
	logger.SetLevel(DEBUG)
	logger.defaultHandler = fallback

	// No handlers attached: records flow to the default handler instead of
	// the advisory path.
	require.NoError(t, logger.Info("unattached"))
	require.Len(t, fallback.Records(), 1)

	// An attached handler that filters the record out also triggers the
	// fallback; one that emits suppresses it.
	attached := NewMemoryHandler()
	attached.SetLevel(CRITICAL)
	logger.AddHandler(attached)

	require.NoError(t, logger.Error("filtered by attached"))
	assert.Empty(t, attached.Records())
	require.Len(t, fallback.Records(), 2)

	require.NoError(t, logger.Critical("emitted by attached"))
	require.Len(t, attached.Records(), 1)
	assert.Len(t, fallback.Records(), 2, "fallback must not double-deliver")
}

func TestDefaultHandlerRespectsOwnLevel(t *testing.T) {
	t.Parallel()

	fallback := NewMemoryHandler()
	fallback.SetLevel(ERROR)
	logger := NewLogger("app")
	logger.SetLevel(DEBUG)
	logger.defaultHandler = fallback

	require.NoError(t, logger.Info("below default handler level"))
	assert.Empty(t, fallback.Records())
}

func TestFailingHandlerDoesNotStopFanOut(t *testing.T) {
	t.Parallel()

	logger := NewLogger("app")
	logger.SetLevel(DEBUG)

	mem := NewMemoryHandler()
	logger.AddHandler(&failingHandler{})
	logger.AddHandler(mem)

	err := logger.Info("must still reach the second handler")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink failed")
	assert.Len(t, mem.Records(), 1)
}

func TestLogFormatMismatchPropagates(t *testing.T) {
	t.Parallel()

	logger := NewLogger("app")
	logger.SetLevel(DEBUG)
	logger.AddHandler(NewMemoryHandler())

	var ferr *FormatError
	require.ErrorAs(t, logger.Info("count %d", "ten"), &ferr)
}

func TestExceptionWithStack(t *testing.T) {
	t.Parallel()

	logger := NewLogger("app")
	logger.SetLevel(DEBUG)
	mem := NewMemoryHandler()
	mem.SetFormatter(FormatterFunc(func(rec Record) string { return rec.Message }))
	logger.AddHandler(mem)

	require.NoError(t, logger.Exception(pkgerrors.New("flux capacitor offline")))

	require.Len(t, mem.Records(), 1)
	rec := mem.Records()[0]
	assert.Equal(t, ERROR, rec.Level)
	assert.Contains(t, rec.Message, "flux capacitor offline")

	lines := strings.Split(rec.Message, "\n")
	require.Greater(t, len(lines), 1, "expected a traceback")
	for _, line := range lines[1:] {
		assert.True(t, strings.HasPrefix(line, "  "), "traceback line %q not indented", line)
	}
}

func TestExceptionWithoutStack(t *testing.T) {
	t.Parallel()

	logger := NewLogger("app")
	logger.SetLevel(DEBUG)
	mem := NewMemoryHandler()
	mem.SetFormatter(FormatterFunc(func(rec Record) string { return rec.Message }))
	logger.AddHandler(mem)

	require.NoError(t, logger.Exception(assert.AnError))

	require.Len(t, mem.Records(), 1)
	msg := mem.Records()[0].Message
	assert.Contains(t, msg, assert.AnError.Error())
	assert.NotContains(t, msg, "\n")
}

func TestExceptionNilIsNoOp(t *testing.T) {
	t.Parallel()

	logger := NewLogger("app")
	mem := NewMemoryHandler()
	logger.AddHandler(mem)

	require.NoError(t, logger.Exception(nil))
	assert.Empty(t, mem.Records())
}
