package microlog

// MemoryHandler retains every admitted record and its formatted line.
// Intended for tests and for short-lived capture (e.g. collecting boot
// diagnostics before a real sink is available).
type MemoryHandler struct {
	core
	records []Record
	lines   []string
}

func NewMemoryHandler() *MemoryHandler { return &MemoryHandler{} }

func (h *MemoryHandler) Emit(rec Record) error {
	if rec.Level < h.level {
		return nil
	}
	h.records = append(h.records, rec)
	h.lines = append(h.lines, h.format(rec))
	return nil
}

func (h *MemoryHandler) Flush() error { return nil }

// Records returns the retained records in emit order.
func (h *MemoryHandler) Records() []Record { return h.records }

// Lines returns the formatted output in emit order.
func (h *MemoryHandler) Lines() []string { return h.lines }

// Reset discards everything retained so far.
func (h *MemoryHandler) Reset() {
	h.records = nil
	h.lines = nil
}
