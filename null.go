package microlog

// NullHandler discards everything. Attaching one silences a logger without
// conditional checks at every call site.
type NullHandler struct {
	core
}

func NewNullHandler() *NullHandler { return &NullHandler{} }

func (h *NullHandler) Emit(Record) error { return nil }

func (h *NullHandler) Flush() error { return nil }
