package microlog

// Publisher is the transport capability a remote handler delegates to, e.g.
// an already-connected MQTT client. Implementations belong to the host
// application; this package never opens connections itself.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// PublisherFunc adapter.
type PublisherFunc func(topic string, payload []byte) error

func (f PublisherFunc) Publish(topic string, payload []byte) error { return f(topic, payload) }

// PublishHandler forwards formatted records to a Publisher, best-effort.
// Transport failures are swallowed: a flaky peer must never take down the
// application that is trying to log, nor stop the other handlers in the
// same fan-out.
type PublishHandler struct {
	core
	pub   Publisher
	topic string
}

func NewPublishHandler(pub Publisher, topic string) *PublishHandler {
	return &PublishHandler{pub: pub, topic: topic}
}

func (h *PublishHandler) Emit(rec Record) error {
	if rec.Level < h.level {
		return nil
	}
	_ = h.pub.Publish(h.topic, []byte(h.format(rec)))
	return nil
}

func (h *PublishHandler) Flush() error { return nil }
