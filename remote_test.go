package microlog

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishHandlerDelivers(t *testing.T) {
	t.Parallel()

	var gotTopic string
	var gotPayload []byte
	h := NewPublishHandler(PublisherFunc(func(topic string, payload []byte) error {
		gotTopic = topic
		gotPayload = payload
		return nil
	}), "devices/logs")

	require.NoError(t, h.Emit(infoRecord("uplink ok")))
	assert.Equal(t, "devices/logs", gotTopic)
	assert.Equal(t, "0.000: INFO - uplink ok", string(gotPayload))
}

func TestPublishHandlerSwallowsTransportFailure(t *testing.T) {
	t.Parallel()

	calls := 0
	h := NewPublishHandler(PublisherFunc(func(string, []byte) error {
		calls++
		return errors.New("broker unreachable")
	}), "devices/logs")

	// Best-effort: the transport error never reaches the logger.
	require.NoError(t, h.Emit(infoRecord("lost")))
	assert.Equal(t, 1, calls)
}

func TestPublishHandlerOwnLevel(t *testing.T) {
	t.Parallel()

	calls := 0
	h := NewPublishHandler(PublisherFunc(func(string, []byte) error {
		calls++
		return nil
	}), "devices/logs")
	h.SetLevel(ERROR)

	require.NoError(t, h.Emit(infoRecord("filtered")))
	assert.Zero(t, calls)
}
