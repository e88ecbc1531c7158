package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestSendMessageEncodesJSON(t *testing.T) {
	w := &recordingWriter{}
	p := &KafkaProducer{writer: w}

	event := CartEvent{Type: CartUpdated, VisitorID: "v-1", ItemCount: 3, Items: json.RawMessage(`[]`)}
	require.NoError(t, p.SendMessage(context.Background(), "v-1", event))
	require.Len(t, w.messages, 1)

	assert.Equal(t, "v-1", string(w.messages[0].Key))
	var decoded CartEvent
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &decoded))
	assert.Equal(t, CartUpdated, decoded.Type)
	assert.Equal(t, 3, decoded.ItemCount)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestSendMessagePropagatesWriterError(t *testing.T) {
	p := &KafkaProducer{writer: &recordingWriter{err: errors.New("broker down")}}

	err := p.SendMessage(context.Background(), "k", map[string]int{"a": 1})
	assert.EqualError(t, err, "broker down")
}
