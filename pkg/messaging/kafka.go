package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducer struct {
	writer messageWriter
}

func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	return &KafkaProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

// SendMessage JSON-encodes value and writes it under key.
func (kp *KafkaProducer) SendMessage(ctx context.Context, key string, value interface{}) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return kp.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: jsonData,
	})
}

func (kp *KafkaProducer) Close() error {
	return kp.writer.Close()
}

// CartEvent is published whenever a visitor's cart is written.
type CartEvent struct {
	Type       string          `json:"type"`
	VisitorID  string          `json:"visitor_id"`
	ItemCount  int             `json:"item_count"`
	Items      json.RawMessage `json:"items"`
	OccurredAt time.Time       `json:"occurred_at"`
}

const CartUpdated = "cart_updated"
