package kafka

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// DefaultMaxMessageBytes fits an occurrence with four full-size photos.
// Writer и broker по умолчанию режут всё больше 1 МБ.
const DefaultMaxMessageBytes = 20 << 20

// ErrMessageTooLarge is returned before anything reaches the broker.
var ErrMessageTooLarge = errors.New("kafka message too large")

type Producer struct {
	w        messageWriter
	maxBytes int64
}

// NewProducer builds a producer whose batches hold up to maxMessageBytes.
// Zero means DefaultMaxMessageBytes.
func NewProducer(brokers []string, maxMessageBytes int64) *Producer {
	if maxMessageBytes <= 0 {
		maxMessageBytes = DefaultMaxMessageBytes
	}
	return newProducerWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchBytes:             maxMessageBytes,
	}, maxMessageBytes)
}

func newProducerWithWriter(w messageWriter, maxBytes int64) *Producer {
	return &Producer{w: w, maxBytes: maxBytes}
}

// Publish writes one message. Headers are optional key/value pairs.
func (p *Producer) Publish(ctx context.Context, topic string, key, value []byte, headers ...kafka.Header) error {
	if size := messageSize(key, value, headers); p.maxBytes > 0 && size > p.maxBytes {
		return errors.Wrapf(ErrMessageTooLarge, "%d bytes, limit %d", size, p.maxBytes)
	}
	if err := p.w.WriteMessages(ctx, kafka.Message{
		Topic:   topic,
		Key:     key,
		Value:   value,
		Headers: headers,
	}); err != nil {
		return errors.Wrap(err, "kafka publish")
	}
	return nil
}

// messageSize approximates the record size the writer checks against BatchBytes.
func messageSize(key, value []byte, headers []kafka.Header) int64 {
	n := int64(len(key) + len(value))
	for _, h := range headers {
		n += int64(len(h.Key) + len(h.Value))
	}
	return n
}

// PublishJSON marshals v and publishes it, tagging the message with a kind header.
func (p *Producer) PublishJSON(ctx context.Context, topic, key, kind string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshal message")
	}
	return p.Publish(ctx, topic, []byte(key), b, kafka.Header{Key: HeaderKind, Value: []byte(kind)})
}

func (p *Producer) Close() error {
	if c, ok := p.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
