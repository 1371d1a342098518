package kafka

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

// HeaderKind carries the message kind so consumers can route without decoding.
const HeaderKind = "kind"

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Message is what handlers get: the payload plus the headers flattened to a map.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
	Offset  int64
}

type Handler func(ctx context.Context, msg Message) error

type Consumer struct {
	r messageReader
}

// NewConsumer reads topic as groupID. maxBytes bounds one fetch and must fit
// the largest message the producer allows; zero means DefaultMaxMessageBytes.
func NewConsumer(brokers []string, topic, groupID string, maxBytes int) *Consumer {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxMessageBytes
	}
	cfg := kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
		MaxWait:           time.Second,
		MaxBytes:          maxBytes,
	}
	if groupID != "" {
		cfg.GroupTopics = []string{topic}
	} else {
		cfg.Topic = topic
	}
	return newConsumerWithReader(kafka.NewReader(cfg))
}

func newConsumerWithReader(r messageReader) *Consumer {
	return &Consumer{r: r}
}

func (c *Consumer) Close() error {
	return c.r.Close()
}

// Consume runs until ctx is done or the handler fails.
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	for {
		msg, err := c.r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.Wrap(err, "fetch message")
		}
		if err := handler(ctx, toMessage(msg)); err != nil {
			// Важно: commit делаем только при успехе, иначе потеряем сообщение.
			return errors.Wrapf(err, "handle message at offset %d", msg.Offset)
		}
		if err := c.r.CommitMessages(ctx, msg); err != nil {
			return errors.Wrap(err, "commit message")
		}
	}
}

func toMessage(m kafka.Message) Message {
	h := make(map[string]string, len(m.Headers))
	for _, x := range m.Headers {
		h[x.Key] = string(x.Value)
	}
	return Message{Key: m.Key, Value: m.Value, Headers: h, Offset: m.Offset}
}
