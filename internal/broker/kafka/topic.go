package kafka

import (
	"context"
	"net"
	"strconv"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

// EnsureTopic creates topic with max.message.bytes raised to maxMessageBytes.
// An existing topic is left as is.
func EnsureTopic(ctx context.Context, broker, topic string, maxMessageBytes int64) error {
	if maxMessageBytes <= 0 {
		maxMessageBytes = DefaultMaxMessageBytes
	}
	conn, err := kafka.DialContext(ctx, "tcp", broker)
	if err != nil {
		return errors.Wrap(err, "dial kafka")
	}
	defer conn.Close()

	// топики создаёт только контроллер
	ctrl, err := conn.Controller()
	if err != nil {
		return errors.Wrap(err, "kafka controller")
	}
	cc, err := kafka.DialContext(ctx, "tcp", net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)))
	if err != nil {
		return errors.Wrap(err, "dial kafka controller")
	}
	defer cc.Close()

	err = cc.CreateTopics(topicConfig(topic, maxMessageBytes))
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return errors.Wrapf(err, "create topic %s", topic)
	}
	return nil
}

func topicConfig(topic string, maxMessageBytes int64) kafka.TopicConfig {
	return kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
		ConfigEntries: []kafka.ConfigEntry{
			{ConfigName: "max.message.bytes", ConfigValue: strconv.FormatInt(maxMessageBytes, 10)},
		},
	}
}
