package mailer

import (
	"context"
	"encoding/json"

	"github.com/sbilibin2017/gw-social-network/internal/logger"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=publisher.go -destination=publisher_mock.go -package=mailer

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// Publisher writes messages to the mail outbox topic.
type Publisher struct {
	writer KafkaWriter
}

// NewPublisher creates a Publisher. A nil writer disables publishing.
func NewPublisher(writer KafkaWriter) *Publisher {
	return &Publisher{writer: writer}
}

// Send publishes msg keyed by its recipient.
func (p *Publisher) Send(ctx context.Context, msg Message) error {
	if p.writer == nil {
		logger.FromContext(ctx).Warnw("Kafka writer not configured, skipping email", "kind", msg.Kind)
		return nil
	}

	data, err := json.Marshal(msg)
	if err != nil {
		logger.FromContext(ctx).Errorw("Failed to marshal email", "kind", msg.Kind, "error", err)
		return err
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.To),
		Value: data,
	}); err != nil {
		logger.FromContext(ctx).Errorw("Failed to publish email", "kind", msg.Kind, "error", err)
		return err
	}

	logger.FromContext(ctx).Infow("Email published", "kind", msg.Kind)
	return nil
}

// Close closes the underlying writer.
func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
