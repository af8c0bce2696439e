package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/aurora-forecast-etl/internal/config"
	"github.com/couchcryptid/aurora-forecast-etl/internal/domain"
)

// Publisher announces freshly rendered images on a Kafka topic.
// It implements pipeline.Notifier.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured image topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
		WriteTimeout:           10 * time.Second,
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish writes one ImageRendered event keyed by the image filename.
func (p *Publisher) Publish(ctx context.Context, event domain.ImageRendered) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.Filename, err)
	}
	p.logger.Debug("image notification published", "topic", p.writer.Topic, "filename", event.Filename)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals an ImageRendered event into a Kafka message.
func serializeToMessage(event domain.ImageRendered) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize image event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.Filename),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "run_id", Value: []byte(event.RunID)},
			{Key: "valid_at", Value: []byte(event.ValidAt.Format(time.RFC3339))},
		},
	}, nil
}
