package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/eiel-forms/internal/config"
	"github.com/couchcryptid/eiel-forms/internal/domain"
)

// Writer publishes one message per municipality after its forms are written.
// It implements pipeline.Notifier.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured topic. Notify writes
// synchronously one event at a time, so every batch is flushed immediately.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchSize:    1,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Writer{writer: w, logger: logger}
}

// Notify publishes the event keyed by municipality code, so every event of a
// municipality lands on the same partition.
func (w *Writer) Notify(ctx context.Context, event domain.FormsGenerated) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish forms event %s: %w", event.Mun, err)
	}
	w.logger.Debug("forms event published", "mun", event.Mun, "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a FormsGenerated event into a Kafka message.
func serializeToMessage(event domain.FormsGenerated) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize forms event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.Mun),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte("forms_generated")},
			{Key: "generated_at", Value: []byte(event.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
