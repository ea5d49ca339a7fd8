package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/microplastics-etl/internal/config"
	"github.com/couchcryptid/microplastics-etl/internal/document"
	"github.com/couchcryptid/microplastics-etl/internal/pipeline"
)

const (
	publishAttempts = 3
	initialBackoff  = 200 * time.Millisecond
	maxBackoff      = 2 * time.Second
)

// messageWriter is the subset of kafkago.Writer the sink uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes every output document as one message on the sink topic.
// It implements pipeline.Loader.
type Writer struct {
	writer  messageWriter
	logger  *slog.Logger
	backoff time.Duration
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger, backoff: initialBackoff}
}

// Name identifies the sink in logs and metrics.
func (w *Writer) Name() string { return "kafka" }

// Load serializes the run's documents and publishes them in a single
// WriteMessages call, retrying transient broker failures with exponential
// backoff. The document name is the message key so a compacted topic keeps
// the latest run of each document.
func (w *Writer) Load(ctx context.Context, docs []document.Document) error {
	if len(docs) == 0 {
		return nil
	}
	run, _ := pipeline.RunInfoFromContext(ctx)
	msgs := make([]kafkago.Message, len(docs))
	for i := range docs {
		msg, err := serializeToMessage(docs[i], run)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.publish(ctx, msgs); err != nil {
		return fmt.Errorf("publish documents: %w", err)
	}
	w.logger.Debug("documents published", "count", len(msgs), "run_id", run.ID)
	return nil
}

func (w *Writer) publish(ctx context.Context, msgs []kafkago.Message) error {
	backoff := w.backoff
	var err error
	for attempt := 1; attempt <= publishAttempts; attempt++ {
		if err = w.writer.WriteMessages(ctx, msgs...); err == nil {
			return nil
		}
		if attempt == publishAttempts {
			break
		}
		w.logger.Warn("publish failed, retrying", "attempt", attempt, "backoff", backoff, "error", err)
		if !retry.SleepWithContext(ctx, backoff) {
			return ctx.Err()
		}
		backoff = retry.NextBackoff(backoff, maxBackoff)
	}
	return err
}

// Close flushes and closes the underlying producer.
func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage encodes a document into a Kafka message.
func serializeToMessage(d document.Document, run pipeline.RunInfo) (kafkago.Message, error) {
	data, err := document.Encode(d)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize document: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(d.Name),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "document", Value: []byte(d.Name)},
			{Key: "run_id", Value: []byte(run.ID)},
			{Key: "generated_at", Value: []byte(run.StartedAt.UTC().Format(time.RFC3339))},
		},
	}, nil
}
