package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/monocle-wallet-service/internal/config"
	"github.com/segmentio/kafka-go"
)

// CreditEventProducer publishes wallet-credited events after a successful
// credit. Publishing is best effort: a delivery failure is logged by the
// caller and never changes the credit outcome.
type CreditEventProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
}

// NewCreditEventProducer creates the producer and ensures the topic exists
func NewCreditEventProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*CreditEventProducer, error) {
	if cfg.CreditEventsTopic == "" {
		return nil, fmt.Errorf("kafka credit events topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for credit event producer: %w", err)
	}
	defer conn.Close()

	err = createKafkaTopicIfNotExists(conn, cfg.CreditEventsTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure credit events topic %s exists: %w", cfg.CreditEventsTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.CreditEventsTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true, // Credit outcomes never wait on event delivery
		WriteTimeout: cfg.MaxWait,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write messages asynchronously", "topic", cfg.CreditEventsTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Successfully wrote messages asynchronously", "topic", cfg.CreditEventsTopic, "count", len(messages))
			}
		},
	}

	return &CreditEventProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.CreditEventsTopic,
	}, nil
}

func (p *CreditEventProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal credit event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish credit event",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish credit event to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published credit event",
		"topic", p.topic,
		"key", key,
	)
	return nil
}

func (p *CreditEventProducer) Close() error {
	p.logger.Info("Closing credit event producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
