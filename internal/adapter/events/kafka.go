package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MikeRez0/quotapay/internal/adapter/config"
	"github.com/MikeRez0/quotapay/internal/core/domain"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes settlement events to a Kafka topic, keyed by order ref.
type Publisher struct {
	writer messageWriter
	logger *zap.Logger
}

func NewPublisher(cfg *config.Events, log *zap.Logger) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		logger: log,
	}
}

func (p *Publisher) PublishOrderSettled(ctx context.Context, event domain.OrderSettled) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderRef),
		Value: data,
		Headers: []kafka.Header{
			{Key: "source", Value: []byte(event.Source)},
		},
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.OrderRef, err)
	}

	p.logger.Debug("order settled event published", zap.String("order", string(event.OrderRef)))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
