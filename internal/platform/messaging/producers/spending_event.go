// Package producers publishes spending-created events so downstream
// consumers (budget alerts, reporting) can react without coupling to the API.
package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/gestor-financeiro/internal/config"
	"github.com/gestor-financeiro/internal/domain/spending"
	"github.com/segmentio/kafka-go"
)

// SpendingEvent is the message body published for each persisted record
type SpendingEvent struct {
	GastoID           int64   `json:"gasto_id"`
	Valor             float64 `json:"valor"`
	Item              string  `json:"item"`
	Categoria         string  `json:"categoria"`
	MeioPagamento     *string `json:"meio_pagamento,omitempty"`
	DescricaoOriginal *string `json:"descricao_original,omitempty"`
	DataCriacao       string  `json:"data_criacao"`
}

// NewSpendingEvent maps a persisted record into its event form
func NewSpendingEvent(rec *spending.Record) SpendingEvent {
	event := SpendingEvent{
		GastoID:           rec.ID,
		Valor:             rec.Valor,
		Item:              rec.Item,
		Categoria:         string(rec.Categoria),
		DescricaoOriginal: rec.DescricaoOriginal,
		DataCriacao:       rec.DataCriacao.Format("2006-01-02T15:04:05Z07:00"),
	}
	if rec.MeioPagamento != nil {
		mp := string(*rec.MeioPagamento)
		event.MeioPagamento = &mp
	}
	return event
}

// SpendingEventProducer publishes spending-created events to Kafka
type SpendingEventProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
}

// NewSpendingEventProducer creates the producer and ensures the topic exists
func NewSpendingEventProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*SpendingEventProducer, error) {
	if cfg.SpendingTopic == "" {
		return nil, fmt.Errorf("kafka spending topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for spending event producer: %w", err)
	}
	defer conn.Close()

	if err := createKafkaTopicIfNotExists(conn, cfg.SpendingTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger); err != nil {
		return nil, fmt.Errorf("failed to ensure spending topic %s exists: %w", cfg.SpendingTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.SpendingTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true, // Events are fire-and-forget; never block a request on Kafka
		WriteTimeout: cfg.WriteTimeout,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write spending events asynchronously", "topic", cfg.SpendingTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Wrote spending events asynchronously", "topic", cfg.SpendingTopic, "count", len(messages))
			}
		},
	}

	return &SpendingEventProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.SpendingTopic,
	}, nil
}

// Publish sends one event keyed by the given key
func (p *SpendingEventProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal spending event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish spending event",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish spending event to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published spending event", "topic", p.topic, "key", key)
	return nil
}

func (p *SpendingEventProducer) Close() error {
	p.logger.Info("Closing spending event producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
