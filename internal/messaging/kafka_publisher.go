package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Ledger event types emitted after a unit of work commits.
const (
	EventOperationCreated = "operation_created"
	EventOperationEdited  = "operation_edited"
	EventOperationSettled = "operation_settled"
	EventOperationDeleted = "operation_deleted"
	EventLegDeleted       = "leg_deleted"
	EventLegUpdated       = "leg_updated"
	EventBankrollCreated  = "bankroll_created"
)

// OperationEvent is the Kafka message published for ledger mutations.
// Consumers (notifications, analytics) must tolerate loss: publication is
// best effort and happens after the database commit.
type OperationEvent struct {
	EventType   string    `json:"event_type"`
	UserID      uuid.UUID `json:"user_id"`
	OperationID uuid.UUID `json:"operation_id,omitempty"`
	LegID       uuid.UUID `json:"leg_id,omitempty"`
	BankrollID  uuid.UUID `json:"bankroll_id,omitempty"`
	Status      string    `json:"status,omitempty"`
	TsUnixMs    int64     `json:"ts_unix_ms"`
}

// KafkaPublisher publishes ledger events to Kafka.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger zerolog.Logger
}

// KafkaPublisherConfig holds Kafka publisher configuration.
type KafkaPublisherConfig struct {
	Brokers []string // e.g., ["localhost:9092"]
	Topic   string   // e.g., "ledger_events"
}

// NewKafkaPublisher creates a new Kafka publisher.
func NewKafkaPublisher(config KafkaPublisherConfig, logger zerolog.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        config.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaPublisher{
		writer: writer,
		logger: logger.With().Str("component", "kafka_publisher").Logger(),
	}
}

// Publish emits one ledger event, keyed by user so one user's events stay
// ordered within a partition.
func (p *KafkaPublisher) Publish(ctx context.Context, event OperationEvent) error {
	event.TsUnixMs = time.Now().UnixMilli()

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.UserID.String()),
		Value: value,
	}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	p.logger.Debug().
		Str("event_type", event.EventType).
		Str("user_id", event.UserID.String()).
		Msg("published ledger event")
	return nil
}

// Close closes the Kafka writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
