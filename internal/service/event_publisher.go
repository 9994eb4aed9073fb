package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Account lifecycle event types
const (
	EventAccountRegistered  = "account.registered"
	EventAccountActivated   = "account.activated"
	EventAccountDeactivated = "account.deactivated"
	EventAccountDeleted     = "account.deleted"
)

const publishTimeout = 5 * time.Second

type AccountEvent struct {
	Type       string    `json:"type"`
	AccountID  uuid.UUID `json:"account_id"`
	Role       string    `json:"role"`
	Email      string    `json:"email,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewAccountEvent(eventType string, accountID uuid.UUID, role, email string) AccountEvent {
	return AccountEvent{
		Type:       eventType,
		AccountID:  accountID,
		Role:       role,
		Email:      email,
		OccurredAt: time.Now().UTC(),
	}
}

// EventPublisher announces committed account changes. Delivery is best
// effort: failures are logged and never reach the caller.
type EventPublisher interface {
	Publish(ctx context.Context, event AccountEvent)
}

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type kafkaEventPublisher struct {
	log    *logrus.Logger
	writer MessageWriter
}

// NewEventPublisher publishes to Kafka through writer, or only logs events
// when writer is nil.
func NewEventPublisher(log *logrus.Logger, writer *kafka.Writer) EventPublisher {
	if writer == nil {
		return NewLogEventPublisher(log)
	}
	return NewKafkaEventPublisher(log, writer)
}

func NewKafkaEventPublisher(log *logrus.Logger, writer MessageWriter) EventPublisher {
	return &kafkaEventPublisher{log: log, writer: writer}
}

func (p *kafkaEventPublisher) Publish(ctx context.Context, event AccountEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.log.Warnf("Failed to encode account event: %+v", err)
		return
	}

	// The request may already be finished by the time the broker answers.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(event.AccountID.String()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Warnf("Failed to publish %s event for account %s: %+v", event.Type, event.AccountID, err)
	}
}

type logEventPublisher struct {
	log *logrus.Logger
}

func NewLogEventPublisher(log *logrus.Logger) EventPublisher {
	return &logEventPublisher{log: log}
}

func (p *logEventPublisher) Publish(ctx context.Context, event AccountEvent) {
	p.log.WithFields(logrus.Fields{
		"event":      event.Type,
		"account_id": event.AccountID.String(),
		"role":       event.Role,
	}).Info("Account event")
}
