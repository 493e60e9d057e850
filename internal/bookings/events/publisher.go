// Package events publishes booking lifecycle events for downstream consumers
// such as the audit projector.
package events

import (
	"barberbook/pkg/kafka"
	"barberbook/pkg/logger"
	"barberbook/pkg/model"
	"context"
	"fmt"

	"github.com/google/uuid"
)

const SchemaVersion = "1"

type Publisher interface {
	Publish(ctx context.Context, event model.BookingEvent) error
}

// MessageWriter is the part of kafka.Producer the publisher needs.
type MessageWriter interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type kafkaPublisher struct {
	writer MessageWriter
	source string
	log    *logger.Logger
}

func NewKafkaPublisher(writer MessageWriter, source string, log *logger.Logger) Publisher {
	return &kafkaPublisher{writer: writer, source: source, log: log}
}

// Publish keys messages by staff member so that one staff member's events keep
// their order within a partition.
func (p *kafkaPublisher) Publish(ctx context.Context, event model.BookingEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}

	msg, err := kafka.NewMessage().
		WithKey(event.TenantID + ":" + event.StaffID).
		WithValue(event).
		WithEventID(event.EventID).
		WithEventType(string(event.EventType)).
		WithTenant(event.TenantID).
		WithSchemaVersion(SchemaVersion).
		WithSource(p.source).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build booking event %s: %w", event.EventID, err)
	}

	if err := p.writer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.EventType, err)
	}

	p.log.Debug("Booking event published", "event_id", event.EventID, "event_type", event.EventType, "booking_id", event.BookingID)
	return nil
}

type noopPublisher struct{}

// NewNoop returns a publisher that drops events, used when Kafka is disabled.
func NewNoop() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, model.BookingEvent) error {
	return nil
}
